package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound            = errors.New("resource not found")
	ErrPostNotFound        = fmt.Errorf("%w: post", ErrNotFound)
	ErrPublicationNotFound = fmt.Errorf("%w: publication", ErrNotFound)
	ErrProfileNotFound     = fmt.Errorf("%w: profile", ErrNotFound)

	// Parameter validation errors
	ErrInvalidParameter       = errors.New("invalid parameter")
	ErrProbabilityOutOfRange  = fmt.Errorf("%w: probability outside [0,1]", ErrInvalidParameter)
	ErrTrialCountInvalid      = fmt.Errorf("%w: trial count must be positive", ErrInvalidParameter)
	ErrOutcomeOutOfRange      = fmt.Errorf("%w: outcome count outside [0,n]", ErrInvalidParameter)
	ErrDegenerateDistribution = fmt.Errorf("%w: zero standard deviation (p is 0 or 1)", ErrInvalidParameter)
	ErrConfidenceOutOfRange   = fmt.Errorf("%w: confidence level outside (0,1)", ErrInvalidParameter)

	// Trade data errors
	ErrMalformedPeriod = errors.New("malformed quarter period")
	ErrEmptySeries     = errors.New("series has no observations")
)

// Error constructors with context
func NewNotFoundError(resource string, key string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, resource, key)
}

func NewOutcomeRangeError(k, n int) error {
	return fmt.Errorf("%w: k=%d, n=%d", ErrOutcomeOutOfRange, k, n)
}

func NewProbabilityRangeError(p float64) error {
	return fmt.Errorf("%w: p=%g", ErrProbabilityOutOfRange, p)
}

func NewPeriodError(raw string) error {
	return fmt.Errorf("%w: %q", ErrMalformedPeriod, raw)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidParameterError(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}
