package approx

import (
	"math"

	"statfolio/domain/core"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// TrialConfig identifies a Bernoulli trial experiment: n independent trials
// with success probability p. Immutable once constructed.
type TrialConfig struct {
	N int     `json:"n"`
	P float64 `json:"p"`
}

// NewTrialConfig validates and constructs a trial configuration.
func NewTrialConfig(n int, p float64) (TrialConfig, error) {
	if n <= 0 {
		return TrialConfig{}, core.ErrTrialCountInvalid
	}
	if p < 0 || p > 1 || math.IsNaN(p) {
		return TrialConfig{}, core.NewProbabilityRangeError(p)
	}
	return TrialConfig{N: n, P: p}, nil
}

// Mean returns n*p, the expected success count.
func (c TrialConfig) Mean() float64 {
	return float64(c.N) * c.P
}

// StdDev returns sqrt(n*p*(1-p)).
func (c TrialConfig) StdDev() float64 {
	return math.Sqrt(float64(c.N) * c.P * (1 - c.P))
}

// Degenerate reports whether the normal approximation collapses (p is 0 or 1).
func (c TrialConfig) Degenerate() bool {
	return c.P == 0 || c.P == 1
}

// ExpectedK returns the integer outcome count closest to the mean,
// the conventional point of comparison between the two families.
func (c TrialConfig) ExpectedK() int {
	k := int(math.Round(c.Mean()))
	if k > c.N {
		k = c.N
	}
	return k
}

// MeetsSuccessFailureCondition reports whether both n*p and n*(1-p) reach
// the given threshold, the usual rule of thumb (5-10) for trusting the
// normal approximation.
func (c TrialConfig) MeetsSuccessFailureCondition(threshold float64) bool {
	return c.Mean() >= threshold && float64(c.N)*(1-c.P) >= threshold
}

// Family distinguishes the two probability curve families.
type Family string

const (
	FamilyExact       Family = "exact"       // binomial point probabilities
	FamilyApproximate Family = "approximate" // normal densities at integer outcomes
)

// CurvePoint is one (outcome count, probability) pair.
type CurvePoint struct {
	K           int     `json:"k"`
	Probability float64 `json:"probability"`
}

// Curve is a finite probability curve over k in [0, n] for one family.
// Recomputed on demand; carries no identity beyond its configuration.
type Curve struct {
	Config TrialConfig  `json:"config"`
	Family Family       `json:"family"`
	Points []CurvePoint `json:"points"`
}

// ErrorMetrics are the derived comparison scalars for one configuration.
// Purely functional outputs; no mutable state.
type ErrorMetrics struct {
	Config             TrialConfig `json:"config"`
	ExpectedK          int         `json:"expected_k"`
	ExactPoint         float64     `json:"exact_point"`
	ApproxPoint        float64     `json:"approx_point"`
	PointRatio         float64     `json:"point_ratio"`
	TotalAbsoluteError float64     `json:"total_absolute_error"`
}

// ConfidenceBounds describes the two-sided approximate rejection region
// n*p +/- z*sigma at a confidence level. Bounds are never clamped to [0, n];
// Degenerate marks the "test not viable at this sample size" condition and
// the caller decides how to present it.
type ConfidenceBounds struct {
	Config     TrialConfig `json:"config"`
	Level      float64     `json:"level"`
	Z          float64     `json:"z"`
	Lower      float64     `json:"lower"`
	Upper      float64     `json:"upper"`
	Degenerate bool        `json:"degenerate"`
}

// Viable reports whether both bounds fall inside the outcome domain.
func (b ConfidenceBounds) Viable() bool {
	return !b.Degenerate
}
