// Package approx compares the exact binomial distribution with its normal
// approximation: point and cumulative probabilities, aggregate error, and
// the approximate two-sided rejection region used in the analysis posts.
package approx

import (
	"math"

	"statfolio/domain/approx"
	"statfolio/domain/core"

	"gonum.org/v1/gonum/stat/distuv"
)

// Analyzer evaluates exact and approximate probabilities for Bernoulli
// trial configurations. All methods are pure functions of their inputs,
// safe for concurrent use.
type Analyzer struct {
	// continuity shifts the cumulative approximation argument by +0.5.
	// Off by default; the point comparisons are never corrected.
	continuity bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithContinuityCorrection makes ApproxCumulativeProbability evaluate
// Phi((k + 0.5 - mean)/sd) instead of Phi((k - mean)/sd). The correction
// applies only to cumulative probabilities.
func WithContinuityCorrection() Option {
	return func(a *Analyzer) { a.continuity = true }
}

// NewAnalyzer creates an analyzer. Without options the cumulative
// approximation is uncorrected.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// PointProbability returns the exact probability of observing exactly k
// successes: C(n,k) * p^k * (1-p)^(n-k).
func (a *Analyzer) PointProbability(cfg approx.TrialConfig, k int) (float64, error) {
	if err := validateOutcome(cfg, k); err != nil {
		return 0, err
	}
	b := distuv.Binomial{N: float64(cfg.N), P: cfg.P}
	return b.Prob(float64(k)), nil
}

// ApproxPointDensity returns the normal density at k with mean n*p and
// standard deviation sqrt(n*p*(1-p)).
func (a *Analyzer) ApproxPointDensity(cfg approx.TrialConfig, k int) (float64, error) {
	if err := validateOutcome(cfg, k); err != nil {
		return 0, err
	}
	if cfg.Degenerate() {
		return 0, core.ErrDegenerateDistribution
	}
	n := distuv.Normal{Mu: cfg.Mean(), Sigma: cfg.StdDev()}
	return n.Prob(float64(k)), nil
}

// CumulativeProbability returns the exact probability of at most k successes.
func (a *Analyzer) CumulativeProbability(cfg approx.TrialConfig, k int) (float64, error) {
	if err := validateOutcome(cfg, k); err != nil {
		return 0, err
	}
	b := distuv.Binomial{N: float64(cfg.N), P: cfg.P}
	return b.CDF(float64(k)), nil
}

// ApproxCumulativeProbability returns Phi((k - mean)/sd), or
// Phi((k + 0.5 - mean)/sd) when the analyzer was built with
// WithContinuityCorrection.
func (a *Analyzer) ApproxCumulativeProbability(cfg approx.TrialConfig, k int) (float64, error) {
	if err := validateOutcome(cfg, k); err != nil {
		return 0, err
	}
	if cfg.Degenerate() {
		return 0, core.ErrDegenerateDistribution
	}
	x := float64(k)
	if a.continuity {
		x += 0.5
	}
	n := distuv.Normal{Mu: cfg.Mean(), Sigma: cfg.StdDev()}
	return n.CDF(x), nil
}

// TotalAbsoluteError sums |exact - approximate| point probability over every
// outcome k in [0, n]. Shrinks toward 0 as n*p and n*(1-p) grow and is
// smallest, for fixed expected successes, near p = 0.5.
func (a *Analyzer) TotalAbsoluteError(cfg approx.TrialConfig) (float64, error) {
	if cfg.Degenerate() {
		return 0, core.ErrDegenerateDistribution
	}
	b := distuv.Binomial{N: float64(cfg.N), P: cfg.P}
	n := distuv.Normal{Mu: cfg.Mean(), Sigma: cfg.StdDev()}

	var total float64
	for k := 0; k <= cfg.N; k++ {
		x := float64(k)
		total += math.Abs(b.Prob(x) - n.Prob(x))
	}
	return total, nil
}

// PointRatio returns exact/approximate at outcome k, the overestimation
// factor the posts report as a percentage.
func (a *Analyzer) PointRatio(cfg approx.TrialConfig, k int) (float64, error) {
	exact, err := a.PointProbability(cfg, k)
	if err != nil {
		return 0, err
	}
	density, err := a.ApproxPointDensity(cfg, k)
	if err != nil {
		return 0, err
	}
	if density == 0 {
		return math.Inf(1), nil
	}
	return exact / density, nil
}

// ErrorMetrics bundles the point comparison at the expected outcome with
// the total absolute error for one configuration.
func (a *Analyzer) ErrorMetrics(cfg approx.TrialConfig) (approx.ErrorMetrics, error) {
	k := cfg.ExpectedK()
	exact, err := a.PointProbability(cfg, k)
	if err != nil {
		return approx.ErrorMetrics{}, err
	}
	density, err := a.ApproxPointDensity(cfg, k)
	if err != nil {
		return approx.ErrorMetrics{}, err
	}
	tae, err := a.TotalAbsoluteError(cfg)
	if err != nil {
		return approx.ErrorMetrics{}, err
	}

	ratio := math.Inf(1)
	if density > 0 {
		ratio = exact / density
	}
	return approx.ErrorMetrics{
		Config:             cfg,
		ExpectedK:          k,
		ExactPoint:         exact,
		ApproxPoint:        density,
		PointRatio:         ratio,
		TotalAbsoluteError: tae,
	}, nil
}

// ConfidenceBounds returns the two-sided approximate rejection region
// n*p +/- z*sigma for the given confidence level (0.95 -> z ~ 1.960,
// 0.99 -> z ~ 2.576). Bounds outside [0, n] are reported via the
// Degenerate flag, never clamped: a bound below zero means the two-sided
// test is not achievable at this sample size.
func (a *Analyzer) ConfidenceBounds(cfg approx.TrialConfig, level float64) (approx.ConfidenceBounds, error) {
	if level <= 0 || level >= 1 {
		return approx.ConfidenceBounds{}, core.ErrConfidenceOutOfRange
	}
	if cfg.Degenerate() {
		return approx.ConfidenceBounds{}, core.ErrDegenerateDistribution
	}

	alpha := 1 - level
	z := distuv.UnitNormal.Quantile(1 - alpha/2)
	margin := z * cfg.StdDev()
	lower := cfg.Mean() - margin
	upper := cfg.Mean() + margin

	return approx.ConfidenceBounds{
		Config:     cfg,
		Level:      level,
		Z:          z,
		Lower:      lower,
		Upper:      upper,
		Degenerate: lower < 0 || upper > float64(cfg.N),
	}, nil
}

func validateOutcome(cfg approx.TrialConfig, k int) error {
	if cfg.N <= 0 {
		return core.ErrTrialCountInvalid
	}
	if cfg.P < 0 || cfg.P > 1 {
		return core.NewProbabilityRangeError(cfg.P)
	}
	if k < 0 || k > cfg.N {
		return core.NewOutcomeRangeError(k, cfg.N)
	}
	return nil
}
