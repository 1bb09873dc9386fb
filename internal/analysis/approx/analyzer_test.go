package approx

import (
	"math"
	"testing"

	"statfolio/domain/approx"
	"statfolio/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustConfig(t *testing.T, n int, p float64) approx.TrialConfig {
	t.Helper()
	cfg, err := approx.NewTrialConfig(n, p)
	require.NoError(t, err)
	return cfg
}

func TestNewTrialConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		n    int
		p    float64
		ok   bool
	}{
		{"valid", 10, 0.5, true},
		{"p zero allowed", 10, 0, true},
		{"p one allowed", 10, 1, true},
		{"zero trials", 0, 0.5, false},
		{"negative trials", -3, 0.5, false},
		{"p above one", 10, 1.2, false},
		{"p negative", 10, -0.1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := approx.NewTrialConfig(tt.n, tt.p)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, core.ErrInvalidParameter)
			}
		})
	}
}

func TestPointProbability_KnownValues(t *testing.T) {
	a := NewAnalyzer()

	// Fair coin, 10 flips, exactly 5 heads: 252/1024.
	got, err := a.PointProbability(mustConfig(t, 10, 0.5), 5)
	require.NoError(t, err)
	assert.InDelta(t, 0.24609375, got, 1e-9)

	// Rare event regime from the approximation-error post.
	got, err = a.PointProbability(mustConfig(t, 50, 0.05), 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.2611013704, got, 1e-9)
}

func TestPointProbability_OutcomeOutOfRange(t *testing.T) {
	a := NewAnalyzer()
	cfg := mustConfig(t, 10, 0.5)

	_, err := a.PointProbability(cfg, 11)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	_, err = a.PointProbability(cfg, -1)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestPointProbability_SumsToOne(t *testing.T) {
	a := NewAnalyzer()
	for _, cfg := range []approx.TrialConfig{
		mustConfig(t, 10, 0.5),
		mustConfig(t, 25, 0.3),
		mustConfig(t, 100, 0.05),
	} {
		var sum float64
		for k := 0; k <= cfg.N; k++ {
			p, err := a.PointProbability(cfg, k)
			require.NoError(t, err)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "n=%d p=%g", cfg.N, cfg.P)
	}
}

func TestPointProbability_Symmetry(t *testing.T) {
	a := NewAnalyzer()
	cfg := mustConfig(t, 17, 0.3)
	mirror := mustConfig(t, 17, 0.7)

	for k := 0; k <= cfg.N; k++ {
		direct, err := a.PointProbability(cfg, k)
		require.NoError(t, err)
		flipped, err := a.PointProbability(mirror, cfg.N-k)
		require.NoError(t, err)
		assert.InDelta(t, direct, flipped, 1e-12)
	}
}

func TestApproxPointDensity_KnownValues(t *testing.T) {
	a := NewAnalyzer()

	// mean 5, sd sqrt(2.5): peak density ~ 0.2523, within 0.62 points of exact.
	got, err := a.ApproxPointDensity(mustConfig(t, 10, 0.5), 5)
	require.NoError(t, err)
	assert.InDelta(t, 0.2523132522, got, 1e-9)

	// Low-p regime: the normal curve misses the skew.
	got, err = a.ApproxPointDensity(mustConfig(t, 50, 0.05), 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.2455956411, got, 1e-9)
}

func TestApproxPointDensity_Degenerate(t *testing.T) {
	a := NewAnalyzer()

	_, err := a.ApproxPointDensity(mustConfig(t, 10, 0), 0)
	assert.ErrorIs(t, err, core.ErrDegenerateDistribution)

	_, err = a.ApproxPointDensity(mustConfig(t, 10, 1), 10)
	assert.ErrorIs(t, err, core.ErrDegenerateDistribution)
}

func TestCumulativeProbability_Boundaries(t *testing.T) {
	a := NewAnalyzer()
	cfg := mustConfig(t, 10, 0.5)

	full, err := a.CumulativeProbability(cfg, cfg.N)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, full, 1e-9)

	atZero, err := a.CumulativeProbability(cfg, 0)
	require.NoError(t, err)
	first, err := a.PointProbability(cfg, 0)
	require.NoError(t, err)
	assert.InDelta(t, first, atZero, 1e-12)

	// P(X <= 3) for 10 fair flips: 176/1024.
	got, err := a.CumulativeProbability(cfg, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.171875, got, 1e-9)
}

func TestApproxCumulativeProbability_ContinuityCorrection(t *testing.T) {
	cfg := mustConfig(t, 10, 0.5)

	plain, err := NewAnalyzer().ApproxCumulativeProbability(cfg, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.1029516054, plain, 1e-9)

	corrected, err := NewAnalyzer(WithContinuityCorrection()).ApproxCumulativeProbability(cfg, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.1713908556, corrected, 1e-9)

	// The corrected value lands much closer to the exact 0.171875.
	assert.Less(t, math.Abs(corrected-0.171875), math.Abs(plain-0.171875))
}

func TestTotalAbsoluteError_TightestAtHalf(t *testing.T) {
	a := NewAnalyzer()

	atHalf, err := a.TotalAbsoluteError(mustConfig(t, 10, 0.5))
	require.NoError(t, err)
	assert.InDelta(t, 0.0238100707, atHalf, 1e-9)

	for _, p := range []float64{0.1, 0.2, 0.8, 0.9} {
		far, err := a.TotalAbsoluteError(mustConfig(t, 10, p))
		require.NoError(t, err)
		assert.Greater(t, far, atHalf, "p=%g", p)
	}
}

func TestTotalAbsoluteError_ShrinksWithN(t *testing.T) {
	a := NewAnalyzer()

	small, err := a.TotalAbsoluteError(mustConfig(t, 10, 0.5))
	require.NoError(t, err)
	large, err := a.TotalAbsoluteError(mustConfig(t, 100, 0.5))
	require.NoError(t, err)

	assert.Less(t, large, small)
	assert.InDelta(t, 0.0023494757, large, 1e-9)
}

func TestPointRatio_LowPOverestimation(t *testing.T) {
	a := NewAnalyzer()

	ratio, err := a.PointRatio(mustConfig(t, 50, 0.05), 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0631, ratio, 1e-3)
	assert.Greater(t, ratio, 1.0)
}

func TestErrorMetrics_UsesExpectedOutcome(t *testing.T) {
	a := NewAnalyzer()

	m, err := a.ErrorMetrics(mustConfig(t, 50, 0.05))
	require.NoError(t, err)
	// Expected successes: round(2.5) rounds half away from zero.
	assert.Equal(t, 3, m.ExpectedK)
	assert.Greater(t, m.TotalAbsoluteError, 0.0)
	assert.Greater(t, m.PointRatio, 0.0)
}

func TestConfidenceBounds_Viable(t *testing.T) {
	a := NewAnalyzer()

	b, err := a.ConfidenceBounds(mustConfig(t, 100, 0.5), 0.95)
	require.NoError(t, err)
	assert.InDelta(t, 1.95996, b.Z, 1e-4)
	assert.InDelta(t, 40.2002, b.Lower, 1e-3)
	assert.InDelta(t, 59.7998, b.Upper, 1e-3)
	assert.True(t, b.Viable())
}

func TestConfidenceBounds_DegenerateNotClamped(t *testing.T) {
	a := NewAnalyzer()

	// 5000 trials at p=0.001: the 99% lower bound dips below zero, so a
	// two-sided test cannot be formed. The bound must be reported as is.
	b, err := a.ConfidenceBounds(mustConfig(t, 5000, 0.001), 0.99)
	require.NoError(t, err)
	assert.InDelta(t, 2.5758, b.Z, 1e-3)
	assert.InDelta(t, -0.7572, b.Lower, 1e-3)
	assert.InDelta(t, 10.7572, b.Upper, 1e-3)
	assert.True(t, b.Degenerate)
	assert.False(t, b.Viable())
	assert.Negative(t, b.Lower)
}

func TestConfidenceBounds_LevelValidation(t *testing.T) {
	a := NewAnalyzer()
	cfg := mustConfig(t, 100, 0.5)

	for _, level := range []float64{0, 1, -0.5, 1.5} {
		_, err := a.ConfidenceBounds(cfg, level)
		assert.ErrorIs(t, err, core.ErrInvalidParameter, "level=%g", level)
	}
}

func TestSuccessFailureCondition(t *testing.T) {
	assert.True(t, mustConfig(t, 100, 0.5).MeetsSuccessFailureCondition(10))
	assert.False(t, mustConfig(t, 50, 0.05).MeetsSuccessFailureCondition(5))
	assert.False(t, mustConfig(t, 5000, 0.001).MeetsSuccessFailureCondition(10))
}
