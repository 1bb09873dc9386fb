package approx

import (
	"context"
	"testing"

	"statfolio/domain/approx"
	"statfolio/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurve_ExactFamily(t *testing.T) {
	a := NewAnalyzer()
	cfg := mustConfig(t, 10, 0.5)

	curve, err := a.Curve(cfg, approx.FamilyExact)
	require.NoError(t, err)
	require.Len(t, curve.Points, 11)
	assert.Equal(t, approx.FamilyExact, curve.Family)

	var sum float64
	for i, pt := range curve.Points {
		assert.Equal(t, i, pt.K)
		sum += pt.Probability
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestCurve_ApproximateFamilyDegenerate(t *testing.T) {
	a := NewAnalyzer()

	_, err := a.Curve(mustConfig(t, 10, 1), approx.FamilyApproximate)
	assert.ErrorIs(t, err, core.ErrDegenerateDistribution)
}

func TestEvaluateGrid_MatchesSequential(t *testing.T) {
	a := NewAnalyzer()
	cfgs := []approx.TrialConfig{
		mustConfig(t, 10, 0.5),
		mustConfig(t, 25, 0.3),
		mustConfig(t, 50, 0.05),
		mustConfig(t, 100, 0.5),
	}

	curves, err := a.EvaluateGrid(context.Background(), cfgs, approx.FamilyExact)
	require.NoError(t, err)
	require.Len(t, curves, len(cfgs))

	for i, cfg := range cfgs {
		want, err := a.Curve(cfg, approx.FamilyExact)
		require.NoError(t, err)
		assert.Equal(t, want, curves[i], "grid order must match input order")
	}
}

func TestEvaluateGrid_PropagatesFirstError(t *testing.T) {
	a := NewAnalyzer()
	cfgs := []approx.TrialConfig{
		mustConfig(t, 10, 0.5),
		mustConfig(t, 10, 0), // degenerate for the approximate family
	}

	_, err := a.EvaluateGrid(context.Background(), cfgs, approx.FamilyApproximate)
	assert.ErrorIs(t, err, core.ErrDegenerateDistribution)
}

func TestErrorSweep(t *testing.T) {
	a := NewAnalyzer()
	cfgs := []approx.TrialConfig{
		mustConfig(t, 10, 0.5),
		mustConfig(t, 100, 0.5),
	}

	metrics, err := a.ErrorSweep(context.Background(), cfgs)
	require.NoError(t, err)
	require.Len(t, metrics, 2)
	assert.Equal(t, cfgs[0], metrics[0].Config)
	assert.Less(t, metrics[1].TotalAbsoluteError, metrics[0].TotalAbsoluteError)
}

func TestErrorSweep_Cancelled(t *testing.T) {
	a := NewAnalyzer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.ErrorSweep(ctx, []approx.TrialConfig{mustConfig(t, 10, 0.5)})
	assert.ErrorIs(t, err, context.Canceled)
}
