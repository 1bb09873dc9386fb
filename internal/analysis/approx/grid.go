package approx

import (
	"context"
	"runtime"

	"statfolio/domain/approx"

	"golang.org/x/sync/errgroup"
)

// Curve evaluates the full (k, probability) sequence over [0, n] for one
// family. The approximate family requires a non-degenerate configuration.
func (a *Analyzer) Curve(cfg approx.TrialConfig, family approx.Family) (approx.Curve, error) {
	points := make([]approx.CurvePoint, 0, cfg.N+1)
	for k := 0; k <= cfg.N; k++ {
		var (
			prob float64
			err  error
		)
		switch family {
		case approx.FamilyApproximate:
			prob, err = a.ApproxPointDensity(cfg, k)
		default:
			prob, err = a.PointProbability(cfg, k)
		}
		if err != nil {
			return approx.Curve{}, err
		}
		points = append(points, approx.CurvePoint{K: k, Probability: prob})
	}
	return approx.Curve{Config: cfg, Family: family, Points: points}, nil
}

// EvaluateGrid computes one curve per configuration concurrently. Cells are
// independent, so ordering of work does not matter; results keep the input
// order. The first failing cell cancels the rest.
func (a *Analyzer) EvaluateGrid(ctx context.Context, cfgs []approx.TrialConfig, family approx.Family) ([]approx.Curve, error) {
	curves := make([]approx.Curve, len(cfgs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, cfg := range cfgs {
		i, cfg := i, cfg
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			curve, err := a.Curve(cfg, family)
			if err != nil {
				return err
			}
			curves[i] = curve
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return curves, nil
}

// ErrorSweep computes ErrorMetrics for each configuration concurrently,
// preserving input order.
func (a *Analyzer) ErrorSweep(ctx context.Context, cfgs []approx.TrialConfig) ([]approx.ErrorMetrics, error) {
	metrics := make([]approx.ErrorMetrics, len(cfgs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, cfg := range cfgs {
		i, cfg := i, cfg
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := a.ErrorMetrics(cfg)
			if err != nil {
				return err
			}
			metrics[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return metrics, nil
}
