// Package app composes the analysis packages into the report payloads the
// UI pages and the report CLI consume.
package app

import (
	"context"

	"statfolio/domain/approx"
	"statfolio/domain/trade"
	"statfolio/internal"
	approxanalysis "statfolio/internal/analysis/approx"
	tradeanalysis "statfolio/internal/analysis/trade"
	"statfolio/ports"
)

// ReportService computes the figures embedded in the analysis posts.
type ReportService struct {
	analyzer    *approxanalysis.Analyzer
	flows       ports.FlowSource
	ruleOfThumb float64
	log         *internal.Logger
}

// NewReportService wires the analyzer and trade source together.
func NewReportService(analyzer *approxanalysis.Analyzer, flows ports.FlowSource, ruleOfThumb float64) *ReportService {
	return &ReportService{
		analyzer:    analyzer,
		flows:       flows,
		ruleOfThumb: ruleOfThumb,
		log:         internal.DefaultLogger,
	}
}

// ApproximationRow is one configuration's comparison: error metrics plus
// the 95% and 99% rejection regions and whether the success-failure rule
// of thumb holds.
type ApproximationRow struct {
	Metrics        approx.ErrorMetrics     `json:"metrics"`
	Bounds95       approx.ConfidenceBounds `json:"bounds_95"`
	Bounds99       approx.ConfidenceBounds `json:"bounds_99"`
	MeetsRule      bool                    `json:"meets_rule"`
	DegenerateTest bool                    `json:"degenerate_test"`
}

// ApproximationReport is the full comparison table.
type ApproximationReport struct {
	RuleOfThumb float64            `json:"rule_of_thumb"`
	Rows        []ApproximationRow `json:"rows"`
}

// DefaultGrid lists the configurations the approximation post walks
// through, from the textbook fair coin to the regime where the two-sided
// test stops being achievable.
func DefaultGrid() []approx.TrialConfig {
	return []approx.TrialConfig{
		{N: 10, P: 0.5},
		{N: 10, P: 0.2},
		{N: 50, P: 0.05},
		{N: 100, P: 0.5},
		{N: 500, P: 0.1},
		{N: 5000, P: 0.001},
	}
}

// ApproximationReport evaluates error metrics and confidence bounds for
// each configuration. Degenerate bounds are carried through as data, not
// errors: the posts report "test not viable" rows explicitly.
func (s *ReportService) ApproximationReport(ctx context.Context, cfgs []approx.TrialConfig) (ApproximationReport, error) {
	metrics, err := s.analyzer.ErrorSweep(ctx, cfgs)
	if err != nil {
		return ApproximationReport{}, err
	}

	report := ApproximationReport{RuleOfThumb: s.ruleOfThumb}
	for _, m := range metrics {
		b95, err := s.analyzer.ConfidenceBounds(m.Config, 0.95)
		if err != nil {
			return ApproximationReport{}, err
		}
		b99, err := s.analyzer.ConfidenceBounds(m.Config, 0.99)
		if err != nil {
			return ApproximationReport{}, err
		}
		if b99.Degenerate {
			s.log.Warn("two-sided test not viable at n=%d p=%g (99%% lower bound %.2f)",
				m.Config.N, m.Config.P, b99.Lower)
		}
		report.Rows = append(report.Rows, ApproximationRow{
			Metrics:        m,
			Bounds95:       b95,
			Bounds99:       b99,
			MeetsRule:      m.Config.MeetsSuccessFailureCondition(s.ruleOfThumb),
			DegenerateTest: b95.Degenerate || b99.Degenerate,
		})
	}
	return report, nil
}

// CurvePair returns the exact and approximate curves for one
// configuration, the data behind the overlay chart.
func (s *ReportService) CurvePair(ctx context.Context, cfg approx.TrialConfig) (exact, approximate approx.Curve, err error) {
	exact, err = s.analyzer.Curve(cfg, approx.FamilyExact)
	if err != nil {
		return approx.Curve{}, approx.Curve{}, err
	}
	approximate, err = s.analyzer.Curve(cfg, approx.FamilyApproximate)
	if err != nil {
		return approx.Curve{}, approx.Curve{}, err
	}
	return exact, approximate, nil
}

// ConfidenceBounds exposes the analyzer's rejection region for callers
// that need a non-default confidence level.
func (s *ReportService) ConfidenceBounds(cfg approx.TrialConfig, level float64) (approx.ConfidenceBounds, error) {
	return s.analyzer.ConfidenceBounds(cfg, level)
}

// TradeReport is the joined quarterly table with derived series and
// descriptive statistics.
type TradeReport struct {
	Quarters     []tradeanalysis.QuarterRow `json:"quarters"`
	Balance      trade.Series               `json:"balance"`
	ExportGrowth trade.Series               `json:"export_growth"`
	Summaries    []trade.Summary            `json:"summaries"`
}

// TradeReport reshapes the configured flow source into chart-ready form.
func (s *ReportService) TradeReport(ctx context.Context) (TradeReport, error) {
	flows, err := s.flows.Flows(ctx)
	if err != nil {
		return TradeReport{}, err
	}

	exports := tradeanalysis.TotalSeries(flows, tradeanalysis.DirectionExports)
	imports := tradeanalysis.TotalSeries(flows, tradeanalysis.DirectionImports)
	balance := tradeanalysis.BalanceSeries(flows)

	var summaries []trade.Summary
	for _, series := range []trade.Series{exports, imports, balance} {
		summary, err := tradeanalysis.Summarize(series)
		if err != nil {
			return TradeReport{}, err
		}
		summaries = append(summaries, summary)
	}

	return TradeReport{
		Quarters:     tradeanalysis.QuarterTable(flows),
		Balance:      balance,
		ExportGrowth: tradeanalysis.GrowthSeries(exports),
		Summaries:    summaries,
	}, nil
}
