// Package trade reshapes quarterly goods-trade observations into the
// series and summary tables the trade post charts: per-partner pivots,
// import/export joins, balances, and quarter-over-quarter growth.
package trade

import (
	"fmt"
	"sort"

	"statfolio/domain/core"
	"statfolio/domain/trade"

	"github.com/montanaflynn/stats"
)

// Direction selects which side of a flow feeds a series.
type Direction string

const (
	DirectionExports Direction = "exports"
	DirectionImports Direction = "imports"
)

func (d Direction) value(f trade.Flow) float64 {
	if d == DirectionImports {
		return f.Imports
	}
	return f.Exports
}

// TotalSeries sums one direction across all partners per quarter.
func TotalSeries(flows []trade.Flow, dir Direction) trade.Series {
	totals := make(map[trade.Period]float64)
	for _, f := range flows {
		totals[f.Period] += dir.value(f)
	}

	s := trade.Series{Name: string(dir)}
	for period, value := range totals {
		s.Points = append(s.Points, trade.SeriesPoint{Period: period, Value: value})
	}
	s.Sort()
	return s
}

// PartnerSeries pivots one direction into a per-partner series map
// (the wide-to-long reshape the source spreadsheet needs).
func PartnerSeries(flows []trade.Flow, dir Direction) map[string]trade.Series {
	byPartner := make(map[string]*trade.Series)
	for _, f := range flows {
		s, ok := byPartner[f.Partner]
		if !ok {
			s = &trade.Series{Name: fmt.Sprintf("%s/%s", f.Partner, dir)}
			byPartner[f.Partner] = s
		}
		s.Points = append(s.Points, trade.SeriesPoint{Period: f.Period, Value: dir.value(f)})
	}

	out := make(map[string]trade.Series, len(byPartner))
	for partner, s := range byPartner {
		s.Sort()
		out[partner] = *s
	}
	return out
}

// BalanceSeries joins the export and import totals per quarter and returns
// exports minus imports. Quarters present on only one side count the
// missing side as zero.
func BalanceSeries(flows []trade.Flow) trade.Series {
	exports := TotalSeries(flows, DirectionExports)
	imports := TotalSeries(flows, DirectionImports)

	byPeriod := make(map[trade.Period]float64)
	for _, pt := range exports.Points {
		byPeriod[pt.Period] += pt.Value
	}
	for _, pt := range imports.Points {
		byPeriod[pt.Period] -= pt.Value
	}

	s := trade.Series{Name: "balance"}
	for period, value := range byPeriod {
		s.Points = append(s.Points, trade.SeriesPoint{Period: period, Value: value})
	}
	s.Sort()
	return s
}

// GrowthSeries derives quarter-over-quarter percentage change. The first
// observation has no predecessor and is skipped; a zero predecessor yields
// no point rather than an infinity.
func GrowthSeries(s trade.Series) trade.Series {
	growth := trade.Series{Name: s.Name + "/growth"}
	for i := 1; i < len(s.Points); i++ {
		prev := s.Points[i-1]
		cur := s.Points[i]
		if prev.Value == 0 || cur.Period != prev.Period.Next() {
			continue
		}
		growth.Points = append(growth.Points, trade.SeriesPoint{
			Period: cur.Period,
			Value:  (cur.Value - prev.Value) / prev.Value * 100,
		})
	}
	return growth
}

// Summarize computes descriptive statistics for one series.
func Summarize(s trade.Series) (trade.Summary, error) {
	if len(s.Points) == 0 {
		return trade.Summary{}, core.ErrEmptySeries
	}

	values := stats.Float64Data(s.Values())
	mean, err := stats.Mean(values)
	if err != nil {
		return trade.Summary{}, fmt.Errorf("mean of %s: %w", s.Name, err)
	}
	median, err := stats.Median(values)
	if err != nil {
		return trade.Summary{}, fmt.Errorf("median of %s: %w", s.Name, err)
	}
	stdDev, _ := stats.StandardDeviation(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	p25, _ := stats.Percentile(values, 25)
	p75, _ := stats.Percentile(values, 75)

	return trade.Summary{
		Series: s.Name,
		Count:  len(s.Points),
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		P25:    p25,
		P75:    p75,
	}, nil
}

// QuarterRow is one row of the joined quarterly table shown in the post.
type QuarterRow struct {
	Period  trade.Period `json:"period"`
	Exports float64      `json:"exports"`
	Imports float64      `json:"imports"`
	Balance float64      `json:"balance"`
}

// QuarterTable joins totals per quarter into chart-ready rows,
// chronologically ordered.
func QuarterTable(flows []trade.Flow) []QuarterRow {
	type acc struct{ exports, imports float64 }
	byPeriod := make(map[trade.Period]*acc)
	for _, f := range flows {
		a, ok := byPeriod[f.Period]
		if !ok {
			a = &acc{}
			byPeriod[f.Period] = a
		}
		a.exports += f.Exports
		a.imports += f.Imports
	}

	rows := make([]QuarterRow, 0, len(byPeriod))
	for period, a := range byPeriod {
		rows = append(rows, QuarterRow{
			Period:  period,
			Exports: a.exports,
			Imports: a.imports,
			Balance: a.exports - a.imports,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Period.Before(rows[j].Period)
	})
	return rows
}
