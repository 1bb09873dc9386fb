package trade

import (
	"context"
	"testing"

	"statfolio/domain/core"
	"statfolio/domain/trade"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureFlows() []trade.Flow {
	q := func(year, quarter int) trade.Period {
		return trade.Period{Year: year, Quarter: quarter}
	}
	return []trade.Flow{
		{Period: q(2023, 1), Partner: "Latvia", Exports: 100, Imports: 60},
		{Period: q(2023, 1), Partner: "Poland", Exports: 80, Imports: 120},
		{Period: q(2023, 2), Partner: "Latvia", Exports: 110, Imports: 70},
		{Period: q(2023, 2), Partner: "Poland", Exports: 90, Imports: 130},
		{Period: q(2023, 3), Partner: "Latvia", Exports: 121, Imports: 77},
		{Period: q(2023, 3), Partner: "Poland", Exports: 99, Imports: 110},
	}
}

func TestTotalSeries_SumsPartnersPerQuarter(t *testing.T) {
	s := TotalSeries(fixtureFlows(), DirectionExports)

	require.Len(t, s.Points, 3)
	assert.Equal(t, trade.Period{Year: 2023, Quarter: 1}, s.Points[0].Period)
	assert.InDelta(t, 180, s.Points[0].Value, 1e-9)
	assert.InDelta(t, 200, s.Points[1].Value, 1e-9)
	assert.InDelta(t, 220, s.Points[2].Value, 1e-9)
}

func TestPartnerSeries_Pivot(t *testing.T) {
	byPartner := PartnerSeries(fixtureFlows(), DirectionImports)

	require.Len(t, byPartner, 2)
	latvia := byPartner["Latvia"]
	require.Len(t, latvia.Points, 3)
	assert.Equal(t, "Latvia/imports", latvia.Name)
	assert.InDelta(t, 60, latvia.Points[0].Value, 1e-9)
	assert.InDelta(t, 77, latvia.Points[2].Value, 1e-9)
}

func TestBalanceSeries_JoinsDirections(t *testing.T) {
	s := BalanceSeries(fixtureFlows())

	require.Len(t, s.Points, 3)
	// 2023Q1: exports 180, imports 180.
	assert.InDelta(t, 0, s.Points[0].Value, 1e-9)
	// 2023Q3: exports 220, imports 187.
	assert.InDelta(t, 33, s.Points[2].Value, 1e-9)
}

func TestGrowthSeries(t *testing.T) {
	exports := TotalSeries(fixtureFlows(), DirectionExports)
	growth := GrowthSeries(exports)

	require.Len(t, growth.Points, 2)
	// 180 -> 200 -> 220.
	assert.InDelta(t, 200.0/180*100-100, growth.Points[0].Value, 1e-9)
	assert.InDelta(t, 10, growth.Points[1].Value, 1e-9)
}

func TestGrowthSeries_SkipsGapsAndZeroBase(t *testing.T) {
	s := trade.Series{Name: "gappy", Points: []trade.SeriesPoint{
		{Period: trade.Period{Year: 2022, Quarter: 4}, Value: 0},
		{Period: trade.Period{Year: 2023, Quarter: 1}, Value: 50},
		{Period: trade.Period{Year: 2023, Quarter: 3}, Value: 60}, // gap: Q2 missing
	}}

	growth := GrowthSeries(s)
	assert.Empty(t, growth.Points)
}

func TestSummarize(t *testing.T) {
	s := TotalSeries(fixtureFlows(), DirectionExports)

	summary, err := Summarize(s)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Count)
	assert.InDelta(t, 200, summary.Mean, 1e-9)
	assert.InDelta(t, 200, summary.Median, 1e-9)
	assert.InDelta(t, 180, summary.Min, 1e-9)
	assert.InDelta(t, 220, summary.Max, 1e-9)
}

func TestSummarize_EmptySeries(t *testing.T) {
	_, err := Summarize(trade.Series{Name: "empty"})
	assert.ErrorIs(t, err, core.ErrEmptySeries)
}

func TestQuarterTable(t *testing.T) {
	rows := QuarterTable(fixtureFlows())

	require.Len(t, rows, 3)
	assert.Equal(t, "2023Q1", rows[0].Period.String())
	assert.InDelta(t, 180, rows[0].Exports, 1e-9)
	assert.InDelta(t, 180, rows[0].Imports, 1e-9)
	assert.InDelta(t, 0, rows[0].Balance, 1e-9)
	assert.InDelta(t, 33, rows[2].Balance, 1e-9)
}

func TestStaticSource_CopiesFlows(t *testing.T) {
	src := NewStaticSource(SampleFlows())

	flows, err := src.Flows(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, flows)

	flows[0].Exports = -1
	again, err := src.Flows(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, -1.0, again[0].Exports)
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"2023Q1", "2023Q1", true},
		{"2023-Q4", "2023Q4", true},
		{"2023K2", "2023Q2", true},
		{"2023Q5", "", false},
		{"23Q1", "", false},
		{"garbage", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			p, err := trade.ParsePeriod(tt.raw)
			if !tt.ok {
				assert.ErrorIs(t, err, core.ErrMalformedPeriod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}
