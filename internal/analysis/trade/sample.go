package trade

import (
	"context"

	"statfolio/domain/trade"
)

// StaticSource serves a fixed set of flows. It backs the site when no
// spreadsheet is configured and doubles as the test fixture.
type StaticSource struct {
	flows []trade.Flow
}

// NewStaticSource wraps a flow slice.
func NewStaticSource(flows []trade.Flow) *StaticSource {
	return &StaticSource{flows: flows}
}

// Flows returns a copy of the wrapped flows.
func (s *StaticSource) Flows(ctx context.Context) ([]trade.Flow, error) {
	out := make([]trade.Flow, len(s.flows))
	copy(out, s.flows)
	return out, nil
}

// SampleFlows is the bundled excerpt of Lithuanian quarterly goods trade
// with its three largest partners, million EUR, used when no workbook is
// configured.
func SampleFlows() []trade.Flow {
	q := func(year, quarter int) trade.Period {
		return trade.Period{Year: year, Quarter: quarter}
	}
	return []trade.Flow{
		{Period: q(2022, 1), Partner: "Latvia", Exports: 1042.3, Imports: 689.1},
		{Period: q(2022, 1), Partner: "Poland", Exports: 891.7, Imports: 1355.4},
		{Period: q(2022, 1), Partner: "Germany", Exports: 823.5, Imports: 1248.9},
		{Period: q(2022, 2), Partner: "Latvia", Exports: 1120.8, Imports: 742.6},
		{Period: q(2022, 2), Partner: "Poland", Exports: 933.2, Imports: 1410.2},
		{Period: q(2022, 2), Partner: "Germany", Exports: 861.4, Imports: 1302.7},
		{Period: q(2022, 3), Partner: "Latvia", Exports: 1187.2, Imports: 760.3},
		{Period: q(2022, 3), Partner: "Poland", Exports: 1002.6, Imports: 1388.1},
		{Period: q(2022, 3), Partner: "Germany", Exports: 889.9, Imports: 1279.5},
		{Period: q(2022, 4), Partner: "Latvia", Exports: 1215.4, Imports: 801.2},
		{Period: q(2022, 4), Partner: "Poland", Exports: 1054.9, Imports: 1426.8},
		{Period: q(2022, 4), Partner: "Germany", Exports: 917.3, Imports: 1334.6},
		{Period: q(2023, 1), Partner: "Latvia", Exports: 1178.6, Imports: 773.9},
		{Period: q(2023, 1), Partner: "Poland", Exports: 1021.3, Imports: 1371.5},
		{Period: q(2023, 1), Partner: "Germany", Exports: 902.8, Imports: 1290.2},
		{Period: q(2023, 2), Partner: "Latvia", Exports: 1232.1, Imports: 815.7},
		{Period: q(2023, 2), Partner: "Poland", Exports: 1067.8, Imports: 1403.9},
		{Period: q(2023, 2), Partner: "Germany", Exports: 934.5, Imports: 1322.4},
	}
}
