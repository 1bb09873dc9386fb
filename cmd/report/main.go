// Command report prints the computed tables behind the analysis posts and
// optionally exports them as a workbook.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"statfolio/adapters/excel"
	"statfolio/app"
	"statfolio/domain/approx"
	approxanalysis "statfolio/internal/analysis/approx"
	tradeanalysis "statfolio/internal/analysis/trade"
	"statfolio/ports"

	"github.com/joho/godotenv"
	"github.com/xuri/excelize/v2"
)

func main() {
	var (
		n          = flag.Int("n", 0, "trial count for a single configuration (0 = default grid)")
		p          = flag.Float64("p", 0.5, "success probability for -n")
		tradeFile  = flag.String("trade", "", "trade workbook path (.xlsx or .csv); empty = bundled sample")
		outFile    = flag.String("o", "", "export the tables to this .xlsx file")
		continuity = flag.Bool("continuity", false, "apply continuity correction to cumulative approximations")
	)
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}

	var opts []approxanalysis.Option
	if *continuity {
		opts = append(opts, approxanalysis.WithContinuityCorrection())
	}
	analyzer := approxanalysis.NewAnalyzer(opts...)

	var flows ports.FlowSource
	if *tradeFile != "" {
		flows = excel.NewFlowSource(*tradeFile, excel.DefaultFlowMapping())
	} else {
		flows = tradeanalysis.NewStaticSource(tradeanalysis.SampleFlows())
	}

	service := app.NewReportService(analyzer, flows, 10)
	ctx := context.Background()

	grid := app.DefaultGrid()
	if *n > 0 {
		cfg, err := approx.NewTrialConfig(*n, *p)
		if err != nil {
			log.Fatalf("invalid configuration: %v", err)
		}
		grid = []approx.TrialConfig{cfg}
	}

	approxReport, err := service.ApproximationReport(ctx, grid)
	if err != nil {
		log.Fatalf("approximation report failed: %v", err)
	}
	tradeReport, err := service.TradeReport(ctx)
	if err != nil {
		log.Fatalf("trade report failed: %v", err)
	}

	printApproximation(approxReport)
	printTrade(tradeReport)

	if *outFile != "" {
		if err := exportWorkbook(*outFile, approxReport, tradeReport); err != nil {
			log.Fatalf("export failed: %v", err)
		}
		log.Printf("Exported tables to %s", *outFile)
	}
}

func printApproximation(report app.ApproximationReport) {
	fmt.Println("Binomial vs normal approximation")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "n\tp\tk*\texact\tapprox\tratio\ttotal abs err\t99% bounds")
	for _, row := range report.Rows {
		m := row.Metrics
		bounds := fmt.Sprintf("%.2f..%.2f", row.Bounds99.Lower, row.Bounds99.Upper)
		if row.Bounds99.Degenerate {
			bounds += " (not viable)"
		}
		fmt.Fprintf(w, "%d\t%g\t%d\t%.4f\t%.4f\t%.1f%%\t%.5f\t%s\n",
			m.Config.N, m.Config.P, m.ExpectedK, m.ExactPoint, m.ApproxPoint,
			m.PointRatio*100, m.TotalAbsoluteError, bounds)
	}
	w.Flush()
	fmt.Println()
}

func printTrade(report app.TradeReport) {
	fmt.Println("Quarterly trade totals (million EUR)")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "quarter\texports\timports\tbalance")
	for _, q := range report.Quarters {
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%.1f\n", q.Period, q.Exports, q.Imports, q.Balance)
	}
	w.Flush()

	fmt.Println("\nSeries summaries")
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "series\tn\tmean\tmedian\tstd dev\tmin\tmax")
	for _, s := range report.Summaries {
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\n",
			s.Series, s.Count, s.Mean, s.Median, s.StdDev, s.Min, s.Max)
	}
	w.Flush()
}

func exportWorkbook(path string, approxReport app.ApproximationReport, tradeReport app.TradeReport) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Approximation"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}
	header := []interface{}{"n", "p", "k*", "exact", "approx", "ratio", "total_abs_error", "lower99", "upper99", "viable"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range approxReport.Rows {
		m := row.Metrics
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			m.Config.N, m.Config.P, m.ExpectedK, m.ExactPoint, m.ApproxPoint,
			m.PointRatio, m.TotalAbsoluteError,
			row.Bounds99.Lower, row.Bounds99.Upper, row.Bounds99.Viable(),
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	tradeSheet := "Trade"
	if _, err := f.NewSheet(tradeSheet); err != nil {
		return err
	}
	tradeHeader := []interface{}{"quarter", "exports", "imports", "balance"}
	if err := f.SetSheetRow(tradeSheet, "A1", &tradeHeader); err != nil {
		return err
	}
	for i, q := range tradeReport.Quarters {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{q.Period.String(), q.Exports, q.Imports, q.Balance}
		if err := f.SetSheetRow(tradeSheet, cell, &values); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
