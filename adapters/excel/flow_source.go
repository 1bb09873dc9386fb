package excel

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"statfolio/domain/trade"
	"statfolio/internal/errors"
)

// FlowMapping names the workbook columns carrying each flow field.
type FlowMapping struct {
	Period  string
	Partner string
	Exports string
	Imports string
}

// DefaultFlowMapping matches the statistical office's export layout.
func DefaultFlowMapping() FlowMapping {
	return FlowMapping{
		Period:  "period",
		Partner: "partner",
		Exports: "exports",
		Imports: "imports",
	}
}

// FlowSource reads trade flows from a workbook or CSV on each call.
// Implements ports.FlowSource.
type FlowSource struct {
	reader  *DataReader
	mapping FlowMapping
}

// NewFlowSource builds a file-backed flow source.
func NewFlowSource(filePath string, mapping FlowMapping) *FlowSource {
	return &FlowSource{reader: NewDataReader(filePath), mapping: mapping}
}

// Flows reads and parses the file. Rows with malformed periods or
// non-numeric values fail the whole read; partial data would silently
// skew every downstream series.
func (s *FlowSource) Flows(ctx context.Context) ([]trade.Flow, error) {
	table, err := s.reader.ReadTable()
	if err != nil {
		return nil, errors.Wrap(err, "reading trade workbook")
	}

	// Headers match case-insensitively, but rows are keyed by the header
	// text as written, so resolve each mapping name to the actual header
	// before indexing.
	periodCol, err := resolveHeader(table.Headers, s.mapping.Period)
	if err != nil {
		return nil, err
	}
	partnerCol, err := resolveHeader(table.Headers, s.mapping.Partner)
	if err != nil {
		return nil, err
	}
	exportsCol, err := resolveHeader(table.Headers, s.mapping.Exports)
	if err != nil {
		return nil, err
	}
	importsCol, err := resolveHeader(table.Headers, s.mapping.Imports)
	if err != nil {
		return nil, err
	}

	flows := make([]trade.Flow, 0, len(table.Rows))
	for i, row := range table.Rows {
		period, err := trade.ParsePeriod(row[periodCol])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i+2)
		}
		exports, err := parseAmount(row[exportsCol])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d column %q", i+2, exportsCol)
		}
		imports, err := parseAmount(row[importsCol])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d column %q", i+2, importsCol)
		}

		flows = append(flows, trade.Flow{
			Period:  period,
			Partner: row[partnerCol],
			Exports: exports,
			Imports: imports,
		})
	}
	return flows, nil
}

func resolveHeader(headers []string, name string) (string, error) {
	for _, h := range headers {
		if strings.EqualFold(h, name) {
			return h, nil
		}
	}
	return "", errors.SpreadsheetError(fmt.Sprintf("missing column %q", name))
}

// parseAmount tolerates thousands separators and a decimal comma, both
// common in the source spreadsheets.
func parseAmount(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(raw, " ", "")
	if strings.Contains(cleaned, ",") && !strings.Contains(cleaned, ".") {
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("not a numeric amount: %q", raw)
	}
	return value, nil
}
