// Package excel reads the quarterly trade workbook (or its CSV export)
// into structured rows.
package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RawRow maps header name to trimmed cell text.
type RawRow map[string]string

// TableData is one sheet as headers plus rows.
type TableData struct {
	Headers []string
	Rows    []RawRow
}

// DataReader handles reading Excel and CSV files.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
}

// NewDataReader creates a reader for the given path; .csv files bypass
// excelize. The sheet defaults to the workbook's first sheet.
func NewDataReader(filePath string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// WithSheet selects a specific worksheet by name.
func (r *DataReader) WithSheet(name string) *DataReader {
	r.sheet = name
	return r
}

// ReadTable reads the file into structured form.
func (r *DataReader) ReadTable() (*TableData, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	default:
		return r.readExcel()
	}
}

func (r *DataReader) readExcel() (*TableData, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q must have a header row and at least one data row", sheet)
	}
	return processRows(rows)
}

func (r *DataReader) readCSV() (*TableData, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV file must have a header row and at least one data row")
	}
	return processRows(rows)
}

func processRows(rows [][]string) (*TableData, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	var dataRows []RawRow
	for i := 1; i < len(rows); i++ {
		row := make(RawRow)
		for j, cell := range rows[i] {
			if j < len(headers) {
				row[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, row)
	}

	return &TableData{Headers: headers, Rows: dataRows}, nil
}
