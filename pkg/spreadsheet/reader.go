// Package spreadsheet loads the first header row and the data rows of a
// worksheet into an export.Dataset.
package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/curriculum-api/pkg/export"
)

// ErrUnsupportedFormat is returned for extensions other than .xlsx and .csv.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// Read loads path according to its extension. sheet selects an xlsx worksheet
// and defaults to the first one.
func Read(path, sheet string) (export.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return export.Dataset{}, fmt.Errorf("open workbook %s: %w", path, err)
		}
		defer f.Close() //nolint:errcheck
		return FromWorkbook(f, sheet)
	case ".csv":
		file, err := os.Open(path)
		if err != nil {
			return export.Dataset{}, fmt.Errorf("open csv %s: %w", path, err)
		}
		defer file.Close()
		return FromCSV(file)
	default:
		return export.Dataset{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// FromWorkbook reads one worksheet of an opened workbook.
func FromWorkbook(f *excelize.File, sheet string) (export.Dataset, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return export.Dataset{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return fromRecords(rows), nil
}

// FromCSV reads comma separated records with a header line.
func FromCSV(r io.Reader) (export.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return export.Dataset{}, fmt.Errorf("read csv: %w", err)
	}
	return fromRecords(records), nil
}

// fromRecords keys every data row by the trimmed header. Fully blank rows are
// dropped; short rows leave trailing columns empty.
func fromRecords(records [][]string) export.Dataset {
	if len(records) == 0 {
		return export.Dataset{}
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	data := export.Dataset{Headers: headers, Rows: make([]map[string]string, 0, len(records)-1)}
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" || i >= len(record) {
				continue
			}
			row[h] = record[i]
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
