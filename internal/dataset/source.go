// Package dataset reads the volcano dataset from disk and holds the table
// currently being served.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/volcano-explorer/internal/domain"
)

// ErrUnsupportedFormat is returned for files that are neither .xlsx nor .csv.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// FileSource reads a dataset file. Spreadsheets are read from the named
// sheet, or the first sheet when none is named.
type FileSource struct {
	path  string
	sheet string
}

// NewFileSource creates a source for path.
func NewFileSource(path, sheet string) *FileSource {
	return &FileSource{path: path, sheet: sheet}
}

// Name returns the file path.
func (s *FileSource) Name() string { return s.path }

// Extract reads the whole file into a raw table.
func (s *FileSource) Extract(ctx context.Context) (domain.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return domain.RawTable{}, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(s.path)); ext {
	case ".xlsx", ".xlsm":
		return ReadSpreadsheet(f, s.sheet)
	case ".csv":
		return ReadCSV(f)
	default:
		return domain.RawTable{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ReadCSV reads a header row followed by data rows. Rows may have fewer or
// more fields than the header.
func ReadCSV(r io.Reader) (domain.RawTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("read csv: %w", err)
	}
	return splitHeader(records), nil
}

// ReadSpreadsheet reads one sheet of an .xlsx workbook using raw cell values,
// so numeric cells come back unformatted ("1486", not "1,486 m").
func ReadSpreadsheet(r io.Reader, sheet string) (domain.RawTable, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		_ = wb.Close()
	}()

	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return domain.RawTable{}, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return splitHeader(rows), nil
}

// splitHeader takes the first non-blank row as the header and drops blank
// rows from the data.
func splitHeader(records [][]string) domain.RawTable {
	var table domain.RawTable
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		if table.Columns == nil {
			table.Columns = rec
			continue
		}
		table.Rows = append(table.Rows, rec)
	}
	return table
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
