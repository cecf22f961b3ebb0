// Package history provides HistorySource implementations: flat files
// (CSV/XLSX), an Elasticsearch index and a PostgreSQL results table.
package history

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"investigator/domain/core"
	"investigator/internal/errors"
	"investigator/ports"
)

// FileSource loads historical samples from a CSV or XLSX file laid out as
// one column per variable with a header row. Blank and non-numeric cells are
// skipped so partially-populated runs do not poison the sample.
type FileSource struct {
	path    string
	columns map[string][]float64
}

// NewFileSource reads the whole file eagerly; History is then a map lookup.
func NewFileSource(path string) (*FileSource, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSVRows(path)
	case ".xlsx":
		rows, err = readExcelRows(path)
	default:
		return nil, errors.ConfigInvalid("unsupported history file extension: " + filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, errors.ConfigInvalid("history file needs a header row and at least one data row: " + path)
	}

	columns := make(map[string][]float64)
	header := rows[0]
	for _, row := range rows[1:] {
		for i, name := range header {
			if i >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue
			}
			columns[name] = append(columns[name], value)
		}
	}

	return &FileSource{path: path, columns: columns}, nil
}

// History returns the column named variable, in file (chronological) order
func (s *FileSource) History(_ context.Context, variable string) ([]float64, error) {
	values, ok := s.columns[variable]
	if !ok || len(values) == 0 {
		return nil, core.NewVariableNotFoundError(variable, s.path)
	}
	return values, nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open history file %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse CSV file %s", path)
	}
	return rows, nil
}

func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open Excel file %s", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ConfigInvalid("Excel file has no sheets: " + path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheets[0])
	}
	return rows, nil
}

var _ ports.HistorySource = (*FileSource)(nil)
