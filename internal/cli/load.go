package cli

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cellplot/cellplot/pkg/data"
	"github.com/cellplot/cellplot/pkg/errors"
)

// loadData reads rows from a CSV or JSON file, chosen by extension.
// "-" reads CSV from stdin.
func loadData(path string) (data.DataSource, error) {
	if path == "-" {
		return loadCSV(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to open %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadJSON(f)
	case ".csv":
		return loadCSV(f)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported data format %q (want .csv or .json)", filepath.Ext(path))
	}
}

// loadCSV decodes header-first CSV. Cells that parse as numbers become
// float64; everything else stays a string.
func loadCSV(r io.Reader) (data.DataSource, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to read CSV header")
	}

	var rows data.DataSource
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to read CSV row %d", len(rows)+2)
		}
		row := make(data.Record, len(header))
		for i, field := range header {
			if i >= len(record) {
				break
			}
			cell := record[i]
			if n, err := strconv.ParseFloat(cell, 64); err == nil {
				row[field] = n
			} else {
				row[field] = cell
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// loadJSON decodes an array of flat objects.
func loadJSON(r io.Reader) (data.DataSource, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read JSON data")
	}
	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to decode JSON data (want an array of objects)")
	}
	out := make(data.DataSource, len(rows))
	for i, m := range rows {
		out[i] = data.Record(m)
	}
	return out, nil
}
