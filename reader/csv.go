package reader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vegasq/grpagg/frame"
)

// ReadCSV reads a CSV file with a header row. Cell values are inferred with
// InferValue.
func ReadCSV(path string) (*frame.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeCSV(f)
}

// DecodeCSV reads CSV records from r. The first record is the header.
// Short records are padded with missing values.
func DecodeCSV(r io.Reader) (*frame.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}

	return fromStrings(records[0], records[1:])
}

// InferValue converts a text cell into the narrowest matching Go value:
// int64, float64, bool ("true"/"false"), or the trimmed string. Empty
// cells become nil.
func InferValue(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

// fromStrings builds a table from a header and text rows, inferring cell
// types.
func fromStrings(header []string, rows [][]string) (*frame.Table, error) {
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	records := make([][]interface{}, len(rows))
	for r, row := range rows {
		if len(row) > len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, header has %d", r+1, len(row), len(columns))
		}
		rec := make([]interface{}, len(columns))
		for c, cell := range row {
			rec[c] = InferValue(cell)
		}
		records[r] = rec
	}

	return frame.New(columns, records...)
}
