package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vegasq/grpagg/frame"
)

// CSVFormatter outputs rows as CSV with a header row
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes t as CSV. A table without rows produces no output.
func (c *CSVFormatter) Format(t *frame.Table) error {
	csvWriter := csv.NewWriter(c.writer)

	header, rows := t.Records()
	if len(rows) > 0 {
		if err := csvWriter.Write(header); err != nil {
			return err
		}
		record := make([]string, len(header))
		for _, row := range rows {
			for i, v := range row {
				record[i] = formatValue(v)
			}
			if err := csvWriter.Write(record); err != nil {
				return err
			}
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// formatValue renders a cell as text. Missing values are empty.
func formatValue(v interface{}) string {
	if frame.IsMissing(v) {
		return ""
	}

	switch val := v.(type) {
	case string:
		return sanitize(val)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case []byte:
		return sanitize(string(val))
	default:
		return fmt.Sprintf("%v", val)
	}
}

// sanitize guards against CSV injection: values starting with a character
// that spreadsheets treat as a formula are quoted with a leading apostrophe.
func sanitize(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		return "'" + strings.ReplaceAll(s, "'", "''")
	}
	return s
}
