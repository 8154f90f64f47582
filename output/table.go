package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/grpagg/frame"
)

// TableFormatter outputs rows as an aligned, bordered text table
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new text table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (f *TableFormatter) SetOutput(w io.Writer) {
	f.writer = w
}

// Format writes t as a text table. Header names are printed as they are.
func (f *TableFormatter) Format(t *frame.Table) error {
	header, rows := t.Records()

	tw := tablewriter.NewWriter(f.writer)
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)

	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(row))
		for c, v := range row {
			cells[r][c] = displayValue(v)
		}
	}
	tw.AppendBulk(cells)
	tw.Render()
	return nil
}

// displayValue renders a cell for reading; formula sanitising is not needed
// for terminal output.
func displayValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return formatValue(v)
}
