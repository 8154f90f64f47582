package reader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vegasq/grpagg/frame"
)

// ReadXLSX reads one sheet of an Excel workbook. The first row is the
// header. An empty sheet name selects the first sheet.
func ReadXLSX(path, sheet string) (*frame.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	return fromStrings(rows[0], rows[1:])
}
