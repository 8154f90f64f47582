package reader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vegasq/grpagg/frame"
)

// LoadOptions tunes Load.
type LoadOptions struct {
	// Sheet selects the worksheet of an .xlsx file; empty means the first.
	Sheet string
	// Concurrency bounds parallel reads of a parquet glob.
	Concurrency int
}

// Load reads path into a table, picking the reader from the extension:
// .csv, .xlsx, and parquet for anything else (including glob patterns).
func Load(ctx context.Context, path string, opts LoadOptions) (*frame.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(path)
	case ".xlsx":
		return ReadXLSX(path, opts.Sheet)
	case ".xls":
		return nil, fmt.Errorf("legacy .xls workbooks are not supported: %s", path)
	default:
		return ReadMultipleFiles(ctx, path, opts.Concurrency)
	}
}
