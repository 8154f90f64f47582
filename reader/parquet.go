package reader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/grpagg/frame"
	"github.com/vegasq/grpagg/internal/logger"
)

// Reader reads a parquet file into a table.
//
// It holds both the OS file handle and the parquet file handle so that Close
// can release them.
type Reader struct {
	path   string
	file   *os.File
	pqFile *parquet.File
}

// NewReader opens path and validates it as a parquet file.
//
// Example:
//
//	r, err := reader.NewReader("sales.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &Reader{
		path:   path,
		file:   file,
		pqFile: pqFile,
	}, nil
}

// ReadAll loads every row of the file into memory.
//
// Columns follow the order of the top-level schema fields. Nested groups
// arrive as map values and repeated fields as slices.
func (r *Reader) ReadAll() (*frame.Table, error) {
	rows := make([]map[string]interface{}, 0, r.pqFile.NumRows())

	pr := parquet.NewReader(r.pqFile)
	defer func() { _ = pr.Close() }()

	for {
		row := make(map[string]interface{})
		err := pr.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, row)
	}

	logger.Logger.WithField("file", r.path).WithField("rows", len(rows)).Debug("read parquet file")
	return frame.FromMaps(r.Columns(), rows), nil
}

// Columns returns the top-level column names in schema order.
func (r *Reader) Columns() []string {
	fields := r.Schema().Fields()
	columns := make([]string, len(fields))
	for i, field := range fields {
		columns[i] = field.Name()
	}
	return columns
}

// Schema returns the parquet schema of the file.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// Close releases the underlying file. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ReadFile opens, reads and closes a single parquet file.
func ReadFile(path string) (*frame.Table, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}

	t, readErr := r.ReadAll()
	closeErr := r.Close()
	if readErr != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %w", path, readErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	return t, nil
}
