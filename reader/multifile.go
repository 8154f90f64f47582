package reader

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vegasq/grpagg/frame"
	"github.com/vegasq/grpagg/internal/logger"
)

// FileColumn is added to tables read through a glob pattern and holds the
// path each row came from.
const FileColumn = "_file"

// maxFiles limits how many files a single glob may expand to.
const maxFiles = 1000

// ReadMultipleFiles reads every parquet file matching a glob pattern and
// stacks them into one table.
//
// The pattern supports the wildcards of filepath.Match:
//   - * matches any sequence of non-separator characters
//   - ? matches any single non-separator character
//   - [range] matches any character in range
//
// A pattern without wildcards reads that one file and adds no FileColumn.
// Otherwise files are read with up to concurrency workers (unbounded when
// concurrency < 1), tagged with FileColumn, and concatenated in sorted path
// order. The first failure cancels the remaining reads.
func ReadMultipleFiles(ctx context.Context, pattern string, concurrency int) (*frame.Table, error) {
	if !isGlob(pattern) {
		return ReadFile(pattern)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}
	if len(matches) > maxFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
	}
	sort.Strings(matches)

	tables := make([]*frame.Table, len(matches))
	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, path := range matches {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			files := make([]interface{}, t.Len())
			for r := range files {
				files[r] = path
			}
			if tables[i], err = t.WithColumn(FileColumn, files); err != nil {
				return fmt.Errorf("failed to tag rows of %s: %w", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Logger.WithField("pattern", pattern).WithField("files", len(matches)).Debug("read parquet files")
	return frame.Concat(tables...)
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}
