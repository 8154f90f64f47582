// Package output writes tables as JSON Lines, JSON arrays, CSV or aligned
// text tables.
//
// Index levels are written as leading columns, so a grouped table prints its
// keys first:
//
//	f, err := output.New("jsonl", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := f.Format(agg); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vegasq/grpagg/frame"
)

// Formatter writes a table to its output.
type Formatter interface {
	// Format writes t in the formatter's specific format
	Format(t *frame.Table) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

var constructors = map[string]func(io.Writer) Formatter{
	"jsonl": func(w io.Writer) Formatter { return NewJSONFormatter(w) },
	"json":  func(w io.Writer) Formatter { return NewJSONArrayFormatter(w) },
	"csv":   func(w io.Writer) Formatter { return NewCSVFormatter(w) },
	"table": func(w io.Writer) Formatter { return NewTableFormatter(w) },
}

// Formats lists the names accepted by New.
func Formats() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the formatter registered under format, writing to w.
func New(format string, w io.Writer) (Formatter, error) {
	ctor, ok := constructors[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s (want one of %s)", format, strings.Join(Formats(), ", "))
	}
	return ctor(w), nil
}
