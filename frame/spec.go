package frame

import "github.com/pkg/errors"

// AggSpec describes which aggregation functions run on which columns.
//
// It has exactly two implementations, PerColumnFunc and PerColumnFuncs. The
// choice decides whether aggregated tables carry single-level or two-level
// column labels.
type AggSpec interface {
	// Aggregations lists (column, function) pairs in output order
	Aggregations() []Aggregation
	// Levels is the number of label levels the aggregated columns carry
	Levels() int

	isAggSpec()
}

// Aggregation is one function applied to one column.
type Aggregation struct {
	Column string
	Func   string
}

// ColumnFunc maps a column to a single aggregation function.
type ColumnFunc struct {
	Column string
	Func   string
}

// PerColumnFunc applies one function per column. Aggregated columns keep the
// source column name as a single-level label.
type PerColumnFunc []ColumnFunc

func (s PerColumnFunc) Aggregations() []Aggregation {
	out := make([]Aggregation, len(s))
	for i, cf := range s {
		out[i] = Aggregation{Column: cf.Column, Func: cf.Func}
	}
	return out
}

func (PerColumnFunc) Levels() int { return 1 }
func (PerColumnFunc) isAggSpec()  {}

// ColumnFuncs maps a column to a list of aggregation functions.
type ColumnFuncs struct {
	Column string
	Funcs  []string
}

// PerColumnFuncs applies a list of functions per column. Aggregated columns
// carry two-level (column, function) labels.
type PerColumnFuncs []ColumnFuncs

func (s PerColumnFuncs) Aggregations() []Aggregation {
	var out []Aggregation
	for _, cf := range s {
		for _, fn := range cf.Funcs {
			out = append(out, Aggregation{Column: cf.Column, Func: fn})
		}
	}
	return out
}

func (PerColumnFuncs) Levels() int { return 2 }
func (PerColumnFuncs) isAggSpec()  {}

// validateSpec rejects specs that name a column twice or give a column no
// functions.
func validateSpec(spec AggSpec) error {
	seen := make(map[string]bool)
	check := func(column string) error {
		if seen[column] {
			return errors.Errorf("column %q appears more than once in aggregation spec", column)
		}
		seen[column] = true
		return nil
	}

	switch s := spec.(type) {
	case PerColumnFunc:
		for _, cf := range s {
			if err := check(cf.Column); err != nil {
				return err
			}
		}
	case PerColumnFuncs:
		for _, cf := range s {
			if err := check(cf.Column); err != nil {
				return err
			}
			if len(cf.Funcs) == 0 {
				return errors.Errorf("no aggregation functions given for column %q", cf.Column)
			}
		}
	}
	return nil
}
