package groupagg

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vegasq/grpagg/frame"
	"github.com/vegasq/grpagg/internal/logger"
)

// ErrInvalidSpecification reports an aggregation spec nested deeper than
// column -> function or column -> list of functions.
var ErrInvalidSpecification = errors.New("invalid aggregation specification")

// Separator joins column and function names in output labels.
const Separator = "_"

type options struct {
	asIndex bool
}

// Option configures RenameGroupedAggregate.
type Option func(*options)

// AsIndex controls whether grouping keys become the row index (the default)
// or stay ordinary leading columns.
func AsIndex(asIndex bool) Option {
	return func(o *options) { o.asIndex = asIndex }
}

// RenameGroupedAggregate groups t by keys, aggregates it with spec and names
// every aggregated column <column>_<function>.
func RenameGroupedAggregate(t *frame.Table, keys []string, spec frame.AggSpec, opts ...Option) (*frame.Table, error) {
	o := options{asIndex: true}
	for _, opt := range opts {
		opt(&o)
	}

	g, err := t.GroupBy(keys...)
	if err != nil {
		return nil, err
	}
	agg, err := g.Agg(spec, o.asIndex)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"keys":    keys,
		"groups":  g.NGroups(),
		"columns": agg.Width(),
	}).Debug("aggregated table")

	if levels := agg.ColumnLevels(); levels > 2 {
		return nil, errors.Wrapf(ErrInvalidSpecification, "aggregated table has %d column levels", levels)
	}

	if s, ok := spec.(frame.PerColumnFunc); ok {
		mapping := make(map[string]string, len(s))
		for _, cf := range s {
			mapping[cf.Column] = cf.Column + Separator + cf.Func
		}
		return agg.RenameColumns(mapping), nil
	}
	return agg.FlattenColumns(Separator), nil
}

// MergeGroupedAggregate aggregates t like RenameGroupedAggregate and joins
// the result back onto t by keys. The output has t's rows in t's order, all
// of t's columns, and the aggregated columns appended.
func MergeGroupedAggregate(t *frame.Table, keys []string, spec frame.AggSpec) (*frame.Table, error) {
	agg, err := RenameGroupedAggregate(t, keys, spec, AsIndex(true))
	if err != nil {
		return nil, err
	}

	merged, err := frame.Merge(t, agg, frame.MergeOptions{
		How:        frame.JoinLeft,
		LeftOn:     keys,
		RightIndex: true,
	})
	if err != nil {
		return nil, err
	}

	if n := ungroupedRows(t, keys); n > 0 {
		logger.WithFields(logrus.Fields{
			"keys": keys,
			"rows": n,
		}).Debug("rows with missing key values received no aggregates")
	}

	return merged, nil
}

// ungroupedRows counts rows whose key contains a missing value.
func ungroupedRows(t *frame.Table, keys []string) int {
	cols := make([][]interface{}, 0, len(keys))
	for _, key := range keys {
		if col, ok := t.Column(key); ok {
			cols = append(cols, col)
		}
	}

	n := 0
	for r := 0; r < t.Len(); r++ {
		for _, col := range cols {
			if frame.IsMissing(col[r]) {
				n++
				break
			}
		}
	}
	return n
}
