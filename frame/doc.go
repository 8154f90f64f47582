// Package frame provides an in-memory tabular engine: ordered, labelled
// columns with an optional row index, hash-based grouping with pluggable
// aggregation functions, column renaming and flattening, and hash joins.
//
// Tables are values from the caller's point of view. Every operation returns
// a new *Table and leaves its inputs untouched, so a table may be shared
// between goroutines as long as nobody mutates the slices returned by its
// accessors.
//
// # Building tables
//
//	t, err := frame.New([]string{"shop", "amount"},
//	    []interface{}{"A", int64(10)},
//	    []interface{}{"A", int64(20)},
//	    []interface{}{"B", int64(5)},
//	)
//
// Rows decoded as maps (the shape produced by the parquet reader) are
// converted with FromMaps.
//
// # Grouping and aggregation
//
// GroupBy partitions rows by the values of one or more key columns. Groups
// are ordered by key, and rows whose key contains a missing value (nil or
// NaN) do not belong to any group.
//
//	g, err := t.GroupBy("shop")
//	agg, err := g.Agg(frame.PerColumnFuncs{
//	    {Column: "amount", Funcs: []string{"sum", "mean"}},
//	}, true)
//
// A PerColumnFunc spec produces single-level column labels ("amount"); a
// PerColumnFuncs spec produces two-level labels ("amount", "sum") that can be
// collapsed with FlattenColumns.
//
// # Joining
//
// Merge performs inner, left, right and outer equi-joins on key columns or,
// with RightIndex, on the right table's index.
package frame
