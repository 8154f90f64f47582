// Package groupagg aggregates tables by key and names the resulting columns
// predictably as <column>_<function>.
//
// RenameGroupedAggregate groups a table, applies an aggregation spec and
// renames the output columns. MergeGroupedAggregate additionally left-joins
// the aggregates back onto every source row:
//
//	spec := frame.PerColumnFuncs{{Column: "amount", Funcs: []string{"sum", "mean"}}}
//
//	agg, err := groupagg.RenameGroupedAggregate(sales, []string{"shop"}, spec)
//	// index shop=[A B], columns [amount_sum amount_mean]
//
//	enriched, err := groupagg.MergeGroupedAggregate(sales, []string{"shop"}, spec)
//	// every sales row plus amount_sum and amount_mean of its shop
//
// All grouping, reduction and joining is done by package frame; errors it
// reports (unknown columns, unknown functions, type mismatches) are returned
// unchanged.
//
// Specs that arrive as untyped data, such as YAML job files or command line
// flags, are decoded with ParseSpec, ParseSpecMap or ParseSpecYAML. A value
// that is neither a function name nor a list of function names is rejected
// with ErrInvalidSpecification.
//
// Rows whose key contains a missing value belong to no group. The merged
// table keeps those rows and leaves their aggregate columns missing.
package groupagg
