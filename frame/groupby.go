package frame

import (
	"sort"

	"github.com/pkg/errors"
)

// Group is one partition of a table's rows
type Group struct {
	Values []interface{} // Key values, one per grouping column
	Rows   []int         // Row positions in the source table
}

// Grouped is a table partitioned by key columns
type Grouped struct {
	table  *Table
	keys   []string
	groups []*Group
}

// GroupBy partitions the table by the values of the named columns or index
// levels. Groups are sorted by key. Rows whose key contains a missing value
// belong to no group.
func (t *Table) GroupBy(keys ...string) (*Grouped, error) {
	if len(keys) == 0 {
		return nil, errors.New("group by requires at least one key")
	}

	keyCols := make([][]interface{}, len(keys))
	for i, key := range keys {
		col, err := t.lookup(key)
		if err != nil {
			return nil, err
		}
		keyCols[i] = col
	}

	// Hash-based grouping
	byKey := make(map[string]*Group)
	groups := make([]*Group, 0)

rows:
	for r := 0; r < t.nrows; r++ {
		values := make([]interface{}, len(keys))
		for i := range keys {
			v := keyCols[i][r]
			if IsMissing(v) {
				continue rows
			}
			values[i] = v
		}

		key := tupleKey(values)
		if group, exists := byKey[key]; exists {
			group.Rows = append(group.Rows, r)
			continue
		}
		group := &Group{Values: values, Rows: []int{r}}
		byKey[key] = group
		groups = append(groups, group)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return compareKeys(groups[i].Values, groups[j].Values) < 0
	})

	return &Grouped{
		table:  t,
		keys:   append([]string(nil), keys...),
		groups: groups,
	}, nil
}

// Keys returns the grouping key names.
func (g *Grouped) Keys() []string { return append([]string(nil), g.keys...) }

// NGroups returns the number of groups.
func (g *Grouped) NGroups() int { return len(g.groups) }

// Groups returns the groups in key order.
func (g *Grouped) Groups() []Group {
	out := make([]Group, len(g.groups))
	for i, group := range g.groups {
		out[i] = Group{
			Values: append([]interface{}(nil), group.Values...),
			Rows:   append([]int(nil), group.Rows...),
		}
	}
	return out
}

// Agg computes every aggregation of spec within every group.
//
// The result has one row per group. With asIndex the grouping keys become
// the row index; otherwise they are emitted as leading columns. Aggregated
// columns follow in spec order, labelled by column name for PerColumnFunc
// specs and by (column, function) for PerColumnFuncs specs.
func (g *Grouped) Agg(spec AggSpec, asIndex bool) (*Table, error) {
	if spec == nil {
		return nil, errors.New("aggregation spec is nil")
	}
	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	type job struct {
		label Label
		col   []interface{}
		fn    AggFunc
	}

	levels := spec.Levels()
	aggs := spec.Aggregations()
	jobs := make([]job, 0, len(aggs))
	for _, a := range aggs {
		col, err := g.table.lookup(a.Column)
		if err != nil {
			return nil, err
		}
		fn, ok := LookupAggFunc(a.Func)
		if !ok {
			return nil, errors.Errorf("unknown aggregation function %q", a.Func)
		}
		label := Label{a.Column}
		if levels == 2 {
			label = Label{a.Column, a.Func}
		}
		jobs = append(jobs, job{label: label, col: col, fn: fn})
	}

	n := len(g.groups)
	keyVals := make([][]interface{}, len(g.keys))
	for i := range g.keys {
		vals := make([]interface{}, n)
		for gi, group := range g.groups {
			vals[gi] = group.Values[i]
		}
		keyVals[i] = vals
	}

	out := &Table{nrows: n}
	if asIndex {
		out.index = append([]string(nil), g.keys...)
		out.idx = keyVals
	} else {
		for i, key := range g.keys {
			out.labels = append(out.labels, Label{key}.pad(levels))
			out.cols = append(out.cols, keyVals[i])
		}
	}

	buf := make([]interface{}, 0)
	for _, j := range jobs {
		vals := make([]interface{}, n)
		for gi, group := range g.groups {
			buf = buf[:0]
			for _, r := range group.Rows {
				buf = append(buf, j.col[r])
			}
			v, err := j.fn.Apply(buf)
			if err != nil {
				return nil, errors.Wrapf(err, "column %q", j.label[0])
			}
			vals[gi] = v
		}
		out.labels = append(out.labels, j.label)
		out.cols = append(out.cols, vals)
	}

	return out, nil
}
