package frame

import (
	"sort"

	"github.com/pkg/errors"
)

// Table is an ordered collection of equal-length, labelled columns with an
// optional multi-level row index.
type Table struct {
	labels []Label
	cols   [][]interface{}
	index  []string        // index level names
	idx    [][]interface{} // index values, one slice per level
	nrows  int
}

// New builds a table from column names and row-wise records.
//
// Every record must have exactly one value per column.
func New(columns []string, records ...[]interface{}) (*Table, error) {
	t := &Table{
		labels: make([]Label, len(columns)),
		cols:   make([][]interface{}, len(columns)),
		nrows:  len(records),
	}
	for i, name := range columns {
		t.labels[i] = Label{name}
		t.cols[i] = make([]interface{}, len(records))
	}

	for r, rec := range records {
		if len(rec) != len(columns) {
			return nil, errors.Errorf("record %d has %d values, want %d", r, len(rec), len(columns))
		}
		for c, v := range rec {
			t.cols[c][r] = v
		}
	}

	return t, nil
}

// MustNew is like New but panics if the records are malformed.
func MustNew(columns []string, records ...[]interface{}) *Table {
	t, err := New(columns, records...)
	if err != nil {
		panic(err)
	}
	return t
}

// FromMaps builds a table from rows keyed by column name.
//
// When columns is nil the union of all row keys is used, sorted by name.
// Keys absent from a row become missing values.
func FromMaps(columns []string, rows []map[string]interface{}) *Table {
	if columns == nil {
		columns = ColumnNames(rows)
	}

	t := &Table{
		labels: make([]Label, len(columns)),
		cols:   make([][]interface{}, len(columns)),
		nrows:  len(rows),
	}
	for i, name := range columns {
		t.labels[i] = Label{name}
		col := make([]interface{}, len(rows))
		for r, row := range rows {
			col[r] = row[name]
		}
		t.cols[i] = col
	}
	return t
}

// ColumnNames returns the sorted union of keys across rows.
func ColumnNames(rows []map[string]interface{}) []string {
	seen := make(map[string]bool)
	columns := make([]string, 0)
	for _, row := range rows {
		for col := range row {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}
	sort.Strings(columns)
	return columns
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.nrows }

// Width returns the number of columns, not counting index levels.
func (t *Table) Width() int { return len(t.labels) }

// Labels returns a copy of the column labels.
func (t *Table) Labels() []Label {
	out := make([]Label, len(t.labels))
	for i, l := range t.labels {
		out[i] = l.clone()
	}
	return out
}

// Columns returns the column labels rendered as strings.
func (t *Table) Columns() []string {
	out := make([]string, len(t.labels))
	for i, l := range t.labels {
		out[i] = l.String()
	}
	return out
}

// ColumnLevels returns the number of levels of the column labels.
// A table without columns reports one level.
func (t *Table) ColumnLevels() int {
	levels := 1
	for _, l := range t.labels {
		if len(l) > levels {
			levels = len(l)
		}
	}
	return levels
}

// Column returns a copy of the first column whose label renders as name.
func (t *Table) Column(name string) ([]interface{}, bool) {
	i := t.columnIndex(name)
	if i < 0 {
		return nil, false
	}
	return t.ColumnAt(i), true
}

// ColumnAt returns a copy of the i-th column.
func (t *Table) ColumnAt(i int) []interface{} {
	return append([]interface{}(nil), t.cols[i]...)
}

// Value returns the value at the given row and column position.
func (t *Table) Value(row, col int) interface{} {
	return t.cols[col][row]
}

// HasIndex reports whether rows are addressed by index levels.
func (t *Table) HasIndex() bool { return len(t.index) > 0 }

// IndexNames returns a copy of the index level names.
func (t *Table) IndexNames() []string {
	return append([]string(nil), t.index...)
}

// IndexValues returns a copy of the values of one index level.
func (t *Table) IndexValues(level int) []interface{} {
	return append([]interface{}(nil), t.idx[level]...)
}

// Records returns the table as a header and row-wise values. Index levels
// are emitted as leading columns.
func (t *Table) Records() ([]string, [][]interface{}) {
	flat := t.ResetIndex()
	header := flat.Columns()
	rows := make([][]interface{}, flat.nrows)
	for r := range rows {
		row := make([]interface{}, len(flat.cols))
		for c := range flat.cols {
			row[c] = flat.cols[c][r]
		}
		rows[r] = row
	}
	return header, rows
}

// Maps returns one map per row keyed by rendered label, index levels included.
// When labels repeat, the rightmost column wins.
func (t *Table) Maps() []map[string]interface{} {
	header, records := t.Records()
	rows := make([]map[string]interface{}, len(records))
	for r, rec := range records {
		row := make(map[string]interface{}, len(header))
		for c, name := range header {
			row[name] = rec[c]
		}
		rows[r] = row
	}
	return rows
}

// SetIndex moves the named columns into the row index, replacing any
// existing index.
func (t *Table) SetIndex(keys ...string) (*Table, error) {
	if len(keys) == 0 {
		return nil, errors.New("set index requires at least one column")
	}

	drop := make(map[int]bool, len(keys))
	idx := make([][]interface{}, len(keys))
	for i, key := range keys {
		c := t.columnIndex(key)
		if c < 0 {
			return nil, errors.Errorf("column %q not found", key)
		}
		drop[c] = true
		idx[i] = t.ColumnAt(c)
	}

	out := &Table{
		index: append([]string(nil), keys...),
		idx:   idx,
		nrows: t.nrows,
	}
	for c, l := range t.labels {
		if drop[c] {
			continue
		}
		out.labels = append(out.labels, l.clone())
		out.cols = append(out.cols, t.ColumnAt(c))
	}
	return out, nil
}

// ResetIndex turns index levels back into leading columns. Labels of index
// columns are padded with empty levels to match multi-level tables.
func (t *Table) ResetIndex() *Table {
	out := &Table{nrows: t.nrows}
	levels := t.ColumnLevels()
	for i, name := range t.index {
		out.labels = append(out.labels, Label{name}.pad(levels))
		out.cols = append(out.cols, t.IndexValues(i))
	}
	for c, l := range t.labels {
		out.labels = append(out.labels, l.clone())
		out.cols = append(out.cols, t.ColumnAt(c))
	}
	return out
}

// WithColumn returns a table with the named column set to values, replacing
// an existing column of that name or appending a new one.
func (t *Table) WithColumn(name string, values []interface{}) (*Table, error) {
	if len(values) != t.nrows {
		return nil, errors.Errorf("column %q has %d values, want %d", name, len(values), t.nrows)
	}

	out := t.take(identity(t.nrows))
	col := append([]interface{}(nil), values...)
	if c := out.columnIndex(name); c >= 0 {
		out.cols[c] = col
		return out, nil
	}
	out.labels = append(out.labels, Label{name}.pad(out.ColumnLevels()))
	out.cols = append(out.cols, col)
	return out, nil
}

// Head returns the first n rows. Negative n yields an empty table.
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > t.nrows {
		n = t.nrows
	}
	return t.take(identity(n))
}

// RenameColumns replaces label levels found in mapping. Levels absent from
// the mapping are kept; index names are not affected.
func (t *Table) RenameColumns(mapping map[string]string) *Table {
	out := t.take(identity(t.nrows))
	for c, l := range out.labels {
		for i, part := range l {
			if renamed, ok := mapping[part]; ok {
				out.labels[c][i] = renamed
			}
		}
	}
	return out
}

// FlattenColumns collapses multi-level labels into single-level labels by
// joining their non-empty levels with sep.
func (t *Table) FlattenColumns(sep string) *Table {
	out := t.take(identity(t.nrows))
	for c, l := range out.labels {
		out.labels[c] = Label{l.Flatten(sep)}
	}
	return out
}

// Concat stacks tables vertically. Columns are aligned by rendered label in
// first-seen order, and values missing from a table are filled with nil.
// All tables must share the same index level names.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return &Table{}, nil
	}

	first := tables[0]
	out := &Table{index: first.IndexNames()}
	out.idx = make([][]interface{}, len(out.index))

	positions := make(map[string]int)
	for _, t := range tables {
		if !sameNames(t.index, first.index) {
			return nil, errors.Errorf("cannot concat tables with index %v and %v", first.index, t.index)
		}
		for _, l := range t.labels {
			name := l.String()
			if _, ok := positions[name]; ok {
				continue
			}
			positions[name] = len(out.labels)
			out.labels = append(out.labels, l.clone())
		}
	}

	out.cols = make([][]interface{}, len(out.labels))
	for _, t := range tables {
		present := make([]bool, len(out.labels))
		for c, l := range t.labels {
			pos := positions[l.String()]
			if present[pos] {
				continue
			}
			present[pos] = true
			out.cols[pos] = append(out.cols[pos], t.cols[c]...)
		}
		for pos := range out.labels {
			if !present[pos] {
				out.cols[pos] = append(out.cols[pos], make([]interface{}, t.nrows)...)
			}
		}
		for i := range out.index {
			out.idx[i] = append(out.idx[i], t.idx[i]...)
		}
		out.nrows += t.nrows
	}

	return out, nil
}

// lookup resolves a key name against the columns first and the index
// levels second.
func (t *Table) lookup(name string) ([]interface{}, error) {
	if c := t.columnIndex(name); c >= 0 {
		return t.cols[c], nil
	}
	for i, level := range t.index {
		if level == name {
			return t.idx[i], nil
		}
	}
	return nil, errors.Errorf("column %q not found", name)
}

func (t *Table) columnIndex(name string) int {
	for c, l := range t.labels {
		if l.String() == name {
			return c
		}
	}
	return -1
}

// take builds a new table from the given row positions. Position -1 yields
// a row of missing values.
func (t *Table) take(rows []int) *Table {
	out := &Table{
		labels: make([]Label, len(t.labels)),
		cols:   make([][]interface{}, len(t.cols)),
		index:  append([]string(nil), t.index...),
		idx:    make([][]interface{}, len(t.idx)),
		nrows:  len(rows),
	}
	for c, l := range t.labels {
		out.labels[c] = l.clone()
		out.cols[c] = takeValues(t.cols[c], rows)
	}
	for i := range t.idx {
		out.idx[i] = takeValues(t.idx[i], rows)
	}
	return out
}

func takeValues(values []interface{}, rows []int) []interface{} {
	out := make([]interface{}, len(rows))
	for i, r := range rows {
		if r >= 0 {
			out[i] = values[r]
		}
	}
	return out
}

func identity(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
