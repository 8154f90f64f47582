package groupagg

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/vegasq/grpagg/frame"
)

// Entry is one column of an untyped aggregation spec. Funcs holds either a
// function name (string) or a list of function names ([]string or
// []interface{} of strings).
type Entry struct {
	Column string
	Funcs  interface{}
}

// ParseSpec decodes untyped entries into a frame.AggSpec.
//
// When every entry names a single function the result is a
// frame.PerColumnFunc. When at least one entry holds a list the result is a
// frame.PerColumnFuncs, with single names promoted to one-element lists.
// Anything nested deeper fails with ErrInvalidSpecification.
func ParseSpec(entries ...Entry) (frame.AggSpec, error) {
	funcs := make([][]string, len(entries))
	nested := false

	for i, e := range entries {
		switch v := e.Funcs.(type) {
		case string:
			funcs[i] = []string{v}
		case []string:
			funcs[i] = append([]string(nil), v...)
			nested = true
		case []interface{}:
			list := make([]string, 0, len(v))
			for _, item := range v {
				name, ok := item.(string)
				if !ok {
					return nil, errors.Wrapf(ErrInvalidSpecification, "column %q: function list holds %T, want string", e.Column, item)
				}
				list = append(list, name)
			}
			funcs[i] = list
			nested = true
		default:
			return nil, errors.Wrapf(ErrInvalidSpecification, "column %q: want a function name or a list of function names, got %T", e.Column, e.Funcs)
		}
	}

	if !nested {
		spec := make(frame.PerColumnFunc, len(entries))
		for i, e := range entries {
			spec[i] = frame.ColumnFunc{Column: e.Column, Func: funcs[i][0]}
		}
		return spec, nil
	}

	spec := make(frame.PerColumnFuncs, len(entries))
	for i, e := range entries {
		spec[i] = frame.ColumnFuncs{Column: e.Column, Funcs: funcs[i]}
	}
	return spec, nil
}

// ParseSpecMap decodes a column -> function(s) map. Go maps are unordered,
// so columns are taken in sorted order.
func ParseSpecMap(m map[string]interface{}) (frame.AggSpec, error) {
	columns := make([]string, 0, len(m))
	for column := range m {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	entries := make([]Entry, len(columns))
	for i, column := range columns {
		entries[i] = Entry{Column: column, Funcs: m[column]}
	}
	return ParseSpec(entries...)
}

// ParseSpecMapSlice decodes an ordered YAML mapping, keeping column order.
func ParseSpecMapSlice(ms yaml.MapSlice) (frame.AggSpec, error) {
	entries := make([]Entry, len(ms))
	for i, item := range ms {
		entries[i] = Entry{Column: fmt.Sprint(item.Key), Funcs: item.Value}
	}
	return ParseSpec(entries...)
}

// ParseSpecYAML decodes a YAML (or JSON) document such as
//
//	amount: [sum, mean]
//	qty: max
func ParseSpecYAML(data []byte) (frame.AggSpec, error) {
	var ms yaml.MapSlice
	if err := yaml.Unmarshal(data, &ms); err != nil {
		return nil, errors.Wrap(err, "failed to decode aggregation spec")
	}
	return ParseSpecMapSlice(ms)
}
