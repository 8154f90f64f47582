package main

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/vegasq/grpagg/groupagg"
)

// aggFlags collects repeated -agg values in command line order.
type aggFlags []string

func (a *aggFlags) String() string { return strings.Join(*a, " ") }

func (a *aggFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

// aggEntries turns -agg values into untyped spec entries.
//
//	amount=sum         one function, the column keeps a single-level name
//	amount=sum,mean    a function list
//	amount=[sum]       a one-element function list
//
// The entries are decoded together by groupagg.ParseSpec, so one list makes
// every column a list.
func aggEntries(values []string) ([]groupagg.Entry, error) {
	entries := make([]groupagg.Entry, 0, len(values))
	for _, value := range values {
		column, funcs, ok := strings.Cut(value, "=")
		column = strings.TrimSpace(column)
		funcs = strings.TrimSpace(funcs)
		if !ok || column == "" || funcs == "" {
			return nil, fmt.Errorf("invalid -agg %q: want column=func or column=func1,func2", value)
		}

		list := strings.HasPrefix(funcs, "[") && strings.HasSuffix(funcs, "]")
		if list {
			funcs = funcs[1 : len(funcs)-1]
		}
		names := splitList(funcs)
		if len(names) == 0 {
			return nil, fmt.Errorf("invalid -agg %q: no functions given", value)
		}

		if len(names) == 1 && !list {
			entries = append(entries, groupagg.Entry{Column: column, Funcs: names[0]})
			continue
		}
		entries = append(entries, groupagg.Entry{Column: column, Funcs: names})
	}
	return entries, nil
}

// aggMapSlice renders entries in the shape of a job file agg section.
func aggMapSlice(entries []groupagg.Entry) yaml.MapSlice {
	ms := make(yaml.MapSlice, len(entries))
	for i, e := range entries {
		ms[i] = yaml.MapItem{Key: e.Column, Value: e.Funcs}
	}
	return ms
}

// splitList splits a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
