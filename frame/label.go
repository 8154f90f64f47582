package frame

import "strings"

// Label identifies a column. Most tables carry single-level labels; grouping
// with per-column function lists yields two-level (column, function) labels.
type Label []string

// String renders a single-level label as its bare name and a multi-level
// label as a parenthesised tuple, e.g. "(amount, sum)".
func (l Label) String() string {
	if len(l) == 1 {
		return l[0]
	}
	return "(" + strings.Join(l, ", ") + ")"
}

// Equal reports whether both labels have identical levels.
func (l Label) Equal(other Label) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// Flatten joins the non-empty levels of the label with sep.
func (l Label) Flatten(sep string) string {
	parts := make([]string, 0, len(l))
	for _, part := range l {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, sep)
}

func (l Label) clone() Label {
	return append(Label(nil), l...)
}

// pad extends the label with empty levels up to n levels.
func (l Label) pad(n int) Label {
	out := l.clone()
	for len(out) < n {
		out = append(out, "")
	}
	return out
}
