package frame

import "github.com/pkg/errors"

// JoinType represents the type of join operation
type JoinType int

const (
	JoinInner JoinType = iota // rows with a match on both sides
	JoinLeft                  // every left row, matched or not
	JoinRight                 // every right row, matched or not
	JoinOuter                 // every row from both sides
)

func (j JoinType) String() string {
	switch j {
	case JoinInner:
		return "inner"
	case JoinLeft:
		return "left"
	case JoinRight:
		return "right"
	case JoinOuter:
		return "outer"
	default:
		return "unknown"
	}
}

// MergeOptions configures Merge.
type MergeOptions struct {
	How JoinType

	// On names key columns present on both sides. LeftOn and RightOn take
	// precedence when set.
	On      []string
	LeftOn  []string
	RightOn []string

	// RightIndex matches LeftOn against the right table's index levels
	// instead of right columns.
	RightIndex bool

	// Suffixes disambiguate overlapping column names. Defaults to "_x", "_y".
	Suffixes [2]string
}

// Merge joins two tables on equal key values.
//
// Output columns are the left columns followed by the right columns. A right
// key column named like its left counterpart is emitted once. Other
// overlapping names receive the configured suffixes. Row order follows the
// left table for inner and left joins and the right table for right joins;
// outer joins list left-ordered rows first and unmatched right rows last.
// Missing key values match each other. The result keeps the left index.
func Merge(left, right *Table, opts MergeOptions) (*Table, error) {
	leftOn := opts.LeftOn
	if len(leftOn) == 0 {
		leftOn = opts.On
	}
	if len(leftOn) == 0 {
		return nil, errors.New("merge requires at least one left key")
	}

	leftKeys := make([][]interface{}, len(leftOn))
	for i, key := range leftOn {
		col, err := left.lookup(key)
		if err != nil {
			return nil, errors.Wrap(err, "left table")
		}
		leftKeys[i] = col
	}

	var rightOn []string
	var rightKeys [][]interface{}
	if opts.RightIndex {
		if len(right.index) != len(leftOn) {
			return nil, errors.Errorf("right index has %d levels, want %d", len(right.index), len(leftOn))
		}
		rightKeys = right.idx
	} else {
		rightOn = opts.RightOn
		if len(rightOn) == 0 {
			rightOn = opts.On
		}
		if len(rightOn) != len(leftOn) {
			return nil, errors.Errorf("merge has %d left keys and %d right keys", len(leftOn), len(rightOn))
		}
		rightKeys = make([][]interface{}, len(rightOn))
		for i, key := range rightOn {
			col, err := right.lookup(key)
			if err != nil {
				return nil, errors.Wrap(err, "right table")
			}
			rightKeys[i] = col
		}
	}

	if left.Width() > 0 && right.Width() > 0 && left.ColumnLevels() != right.ColumnLevels() {
		return nil, errors.Errorf("cannot merge tables with %d and %d column levels", left.ColumnLevels(), right.ColumnLevels())
	}

	leftPos, rightPos := joinRows(left.nrows, leftKeys, right.nrows, rightKeys, opts.How)

	// Right key columns sharing the left key's name are emitted once.
	shared := make(map[int]int)
	for i, key := range rightOn {
		if key != leftOn[i] {
			continue
		}
		if c := right.columnIndex(key); c >= 0 && left.columnIndex(key) >= 0 {
			shared[c] = left.columnIndex(key)
		}
	}

	suffixes := opts.Suffixes
	if suffixes[0] == "" && suffixes[1] == "" {
		suffixes = [2]string{"_x", "_y"}
	}

	leftNames := make(map[string]bool, len(left.labels))
	for _, l := range left.labels {
		leftNames[l.String()] = true
	}
	rightNames := make(map[string]bool, len(right.labels))
	for c, l := range right.labels {
		if _, ok := shared[c]; !ok {
			rightNames[l.String()] = true
		}
	}

	out := &Table{
		index: append([]string(nil), left.index...),
		nrows: len(leftPos),
	}
	for i := range left.idx {
		out.idx = append(out.idx, takeValues(left.idx[i], leftPos))
	}

	for c, l := range left.labels {
		label := l.clone()
		if rightNames[l.String()] {
			label[0] += suffixes[0]
		}
		col := takeValues(left.cols[c], leftPos)
		// Right-only rows take their key values from the right side.
		for i, key := range leftOn {
			if left.columnIndex(key) != c {
				continue
			}
			for r, lp := range leftPos {
				if lp < 0 && rightPos[r] >= 0 {
					col[r] = rightKeys[i][rightPos[r]]
				}
			}
		}
		out.labels = append(out.labels, label)
		out.cols = append(out.cols, col)
	}

	for c, l := range right.labels {
		if _, ok := shared[c]; ok {
			continue
		}
		label := l.clone()
		if leftNames[l.String()] {
			label[0] += suffixes[1]
		}
		out.labels = append(out.labels, label)
		out.cols = append(out.cols, takeValues(right.cols[c], rightPos))
	}

	return out, nil
}

// joinRows pairs row positions of both sides using a hash join. Position -1
// marks the absent side of an unmatched row.
func joinRows(nleft int, leftKeys [][]interface{}, nright int, rightKeys [][]interface{}, how JoinType) ([]int, []int) {
	leftPos := make([]int, 0, nleft)
	rightPos := make([]int, 0, nleft)

	if how == JoinRight {
		leftHash := hashRows(nleft, leftKeys)
		for r := 0; r < nright; r++ {
			matches := leftHash[rowKey(rightKeys, r)]
			if len(matches) == 0 {
				leftPos = append(leftPos, -1)
				rightPos = append(rightPos, r)
				continue
			}
			for _, l := range matches {
				leftPos = append(leftPos, l)
				rightPos = append(rightPos, r)
			}
		}
		return leftPos, rightPos
	}

	rightHash := hashRows(nright, rightKeys)
	rightMatched := make([]bool, nright)
	for l := 0; l < nleft; l++ {
		matches := rightHash[rowKey(leftKeys, l)]
		if len(matches) == 0 {
			if how != JoinInner {
				leftPos = append(leftPos, l)
				rightPos = append(rightPos, -1)
			}
			continue
		}
		for _, r := range matches {
			leftPos = append(leftPos, l)
			rightPos = append(rightPos, r)
			rightMatched[r] = true
		}
	}

	if how == JoinOuter {
		for r := 0; r < nright; r++ {
			if !rightMatched[r] {
				leftPos = append(leftPos, -1)
				rightPos = append(rightPos, r)
			}
		}
	}

	return leftPos, rightPos
}

func hashRows(n int, keys [][]interface{}) map[string][]int {
	hash := make(map[string][]int, n)
	for r := 0; r < n; r++ {
		key := rowKey(keys, r)
		hash[key] = append(hash[key], r)
	}
	return hash
}

func rowKey(keys [][]interface{}, r int) string {
	values := make([]interface{}, len(keys))
	for i := range keys {
		values[i] = keys[i][r]
	}
	return tupleKey(values)
}
