package frame

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// IsMissing reports whether v is a missing value: nil or a floating-point NaN.
func IsMissing(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(val)
	case float32:
		return math.IsNaN(float64(val))
	default:
		return false
	}
}

// toFloat64 converts a numeric value to float64
func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}

// toInt64 converts an integer value to int64. Unsigned values that overflow
// int64 are rejected.
func toInt64(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int8:
		return int64(val), true
	case int16:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case uint:
		if uint64(val) > math.MaxInt64 {
			return 0, false
		}
		return int64(val), true
	case uint8:
		return int64(val), true
	case uint16:
		return int64(val), true
	case uint32:
		return int64(val), true
	case uint64:
		if val > math.MaxInt64 {
			return 0, false
		}
		return int64(val), true
	default:
		return 0, false
	}
}

// compareValues orders two values: missing values first, then numbers,
// strings, booleans and times compared within their own kind.
func compareValues(a, b interface{}) (int, error) {
	aMissing, bMissing := IsMissing(a), IsMissing(b)
	switch {
	case aMissing && bMissing:
		return 0, nil
	case aMissing:
		return -1, nil
	case bMissing:
		return 1, nil
	}

	if ai, ok := toInt64(a); ok {
		if bi, ok := toInt64(b); ok {
			return cmp.Compare(ai, bi), nil
		}
	}
	if af, ok := toFloat64(a); ok {
		if bf, ok := toFloat64(b); ok {
			return cmp.Compare(af, bf), nil
		}
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv), nil
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0, nil
			case !av:
				return -1, nil // false < true
			default:
				return 1, nil
			}
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv), nil
		}
	}

	return 0, errors.Errorf("cannot compare %T with %T", a, b)
}

// compareKeys orders key tuples level by level. Values of incomparable
// kinds are ordered by type name so that sorting stays total.
func compareKeys(a, b []interface{}) int {
	for i := range a {
		c, err := compareValues(a[i], b[i])
		if err != nil {
			c = strings.Compare(fmt.Sprintf("%T", a[i]), fmt.Sprintf("%T", b[i]))
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// valueKey renders a value for hashing. Numbers that compare equal hash
// equally regardless of their Go type, so int64(1) and 1.0 share a key.
func valueKey(v interface{}) string {
	if IsMissing(v) {
		return "\x00null"
	}

	switch val := v.(type) {
	case string:
		return "s:" + val
	case bool:
		return "b:" + strconv.FormatBool(val)
	case time.Time:
		return "t:" + val.UTC().Format(time.RFC3339Nano)
	case uint64:
		if val > math.MaxInt64 {
			return "n:" + strconv.FormatUint(val, 10)
		}
	}

	if i, ok := toInt64(v); ok {
		return "n:" + strconv.FormatInt(i, 10)
	}
	if f, ok := toFloat64(v); ok {
		if f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
			return "n:" + strconv.FormatInt(int64(f), 10)
		}
		return "n:" + strconv.FormatFloat(f, 'g', -1, 64)
	}

	return fmt.Sprintf("%T:%#v", v, v)
}

// tupleKey computes a hash key for a tuple of values. Each part is length
// prefixed so that no string value can forge a part boundary.
func tupleKey(values []interface{}) string {
	var b strings.Builder
	for _, v := range values {
		k := valueKey(v)
		b.WriteString(strconv.Itoa(len(k)))
		b.WriteByte(':')
		b.WriteString(k)
	}
	return b.String()
}
