package frame

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// AggFunc reduces the values of one column within one group to a scalar.
type AggFunc interface {
	// Name returns the canonical lower-case name of the function
	Name() string
	// Apply reduces values. Implementations must not retain the slice.
	Apply(values []interface{}) (interface{}, error)
}

// AggFuncRegistry manages aggregation function lookup and registration
type AggFuncRegistry struct {
	mu    sync.RWMutex
	funcs map[string]AggFunc
}

// NewAggFuncRegistry creates an empty registry
func NewAggFuncRegistry() *AggFuncRegistry {
	return &AggFuncRegistry{funcs: make(map[string]AggFunc)}
}

// Register registers a function, replacing any function of the same name
func (r *AggFuncRegistry) Register(f AggFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[strings.ToLower(f.Name())] = f
}

// Get retrieves a function by name (case-insensitive)
func (r *AggFuncRegistry) Get(name string) (AggFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.funcs[strings.ToLower(name)]
	return f, ok
}

// Names returns the registered function names in sorted order
func (r *AggFuncRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewAggFuncRegistry()

func init() {
	defaultRegistry.Register(CountAgg{})
	defaultRegistry.Register(SizeAgg{})
	defaultRegistry.Register(SumAgg{})
	defaultRegistry.Register(ProdAgg{})
	defaultRegistry.Register(MeanAgg{})
	defaultRegistry.Register(MedianAgg{})
	defaultRegistry.Register(MinAgg{})
	defaultRegistry.Register(MaxAgg{})
	defaultRegistry.Register(FirstAgg{})
	defaultRegistry.Register(LastAgg{})
	defaultRegistry.Register(NUniqueAgg{})
	defaultRegistry.Register(VarAgg{})
	defaultRegistry.Register(StdAgg{})
}

// RegisterAggFunc adds f to the registry consulted by Grouped.Agg.
func RegisterAggFunc(f AggFunc) { defaultRegistry.Register(f) }

// LookupAggFunc finds a registered aggregation function by name.
func LookupAggFunc(name string) (AggFunc, bool) { return defaultRegistry.Get(name) }

// AggFuncNames lists the registered aggregation function names.
func AggFuncNames() []string { return defaultRegistry.Names() }

// CountAgg counts non-missing values
type CountAgg struct{}

func (CountAgg) Name() string { return "count" }
func (CountAgg) Apply(values []interface{}) (interface{}, error) {
	return int64(len(present(values))), nil
}

// SizeAgg counts all values, missing ones included
type SizeAgg struct{}

func (SizeAgg) Name() string { return "size" }
func (SizeAgg) Apply(values []interface{}) (interface{}, error) {
	return int64(len(values)), nil
}

// SumAgg adds non-missing values. Integer input stays int64; an empty
// group sums to zero.
type SumAgg struct{}

func (SumAgg) Name() string { return "sum" }
func (SumAgg) Apply(values []interface{}) (interface{}, error) {
	var isum int64
	var fsum float64
	integral := true
	for _, v := range present(values) {
		i, isInt, f, err := numeric(v, "sum")
		if err != nil {
			return nil, err
		}
		if isInt {
			isum += i
			continue
		}
		integral = false
		fsum += f
	}
	if integral {
		return isum, nil
	}
	return float64(isum) + fsum, nil
}

// ProdAgg multiplies non-missing values. An empty group yields one.
type ProdAgg struct{}

func (ProdAgg) Name() string { return "prod" }
func (ProdAgg) Apply(values []interface{}) (interface{}, error) {
	iprod := int64(1)
	fprod := 1.0
	integral := true
	for _, v := range present(values) {
		i, isInt, f, err := numeric(v, "prod")
		if err != nil {
			return nil, err
		}
		if isInt {
			iprod *= i
			continue
		}
		integral = false
		fprod *= f
	}
	if integral {
		return iprod, nil
	}
	return float64(iprod) * fprod, nil
}

// MeanAgg averages non-missing values
type MeanAgg struct{}

func (MeanAgg) Name() string { return "mean" }
func (MeanAgg) Apply(values []interface{}) (interface{}, error) {
	nums, err := floats(values, "mean")
	if err != nil || len(nums) == 0 {
		return nil, err
	}
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	return sum / float64(len(nums)), nil
}

// MedianAgg returns the middle value, averaging the two middle values of
// even-sized groups
type MedianAgg struct{}

func (MedianAgg) Name() string { return "median" }
func (MedianAgg) Apply(values []interface{}) (interface{}, error) {
	nums, err := floats(values, "median")
	if err != nil || len(nums) == 0 {
		return nil, err
	}
	sort.Float64s(nums)
	mid := len(nums) / 2
	if len(nums)%2 == 1 {
		return nums[mid], nil
	}
	return (nums[mid-1] + nums[mid]) / 2, nil
}

// MinAgg returns the smallest non-missing value
type MinAgg struct{}

func (MinAgg) Name() string { return "min" }
func (MinAgg) Apply(values []interface{}) (interface{}, error) {
	return extreme(values, "min", -1)
}

// MaxAgg returns the largest non-missing value
type MaxAgg struct{}

func (MaxAgg) Name() string { return "max" }
func (MaxAgg) Apply(values []interface{}) (interface{}, error) {
	return extreme(values, "max", 1)
}

// FirstAgg returns the first non-missing value
type FirstAgg struct{}

func (FirstAgg) Name() string { return "first" }
func (FirstAgg) Apply(values []interface{}) (interface{}, error) {
	vals := present(values)
	if len(vals) == 0 {
		return nil, nil
	}
	return vals[0], nil
}

// LastAgg returns the last non-missing value
type LastAgg struct{}

func (LastAgg) Name() string { return "last" }
func (LastAgg) Apply(values []interface{}) (interface{}, error) {
	vals := present(values)
	if len(vals) == 0 {
		return nil, nil
	}
	return vals[len(vals)-1], nil
}

// NUniqueAgg counts distinct non-missing values
type NUniqueAgg struct{}

func (NUniqueAgg) Name() string { return "nunique" }
func (NUniqueAgg) Apply(values []interface{}) (interface{}, error) {
	seen := make(map[string]bool)
	for _, v := range present(values) {
		seen[valueKey(v)] = true
	}
	return int64(len(seen)), nil
}

// VarAgg computes the sample variance (one delta degree of freedom)
type VarAgg struct{}

func (VarAgg) Name() string { return "var" }
func (VarAgg) Apply(values []interface{}) (interface{}, error) {
	nums, err := floats(values, "var")
	if err != nil || len(nums) < 2 {
		return nil, err
	}
	return variance(nums), nil
}

// StdAgg computes the sample standard deviation
type StdAgg struct{}

func (StdAgg) Name() string { return "std" }
func (StdAgg) Apply(values []interface{}) (interface{}, error) {
	nums, err := floats(values, "std")
	if err != nil || len(nums) < 2 {
		return nil, err
	}
	return math.Sqrt(variance(nums)), nil
}

func variance(nums []float64) float64 {
	mean := 0.0
	for _, n := range nums {
		mean += n
	}
	mean /= float64(len(nums))

	ss := 0.0
	for _, n := range nums {
		ss += (n - mean) * (n - mean)
	}
	return ss / float64(len(nums)-1)
}

// present filters out missing values
func present(values []interface{}) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		if !IsMissing(v) {
			out = append(out, v)
		}
	}
	return out
}

// numeric classifies v as an integer or a float. Booleans count as 0 and 1.
func numeric(v interface{}, fn string) (int64, bool, float64, error) {
	if b, ok := v.(bool); ok {
		if b {
			return 1, true, 0, nil
		}
		return 0, true, 0, nil
	}
	if i, ok := toInt64(v); ok {
		return i, true, 0, nil
	}
	if f, ok := toFloat64(v); ok {
		return 0, false, f, nil
	}
	return 0, false, 0, errors.Errorf("%s: cannot aggregate %T", fn, v)
}

// floats converts the non-missing values to float64
func floats(values []interface{}, fn string) ([]float64, error) {
	vals := present(values)
	nums := make([]float64, 0, len(vals))
	for _, v := range vals {
		i, isInt, f, err := numeric(v, fn)
		if err != nil {
			return nil, err
		}
		if isInt {
			f = float64(i)
		}
		nums = append(nums, f)
	}
	return nums, nil
}

// extreme returns the smallest (dir -1) or largest (dir 1) non-missing value
func extreme(values []interface{}, fn string, dir int) (interface{}, error) {
	var best interface{}
	for _, v := range present(values) {
		if best == nil {
			best = v
			continue
		}
		c, err := compareValues(v, best)
		if err != nil {
			return nil, errors.Wrap(err, fn)
		}
		if c == dir {
			best = v
		}
	}
	return best, nil
}
