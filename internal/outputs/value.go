// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outputs

import (
	"math"
	"strconv"

	"github.com/pdiddy/sixs-engine/pkg/types"
)

// Value is a typed output variable: either a float or an int.
type Value struct {
	kind types.ValueKind
	f    float64
	i    int64
}

// FloatValue wraps f as a float Value.
func FloatValue(f float64) Value { return Value{kind: types.KindFloat, f: f} }

// IntValue wraps i as an int Value.
func IntValue(i int64) Value { return Value{kind: types.KindInt, i: i} }

// Kind reports whether v holds a float or an int.
func (v Value) Kind() types.ValueKind { return v.kind }

// Float returns v as a float64. Int values convert exactly up to 2^53.
func (v Value) Float() float64 {
	if v.kind == types.KindInt {
		return float64(v.i)
	}
	return v.f
}

// Int returns v as an int64, truncating float values toward zero. Values
// beyond the int64 range, infinities included, clamp to its bounds; NaN
// gives 0.
func (v Value) Int() int64 {
	if v.kind == types.KindInt {
		return v.i
	}
	switch {
	case math.IsNaN(v.f):
		return 0
	case v.f >= math.MaxInt64:
		return math.MaxInt64
	case v.f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(v.f)
}

func (v Value) String() string {
	if v.kind == types.KindInt {
		return strconv.FormatInt(v.i, 10)
	}
	return strconv.FormatFloat(v.f, 'g', -1, 64)
}
