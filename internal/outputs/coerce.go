// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outputs

import (
	"math"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/pdiddy/sixs-engine/pkg/types"
)

// Coercion converts a report token into a typed Value.
type Coercion struct {
	Kind types.ValueKind
	Fn   func(token string) (Value, error)
}

var (
	// Float parses a token as a decimal floating-point number.
	Float = Coercion{Kind: types.KindFloat, Fn: ToFloat}

	// Int parses a token as a float and truncates it toward zero, so that
	// integer fields printed as "5.00" still convert.
	Int = Coercion{Kind: types.KindInt, Fn: ToInt}
)

// ToFloat parses token as a float64. Magnitudes outside the float64 range
// saturate to ±Inf or zero rather than failing.
func ToFloat(token string) (Value, error) {
	f, err := parseFloat(token)
	if err != nil {
		return Value{}, err
	}
	return FloatValue(f), nil
}

// ToInt parses token as a float64 and truncates toward zero:
// "5.99" gives 5 and "-3.7" gives -3. NaN, infinities and values that do not
// fit in an int64 fail.
func ToInt(token string) (Value, error) {
	f, err := parseFloat(token)
	if err != nil {
		return Value{}, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, errors.Newf("cannot convert %q to an integer", token)
	}
	t := math.Trunc(f)
	if t < math.MinInt64 || t >= math.MaxInt64 {
		return Value{}, errors.Newf("%q is out of integer range", token)
	}
	return IntValue(int64(t)), nil
}

func parseFloat(token string) (float64, error) {
	f, err := strconv.ParseFloat(token, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, errors.Wrapf(err, "%q is not a number", token)
	}
	return f, nil
}
