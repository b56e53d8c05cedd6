// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// ValueKind identifies the numeric type an output variable was coerced to.
type ValueKind string

const (
	KindFloat ValueKind = "float"
	KindInt   ValueKind = "int"
)

// RunValue is one extracted output variable of a 6S run.
type RunValue struct {
	// Key is the output variable name (e.g. "aot550").
	Key string `json:"key" yaml:"key"`

	// Kind records whether the value was coerced to a float or an int.
	Kind ValueKind `json:"kind" yaml:"kind"`

	// Value holds the number. Int values are stored exactly. NaN and the
	// infinities are written to JSON as the strings "NaN", "+Inf" and "-Inf".
	Value float64 `json:"value" yaml:"value"`
}

// NonFinite returns the text form of f when f is NaN or infinite.
func NonFinite(f float64) (string, bool) {
	switch {
	case math.IsNaN(f):
		return "NaN", true
	case math.IsInf(f, 1):
		return "+Inf", true
	case math.IsInf(f, -1):
		return "-Inf", true
	}
	return "", false
}

// ParseNonFinite is the inverse of NonFinite.
func ParseNonFinite(s string) (float64, error) {
	switch s {
	case "NaN":
		return math.NaN(), nil
	case "+Inf":
		return math.Inf(1), nil
	case "-Inf":
		return math.Inf(-1), nil
	}
	return 0, fmt.Errorf("%q is not NaN, +Inf or -Inf", s)
}

type runValueJSON struct {
	Key   string          `json:"key"`
	Kind  ValueKind       `json:"kind"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON writes non-finite values as strings, which JSON numbers
// cannot represent.
func (v RunValue) MarshalJSON() ([]byte, error) {
	var num []byte
	if s, ok := NonFinite(v.Value); ok {
		num = []byte(strconv.Quote(s))
	} else {
		num = strconv.AppendFloat(nil, v.Value, 'g', -1, 64)
	}
	return json.Marshal(runValueJSON{Key: v.Key, Kind: v.Kind, Value: num})
}

// UnmarshalJSON accepts a number or one of the strings written by
// MarshalJSON.
func (v *RunValue) UnmarshalJSON(data []byte) error {
	var aux runValueJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	v.Key, v.Kind = aux.Key, aux.Kind
	if len(aux.Value) > 0 && aux.Value[0] == '"' {
		var s string
		if err := json.Unmarshal(aux.Value, &s); err != nil {
			return err
		}
		f, err := ParseNonFinite(s)
		if err != nil {
			return fmt.Errorf("value of %s: %w", aux.Key, err)
		}
		v.Value = f
		return nil
	}
	return json.Unmarshal(aux.Value, &v.Value)
}

// RunRecord is the persisted form of one parsed 6S run.
type RunRecord struct {
	// ID identifies the run (e.g. the stem of the saved output file).
	ID string `json:"id" yaml:"id"`

	// Source is where the report came from: an input deck path, a saved
	// output file, or "stdin".
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// CreatedAt is when the record was produced.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Values holds the extracted output variables sorted by key.
	Values []RunValue `json:"values" yaml:"values"`

	// Fulltext is the normalized report. It is persisted by the run store
	// but left out of YAML and JSON exports.
	Fulltext string `json:"-" yaml:"-"`
}

// Lookup returns the value stored under key.
func (r RunRecord) Lookup(key string) (RunValue, bool) {
	for _, v := range r.Values {
		if v.Key == key {
			return v, true
		}
	}
	return RunValue{}, false
}
