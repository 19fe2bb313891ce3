package pkg

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

var jsonNull = []byte("null")

// FlexFloat is a float64 JSON field that also accepts numeric strings.
// Set reports whether the key was present at all, Valid whether it held a number.
// Empty strings, null and non-numeric input decode as present but not valid.
type FlexFloat struct {
	Value float64
	Valid bool
	Set   bool
}

func NewFlexFloat(v float64) FlexFloat {
	return FlexFloat{Value: v, Valid: true, Set: true}
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat{Set: true}

	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	f.Value = v
	f.Valid = true
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return jsonNull, nil
	}
	return json.Marshal(f.Value)
}

// Ptr returns nil unless the value holds a number.
func (f FlexFloat) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

func (f FlexFloat) Or(def float64) float64 {
	if !f.Valid {
		return def
	}
	return f.Value
}

// Optional distinguishes an absent JSON key from an explicit null.
type Optional[T any] struct {
	Value T
	Valid bool
	Set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true, Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	var zero T
	*o = Optional[T]{Value: zero, Set: true}
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return jsonNull, nil
	}
	return json.Marshal(o.Value)
}
