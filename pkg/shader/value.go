package shader

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Value is the literal held by an unconnected socket. A single component is
// a scalar; three or four components are a vector or color.
//
// JSON encodes scalars as a bare number and vectors as an array.
type Value []float64

// Scalar returns a one-component Value.
func Scalar(f float64) Value { return Value{f} }

// Vector returns a Value with the given components.
func Vector(c ...float64) Value { return Value(slices.Clone(c)) }

// IsScalar reports whether v has exactly one component.
func (v Value) IsScalar() bool { return len(v) == 1 }

// Clone returns a copy of v that shares no storage with it.
func (v Value) Clone() Value { return slices.Clone(v) }

// Equal reports whether v and o have the same components.
func (v Value) Equal(o Value) bool { return slices.Equal(v, o) }

// String formats v as "2" or "(0.8, 0.8, 0.8, 1)", and an empty v as "-".
func (v Value) String() string {
	if len(v) == 0 {
		return "-"
	}
	if v.IsScalar() {
		return strconv.FormatFloat(v[0], 'g', -1, 64)
	}
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = strconv.FormatFloat(c, 'g', -1, 64)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsScalar() {
		return json.Marshal(v[0])
	}
	return json.Marshal([]float64(v))
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = Value{f}
		return nil
	}
	var c []float64
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("value must be a number or an array of numbers: %w", err)
	}
	*v = Value(c)
	return nil
}

// Vec2 is a node position in the editor canvas.
type Vec2 struct {
	X, Y float64
}

// MarshalJSON encodes the position as [x, y].
func (p Vec2) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

// UnmarshalJSON decodes a position from [x, y].
func (p *Vec2) UnmarshalJSON(data []byte) error {
	var xy [2]float64
	if err := json.Unmarshal(data, &xy); err != nil {
		return fmt.Errorf("location must be [x, y]: %w", err)
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}
