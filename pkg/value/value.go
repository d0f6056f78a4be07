// Package value defines the runtime value model.
//
// Values are a closed tagged union over booleans, nil, 64-bit float numbers,
// and strings. Equality is structural and only holds within a variant;
// comparing values of different variants is simply unequal, never an error.
// Values carry no shared mutable state and are cheap to copy.
package value

import "strconv"

// Value is the interface for all runtime values.
// Use the sealed marker method to restrict implementations to this package.
type Value interface {
	value() // sealed marker
	String() string
}

// Boolean represents a boolean value.
type Boolean struct {
	Value bool
}

func (Boolean) value() {}

func (b Boolean) String() string {
	return strconv.FormatBool(b.Value)
}

// Nil represents the nil value.
type Nil struct{}

func (Nil) value() {}

func (Nil) String() string { return "nil" }

// Number represents a numeric value.
type Number struct {
	Value float64
}

func (Number) value() {}

func (n Number) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// Str represents a string value.
type Str struct {
	Value string
}

func (Str) value() {}

func (s Str) String() string { return s.Value }

// NewBoolean creates a boolean value.
func NewBoolean(b bool) Value {
	return Boolean{Value: b}
}

// NewNil creates the nil value.
func NewNil() Value {
	return Nil{}
}

// NewNumber creates a numeric value.
func NewNumber(n float64) Value {
	return Number{Value: n}
}

// NewStr creates a string value.
func NewStr(s string) Value {
	return Str{Value: s}
}

// Equal compares two values structurally. Cross-variant comparisons are
// unequal, never an error.
func Equal(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch av := a.(type) {
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av.Value == bv.Value
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Number:
		bv, ok := b.(Number)
		return ok && av.Value == bv.Value
	case Str:
		bv, ok := b.(Str)
		return ok && av.Value == bv.Value
	}
	return false
}

// TypeName returns the language-level type name for error messages.
func TypeName(v Value) string {
	switch v.(type) {
	case Boolean:
		return "boolean"
	case Nil:
		return "nil"
	case Number:
		return "number"
	case Str:
		return "string"
	default:
		return "unknown"
	}
}
