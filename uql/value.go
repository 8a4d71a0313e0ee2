package uql

import (
	"fmt"
	"math"
)

// Value is a sealed interface over the JSON-compatible value types a
// condition may carry. Only Null, String, Number, Bool, List and Object
// implement it, which keeps type switches in backend translators
// exhaustive.
type Value interface {
	value() // Marker method - seals interface to this package
}

// Null represents a JSON null. eq/neq against Null compile to IS NULL /
// IS NOT NULL on SQL backends; exists/nexists normalize their value to
// Null regardless of input.
type Null struct{}

func (Null) value() {}

// String represents a JSON string value.
type String string

func (String) value() {}

// Number represents a JSON number. Stored as float64, the widest type
// JSON decoding produces; Native returns int64 when the value is whole.
type Number float64

func (Number) value() {}

// Bool represents a JSON boolean value.
type Bool bool

func (Bool) value() {}

// List represents an ordered JSON array of values.
type List []Value

func (List) value() {}

// Object represents a JSON object. Keys are strings at every nesting
// level by construction: FromAny rejects anything else.
type Object map[string]Value

func (Object) value() {}

// FromAny converts a decoded JSON/YAML value into a Value. nil maps to
// Null. Integer kinds are widened to Number. Object keys must be strings
// at every nesting level; anything else is a StructuralError.
func FromAny(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case float64:
		return Number(val), nil
	case float32:
		return Number(val), nil
	case int:
		return Number(val), nil
	case int64:
		return Number(val), nil
	case uint64:
		return Number(val), nil
	case []any:
		list := make(List, len(val))
		for i, item := range val {
			conv, err := FromAny(item)
			if err != nil {
				return nil, err
			}
			list[i] = conv
		}
		return list, nil
	case map[string]any:
		obj := make(Object, len(val))
		for k, item := range val {
			conv, err := FromAny(item)
			if err != nil {
				return nil, err
			}
			obj[k] = conv
		}
		return obj, nil
	case map[any]any:
		// YAML can produce non-string keys; the wire format forbids them.
		obj := make(Object, len(val))
		for k, item := range val {
			ks, ok := k.(string)
			if !ok {
				return nil, structErr("value", "object keys must be strings, got %T", k)
			}
			conv, err := FromAny(item)
			if err != nil {
				return nil, err
			}
			obj[ks] = conv
		}
		return obj, nil
	default:
		return nil, structErr("value", "unsupported value type %T", v)
	}
}

// Native converts a Value back to plain Go data: nil, string, bool,
// int64/float64, []any, map[string]any. Used when handing parameters to
// drivers and when assembling structured query artifacts.
func Native(v Value) any {
	switch val := v.(type) {
	case nil, Null:
		return nil
	case String:
		return string(val)
	case Bool:
		return bool(val)
	case Number:
		f := float64(val)
		if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
			return int64(f)
		}
		return f
	case List:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Native(item)
		}
		return out
	case Object:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Native(item)
		}
		return out
	default:
		// Unreachable: Value is sealed.
		panic(fmt.Sprintf("uql: unknown value type %T", v))
	}
}

// isScalar reports whether v is a leaf value usable as a single
// comparison operand (string, number or bool).
func isScalar(v Value) bool {
	switch v.(type) {
	case String, Number, Bool:
		return true
	default:
		return false
	}
}

// IsNull reports whether v is absent or the explicit Null value.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}
