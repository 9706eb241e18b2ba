package typespec

import (
	"fmt"
	"reflect"
)

// Validate checks one value against a constraint. On success it returns the
// value to bind, which is the constraint's default when the value is absent.
// On failure it returns an error wrapping ErrTypeMismatch with an
// expected/actual description.
func Validate(c Constraint, value any) (any, error) {
	if value == nil {
		if c.HasDefault {
			return c.Default, nil
		}
		if c.Optional {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: expected %s, got nothing", ErrTypeMismatch, expected(c))
	}

	switch c.Kind {
	case KindAny, KindGeneric:
		// Generic constraints are unbound placeholders; until bound they
		// admit any present value.
		return value, nil
	case KindPrimitive:
		if KindOf(value) == c.Name {
			return value, nil
		}
	case KindEntity:
		if typed, ok := value.(Typed); ok && typed.IsTypeOf(c.Name) {
			return value, nil
		}
	}
	return nil, fmt.Errorf("%w: expected %s, got %s", ErrTypeMismatch, expected(c), KindOf(value))
}

// ValidateList checks values against a declared constraint list. It stops at
// the first missing required value or mismatch and reports its 1-indexed
// position. The returned slice carries defaults substituted for absent
// optional values; values beyond the declared list pass through unchanged.
func ValidateList(cs []Constraint, values []any) ([]any, error) {
	out := make([]any, 0, len(values))
	for i, c := range cs {
		var v any
		if i < len(values) {
			v = values[i]
		}
		bound, err := Validate(c, v)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i+1, err)
		}
		out = append(out, bound)
	}
	if len(values) > len(cs) {
		out = append(out, values[len(cs):]...)
	}
	return out, nil
}

// KindOf names the runtime type of a value: a primitive type name, "nil",
// the class name for object instances, or the Go type as a fallback.
func KindOf(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		return TypeBoolean
	case string:
		return TypeString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return TypeNumber
	case Typed:
		return v.TypeName()
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return TypeTable
	case reflect.Func:
		return TypeFunction
	default:
		return fmt.Sprintf("%T", value)
	}
}

// expected renders the constraint's expected kind for mismatch messages.
func expected(c Constraint) string {
	switch c.Kind {
	case KindAny:
		return TypeAny
	case KindGeneric:
		return fmt.Sprintf("placeholder %s", c.Name)
	default:
		return c.Name
	}
}
