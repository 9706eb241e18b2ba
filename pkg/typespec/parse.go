package typespec

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Parse converts declaration items into an ordered constraint list. Items
// are strings or Decl pairs. A required constraint appearing after an
// optional or defaulted one fails with ErrDefinitionOrder; a malformed item
// fails with ErrParse. Entity names are resolved through lookup.
func Parse(lookup Lookup, items ...any) ([]Constraint, error) {
	out := make([]Constraint, 0, len(items))
	sawOptional := false
	for i, item := range items {
		c, err := ParseOne(lookup, item)
		if err != nil {
			return nil, fmt.Errorf("declaration %d: %w", i+1, err)
		}
		if c.Optional || c.HasDefault {
			sawOptional = true
		} else if sawOptional {
			return nil, fmt.Errorf("declaration %d (%s): %w", i+1, c, ErrDefinitionOrder)
		}
		out = append(out, c)
	}
	return out, nil
}

// ParseOne converts a single declaration item into a constraint.
func ParseOne(lookup Lookup, item any) (Constraint, error) {
	switch v := item.(type) {
	case string:
		return parseString(lookup, v)
	case Decl:
		c, err := parseName(lookup, strings.TrimPrefix(v.Type, "?"))
		if err != nil {
			return Constraint{}, err
		}
		c.Optional = true
		c.Default = v.Default
		c.HasDefault = true
		return c, nil
	default:
		return Constraint{}, fmt.Errorf("%w: unsupported declaration item %T", ErrParse, item)
	}
}

// parseString handles the string declaration form: optional leading "?",
// optional trailing "=literal" (primitives only).
func parseString(lookup Lookup, s string) (Constraint, error) {
	optional := strings.HasPrefix(s, "?")
	if optional {
		s = s[1:]
	}

	name := s
	literal := ""
	hasLiteral := false
	if eq := strings.Index(s, "="); eq >= 0 {
		name, literal = s[:eq], s[eq+1:]
		hasLiteral = true
	}

	c, err := parseName(lookup, name)
	if err != nil {
		return Constraint{}, err
	}
	c.Optional = optional

	if hasLiteral {
		if c.Kind != KindPrimitive {
			return Constraint{}, fmt.Errorf("%w: default literal on non-primitive type %q", ErrParse, name)
		}
		def, err := parseLiteral(c.Name, literal)
		if err != nil {
			return Constraint{}, err
		}
		c.Default = def
		c.HasDefault = true
		c.Optional = true
	}
	return c, nil
}

// parseName classifies a bare type name. Resolution order: "any", primitive,
// registered entity, then generic placeholder for uppercase-led bare tokens.
func parseName(lookup Lookup, name string) (Constraint, error) {
	if name == "" {
		return Constraint{}, fmt.Errorf("%w: empty type name", ErrParse)
	}
	if name == TypeAny {
		return Constraint{Kind: KindAny}, nil
	}
	if primitiveTypes[name] {
		return Constraint{Kind: KindPrimitive, Name: name}, nil
	}
	if lookup != nil && lookup.HasEntity(name) {
		return Constraint{Kind: KindEntity, Name: name}, nil
	}
	if isPlaceholder(name) {
		return Constraint{Kind: KindGeneric, Name: name}, nil
	}
	return Constraint{}, fmt.Errorf("%w: unknown type %q", ErrParse, name)
}

// isPlaceholder reports whether name is a bare uppercase-led single token.
func isPlaceholder(name string) bool {
	for i, r := range name {
		if i == 0 && !unicode.IsUpper(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// parseLiteral converts a default literal to the declared primitive type.
// Integral numbers parse as int64, others as float64.
func parseLiteral(typ, literal string) (any, error) {
	switch typ {
	case TypeNumber:
		if n, err := strconv.ParseInt(literal, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrParse, literal)
		}
		return f, nil
	case TypeString:
		return literal, nil
	case TypeBoolean:
		b, err := strconv.ParseBool(literal)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a boolean", ErrParse, literal)
		}
		return b, nil
	default:
		// Tables and functions have no literal form; use the paired
		// declaration instead.
		return nil, fmt.Errorf("%w: type %q has no literal default form", ErrParse, typ)
	}
}
