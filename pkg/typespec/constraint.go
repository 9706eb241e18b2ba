// Package typespec parses type declarations into constraint records and
// validates runtime values against them.
//
// Declarations are parsed once, when a signature is declared; calls validate
// live values against the parsed records and never re-read the declaration
// strings. A declaration item is either a string ("number", "?table",
// "string=foo", an entity name, or a bare placeholder such as "K") or a
// WithDefault pair carrying a complex default value.
package typespec

import (
	"errors"
	"fmt"
)

// Constraint kinds.
const (
	KindPrimitive = "primitive"
	KindAny       = "any"
	KindEntity    = "entity"
	KindGeneric   = "generic"
)

// Primitive type names.
const (
	TypeNumber   = "number"
	TypeString   = "string"
	TypeBoolean  = "boolean"
	TypeTable    = "table"
	TypeFunction = "function"
)

// TypeAny matches every present value.
const TypeAny = "any"

// primitiveTypes is the set of recognized primitive type names.
var primitiveTypes = map[string]bool{
	TypeNumber:   true,
	TypeString:   true,
	TypeBoolean:  true,
	TypeTable:    true,
	TypeFunction: true,
}

// IsPrimitiveType reports whether name is a recognized primitive type name.
func IsPrimitiveType(name string) bool {
	return primitiveTypes[name]
}

// Constraint is one parsed parameter, return, or property declaration.
type Constraint struct {
	Kind       string // One of the Kind constants.
	Name       string // Primitive name, entity name, or placeholder; empty for any.
	Optional   bool   // Value may be absent.
	Default    any    // Substituted when the value is absent.
	HasDefault bool   // Distinguishes an explicit nil default from none.
}

// String renders the constraint in declaration form, e.g. "?number" or
// "string=foo". Complex defaults render as "<type>=...".
func (c Constraint) String() string {
	s := ""
	if c.Optional && !c.HasDefault {
		s = "?"
	}
	switch c.Kind {
	case KindAny:
		s += TypeAny
	default:
		s += c.Name
	}
	if c.HasDefault {
		switch c.Default.(type) {
		case string, int64, float64, bool:
			s += fmt.Sprintf("=%v", c.Default)
		default:
			s += "=..."
		}
	}
	return s
}

// Lookup resolves entity names during parsing. The object registry
// implements it; a nil Lookup treats every unknown name as a placeholder
// candidate.
type Lookup interface {
	// HasEntity reports whether name is a registered class or interface.
	HasEntity(name string) bool
}

// Typed is satisfied by live object instances. The validator uses it to
// check entity-name constraints without referencing the object package.
type Typed interface {
	// TypeName returns the name of the value's class.
	TypeName() string

	// IsTypeOf reports whether the value's class is, inherits, or
	// implements the named entity.
	IsTypeOf(name string) bool
}

// Decl is the paired (type, default) declaration form. Unlike the string
// form, it accepts any default value, primitive or complex.
type Decl struct {
	Type    string
	Default any
}

// WithDefault builds a paired declaration item.
func WithDefault(typ string, def any) Decl {
	return Decl{Type: typ, Default: def}
}

// Parse and validation errors.
var (
	ErrParse           = errors.New("malformed type declaration")
	ErrDefinitionOrder = errors.New("required constraint follows optional constraint")
	ErrTypeMismatch    = errors.New("type mismatch")
)
