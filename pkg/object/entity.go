// Package object implements the runtime object model: class and interface
// definition, instance construction with encapsulated private state,
// inheritance and parent delegation, interface conformance, call-time
// signature validation, attribute interception, and generic binding.
package object

import (
	"fmt"
	"sort"

	"github.com/mesh-intelligence/omen/pkg/typespec"
)

// Entity kinds.
const (
	KindClass     = "class"
	KindInterface = "interface"
)

// Reserved function names found by method lookup during the instance
// lifecycle. The constructor never chains to the parent automatically;
// bodies opt in through Self.Super.
const (
	ConstructorName = "init"
	DestructorName  = "finalize"
)

// Body is a class function implementation. The engine passes the resolved
// Self handle explicitly; private state is never injected at the call site.
type Body func(self *Self, args ...any) ([]any, error)

// StaticBody is a class-scoped function with no instance state.
type StaticBody func(args ...any) ([]any, error)

// Function is one declared entity function: the body (nil for interface
// declarations) plus its parsed signature and attached attributes.
type Function struct {
	name       string
	params     []typespec.Constraint
	returns    []typespec.Constraint
	body       Body
	attributes []*Instance
}

// Params returns the parsed parameter constraints.
func (f *Function) Params() []typespec.Constraint { return f.params }

// Returns returns the parsed return constraints.
func (f *Function) Returns() []typespec.Constraint { return f.returns }

// Entity is a class or interface definition owned by a Registry.
type Entity struct {
	name      string
	kind      string
	parent    *Entity   // classes only, at most one
	ifaces    []*Entity // classes only
	funcs     map[string]*Function
	funcOrder []string // declaration order, for deterministic walks
	statics   map[string]StaticBody
	props     map[string]typespec.Constraint // interface-declared
	protected bool
	finalized bool
	reg       *Registry

	// Pending declarations consumed by the next DeclareFunction.
	pendingParams  []typespec.Constraint
	pendingReturns []typespec.Constraint
}

// Name returns the entity's registered name.
func (e *Entity) Name() string { return e.name }

// Kind returns KindClass or KindInterface.
func (e *Entity) Kind() string { return e.kind }

// Parent returns the declared parent class, or nil.
func (e *Entity) Parent() *Entity { return e.parent }

// Interfaces returns the entity's directly implemented interfaces.
func (e *Entity) Interfaces() []*Entity { return e.ifaces }

// Protected reports whether the entity rejects further function declarations.
func (e *Entity) Protected() bool { return e.protected }

// Protect marks the entity protected. The flag is immutable once set.
func (e *Entity) Protect() { e.protected = true }

// FunctionNames returns the entity's own function names in declaration order.
func (e *Entity) FunctionNames() []string {
	out := make([]string, len(e.funcOrder))
	copy(out, e.funcOrder)
	return out
}

// Function returns the entity's own function entry, without chain lookup.
func (e *Entity) Function(name string) (*Function, bool) {
	f, ok := e.funcs[name]
	return f, ok
}

// PropertyNames returns the interface's declared property names, sorted.
func (e *Entity) PropertyNames() []string {
	out := make([]string, 0, len(e.props))
	for name := range e.props {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Property returns the declared constraint for an interface property.
func (e *Entity) Property(name string) (typespec.Constraint, bool) {
	c, ok := e.props[name]
	return c, ok
}

// DeclareParams parses parameter declarations for the next declared
// function. The implicit self argument is never declared.
func (e *Entity) DeclareParams(items ...any) error {
	cs, err := typespec.Parse(e.reg, items...)
	if err != nil {
		return e.reg.capture(fmt.Errorf("%s: declare params: %w", e.name, err))
	}
	e.pendingParams = cs
	return nil
}

// DeclareReturns parses return declarations for the next declared function.
func (e *Entity) DeclareReturns(items ...any) error {
	cs, err := typespec.Parse(e.reg, items...)
	if err != nil {
		return e.reg.capture(fmt.Errorf("%s: declare returns: %w", e.name, err))
	}
	e.pendingReturns = cs
	return nil
}

// DeclareFunction registers a function under name, consuming any pending
// parameter/return declarations. Classes require a body; interfaces declare
// signatures only and pass nil. Fails with ErrProtectedEntity once the
// entity is protected. Adding a declaration to an already-implemented
// interface re-checks its finalized implementors immediately.
func (e *Entity) DeclareFunction(name string, body Body) error {
	params, returns := e.pendingParams, e.pendingReturns
	e.pendingParams, e.pendingReturns = nil, nil

	if e.protected {
		return e.reg.capture(fmt.Errorf("%s.%s: %w", e.name, name, ErrProtectedEntity))
	}
	if name == "" {
		return e.reg.capture(fmt.Errorf("%s: %w: empty function name", e.name, ErrInvalidName))
	}
	if e.kind == KindClass && body == nil {
		return e.reg.capture(fmt.Errorf("%s.%s: %w", e.name, name, ErrMissingBody))
	}

	if e.kind == KindInterface {
		if err := e.reg.checkInterfaceAddition(e, name); err != nil {
			return e.reg.capture(err)
		}
	}

	if _, exists := e.funcs[name]; !exists {
		e.funcOrder = append(e.funcOrder, name)
	}
	e.funcs[name] = &Function{name: name, params: params, returns: returns, body: body}
	return nil
}

// DeclareStatic registers a class-scoped function with no instance state.
func (e *Entity) DeclareStatic(name string, body StaticBody) error {
	if e.kind != KindClass {
		return e.reg.capture(fmt.Errorf("%s.%s: %w", e.name, name, ErrNotClass))
	}
	if e.protected {
		return e.reg.capture(fmt.Errorf("%s.%s: %w", e.name, name, ErrProtectedEntity))
	}
	e.statics[name] = body
	return nil
}

// DeclareProperty declares a typed property on an interface. Implementing
// classes must expose the property publicly by the end of construction, and
// every later assignment is validated against the constraint.
func (e *Entity) DeclareProperty(name string, item any) error {
	if e.kind != KindInterface {
		return e.reg.capture(fmt.Errorf("%s.%s: %w", e.name, name, ErrNotInterface))
	}
	c, err := typespec.ParseOne(e.reg, item)
	if err != nil {
		return e.reg.capture(fmt.Errorf("%s.%s: %w", e.name, name, err))
	}
	e.props[name] = c
	return nil
}

// lookup walks the parent chain for a function, returning the defining
// entity and the entry, or nils when the chain is exhausted.
func (e *Entity) lookup(name string) (*Entity, *Function) {
	for c := e; c != nil; c = c.parent {
		if f, ok := c.funcs[name]; ok {
			return c, f
		}
	}
	return nil, nil
}

// lookupStatic walks the parent chain for a static function.
func (e *Entity) lookupStatic(name string) (StaticBody, bool) {
	for c := e; c != nil; c = c.parent {
		if f, ok := c.statics[name]; ok {
			return f, true
		}
	}
	return nil, false
}

// IsTypeOf reports whether the entity is, inherits from, or implements the
// named entity: its own name, the name of any interface implemented anywhere
// in its parent chain, or recursively its parent.
func (e *Entity) IsTypeOf(name string) bool {
	for c := e; c != nil; c = c.parent {
		if c.name == name {
			return true
		}
		for _, in := range c.ifaces {
			if in.name == name {
				return true
			}
		}
	}
	return false
}

// Finalize checks interface conformance: every function declared by every
// directly implemented interface must have a concrete implementation in the
// class's own function table. Inherited implementations do not satisfy
// conformance. Construction finalizes implicitly.
func (e *Entity) Finalize() error {
	if e.kind != KindClass || e.finalized {
		e.finalized = true
		return nil
	}
	for _, in := range e.ifaces {
		for _, fname := range in.funcOrder {
			own, ok := e.funcs[fname]
			if !ok || own.body == nil {
				return e.reg.capture(fmt.Errorf(
					"%s: function %q of interface %s: %w",
					e.name, fname, in.name, ErrInterfaceNotImplemented))
			}
		}
	}
	e.finalized = true
	return nil
}

// Attach appends an attribute instance to the named own function's
// interception pipeline. The attribute must implement IAttribute. Attributes
// run in attachment order before the function body; a false return from any
// of them vetoes the call.
func (e *Entity) Attach(funcName string, attr *Instance) error {
	fn, ok := e.funcs[funcName]
	if !ok {
		return e.reg.capture(fmt.Errorf("%s.%s: %w", e.name, funcName, ErrUndefinedFunction))
	}
	if attr == nil || !attr.IsTypeOf(AttributeInterface) {
		return e.reg.capture(fmt.Errorf("%s.%s: %w", e.name, funcName, ErrNotAttribute))
	}
	fn.attributes = append(fn.attributes, attr)
	return nil
}

// interfaceProperties collects every interface-declared property reachable
// through the class's parent chain, with the declaring interface.
func (e *Entity) interfaceProperties() map[string]*Entity {
	out := map[string]*Entity{}
	for c := e; c != nil; c = c.parent {
		for _, in := range c.ifaces {
			for pname := range in.props {
				if _, ok := out[pname]; !ok {
					out[pname] = in
				}
			}
		}
	}
	return out
}

// propertyConstraint finds the declared constraint for a property name
// anywhere in the class's interface set.
func (e *Entity) propertyConstraint(name string) (typespec.Constraint, bool) {
	for c := e; c != nil; c = c.parent {
		for _, in := range c.ifaces {
			if pc, ok := in.props[name]; ok {
				return pc, true
			}
		}
	}
	return typespec.Constraint{}, false
}
