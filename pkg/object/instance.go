package object

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/omen/internal/pool"
	"github.com/mesh-intelligence/omen/pkg/typespec"
)

// newUUID generates a UUID v7 string.
func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Instance is one live object created from a class. Private state is a
// pooled container visible only to the instance's own method bodies (through
// Self); properties are the separate, publicly exposed values.
type Instance struct {
	id        string
	class     *Entity
	state     map[string]any
	props     map[string]any
	destroyed bool
}

// New constructs an instance of the class. Construction finalizes the class
// (interface conformance) if that has not happened yet, allocates fresh
// private state, runs the constructor found by method lookup after
// validating args against its parameter constraints, and finally requires
// every interface-declared property to be assigned. Parent constructors do
// not run unless a body chains explicitly through Self.Super.
func (e *Entity) New(args ...any) (*Instance, error) {
	if e.kind != KindClass {
		return nil, e.reg.capture(fmt.Errorf("%s: %w", e.name, ErrNotClass))
	}
	if err := e.Finalize(); err != nil {
		return nil, err
	}

	inst := &Instance{
		id:    newUUID(),
		class: e,
		state: pool.AcquireTable(),
		props: make(map[string]any),
	}
	if def, fn := e.lookup(ConstructorName); fn != nil && fn.body != nil {
		if _, err := invoke(inst, def, fn, args); err != nil {
			pool.ReleaseTable(inst.state)
			return nil, err
		}
	}
	if err := inst.checkProperties(); err != nil {
		pool.ReleaseTable(inst.state)
		return nil, e.reg.capture(err)
	}
	return inst, nil
}

// checkProperties requires every interface-declared property in the class
// chain to be present on the instance.
func (i *Instance) checkProperties() error {
	declared := i.class.interfaceProperties()
	names := make([]string, 0, len(declared))
	for name := range declared {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := i.props[name]; !ok {
			return fmt.Errorf("%s: property %q of interface %s: %w",
				i.class.name, name, declared[name].name, ErrMissingProperty)
		}
	}
	return nil
}

// ID returns the instance's unique identifier.
func (i *Instance) ID() string { return i.id }

// Class returns the originating class.
func (i *Instance) Class() *Entity { return i.class }

// TypeName returns the originating class's name.
func (i *Instance) TypeName() string { return i.class.name }

// IsTypeOf reports whether the instance's class is, inherits from, or
// implements the named entity.
func (i *Instance) IsTypeOf(name string) bool { return i.class.IsTypeOf(name) }

// Destroyed reports whether Destroy has run.
func (i *Instance) Destroyed() bool { return i.destroyed }

// Call invokes the named function with virtual dispatch from the instance's
// own class.
func (i *Instance) Call(name string, args ...any) ([]any, error) {
	return dispatch(i, i.class, name, args)
}

// CallStatic invokes a class-scoped function found in the class chain.
func (i *Instance) CallStatic(name string, args ...any) ([]any, error) {
	return i.class.CallStatic(name, args...)
}

// CallStatic invokes a class-scoped function. Statics receive no instance
// state.
func (e *Entity) CallStatic(name string, args ...any) ([]any, error) {
	fn, ok := e.lookupStatic(name)
	if !ok {
		return nil, e.reg.capture(fmt.Errorf("%s.%s: %w", e.name, name, ErrUndefinedFunction))
	}
	return fn(args...)
}

// Parent returns a delegation proxy whose method lookup starts at the
// instance's parent class. Proxies compose: each Parent hop moves the
// resolution start one class upward while the private state every resolved
// body sees remains this instance's own.
func (i *Instance) Parent() *Self {
	return (&Self{inst: i, base: i.class}).Parent()
}

// GetProperty returns a publicly exposed property value.
func (i *Instance) GetProperty(name string) (any, bool) {
	v, ok := i.props[name]
	return v, ok
}

// SetProperty assigns a public property. Assignments to interface-declared
// properties are validated against the declared constraint on every call,
// not only during construction. Undeclared names are stored unchecked.
func (i *Instance) SetProperty(name string, value any) error {
	if i.destroyed {
		return i.class.reg.capture(fmt.Errorf("%s: %w", i.class.name, ErrAlreadyDestroyed))
	}
	if c, ok := i.class.propertyConstraint(name); ok {
		bound, err := typespec.Validate(c, value)
		if err != nil {
			return i.class.reg.capture(fmt.Errorf("%s.%s: %w", i.class.name, name, err))
		}
		value = bound
	}
	i.props[name] = value
	return nil
}

// Equal reports structural equality: both private-state containers hold the
// same key set with equal values. Comparison is shallow: values compare with
// Go equality, and non-comparable values (tables, functions) are equal only
// when they reference the same underlying object.
func (i *Instance) Equal(other *Instance) bool {
	if other == nil || len(i.state) != len(other.state) {
		return false
	}
	for k, v := range i.state {
		ov, ok := other.state[k]
		if !ok || !equalValue(v, ov) {
			return false
		}
	}
	return true
}

// equalValue implements the shallow comparison policy.
func equalValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta.Comparable() && tb.Comparable() {
		return a == b
	}
	if ta != tb {
		return false
	}
	switch reflect.ValueOf(a).Kind() {
	case reflect.Map, reflect.Slice, reflect.Func:
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	default:
		return false
	}
}

// Clone produces a new instance of the same class whose private state and
// properties are field-by-field shallow copies. The clone gets a fresh ID
// and no constructor runs.
func (i *Instance) Clone() (*Instance, error) {
	if i.destroyed {
		return nil, i.class.reg.capture(fmt.Errorf("%s: %w", i.class.name, ErrAlreadyDestroyed))
	}
	dup := &Instance{
		id:    newUUID(),
		class: i.class,
		state: pool.AcquireTable(),
		props: make(map[string]any, len(i.props)),
	}
	for k, v := range i.state {
		dup.state[k] = v
	}
	for k, v := range i.props {
		dup.props[k] = v
	}
	return dup, nil
}

// Destroy runs the most-specific destructor with the private state still
// attached, then releases the state container. Destroying an instance twice
// fails with ErrAlreadyDestroyed.
func (i *Instance) Destroy() error {
	if i.destroyed {
		return i.class.reg.capture(fmt.Errorf("%s: %w", i.class.name, ErrAlreadyDestroyed))
	}
	if def, fn := i.class.lookup(DestructorName); fn != nil && fn.body != nil {
		if _, err := invoke(i, def, fn, nil); err != nil {
			return err
		}
	}
	i.destroyed = true
	pool.ReleaseTable(i.state)
	i.state = nil
	return nil
}
