package object

import (
	"fmt"
	"sort"

	"github.com/mesh-intelligence/omen/internal/errlog"
	"github.com/mesh-intelligence/omen/pkg/typespec"
)

// Registry owns the set of declared entities, keyed by name. The engine is
// single-threaded and synchronous: definitions mutate the registry, every
// dispatch and validation reads it, and no operation suspends.
type Registry struct {
	entities map[string]*Entity
	log      *errlog.Log
}

// Option configures a Registry.
type Option func(*Registry)

// WithLog injects an error log. Without it the registry gets a fresh,
// non-silent log of its own.
func WithLog(l *errlog.Log) Option {
	return func(r *Registry) { r.log = l }
}

// NewRegistry returns a registry with the IAttribute interface already
// declared.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		entities: make(map[string]*Entity),
		log:      errlog.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.bootstrapAttribute()
	return r
}

// Log returns the registry's error log. SetSilent(true) on it switches the
// registry to deferred error capture.
func (r *Registry) Log() *errlog.Log {
	return r.log
}

// capture applies the silent-mode policy: in silent mode the error is
// recorded and nil is returned, otherwise the error passes through.
func (r *Registry) capture(err error) error {
	if err != nil && r.log.Silent() {
		r.log.Record(err)
		return nil
	}
	return err
}

// HasEntity reports whether name is registered. It satisfies the declaration
// parser's Lookup interface.
func (r *Registry) HasEntity(name string) bool {
	_, ok := r.entities[name]
	return ok
}

// Lookup returns the registered entity, or nil.
func (r *Registry) Lookup(name string) *Entity {
	return r.entities[name]
}

// Entities returns all registered entities sorted by name.
func (r *Registry) Entities() []*Entity {
	names := make([]string, 0, len(r.entities))
	for name := range r.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*Entity, len(names))
	for i, name := range names {
		out[i] = r.entities[name]
	}
	return out
}

// CreateClass registers a class with an optional parent (nil for none) and
// any number of implemented interfaces. Two implemented interfaces may not
// declare functions or properties under the same name; the conflict is a
// definition-time error.
func (r *Registry) CreateClass(name string, parent *Entity, ifaces ...*Entity) (*Entity, error) {
	if err := r.checkName(name); err != nil {
		return nil, r.capture(err)
	}
	if parent != nil && parent.kind != KindClass {
		return nil, r.capture(fmt.Errorf("%s: parent %s: %w", name, parent.name, ErrNotClass))
	}
	for _, in := range ifaces {
		if in == nil || in.kind != KindInterface {
			return nil, r.capture(fmt.Errorf("%s: %w", name, ErrNotInterface))
		}
	}
	if err := checkInterfaceConflicts(name, ifaces); err != nil {
		return nil, r.capture(err)
	}

	e := r.newEntity(name, KindClass)
	e.parent = parent
	e.ifaces = append([]*Entity(nil), ifaces...)
	r.entities[name] = e
	return e, nil
}

// CreateInterface registers an interface. Interfaces have no parent and
// implement nothing.
func (r *Registry) CreateInterface(name string) (*Entity, error) {
	if err := r.checkName(name); err != nil {
		return nil, r.capture(err)
	}
	e := r.newEntity(name, KindInterface)
	r.entities[name] = e
	return e, nil
}

func (r *Registry) checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if _, ok := r.entities[name]; ok {
		return fmt.Errorf("%s: %w", name, ErrEntityExists)
	}
	return nil
}

func (r *Registry) newEntity(name, kind string) *Entity {
	return &Entity{
		name:    name,
		kind:    kind,
		funcs:   make(map[string]*Function),
		statics: make(map[string]StaticBody),
		props:   make(map[string]typespec.Constraint),
		reg:     r,
	}
}

// checkInterfaceConflicts rejects classes whose interfaces declare the same
// function or property name more than once.
func checkInterfaceConflicts(class string, ifaces []*Entity) error {
	seen := map[string]string{} // member name -> declaring interface
	for _, in := range ifaces {
		for _, fname := range in.funcOrder {
			if prev, ok := seen[fname]; ok && prev != in.name {
				return fmt.Errorf("%s: %q declared by both %s and %s: %w",
					class, fname, prev, in.name, ErrInterfaceConflict)
			}
			seen[fname] = in.name
		}
		for pname := range in.props {
			if prev, ok := seen[pname]; ok && prev != in.name {
				return fmt.Errorf("%s: %q declared by both %s and %s: %w",
					class, pname, prev, in.name, ErrInterfaceConflict)
			}
			seen[pname] = in.name
		}
	}
	return nil
}

// checkInterfaceAddition guards a function declaration added to an interface
// after classes already implement it: the addition may not collide with an
// implementor's other interfaces, and finalized implementors must already
// carry their own implementation.
func (r *Registry) checkInterfaceAddition(iface *Entity, fname string) error {
	for _, e := range r.entities {
		if e.kind != KindClass || !implementsDirectly(e, iface) {
			continue
		}
		for _, in := range e.ifaces {
			if in == iface {
				continue
			}
			if _, ok := in.funcs[fname]; ok {
				return fmt.Errorf("%s: %q declared by both %s and %s: %w",
					e.name, fname, in.name, iface.name, ErrInterfaceConflict)
			}
		}
		if !e.finalized {
			continue
		}
		if own, ok := e.funcs[fname]; !ok || own.body == nil {
			return fmt.Errorf("%s: function %q of interface %s: %w",
				e.name, fname, iface.name, ErrInterfaceNotImplemented)
		}
	}
	return nil
}

// implementsDirectly reports whether class e lists iface in its own
// interface set.
func implementsDirectly(e *Entity, iface *Entity) bool {
	for _, in := range e.ifaces {
		if in == iface {
			return true
		}
	}
	return false
}
