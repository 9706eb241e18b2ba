package object

import (
	"fmt"

	"github.com/mesh-intelligence/omen/internal/pool"
	"github.com/mesh-intelligence/omen/pkg/typespec"
)

// Self is the handle every function body receives. It carries the instance
// (and thus the private state) plus the body's resolution position, so
// parent delegation works without any process-wide "current call" state and
// re-entrant calls cannot corrupt each other.
type Self struct {
	inst *Instance
	base *Entity // class defining the running body, or the proxy's start
	// proxy marks a handle produced by Parent: its calls resolve from base
	// instead of dispatching virtually from the instance's class.
	proxy bool
}

// Instance returns the underlying instance.
func (s *Self) Instance() *Instance { return s.inst }

// State returns the instance's private state container.
func (s *Self) State() map[string]any { return s.inst.state }

// Set assigns a public property on the instance, validated against any
// declared constraint.
func (s *Self) Set(name string, value any) error { return s.inst.SetProperty(name, value) }

// Get returns a public property value.
func (s *Self) Get(name string) (any, bool) { return s.inst.GetProperty(name) }

// Call invokes a function on the instance. Through a non-proxy handle the
// lookup is virtual, starting at the instance's own class; through a
// delegation proxy it starts at the proxy's resolution class.
func (s *Self) Call(name string, args ...any) ([]any, error) {
	start := s.inst.class
	if s.proxy {
		start = s.base
	}
	return dispatch(s.inst, start, name, args)
}

// Parent returns a delegation proxy anchored one class above the current
// resolution position. Proxies compose arbitrarily deep; the private state
// passed to whatever body resolves is always the original instance's.
func (s *Self) Parent() *Self {
	var up *Entity
	if s.base != nil {
		up = s.base.parent
	}
	return &Self{inst: s.inst, base: up, proxy: true}
}

// Super runs the parent constructor with this instance's private state.
// Chaining is opt-in: constructors never run parent constructors on their
// own.
func (s *Self) Super(args ...any) error {
	var up *Entity
	if s.base != nil {
		up = s.base.parent
	}
	_, err := dispatch(s.inst, up, ConstructorName, args)
	return err
}

// dispatch resolves name starting at start and runs the attribute pipeline,
// parameter validation, the body, and return validation.
func dispatch(inst *Instance, start *Entity, name string, args []any) ([]any, error) {
	reg := inst.class.reg
	if inst.destroyed {
		return nil, reg.capture(fmt.Errorf("%s.%s: %w", inst.class.name, name, ErrAlreadyDestroyed))
	}
	def, fn := start.lookup(name)
	if fn == nil || fn.body == nil {
		from := "<root>"
		if start != nil {
			from = start.name
		}
		return nil, reg.capture(fmt.Errorf("%s.%s: %w", from, name, ErrUndefinedFunction))
	}
	return invoke(inst, def, fn, args)
}

// invoke runs one resolved function against an instance.
func invoke(inst *Instance, def *Entity, fn *Function, args []any) ([]any, error) {
	reg := inst.class.reg

	veto, err := runAttributes(inst, fn, args)
	if err != nil {
		return nil, err
	}
	if veto {
		return nil, nil
	}

	bound := args
	if len(fn.params) > 0 {
		bound, err = typespec.ValidateList(fn.params, args)
		if err != nil {
			return nil, reg.capture(fmt.Errorf("%s.%s: %w", def.name, fn.name, err))
		}
	}

	self := &Self{inst: inst, base: def}
	out, err := fn.body(self, bound...)
	if err != nil {
		return nil, err
	}

	if len(fn.returns) > 0 {
		out, err = typespec.ValidateList(fn.returns, out)
		if err != nil {
			return nil, reg.capture(fmt.Errorf("%s.%s: return %w", def.name, fn.name, err))
		}
	}
	return out, nil
}

// runAttributes invokes each attached attribute's OnInvoke in attachment
// order. A false return vetoes the call: the body does not run and no
// results are produced. The forwarded-argument buffer is pooled; attributes
// that retain arguments (deferred replay) must copy them first.
func runAttributes(inst *Instance, fn *Function, args []any) (veto bool, err error) {
	for _, attr := range fn.attributes {
		fwd := pool.AcquireList()
		fwd = append(fwd, inst, inst.state, fn.name)
		fwd = append(fwd, args...)
		res, err := attr.Call(AttributeInvoke, fwd...)
		pool.ReleaseList(fwd)
		if err != nil {
			return false, err
		}
		if len(res) > 0 {
			if allowed, ok := res[0].(bool); ok && !allowed {
				return true, nil
			}
		}
	}
	return false, nil
}
