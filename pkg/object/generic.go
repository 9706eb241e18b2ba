package object

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/omen/pkg/typespec"
)

// BindTypes specializes a generic class template: every placeholder
// constraint in the template's signatures (inherited placeholders included)
// is substituted positionally by the corresponding concrete type. The
// derived class has the template as its parent, is registered under
// "Name<t1,t2>" (uniquified on collision), and is an ordinary class from
// then on. There is no caching: binding twice yields two independent derived
// classes. The count of concrete types must match the count of distinct
// placeholders.
func (r *Registry) BindTypes(tmpl *Entity, concrete ...string) (*Entity, error) {
	if tmpl == nil || tmpl.kind != KindClass {
		return nil, r.capture(fmt.Errorf("bind types: %w", ErrNotClass))
	}

	placeholders := collectPlaceholders(tmpl)
	if len(concrete) != len(placeholders) {
		return nil, r.capture(fmt.Errorf("%s: %d type arguments for %d placeholders: %w",
			tmpl.name, len(concrete), len(placeholders), ErrArityMismatch))
	}

	subs := make(map[string]typespec.Constraint, len(placeholders))
	for i, ph := range placeholders {
		c, err := typespec.ParseOne(r, concrete[i])
		if err != nil {
			return nil, r.capture(fmt.Errorf("%s: bind %s: %w", tmpl.name, ph, err))
		}
		subs[ph] = c
	}

	name := r.uniqueName(fmt.Sprintf("%s<%s>", tmpl.name, strings.Join(concrete, ",")))
	derived := r.newEntity(name, KindClass)
	derived.parent = tmpl
	derived.finalized = true
	r.entities[name] = derived

	// Copy every function in the chain that mentions a placeholder, with
	// constraints substituted. Placeholder-free functions stay inherited.
	for c := tmpl; c != nil; c = c.parent {
		for _, fname := range c.funcOrder {
			if _, done := derived.funcs[fname]; done {
				continue
			}
			fn := c.funcs[fname]
			if !mentionsPlaceholder(fn) {
				continue
			}
			derived.funcs[fname] = &Function{
				name:    fname,
				params:  substitute(fn.params, subs),
				returns: substitute(fn.returns, subs),
				body:    fn.body,
			}
			derived.funcOrder = append(derived.funcOrder, fname)
		}
	}
	return derived, nil
}

// uniqueName suffixes a candidate name until it is free, so independent
// bindings of the same arguments register as distinct entities.
func (r *Registry) uniqueName(name string) string {
	if _, ok := r.entities[name]; !ok {
		return name
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s#%d", name, n)
		if _, ok := r.entities[candidate]; !ok {
			return candidate
		}
	}
}

// collectPlaceholders returns the distinct placeholder names of a template
// in first-appearance order: root ancestor first, functions in declaration
// order, parameters before returns.
func collectPlaceholders(tmpl *Entity) []string {
	chain := []*Entity{}
	for c := tmpl; c != nil; c = c.parent {
		chain = append(chain, c)
	}

	var order []string
	seen := map[string]bool{}
	record := func(cs []typespec.Constraint) {
		for _, c := range cs {
			if c.Kind == typespec.KindGeneric && !seen[c.Name] {
				seen[c.Name] = true
				order = append(order, c.Name)
			}
		}
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for _, fname := range chain[i].funcOrder {
			fn := chain[i].funcs[fname]
			record(fn.params)
			record(fn.returns)
		}
	}
	return order
}

// mentionsPlaceholder reports whether any constraint in the function's
// signature is generic.
func mentionsPlaceholder(fn *Function) bool {
	for _, c := range fn.params {
		if c.Kind == typespec.KindGeneric {
			return true
		}
	}
	for _, c := range fn.returns {
		if c.Kind == typespec.KindGeneric {
			return true
		}
	}
	return false
}

// substitute replaces generic constraints through the binding map, keeping
// the original optionality and any original default.
func substitute(cs []typespec.Constraint, subs map[string]typespec.Constraint) []typespec.Constraint {
	if len(cs) == 0 {
		return nil
	}
	out := make([]typespec.Constraint, len(cs))
	for i, c := range cs {
		if c.Kind != typespec.KindGeneric {
			out[i] = c
			continue
		}
		bound, ok := subs[c.Name]
		if !ok {
			out[i] = c
			continue
		}
		bound.Optional = bound.Optional || c.Optional
		if c.HasDefault {
			bound.Default = c.Default
			bound.HasDefault = true
		}
		out[i] = bound
	}
	return out
}
