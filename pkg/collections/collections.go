// Package collections defines the built-in collection classes through the
// public object-model API: List and Map are generic templates, Stack and
// LinkedList are concrete classes. All four implement the ICollection
// interface. They hold no special relationship to the engine; they are
// ordinary consumers of it.
package collections

import (
	"fmt"

	"github.com/mesh-intelligence/omen/pkg/object"
)

// Registered entity names.
const (
	InterfaceCollection = "ICollection"
	ClassList           = "List"
	ClassMap            = "Map"
	ClassStack          = "Stack"
	ClassLinkedList     = "LinkedList"
)

// Install registers the collection entities in the registry. List and Map
// are templates; bind them with Registry.BindTypes before relying on typed
// element access, or construct them unbound for untyped use.
func Install(r *object.Registry) error {
	coll, err := r.CreateInterface(InterfaceCollection)
	if err != nil {
		return fmt.Errorf("collections: %w", err)
	}
	if err := coll.DeclareReturns("number"); err != nil {
		return fmt.Errorf("collections: %w", err)
	}
	if err := coll.DeclareFunction("size", nil); err != nil {
		return fmt.Errorf("collections: %w", err)
	}

	for _, install := range []func(*object.Registry, *object.Entity) error{
		installList, installMap, installStack, installLinkedList,
	} {
		if err := install(r, coll); err != nil {
			return fmt.Errorf("collections: %w", err)
		}
	}
	return nil
}

// installList declares the generic List template with element placeholder T.
// Indexes are zero-based.
func installList(r *object.Registry, coll *object.Entity) error {
	list, err := r.CreateClass(ClassList, nil, coll)
	if err != nil {
		return err
	}
	declare := declarer(list)

	declare.fn(object.ConstructorName, nil, nil, func(self *object.Self, args ...any) ([]any, error) {
		self.State()["items"] = []any{}
		return nil, nil
	})
	declare.fn("push", []any{"T"}, nil, func(self *object.Self, args ...any) ([]any, error) {
		self.State()["items"] = append(self.State()["items"].([]any), args[0])
		return nil, nil
	})
	declare.fn("get", []any{"number"}, []any{"?T"}, func(self *object.Self, args ...any) ([]any, error) {
		items := self.State()["items"].([]any)
		i := asIndex(args[0])
		if i < 0 || i >= len(items) {
			return []any{nil}, nil
		}
		return []any{items[i]}, nil
	})
	declare.fn("pop", nil, []any{"?T"}, func(self *object.Self, args ...any) ([]any, error) {
		items := self.State()["items"].([]any)
		if len(items) == 0 {
			return []any{nil}, nil
		}
		last := items[len(items)-1]
		self.State()["items"] = items[:len(items)-1]
		return []any{last}, nil
	})
	declare.fn("size", nil, []any{"number"}, func(self *object.Self, args ...any) ([]any, error) {
		return []any{len(self.State()["items"].([]any))}, nil
	})
	return declare.err
}

// installMap declares the generic Map template with placeholders K and V.
// Keys must be comparable values.
func installMap(r *object.Registry, coll *object.Entity) error {
	m, err := r.CreateClass(ClassMap, nil, coll)
	if err != nil {
		return err
	}
	declare := declarer(m)

	declare.fn(object.ConstructorName, nil, nil, func(self *object.Self, args ...any) ([]any, error) {
		self.State()["entries"] = map[any]any{}
		return nil, nil
	})
	declare.fn("set", []any{"K", "V"}, nil, func(self *object.Self, args ...any) ([]any, error) {
		self.State()["entries"].(map[any]any)[args[0]] = args[1]
		return nil, nil
	})
	declare.fn("get", []any{"K"}, []any{"?V"}, func(self *object.Self, args ...any) ([]any, error) {
		v, ok := self.State()["entries"].(map[any]any)[args[0]]
		if !ok {
			return []any{nil}, nil
		}
		return []any{v}, nil
	})
	declare.fn("has", []any{"K"}, []any{"boolean"}, func(self *object.Self, args ...any) ([]any, error) {
		_, ok := self.State()["entries"].(map[any]any)[args[0]]
		return []any{ok}, nil
	})
	declare.fn("remove", []any{"K"}, []any{"boolean"}, func(self *object.Self, args ...any) ([]any, error) {
		entries := self.State()["entries"].(map[any]any)
		if _, ok := entries[args[0]]; !ok {
			return []any{false}, nil
		}
		delete(entries, args[0])
		return []any{true}, nil
	})
	declare.fn("size", nil, []any{"number"}, func(self *object.Self, args ...any) ([]any, error) {
		return []any{len(self.State()["entries"].(map[any]any))}, nil
	})
	return declare.err
}

// installStack declares the concrete Stack class.
func installStack(r *object.Registry, coll *object.Entity) error {
	s, err := r.CreateClass(ClassStack, nil, coll)
	if err != nil {
		return err
	}
	declare := declarer(s)

	declare.fn(object.ConstructorName, nil, nil, func(self *object.Self, args ...any) ([]any, error) {
		self.State()["items"] = []any{}
		return nil, nil
	})
	declare.fn("push", []any{"any"}, nil, func(self *object.Self, args ...any) ([]any, error) {
		self.State()["items"] = append(self.State()["items"].([]any), args[0])
		return nil, nil
	})
	declare.fn("pop", nil, []any{"?any"}, func(self *object.Self, args ...any) ([]any, error) {
		items := self.State()["items"].([]any)
		if len(items) == 0 {
			return []any{nil}, nil
		}
		top := items[len(items)-1]
		self.State()["items"] = items[:len(items)-1]
		return []any{top}, nil
	})
	declare.fn("peek", nil, []any{"?any"}, func(self *object.Self, args ...any) ([]any, error) {
		items := self.State()["items"].([]any)
		if len(items) == 0 {
			return []any{nil}, nil
		}
		return []any{items[len(items)-1]}, nil
	})
	declare.fn("size", nil, []any{"number"}, func(self *object.Self, args ...any) ([]any, error) {
		return []any{len(self.State()["items"].([]any))}, nil
	})
	return declare.err
}

// llnode is one link of a LinkedList's private chain.
type llnode struct {
	value any
	next  *llnode
}

// installLinkedList declares the concrete LinkedList class.
func installLinkedList(r *object.Registry, coll *object.Entity) error {
	ll, err := r.CreateClass(ClassLinkedList, nil, coll)
	if err != nil {
		return err
	}
	declare := declarer(ll)

	declare.fn(object.ConstructorName, nil, nil, func(self *object.Self, args ...any) ([]any, error) {
		self.State()["count"] = 0
		return nil, nil
	})
	declare.fn("push", []any{"any"}, nil, func(self *object.Self, args ...any) ([]any, error) {
		n := &llnode{value: args[0]}
		state := self.State()
		if tail, ok := state["tail"].(*llnode); ok && tail != nil {
			tail.next = n
		} else {
			state["head"] = n
		}
		state["tail"] = n
		state["count"] = state["count"].(int) + 1
		return nil, nil
	})
	declare.fn("shift", nil, []any{"?any"}, func(self *object.Self, args ...any) ([]any, error) {
		state := self.State()
		head, ok := state["head"].(*llnode)
		if !ok || head == nil {
			return []any{nil}, nil
		}
		state["head"] = head.next
		if head.next == nil {
			state["tail"] = (*llnode)(nil)
		}
		state["count"] = state["count"].(int) - 1
		return []any{head.value}, nil
	})
	declare.fn("first", nil, []any{"?any"}, func(self *object.Self, args ...any) ([]any, error) {
		if head, ok := self.State()["head"].(*llnode); ok && head != nil {
			return []any{head.value}, nil
		}
		return []any{nil}, nil
	})
	declare.fn("last", nil, []any{"?any"}, func(self *object.Self, args ...any) ([]any, error) {
		if tail, ok := self.State()["tail"].(*llnode); ok && tail != nil {
			return []any{tail.value}, nil
		}
		return []any{nil}, nil
	})
	declare.fn("size", nil, []any{"number"}, func(self *object.Self, args ...any) ([]any, error) {
		return []any{self.State()["count"].(int)}, nil
	})
	return declare.err
}

// declFns accumulates declaration errors so each class reads as a flat list
// of function definitions.
type declFns struct {
	e   *object.Entity
	err error
}

func declarer(e *object.Entity) *declFns {
	return &declFns{e: e}
}

// fn declares one function with optional parameter and return declarations.
func (d *declFns) fn(name string, params, returns []any, body object.Body) {
	if d.err != nil {
		return
	}
	if params != nil {
		if d.err = d.e.DeclareParams(params...); d.err != nil {
			return
		}
	}
	if returns != nil {
		if d.err = d.e.DeclareReturns(returns...); d.err != nil {
			return
		}
	}
	d.err = d.e.DeclareFunction(name, body)
}

// asIndex normalizes a validated number argument to a Go int.
func asIndex(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return -1
	}
}
