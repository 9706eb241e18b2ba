// Package integration provides end-to-end tests that exercise the entity
// registry, dispatch, collections, namespaces, and catalog export together.
package integration

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/omen/pkg/collections"
	"github.com/mesh-intelligence/omen/pkg/object"
)

// newRegistry builds a registry with the collection classes installed.
func newRegistry(t *testing.T) *object.Registry {
	t.Helper()
	r := object.NewRegistry()
	require.NoError(t, collections.Install(r))
	return r
}

// declareClass creates a class and fails the test on error.
func declareClass(t *testing.T, r *object.Registry, name string, parent *object.Entity, ifaces ...*object.Entity) *object.Entity {
	t.Helper()
	e, err := r.CreateClass(name, parent, ifaces...)
	require.NoError(t, err, "create class %s", name)
	return e
}

// declareFn declares a function on an entity and fails the test on error.
func declareFn(t *testing.T, e *object.Entity, name string, body object.Body) {
	t.Helper()
	require.NoError(t, e.DeclareFunction(name, body), "declare %s.%s", e.Name(), name)
}

// newInstance constructs an instance and fails the test on error.
func newInstance(t *testing.T, e *object.Entity, args ...any) *object.Instance {
	t.Helper()
	inst, err := e.New(args...)
	require.NoError(t, err, "new %s", e.Name())
	return inst
}

// callOne invokes a function expected to return exactly one value.
func callOne(t *testing.T, inst *object.Instance, name string, args ...any) any {
	t.Helper()
	res, err := inst.Call(name, args...)
	require.NoError(t, err, "call %s", name)
	require.Len(t, res, 1, "call %s result arity", name)
	return res[0]
}
