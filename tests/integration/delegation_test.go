// End-to-end tests for virtual dispatch and parent delegation across a
// four-level class chain.
package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/omen/pkg/object"
)

// vehicleChain declares Machine -> Vehicle -> Car -> SportsCar. Every level
// overrides describe and records a visit marker in the private state table.
func vehicleChain(t *testing.T) (*object.Registry, *object.Entity) {
	t.Helper()
	r := newRegistry(t)

	names := []string{"Machine", "Vehicle", "Car", "SportsCar"}
	var parent *object.Entity
	for _, name := range names {
		e := declareClass(t, r, name, parent)
		owner := name
		declareFn(t, e, "describe", func(self *object.Self, args ...any) ([]any, error) {
			self.State()[owner] = true
			return []any{owner}, nil
		})
		parent = e
	}

	leaf := parent
	declareFn(t, leaf, "init", func(self *object.Self, args ...any) ([]any, error) {
		self.State()["origin"] = self.Instance().ID()
		return nil, nil
	})
	return r, leaf
}

func TestDelegationWalksTheChain(t *testing.T) {
	_, leaf := vehicleChain(t)
	inst := newInstance(t, leaf)

	got := callOne(t, inst, "describe")
	assert.Equal(t, "SportsCar", got, "plain calls dispatch to the most derived override")

	res, err := inst.Parent().Call("describe")
	require.NoError(t, err)
	assert.Equal(t, "Car", res[0])

	res, err = inst.Parent().Parent().Call("describe")
	require.NoError(t, err)
	assert.Equal(t, "Vehicle", res[0])

	res, err = inst.Parent().Parent().Parent().Call("describe")
	require.NoError(t, err)
	assert.Equal(t, "Machine", res[0])

	_, err = inst.Parent().Parent().Parent().Parent().Call("describe")
	assert.ErrorIs(t, err, object.ErrUndefinedFunction, "delegating past the root finds nothing")
}

func TestDelegationSharesPrivateState(t *testing.T) {
	_, leaf := vehicleChain(t)
	inst := newInstance(t, leaf)

	_, err := inst.Call("describe")
	require.NoError(t, err)
	_, err = inst.Parent().Parent().Call("describe")
	require.NoError(t, err)

	// All overrides wrote into the same state table: the one owned by inst.
	self := inst.Parent()
	state := self.State()
	assert.Equal(t, inst.ID(), state["origin"], "constructor state survives delegation")
	assert.Equal(t, true, state["SportsCar"])
	assert.Equal(t, true, state["Vehicle"])
	_, carVisited := state["Car"]
	assert.False(t, carVisited, "Car's override never ran")
}

func TestDispatchFromBodiesStaysVirtual(t *testing.T) {
	r := newRegistry(t)

	base := declareClass(t, r, "Shape", nil)
	declareFn(t, base, "name", func(self *object.Self, args ...any) ([]any, error) {
		return []any{"shape"}, nil
	})
	declareFn(t, base, "label", func(self *object.Self, args ...any) ([]any, error) {
		// A call through self re-dispatches from the instance's class.
		res, err := self.Call("name")
		if err != nil {
			return nil, err
		}
		return []any{"a " + res[0].(string)}, nil
	})

	derived := declareClass(t, r, "Square", base)
	declareFn(t, derived, "name", func(self *object.Self, args ...any) ([]any, error) {
		return []any{"square"}, nil
	})

	inst := newInstance(t, derived)
	assert.Equal(t, "a square", callOne(t, inst, "label"))
}

func TestSuperChainsConstructors(t *testing.T) {
	r := newRegistry(t)

	animal := declareClass(t, r, "Animal", nil)
	declareFn(t, animal, "init", func(self *object.Self, args ...any) ([]any, error) {
		self.State()["alive"] = true
		return nil, nil
	})

	dog := declareClass(t, r, "Dog", animal)
	declareFn(t, dog, "init", func(self *object.Self, args ...any) ([]any, error) {
		if err := self.Super(); err != nil {
			return nil, err
		}
		self.State()["species"] = "dog"
		return nil, nil
	})

	inst := newInstance(t, dog)
	self := inst.Parent()
	assert.Equal(t, true, self.State()["alive"], "Super ran the parent constructor")
	assert.Equal(t, "dog", self.State()["species"])
}
