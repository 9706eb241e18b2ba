package object

import (
	"errors"
	"testing"
)

// attributeFixture builds a target class with a "work" function and an
// attribute class implementing IAttribute with the given interception body.
func attributeFixture(t *testing.T, r *Registry, intercept Body) (*Entity, *Instance) {
	t.Helper()

	target := mustClass(t, r, "Worker", nil)
	mustDeclare(t, target, "work", func(self *Self, args ...any) ([]any, error) {
		self.State()["worked"] = true
		return []any{"done"}, nil
	})

	attrClass := mustClass(t, r, "Guard", nil, r.Lookup(AttributeInterface))
	mustDeclare(t, attrClass, AttributeInvoke, intercept)
	attr, err := attrClass.New()
	if err != nil {
		t.Fatalf("New(Guard) error = %v", err)
	}
	return target, attr
}

func TestAttributeVeto(t *testing.T) {
	r := NewRegistry()
	target, attr := attributeFixture(t, r, func(self *Self, args ...any) ([]any, error) {
		return []any{false}, nil
	})
	if err := target.Attach("work", attr); err != nil {
		t.Fatalf("Attach error = %v", err)
	}

	inst, err := target.New()
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	out, err := inst.Call("work")
	if err != nil {
		t.Fatalf("Call(work) error = %v", err)
	}
	if out != nil {
		t.Errorf("vetoed call produced results %v, want none", out)
	}
	if _, worked := inst.state["worked"]; worked {
		t.Error("vetoed call ran the function body")
	}
}

func TestAttributeAllows(t *testing.T) {
	r := NewRegistry()
	var seen struct {
		name string
		args int
	}
	target, attr := attributeFixture(t, r, func(self *Self, args ...any) ([]any, error) {
		// args: target instance, private state, function name, call args...
		seen.name = args[2].(string)
		seen.args = len(args) - 3
		return nil, nil // no explicit veto allows the call
	})
	if err := target.Attach("work", attr); err != nil {
		t.Fatalf("Attach error = %v", err)
	}

	inst, err := target.New()
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	out, err := inst.Call("work", 1, 2)
	if err != nil {
		t.Fatalf("Call(work) error = %v", err)
	}
	if len(out) != 1 || out[0] != "done" {
		t.Errorf("allowed call = %v, want [done]", out)
	}
	if seen.name != "work" || seen.args != 2 {
		t.Errorf("interceptor saw (%q, %d args), want (work, 2 args)", seen.name, seen.args)
	}
}

func TestAttributesRunInAttachmentOrder(t *testing.T) {
	r := NewRegistry()
	var order []string

	target := mustClass(t, r, "Worker", nil)
	mustDeclare(t, target, "work", noop)

	attrClass := mustClass(t, r, "Tracer", nil, r.Lookup(AttributeInterface))
	mustDeclare(t, attrClass, ConstructorName, func(self *Self, args ...any) ([]any, error) {
		self.State()["label"] = args[0]
		return nil, nil
	})
	mustDeclare(t, attrClass, AttributeInvoke, func(self *Self, args ...any) ([]any, error) {
		order = append(order, self.State()["label"].(string))
		return nil, nil
	})

	first, err := attrClass.New("first")
	if err != nil {
		t.Fatalf("New(first) error = %v", err)
	}
	second, err := attrClass.New("second")
	if err != nil {
		t.Fatalf("New(second) error = %v", err)
	}
	if err := target.Attach("work", first); err != nil {
		t.Fatalf("Attach error = %v", err)
	}
	if err := target.Attach("work", second); err != nil {
		t.Fatalf("Attach error = %v", err)
	}

	inst, err := target.New()
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if _, err := inst.Call("work"); err != nil {
		t.Fatalf("Call(work) error = %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("interception order = %v, want [first second]", order)
	}
}

func TestAttachRejectsNonAttribute(t *testing.T) {
	r := NewRegistry()
	target := mustClass(t, r, "Worker", nil)
	mustDeclare(t, target, "work", noop)

	plain := mustClass(t, r, "Plain", nil)
	inst, err := plain.New()
	if err != nil {
		t.Fatalf("New error = %v", err)
	}

	if err := target.Attach("work", inst); !errors.Is(err, ErrNotAttribute) {
		t.Errorf("Attach(plain instance) error = %v, want ErrNotAttribute", err)
	}
	if err := target.Attach("missing", inst); !errors.Is(err, ErrUndefinedFunction) {
		t.Errorf("Attach to missing function error = %v, want ErrUndefinedFunction", err)
	}
}

func TestReplayQueueDefersVetoedCalls(t *testing.T) {
	r := NewRegistry()

	target := mustClass(t, r, "Worker", nil)
	mustDeclare(t, target, "work", func(self *Self, args ...any) ([]any, error) {
		n, _ := self.State()["runs"].(int)
		self.State()["runs"] = n + 1
		return nil, nil
	})

	queue := &ReplayQueue{}
	armed := true
	attrClass := mustClass(t, r, "Deferrer", nil, r.Lookup(AttributeInterface))
	mustDeclare(t, attrClass, AttributeInvoke, func(self *Self, args ...any) ([]any, error) {
		if !armed {
			return nil, nil
		}
		queue.Push(args[0].(*Instance), args[2].(string), args[3:])
		return []any{false}, nil
	})
	attr, err := attrClass.New()
	if err != nil {
		t.Fatalf("New(Deferrer) error = %v", err)
	}
	if err := target.Attach("work", attr); err != nil {
		t.Fatalf("Attach error = %v", err)
	}

	inst, err := target.New()
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if _, err := inst.Call("work"); err != nil {
		t.Fatalf("Call(work) error = %v", err)
	}
	if runs := inst.state["runs"]; runs != nil {
		t.Fatalf("vetoed call ran the body (runs = %v)", runs)
	}
	if queue.Len() != 1 {
		t.Fatalf("queue Len() = %d, want 1", queue.Len())
	}

	// Replay is caller-driven; disarm the veto and drain the queue.
	armed = false
	if err := queue.Replay(); err != nil {
		t.Fatalf("Replay error = %v", err)
	}
	if runs := inst.state["runs"]; runs != 1 {
		t.Errorf("runs after replay = %v, want 1", runs)
	}
	if queue.Len() != 0 {
		t.Errorf("queue Len() after replay = %d, want 0", queue.Len())
	}
}
