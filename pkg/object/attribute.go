package object

import "fmt"

// Attribute interception surface. Every registry declares the IAttribute
// interface at creation; attribute classes implement it and instances of
// them attach to class functions through Entity.Attach.
//
// OnInvoke receives the target instance, the target's private state, the
// intercepted function name, and the forwarded call arguments. Returning
// false vetoes the call; any other result, or none, lets it proceed.
const (
	AttributeInterface = "IAttribute"
	AttributeInvoke    = "OnInvoke"
)

// bootstrapAttribute declares the interception interface in a new registry.
func (r *Registry) bootstrapAttribute() {
	iface, err := r.CreateInterface(AttributeInterface)
	if err != nil {
		panic(fmt.Sprintf("object: bootstrap %s: %v", AttributeInterface, err))
	}
	if err := iface.DeclareFunction(AttributeInvoke, nil); err != nil {
		panic(fmt.Sprintf("object: bootstrap %s: %v", AttributeInvoke, err))
	}
	iface.Protect()
}

// DeferredCall is one vetoed call captured for later replay.
type DeferredCall struct {
	Target *Instance
	Name   string
	Args   []any
}

// ReplayQueue collects vetoed calls for caller-driven replay. The engine
// never schedules replays; the caller decides when Replay runs. Push copies
// the argument list, so queue entries stay valid after the pipeline's
// forwarded buffer is recycled.
type ReplayQueue struct {
	calls []DeferredCall
}

// Push enqueues a call for later replay.
func (q *ReplayQueue) Push(target *Instance, name string, args []any) {
	q.calls = append(q.calls, DeferredCall{
		Target: target,
		Name:   name,
		Args:   append([]any(nil), args...),
	})
}

// Len returns the number of queued calls.
func (q *ReplayQueue) Len() int { return len(q.calls) }

// Replay drains the queue in order, invoking each call on its target. It
// stops at the first error and leaves the remaining entries queued.
func (q *ReplayQueue) Replay() error {
	for len(q.calls) > 0 {
		c := q.calls[0]
		q.calls = q.calls[1:]
		if _, err := c.Target.Call(c.Name, c.Args...); err != nil {
			return err
		}
	}
	return nil
}
