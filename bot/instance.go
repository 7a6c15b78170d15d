package bot

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sveinns/rolebot/compose"
	"github.com/sveinns/rolebot/core"
)

var (
	// ErrInstanceClosed is returned by Attach after Close.
	ErrInstanceClosed = errors.New("bot: instance is closed")
	// ErrNoUnits is returned by Attach when called without units.
	ErrNoUnits = errors.New("bot: attach requires at least one unit")
)

// Instance is one running bot bound to a Type, typically per connection or
// session. It owns a private field State and an append-only overlay of units
// attached at runtime. Instances are single-owner: exactly one logical
// session drives an instance, events are processed to completion one at a
// time, and no locking is used for instance state.
type Instance struct {
	id        string
	typ       *Type
	effective *core.BehaviorSet
	state     core.State
	closed    bool
}

// NewInstance creates a fresh instance of typ with an empty overlay and
// field storage initialized from the type's layout.
func NewInstance(typ *Type) *Instance {
	return &Instance{
		id:        uuid.NewString(),
		typ:       typ,
		effective: typ.Behavior(),
		state:     core.NewState(typ.Behavior().Fields()),
	}
}

// ID returns the instance's unique identifier.
func (in *Instance) ID() string { return in.id }

// Type returns the shared template this instance was constructed from.
func (in *Instance) Type() *Type { return in.typ }

// Effective returns the instance's current effective behavior set: the type
// behavior overlaid with every unit attached so far.
func (in *Instance) Effective() *core.BehaviorSet { return in.effective }

// State returns the instance's private field storage.
func (in *Instance) State() core.State { return in.state }

// Extended reports whether any units have been attached since construction.
func (in *Instance) Extended() bool { return in.effective != in.typ.Behavior() }

// Close finalizes the instance; further Attach calls fail. Dispatching to a
// closed instance is the owner's concern, not enforced here.
func (in *Instance) Close() { in.closed = true }

// Closed reports whether Close has been called.
func (in *Instance) Closed() bool { return in.closed }

// Attach composes units onto this instance's effective behavior: the runtime
// mixin operation. The same composition rules apply as at definition time,
// scoped to this one instance: conflicts and unsatisfied requirements fail
// the attach atomically, leaving the instance unchanged.
//
// Exclusive handler names attached here override same-named handlers already
// present, from the type body included: last attached wins. Grouped names
// append their candidates after the existing ones, so earlier guarded
// variants stay reachable. Re-attaching a unit appends its candidates again;
// attach is deliberately not idempotent for grouped handlers.
func (in *Instance) Attach(units ...*core.Unit) error {
	if in.closed {
		return ErrInstanceClosed
	}
	if len(units) == 0 {
		return ErrNoUnits
	}

	set, err := compose.Compose(units, compose.WithBase(in.effective))
	if err != nil {
		return err
	}

	// Commit point: swap the effective set and grow storage for any fields
	// the new units introduced. Existing field values are preserved.
	in.effective = set
	in.state.Extend(set.Fields())
	return nil
}

var _ core.Instance = (*Instance)(nil)
