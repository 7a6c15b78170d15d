package core

// State is per-instance field storage, keyed by owning unit name and then
// field name. Unit scoping means two units with same-named fields never
// collide. State is owned by exactly one instance and accessed only from that
// instance's processing turn, so it carries no locking.
type State map[string]map[string]any

// NewState allocates storage for a composed field layout, running each
// field's initializer.
func NewState(fields []ScopedField) State {
	s := State{}
	s.Extend(fields)
	return s
}

// Extend adds slots for layout fields not yet present. Existing values are
// kept untouched, so attaching more units (or re-attaching one) never resets
// state a unit already accumulated.
func (s State) Extend(fields []ScopedField) {
	for _, f := range fields {
		scope, ok := s[f.Unit]
		if !ok {
			scope = map[string]any{}
			s[f.Unit] = scope
		}
		if _, ok := scope[f.Name]; ok {
			continue
		}
		if f.Init != nil {
			scope[f.Name] = f.Init()
		} else {
			scope[f.Name] = nil
		}
	}
}

// View scopes the state to one unit's fields. The empty unit name is the
// scope of handlers declared directly on a composing type.
func (s State) View(unit string) StateView {
	return StateView{unit: unit, state: s}
}

// StateView is a handler's window onto its declaring unit's fields. Reads of
// undeclared fields return nil; writes create the field lazily.
type StateView struct {
	unit  string
	state State
}

// Unit returns the scope this view reads and writes.
func (v StateView) Unit() string { return v.unit }

// Get returns the current value of field, or nil if unset.
func (v StateView) Get(field string) any {
	scope, ok := v.state[v.unit]
	if !ok {
		return nil
	}
	return scope[field]
}

// Set stores val under field in this view's scope.
func (v StateView) Set(field string, val any) {
	scope, ok := v.state[v.unit]
	if !ok {
		scope = map[string]any{}
		v.state[v.unit] = scope
	}
	scope[field] = val
}
