package core

import "regexp"

// Captures holds the named values a guard bound from the event payload, e.g.
// a target nick extracted from the message text.
type Captures map[string]string

// Guard decides whether a grouped candidate matches an event, optionally
// binding captures from the payload. Guards must be pure: they are evaluated
// speculatively and possibly many times per event.
type Guard func(ev Event) (Captures, bool)

// MatchText returns a Guard that applies re to the text of message events.
// Named subexpressions of re become captures. Non-message events never match.
func MatchText(re *regexp.Regexp) Guard {
	return func(ev Event) (Captures, bool) {
		msg, ok := ev.(MessageEvent)
		if !ok {
			return nil, false
		}
		m := re.FindStringSubmatch(msg.Text)
		if m == nil {
			return nil, false
		}
		caps := Captures{}
		for i, name := range re.SubexpNames() {
			if name != "" && i < len(m) {
				caps[name] = m[i]
			}
		}
		return caps, true
	}
}

// HandlerKind distinguishes how declarations under one handler name combine
// during composition.
type HandlerKind int

const (
	// Grouped declarations carry a guard and merge into an ordered candidate
	// list with other grouped declarations of the same name.
	Grouped HandlerKind = iota
	// Exclusive declarations claim a handler name outright; a second
	// exclusive declaration from another unit is a composition conflict.
	Exclusive
)

// String returns the human-readable kind name.
func (k HandlerKind) String() string {
	switch k {
	case Grouped:
		return "grouped"
	case Exclusive:
		return "exclusive"
	default:
		return "unknown"
	}
}

// HandlerFunc is the body of a handler declaration. It receives the scoped
// execution context and returns an optional outbound Command.
type HandlerFunc func(hc *HandlerContext) (*Command, error)

// HandlerDecl is one handler contributed by a unit (or directly by a
// composing type). Exclusive declarations have no guard; grouped declarations
// normally carry one (a nil guard matches unconditionally).
type HandlerDecl struct {
	Name  string
	Kind  HandlerKind
	Guard Guard
	Fn    HandlerFunc
	// Unit is the owning unit's name, or empty for a declaration supplied
	// directly on a composing type. It also scopes the handler's state view.
	Unit string
}

// Matches reports whether the candidate accepts ev, with any bound captures.
func (d HandlerDecl) Matches(ev Event) (Captures, bool) {
	if d.Guard == nil {
		return nil, true
	}
	return d.Guard(ev)
}

// Source names the declaration's origin for diagnostics.
func (d HandlerDecl) Source() string {
	if d.Unit == "" {
		return "(type)"
	}
	return d.Unit
}

// Requirement names a handler a unit depends on but does not implement. It
// must be satisfied during composition by the composing type, a base type, or
// a sibling unit.
type Requirement struct {
	Name string
	// Unit is the declaring unit, filled in by the unit builder.
	Unit string
}

// FieldDecl declares one unit-scoped state field. Init produces the field's
// starting value and runs once per instance (and once more per runtime
// attachment introducing the field), so it may safely return mutable values
// such as maps.
type FieldDecl struct {
	Name string
	Init func() any
}

// Unit is a named, reusable bundle of state fields and handler declarations,
// optionally declaring required capabilities it does not itself implement.
// Units are templates: immutable once built, they own no instance state.
// Build one with NewUnit.
type Unit struct {
	name     string
	fields   []FieldDecl
	handlers []HandlerDecl
	requires []Requirement
}

// Name returns the unit's identity. It also scopes the unit's fields.
func (u *Unit) Name() string { return u.name }

// Fields returns the unit's field declarations in declaration order.
// The returned slice must not be modified.
func (u *Unit) Fields() []FieldDecl { return u.fields }

// Handlers returns the unit's handler declarations in declaration order.
// The returned slice must not be modified.
func (u *Unit) Handlers() []HandlerDecl { return u.handlers }

// Requires returns the unit's declared-but-unimplemented dependencies.
// The returned slice must not be modified.
func (u *Unit) Requires() []Requirement { return u.requires }

// UnitBuilder assembles a Unit fluently. Not safe for concurrent use; call
// Build exactly once.
//
//	unit := core.NewUnit("karma").
//	    Field("scores", func() any { return map[string]int{} }).
//	    Guarded(core.HandlerMessage, guard, handler).
//	    Build()
type UnitBuilder struct {
	unit Unit
}

// NewUnit starts building a unit with the given name.
func NewUnit(name string) *UnitBuilder {
	return &UnitBuilder{unit: Unit{name: name}}
}

// Field declares a unit-scoped state field (chainable).
func (b *UnitBuilder) Field(name string, init func() any) *UnitBuilder {
	b.unit.fields = append(b.unit.fields, FieldDecl{Name: name, Init: init})
	return b
}

// Guarded declares a candidate-grouped handler with a guard (chainable).
func (b *UnitBuilder) Guarded(handler string, g Guard, fn HandlerFunc) *UnitBuilder {
	b.unit.handlers = append(b.unit.handlers, HandlerDecl{
		Name:  handler,
		Kind:  Grouped,
		Guard: g,
		Fn:    fn,
		Unit:  b.unit.name,
	})
	return b
}

// Exclusive declares a sole handler claiming the name outright (chainable).
func (b *UnitBuilder) Exclusive(handler string, fn HandlerFunc) *UnitBuilder {
	b.unit.handlers = append(b.unit.handlers, HandlerDecl{
		Name: handler,
		Kind: Exclusive,
		Fn:   fn,
		Unit: b.unit.name,
	})
	return b
}

// Require declares a handler name this unit depends on but does not
// implement (chainable).
func (b *UnitBuilder) Require(handler string) *UnitBuilder {
	b.unit.requires = append(b.unit.requires, Requirement{Name: handler, Unit: b.unit.name})
	return b
}

// Build finalizes and returns the immutable unit.
func (b *UnitBuilder) Build() *Unit {
	u := b.unit
	return &u
}
