package compose

import (
	"github.com/sveinns/rolebot/core"
)

// Options configures a single composition.
type Options struct {
	// Base is an already-composed behavior set the units are layered onto:
	// the base type at definition time, or an instance's current effective
	// set during runtime mixin. Unit declarations shadow same-named
	// exclusive base declarations and append to grouped ones.
	Base *core.BehaviorSet

	// Own holds handler declarations supplied directly on the composing
	// type. They unconditionally win over unit and base declarations of the
	// same name.
	Own []core.HandlerDecl
}

// WithBase layers the composition onto an existing behavior set.
func WithBase(base *core.BehaviorSet) func(*Options) {
	return func(o *Options) { o.Base = base }
}

// WithOwn supplies handler declarations defined on the composing type itself.
func WithOwn(decls ...core.HandlerDecl) func(*Options) {
	return func(o *Options) { o.Own = append(o.Own, decls...) }
}

// Compose merges an ordered collection of behavior units (plus optional base
// set and type-body declarations) into one validated behavior set.
//
// The merge is all-or-nothing: on any conflict or unsatisfied requirement it
// returns a *Error carrying the complete diagnosis and no behavior set.
func Compose(units []*core.Unit, optFns ...func(*Options)) (*core.BehaviorSet, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	fields := collectFields(opts.Base, units)

	// Group every contributed declaration by handler name, preserving
	// first-contribution order across base, units and type body.
	var order []string
	seen := map[string]bool{}
	note := func(name string) {
		if !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}
	if opts.Base != nil {
		for _, name := range opts.Base.Names() {
			note(name)
		}
	}
	unitDecls := map[string][]core.HandlerDecl{}
	for _, u := range units {
		for _, d := range u.Handlers() {
			note(d.Name)
			unitDecls[d.Name] = append(unitDecls[d.Name], d)
		}
	}
	ownDecls := map[string][]core.HandlerDecl{}
	for _, d := range opts.Own {
		note(d.Name)
		d.Unit = "" // type-body declarations carry no unit scope
		ownDecls[d.Name] = append(ownDecls[d.Name], d)
	}

	cerr := &Error{}
	var entries []*core.HandlerEntry
	for _, name := range order {
		var base *core.HandlerEntry
		if opts.Base != nil {
			base, _ = opts.Base.Entry(name)
		}
		entry, conflict := resolve(name, base, unitDecls[name], ownDecls[name])
		if conflict != nil {
			cerr.Conflicts = append(cerr.Conflicts, *conflict)
			continue
		}
		entries = append(entries, entry)
	}

	// A requirement is satisfied by any contribution under that name: a
	// type-body declaration, an inherited base handler, or a sibling unit.
	for _, u := range units {
		for _, r := range u.Requires() {
			if !seen[r.Name] {
				cerr.Unsatisfied = append(cerr.Unsatisfied, r)
			}
		}
	}

	if !cerr.empty() {
		return nil, cerr
	}
	return core.NewBehaviorSet(fields, entries), nil
}

// collectFields unions the base layout with every unit's fields, verbatim and
// unit-scoped. Duplicate slots (re-attaching a unit already in the base) are
// skipped so layouts stay minimal.
func collectFields(base *core.BehaviorSet, units []*core.Unit) []core.ScopedField {
	type key struct{ unit, name string }
	have := map[key]bool{}
	var out []core.ScopedField
	add := func(f core.ScopedField) {
		k := key{f.Unit, f.Name}
		if have[k] {
			return
		}
		have[k] = true
		out = append(out, f)
	}
	if base != nil {
		for _, f := range base.Fields() {
			add(f)
		}
	}
	for _, u := range units {
		for _, f := range u.Fields() {
			add(core.ScopedField{Unit: u.Name(), Name: f.Name, Init: f.Init})
		}
	}
	return out
}

// resolve merges all declarations under one handler name according to the
// precedence rules: type body > units > base. It returns either a resolved
// entry or a conflict, never both.
func resolve(name string, base *core.HandlerEntry, fromUnits, own []core.HandlerDecl) (*core.HandlerEntry, *Conflict) {
	// Declarations on the composing type always win; everything else under
	// the name is discarded. Peer conflicts within the type body still apply.
	if len(own) > 0 {
		return resolvePeers(name, own, nil)
	}
	if len(fromUnits) > 0 {
		return resolvePeers(name, fromUnits, base)
	}
	return base, nil
}

// resolvePeers merges same-level declarations (all units, or all type-body)
// and layers the result onto the base entry beneath them.
func resolvePeers(name string, decls []core.HandlerDecl, base *core.HandlerEntry) (*core.HandlerEntry, *Conflict) {
	var exclusives, grouped []core.HandlerDecl
	for _, d := range decls {
		if d.Kind == core.Exclusive {
			exclusives = append(exclusives, d)
		} else {
			grouped = append(grouped, d)
		}
	}

	// Two exclusive claims, or an exclusive/grouped mixture, cannot be
	// merged: a handler name is exclusive or candidate-grouped, never both.
	if len(exclusives) > 1 || (len(exclusives) > 0 && len(grouped) > 0) {
		return nil, &Conflict{Handler: name, Sources: sources(decls, nil)}
	}

	if len(exclusives) == 1 {
		// An exclusive declaration shadows an exclusive base handler (the
		// later layer wins) but cannot coexist with a grouped one.
		if base != nil && !base.Exclusive && len(base.Candidates) > 0 {
			return nil, &Conflict{Handler: name, Sources: sources(decls, base)}
		}
		return &core.HandlerEntry{Name: name, Exclusive: true, Candidates: exclusives}, nil
	}

	// All grouped: append to the base candidate list so earlier layers stay
	// reachable, in contribution order.
	if base != nil && base.Exclusive {
		return nil, &Conflict{Handler: name, Sources: sources(decls, base)}
	}
	entry := &core.HandlerEntry{Name: name}
	if base != nil {
		entry.Candidates = append(entry.Candidates, base.Candidates...)
	}
	entry.Candidates = append(entry.Candidates, grouped...)
	return entry, nil
}

// sources lists the distinct origins of a set of declarations (plus an
// optional base entry) for conflict diagnostics, in contribution order.
func sources(decls []core.HandlerDecl, base *core.HandlerEntry) []string {
	seen := map[string]bool{}
	var out []string
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	if base != nil {
		for _, c := range base.Candidates {
			add(c.Source())
		}
	}
	for _, d := range decls {
		add(d.Source())
	}
	return out
}
