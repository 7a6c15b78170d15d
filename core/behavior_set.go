package core

// ScopedField is one slot in a composed field layout: a unit's field together
// with the unit scope it belongs to. Two units may declare same-named fields
// without collision because the scope is part of the slot identity.
type ScopedField struct {
	Unit string
	Name string
	Init func() any
}

// HandlerEntry is the resolved implementation list for one handler name in a
// behavior set. Exclusive entries hold exactly one candidate; grouped entries
// hold the merged, ordered candidate list from every contributing source.
type HandlerEntry struct {
	Name       string
	Exclusive  bool
	Candidates []HandlerDecl
}

// clone returns a deep-enough copy: the candidate slice is fresh so merges
// never alias a shared backing array.
func (e *HandlerEntry) clone() *HandlerEntry {
	c := &HandlerEntry{Name: e.Name, Exclusive: e.Exclusive}
	c.Candidates = append(c.Candidates, e.Candidates...)
	return c
}

// BehaviorSet is the validated result of composing units (and optionally a
// base set): a resolved field layout plus a handler table mapping each name
// to its ordered candidates. Behavior sets are immutable after composition
// and safe for concurrent reads; construct them with the compose package.
type BehaviorSet struct {
	fields []ScopedField
	table  map[string]*HandlerEntry
	names  []string // table keys in first-contribution order
}

// NewBehaviorSet builds a set from an already-resolved layout and entry list.
// Intended for the compose package and the runtime mixin engine; application
// code should go through compose.Compose.
func NewBehaviorSet(fields []ScopedField, entries []*HandlerEntry) *BehaviorSet {
	s := &BehaviorSet{
		fields: fields,
		table:  make(map[string]*HandlerEntry, len(entries)),
	}
	for _, e := range entries {
		if _, ok := s.table[e.Name]; !ok {
			s.names = append(s.names, e.Name)
		}
		s.table[e.Name] = e
	}
	return s
}

// Fields returns the resolved field layout. The slice must not be modified.
func (s *BehaviorSet) Fields() []ScopedField { return s.fields }

// Entry returns the handler entry for name, if any. The entry must be
// treated as read-only.
func (s *BehaviorSet) Entry(name string) (*HandlerEntry, bool) {
	e, ok := s.table[name]
	return e, ok
}

// Names returns the handler names in the table, in first-contribution order.
// The slice must not be modified.
func (s *BehaviorSet) Names() []string { return s.names }

// Entries returns cloned handler entries in first-contribution order, for
// callers that need to derive a new set (the runtime mixin engine).
func (s *BehaviorSet) Entries() []*HandlerEntry {
	out := make([]*HandlerEntry, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, s.table[n].clone())
	}
	return out
}
