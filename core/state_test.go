package core

import "testing"

func TestState_ScopedFields(t *testing.T) {
	fields := []ScopedField{
		{Unit: "karma", Name: "scores", Init: func() any { return map[string]int{} }},
		{Unit: "oping", Name: "scores", Init: func() any { return 42 }},
	}
	s := NewState(fields)

	// Same field name in two units must not collide.
	if _, ok := s.View("karma").Get("scores").(map[string]int); !ok {
		t.Fatalf("karma scores wrong type: %T", s.View("karma").Get("scores"))
	}
	if v := s.View("oping").Get("scores"); v != 42 {
		t.Fatalf("oping scores = %v", v)
	}
}

func TestState_ExtendPreservesValues(t *testing.T) {
	s := NewState([]ScopedField{{Unit: "u", Name: "n", Init: func() any { return 1 }}})
	s.View("u").Set("n", 99)

	s.Extend([]ScopedField{
		{Unit: "u", Name: "n", Init: func() any { return 1 }},
		{Unit: "u", Name: "fresh", Init: func() any { return "hi" }},
	})

	if v := s.View("u").Get("n"); v != 99 {
		t.Fatalf("existing value reset: %v", v)
	}
	if v := s.View("u").Get("fresh"); v != "hi" {
		t.Fatalf("new field not initialized: %v", v)
	}
}

func TestStateView_LazyWrite(t *testing.T) {
	s := State{}
	v := s.View("ghost")
	if got := v.Get("x"); got != nil {
		t.Fatalf("unset field should read nil, got %v", got)
	}
	v.Set("x", "y")
	if got := v.Get("x"); got != "y" {
		t.Fatalf("got %v", got)
	}
}

func TestState_NilInitializer(t *testing.T) {
	s := NewState([]ScopedField{{Unit: "u", Name: "bare"}})
	scope, ok := s["u"]
	if !ok {
		t.Fatal("scope missing")
	}
	if _, ok := scope["bare"]; !ok {
		t.Fatal("field slot missing")
	}
}
