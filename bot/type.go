package bot

import (
	"github.com/sveinns/rolebot/compose"
	"github.com/sveinns/rolebot/core"
)

// Config collects the ingredients of a bot type for NewType.
type Config struct {
	// Base is an optional parent type whose behavior the new type extends.
	Base *Type
	// Units are the behavior units composed into the type, in order.
	Units []*core.Unit
	// Own holds handlers defined directly on the type body; they always win
	// over same-named unit and base handlers.
	Own []core.HandlerDecl
}

// Does composes the given units into the type (chainable option).
func Does(units ...*core.Unit) func(c *Config) {
	return func(c *Config) { c.Units = append(c.Units, units...) }
}

// Extends sets the base type the new type inherits behavior from.
func Extends(base *Type) func(c *Config) {
	return func(c *Config) { c.Base = base }
}

// Handle defines an exclusive handler on the type body itself.
func Handle(name string, fn core.HandlerFunc) func(c *Config) {
	return func(c *Config) {
		c.Own = append(c.Own, core.HandlerDecl{Name: name, Kind: core.Exclusive, Fn: fn})
	}
}

// HandleGuarded defines a candidate-grouped handler on the type body itself.
func HandleGuarded(name string, g core.Guard, fn core.HandlerFunc) func(c *Config) {
	return func(c *Config) {
		c.Own = append(c.Own, core.HandlerDecl{Name: name, Kind: core.Grouped, Guard: g, Fn: fn})
	}
}

// Type is the static, shared template for bot instances: a name bound to a
// composed, validated behavior set. Types are immutable after NewType and
// safe to read concurrently; every instance of the type shares it.
type Type struct {
	name string
	set  *core.BehaviorSet
}

// NewType composes a bot type at definition time. Composition conflicts and
// unsatisfied requirements surface here as a *compose.Error, before any
// instance can exist.
func NewType(name string, optFns ...func(c *Config)) (*Type, error) {
	cfg := Config{}
	for _, fn := range optFns {
		fn(&cfg)
	}

	copts := []func(*compose.Options){compose.WithOwn(cfg.Own...)}
	if cfg.Base != nil {
		copts = append(copts, compose.WithBase(cfg.Base.set))
	}
	set, err := compose.Compose(cfg.Units, copts...)
	if err != nil {
		return nil, err
	}
	return &Type{name: name, set: set}, nil
}

// Name returns the type's name.
func (t *Type) Name() string { return t.name }

// Behavior returns the type's composed behavior set (read-only).
func (t *Type) Behavior() *core.BehaviorSet { return t.set }
