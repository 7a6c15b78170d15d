// Package rolebot provides a high-level façade over the composition,
// dispatch and runtime packages, enabling one-call assembly of a composed
// bot. Most applications interact with this package by:
//  1. Creating a Bot via New() with the units it should compose
//  2. Feeding it protocol lines (HandleLine) or running it over a stream
//     transport (Run)
//  3. Optionally attaching more units to the running instance at any point
//
// The façade delegates to bot.NewType, bot.NewInstance and runner.New while
// keeping setup ergonomics concise. Defaults are safe for local development
// and testing; deployments typically supply a websocket transport and a
// structured logger.
package rolebot

import (
	"context"

	"github.com/sveinns/rolebot/bot"
	"github.com/sveinns/rolebot/core"
	"github.com/sveinns/rolebot/logging"
	"github.com/sveinns/rolebot/runner"
	"github.com/sveinns/rolebot/transport"
)

// Options configures the Bot façade.
type Options struct {
	// Units are composed into the bot type, in order.
	Units []*core.Unit
	// Own holds handlers defined directly on the bot type.
	Own []core.HandlerDecl
	// Transport delivers outbound commands. Defaults to an in-memory Pipe.
	Transport core.Transport
	// Classifier overrides the default IRC-style classifier.
	Classifier core.Classifier
	// Logger receives diagnostics from every component. Defaults to NoOp.
	Logger logging.Logger
}

// WithUnits composes units into the bot type.
func WithUnits(units ...*core.Unit) func(o *Options) {
	return func(o *Options) { o.Units = append(o.Units, units...) }
}

// WithHandler defines an exclusive handler on the bot type body.
func WithHandler(name string, fn core.HandlerFunc) func(o *Options) {
	return func(o *Options) {
		o.Own = append(o.Own, core.HandlerDecl{Name: name, Kind: core.Exclusive, Fn: fn})
	}
}

// WithTransport sets the outbound transport.
func WithTransport(t core.Transport) func(o *Options) {
	return func(o *Options) { o.Transport = t }
}

// WithClassifier sets the line classifier.
func WithClassifier(c core.Classifier) func(o *Options) {
	return func(o *Options) { o.Classifier = c }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}

// Bot bundles a composed type, one instance of it and the runner driving
// that instance.
type Bot struct {
	typ      *bot.Type
	instance *bot.Instance
	runner   *runner.Runner
}

// New composes a bot type from the configured units, constructs one instance
// and wires a runner around it. Composition errors (conflicts, unsatisfied
// requirements) surface here, before anything runs.
func New(name string, optFns ...func(o *Options)) (*Bot, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Transport == nil {
		opts.Transport = transport.NewPipe()
	}

	typ, err := bot.NewType(name, bot.Does(opts.Units...), func(c *bot.Config) { c.Own = opts.Own })
	if err != nil {
		return nil, err
	}
	instance := bot.NewInstance(typ)

	ropts := []func(*runner.Options){runner.WithLogger(opts.Logger)}
	if opts.Classifier != nil {
		ropts = append(ropts, runner.WithClassifier(opts.Classifier))
	}
	return &Bot{
		typ:      typ,
		instance: instance,
		runner:   runner.New(instance, opts.Transport, ropts...),
	}, nil
}

// Type returns the composed bot type.
func (b *Bot) Type() *bot.Type { return b.typ }

// Instance returns the running instance.
func (b *Bot) Instance() *bot.Instance { return b.instance }

// Runner returns the runner driving the instance.
func (b *Bot) Runner() *runner.Runner { return b.runner }

// Attach mixes additional units into the running instance only.
func (b *Bot) Attach(units ...*core.Unit) error { return b.instance.Attach(units...) }

// HandleLine classifies and processes one raw protocol line.
func (b *Bot) HandleLine(ctx context.Context, raw string) error {
	return b.runner.HandleLine(ctx, raw)
}

// Run processes the transport's line stream until ctx ends or the stream
// closes. The transport must implement core.LineSource.
func (b *Bot) Run(ctx context.Context) error { return b.runner.Run(ctx) }
