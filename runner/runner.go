package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/sveinns/rolebot/bot"
	"github.com/sveinns/rolebot/classify"
	"github.com/sveinns/rolebot/core"
	"github.com/sveinns/rolebot/dispatch"
	"github.com/sveinns/rolebot/logging"
)

// ErrNoLineSource is returned by Run when the transport cannot produce
// inbound lines. Such transports are driven via HandleLine instead.
var ErrNoLineSource = errors.New("runner: transport is not a line source")

// Options holds dependency overrides passed to New.
type Options struct {
	// Classifier turns raw lines into events. Defaults to the IRC-style
	// classifier from the classify package.
	Classifier core.Classifier
	// Logger receives runner and dispatch diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// WithClassifier overrides the line classifier.
func WithClassifier(c core.Classifier) func(o *Options) {
	return func(o *Options) { o.Classifier = c }
}

// WithLogger overrides the logger.
func WithLogger(l logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}

// Runner drives one bot instance over one transport. It is the single owner
// of its instance: all event processing happens on the caller's goroutine
// (HandleLine/HandleEvent) or the Run loop, one event to completion at a
// time, including any synchronous attach side effects a handler performs.
type Runner struct {
	instance   *bot.Instance
	transport  core.Transport
	classifier core.Classifier
	engine     *dispatch.Engine
	logger     logging.Logger
}

// New constructs a runner for instance over transport, with optional
// overrides.
func New(instance *bot.Instance, transport core.Transport, optFns ...func(o *Options)) *Runner {
	opts := Options{
		Classifier: classify.NewIRC(),
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Runner{
		instance:   instance,
		transport:  transport,
		classifier: opts.Classifier,
		engine:     dispatch.New(dispatch.WithLogger(opts.Logger)),
		logger:     opts.Logger,
	}
}

// Instance returns the bot instance this runner drives.
func (r *Runner) Instance() *bot.Instance { return r.instance }

// HandleLine classifies one raw protocol line and processes the resulting
// event. Unrecognized lines are dropped silently (debug-logged); they are
// never an error.
func (r *Runner) HandleLine(ctx context.Context, raw string) error {
	ev, ok := r.classifier.Classify(raw)
	if !ok {
		r.logger.Debug("Line dropped by classifier", "line", raw)
		return nil
	}
	return r.HandleEvent(ctx, ev)
}

// HandleEvent routes one event to the instance's handlers with the all
// quantifier and forwards every returned command to the transport in order.
func (r *Runner) HandleEvent(ctx context.Context, ev core.Event) error {
	cmds, err := r.engine.Invoke(ctx, r.instance, ev.Handler(), ev, dispatch.All)
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		if err := r.transport.Send(cmd); err != nil {
			return &sendError{fmt.Errorf("runner: send: %w", err)}
		}
	}
	return nil
}

// Run processes lines from the transport's inbound stream until ctx is done
// or the stream closes. Dispatch failures are local to one event: they are
// logged and the loop continues. Transport send failures terminate the run.
func (r *Runner) Run(ctx context.Context) error {
	src, ok := r.transport.(core.LineSource)
	if !ok {
		return ErrNoLineSource
	}
	for _, entry := range r.instance.Effective().Entries() {
		r.logger.Debug("Handler registered", "handler", entry.Name, "exclusive", entry.Exclusive, "candidates", len(entry.Candidates))
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-src.Lines():
			if !ok {
				return nil
			}
			if err := r.HandleLine(ctx, line); err != nil {
				var serr *sendError
				if errors.As(err, &serr) {
					return err
				}
				r.logger.Error("Event processing failed", "line", line, "error", err)
			}
		}
	}
}

type sendError struct{ err error }

func (e *sendError) Error() string { return e.err.Error() }
func (e *sendError) Unwrap() error { return e.err }
