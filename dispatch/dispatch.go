package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sveinns/rolebot/core"
	"github.com/sveinns/rolebot/logging"
)

// Quantifier selects how many matching candidates are invoked for one event.
// It is an explicit argument at every call site, never implicit in the
// handler name.
type Quantifier int

const (
	// All invokes every matching candidate in declaration order. Zero
	// matches is not an error.
	All Quantifier = iota
	// AnyRequired invokes every matching candidate but fails with
	// ErrExhausted if none matched.
	AnyRequired
	// First invokes at most the first matching candidate; guard evaluation
	// stops there. Zero matches yields an empty result, not an error.
	First
)

// String returns the quantifier's name.
func (q Quantifier) String() string {
	switch q {
	case All:
		return "all"
	case AnyRequired:
		return "any-required"
	case First:
		return "first"
	default:
		return "unknown"
	}
}

// ErrExhausted reports that an AnyRequired dispatch found no matching
// candidate. It is local to one event: the caller may log and continue.
var ErrExhausted = errors.New("no matching candidate")

// Options configures a dispatch engine.
type Options struct {
	// Logger receives per-dispatch diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Engine routes single events to the matching handler candidates of a bot
// instance. It is stateless apart from its logger and safe for concurrent
// use across instances; events for one instance must still be dispatched
// sequentially by their single owner.
type Engine struct {
	logger logging.Logger
}

// New constructs a dispatch engine with optional overrides.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Engine{logger: opts.Logger}
}

// WithLogger overrides the engine logger.
func WithLogger(l logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}

// Invoke routes ev to the candidates registered under name in the target's
// effective behavior set, applying quantifier q. It returns the non-nil
// commands produced by the invoked handlers, in invocation order.
//
// A missing handler table entry is treated exactly like an entry with zero
// matching candidates. A handler error aborts the remaining candidates for
// this name; side effects of earlier invocations are not rolled back.
func (e *Engine) Invoke(ctx context.Context, target core.Instance, name string, ev core.Event, q Quantifier) ([]core.Command, error) {
	start := time.Now()

	var candidates []core.HandlerDecl
	if entry, ok := target.Effective().Entry(name); ok {
		candidates = entry.Candidates
	}

	var out []core.Command
	matched := 0
	for _, cand := range candidates {
		caps, ok := cand.Matches(ev)
		if !ok {
			continue
		}
		matched++

		hc := core.NewHandlerContext(ctx, ev, caps, target.State().View(cand.Unit), target, e.logger)
		cmd, err := cand.Fn(hc)
		if err != nil {
			return out, fmt.Errorf("dispatch %s (%s): %w", name, cand.Source(), err)
		}
		if cmd != nil {
			out = append(out, *cmd)
		}
		if q == First {
			break
		}
	}

	if matched == 0 && q == AnyRequired {
		return nil, fmt.Errorf("dispatch %s: %w", name, ErrExhausted)
	}

	logging.LogDispatch(e.logger, name, q.String(), len(candidates), matched, len(out), time.Since(start))
	return out, nil
}
