package core

import (
	"context"

	"github.com/sveinns/rolebot/logging"
)

// Instance is the view of a running bot instance the core hands to handlers
// and the dispatch engine. The bot package provides the concrete type; the
// interface exists here so handlers can self-modify (runtime mixin) and
// redispatch without importing the bot package.
type Instance interface {
	// ID returns the instance's unique identifier.
	ID() string

	// Attach composes additional units onto this instance only (runtime
	// mixin). Fails atomically on composition conflicts or unsatisfied
	// requirements.
	Attach(units ...*Unit) error

	// Effective returns the instance's current effective behavior set
	// (type behavior plus any attached overlay).
	Effective() *BehaviorSet

	// State returns the instance's private field storage.
	State() State
}

// HandlerContext carries everything a single handler invocation may touch:
// the event, guard captures, the declaring unit's state view, the instance
// handle and a logger. A fresh context is built per invocation.
type HandlerContext struct {
	// Context is the dispatch call's context, for handlers that fan out.
	Context context.Context
	// Event is the occurrence being dispatched.
	Event Event
	// Captures holds values bound by the matching guard, if any.
	Captures Captures

	state  StateView
	self   Instance
	logger logging.Logger
}

// NewHandlerContext assembles a handler context. A nil logger is replaced by
// a no-op implementation.
func NewHandlerContext(ctx context.Context, ev Event, caps Captures, state StateView, self Instance, logger logging.Logger) *HandlerContext {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &HandlerContext{
		Context:  ctx,
		Event:    ev,
		Captures: caps,
		state:    state,
		self:     self,
		logger:   logger,
	}
}

// State returns the view onto the declaring unit's fields.
func (hc *HandlerContext) State() StateView { return hc.state }

// Self returns the instance this handler runs on.
func (hc *HandlerContext) Self() Instance { return hc.self }

// Logger returns the dispatch logger.
func (hc *HandlerContext) Logger() logging.Logger { return hc.logger }

// Message returns the event as a MessageEvent, if it is one. Convenience for
// on-message handlers.
func (hc *HandlerContext) Message() (MessageEvent, bool) {
	msg, ok := hc.Event.(MessageEvent)
	return msg, ok
}
