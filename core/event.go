package core

import "fmt"

// Handler names the built-in event variants are routed to. A classifier
// produces an Event; Event.Handler maps it to the handler table entry the
// dispatch engine consults.
const (
	HandlerJoin    = "on-join"
	HandlerMessage = "on-message"
)

// Event is the tagged union of inbound occurrences produced by a line
// classifier. The variant set is closed (JoinEvent, MessageEvent). Events are
// immutable values; each is consumed exactly once by dispatch.
type Event interface {
	// Handler returns the handler name this event is routed to.
	Handler() string

	isEvent()
}

// JoinEvent records a nick joining the channel the bot observes.
type JoinEvent struct {
	Nick string
}

// Handler returns the handler table name for join events.
func (JoinEvent) Handler() string { return HandlerJoin }

func (JoinEvent) isEvent() {}

// MessageEvent records a chat message from a sender.
type MessageEvent struct {
	Sender string
	Text   string
}

// Handler returns the handler table name for message events.
func (MessageEvent) Handler() string { return HandlerMessage }

func (MessageEvent) isEvent() {}

// Command is an outbound protocol instruction produced by a handler. The core
// treats it as opaque text; the transport collaborator decides how it reaches
// the wire. Handlers return zero or one Command per invocation.
type Command string

// String returns the raw command text.
func (c Command) String() string { return string(c) }

// Commandf builds a Command from a format string, returning a pointer so it
// can be used directly as a handler result.
func Commandf(format string, args ...any) *Command {
	c := Command(fmt.Sprintf(format, args...))
	return &c
}
