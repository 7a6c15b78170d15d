// Package classify provides the default line classifier: a black-box mapping
// from raw IRC-style protocol lines to the typed events the core consumes.
// Lines it does not recognize are dropped before they reach dispatch.
package classify

import (
	"regexp"

	"github.com/sveinns/rolebot/core"
)

var (
	joinRE    = regexp.MustCompile(`^:(?P<nick>[^!\s]+)(?:![^\s]+)?\s+JOIN\b`)
	privmsgRE = regexp.MustCompile(`^:(?P<nick>[^!\s]+)(?:![^\s]+)?\s+PRIVMSG\s+\S+\s+:(?P<text>.*)$`)
)

// IRC recognizes the two line shapes the core consumes: JOIN and PRIVMSG.
// Everything else (numerics, PING, NOTICE, ...) is NoMatch; connection-level
// concerns like PING/PONG belong to the transport, not the event model.
type IRC struct{}

// NewIRC constructs the classifier.
func NewIRC() *IRC { return &IRC{} }

// Classify maps a raw line to an event. ok is false for unrecognized lines.
func (IRC) Classify(raw string) (core.Event, bool) {
	if m := privmsgRE.FindStringSubmatch(raw); m != nil {
		return core.MessageEvent{Sender: m[1], Text: m[2]}, true
	}
	if m := joinRE.FindStringSubmatch(raw); m != nil {
		return core.JoinEvent{Nick: m[1]}, true
	}
	return nil, false
}
