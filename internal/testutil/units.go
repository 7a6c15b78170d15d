package testutil

import (
	"strings"

	"github.com/sveinns/rolebot/core"
)

// Always returns a guard that matches every event.
func Always() core.Guard {
	return func(core.Event) (core.Captures, bool) { return nil, true }
}

// Never returns a guard that matches no event.
func Never() core.Guard {
	return func(core.Event) (core.Captures, bool) { return nil, false }
}

// Contains returns a guard matching message events whose text contains sub.
func Contains(sub string) core.Guard {
	return func(ev core.Event) (core.Captures, bool) {
		msg, ok := ev.(core.MessageEvent)
		if !ok {
			return nil, false
		}
		return nil, strings.Contains(msg.Text, sub)
	}
}

// Recorder collects handler invocation labels so tests can assert order.
type Recorder struct {
	Calls []string
}

// Handler returns a HandlerFunc that records label on invocation and replies
// with the given command text, or stays silent when reply is empty.
func (r *Recorder) Handler(label, reply string) core.HandlerFunc {
	return func(*core.HandlerContext) (*core.Command, error) {
		r.Calls = append(r.Calls, label)
		if reply == "" {
			return nil, nil
		}
		return core.Commandf("%s", reply), nil
	}
}

// Silent returns a HandlerFunc that produces no command and no error.
func Silent() core.HandlerFunc {
	return func(*core.HandlerContext) (*core.Command, error) { return nil, nil }
}

// Reply returns a HandlerFunc that always answers with text.
func Reply(text string) core.HandlerFunc {
	return func(*core.HandlerContext) (*core.Command, error) {
		return core.Commandf("%s", text), nil
	}
}

// GroupedUnit declares a single-handler unit with one guarded on-message
// candidate, the most common test fixture shape.
func GroupedUnit(name string, g core.Guard, fn core.HandlerFunc) *core.Unit {
	return core.NewUnit(name).Guarded(core.HandlerMessage, g, fn).Build()
}

// ExclusiveUnit declares a single-handler unit claiming handler exclusively.
func ExclusiveUnit(name, handler string, fn core.HandlerFunc) *core.Unit {
	return core.NewUnit(name).Exclusive(handler, fn).Build()
}
