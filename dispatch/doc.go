// Package dispatch implements the quantified multi-candidate dispatch engine.
//
// Given an event, a target instance's effective behavior set and a handler
// name, the engine walks the name's ordered candidate list, evaluates each
// candidate's guard against the event and invokes the matches according to an
// explicit quantifier: All (every match, zero is fine), AnyRequired (every
// match, zero is an error) or First (at most the first match). Invocation
// order is always declaration order; the non-nil commands the handlers return
// are collected in that same order.
package dispatch
