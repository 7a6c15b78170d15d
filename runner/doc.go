// Package runner glues the pieces into a running bot: it consumes raw lines,
// classifies them into events, routes each event through the dispatch engine
// with the all quantifier, and forwards every produced command to the
// transport in order. One runner drives exactly one bot instance and
// processes its events strictly sequentially, which is what gives instance
// state its no-locking guarantee.
package runner
