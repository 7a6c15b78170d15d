// Package compose implements the composition engine: it merges behavior
// units (and optionally a base behavior set) into one validated
// core.BehaviorSet.
//
// Composition is all-or-nothing. Every conflict between exclusive handler
// declarations and every unsatisfied required capability is collected in a
// single pass and reported together in one *Error, so a failing composition
// is fully diagnosable without re-running it. No partial behavior set is ever
// produced.
//
// Precedence is fixed: declarations supplied directly on the composing type
// always win, unit declarations shadow same-named base declarations, and base
// declarations fill in everything else. Conflicts exist only between peers
// (two units, or two type-body declarations); there is no implicit winner by
// unit order.
package compose
