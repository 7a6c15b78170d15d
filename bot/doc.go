// Package bot binds composed behavior to runnable bots. A Type is the static,
// shared template: a name plus the behavior set produced by composing units
// (and optionally a base type) at definition time. An Instance is one running
// bot: a reference to its immutable Type plus an instance-local, append-only
// overlay of units attached after construction.
//
// Instance.Attach is the runtime mixin engine. It re-runs composition against
// the instance's current effective behavior, scoped to that one instance, and
// commits atomically: a failed attach leaves the instance exactly as it was,
// and no attach ever affects the Type or sibling instances.
package bot
