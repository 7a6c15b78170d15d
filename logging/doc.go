// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. It also offers a richer BotLogger with contextual
// helpers (component, instance) and domain specific helpers for dispatch and
// runtime mixin events.
package logging
