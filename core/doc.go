// Package core provides the foundational domain types and interfaces used by
// rolebot. It defines the core abstractions for:
//
//   - Events (immutable, classified inbound occurrences) and Commands
//     (opaque outbound protocol text)
//   - Units (named, reusable bundles of state fields and handler declarations)
//   - BehaviorSets (the validated result of composing units into one handler
//     table and field layout)
//   - Per-instance State storage with unit-scoped views
//   - HandlerContext (the scoped execution environment handed to handlers)
//   - Small collaborator interfaces for transports and line classifiers
//
// The package intentionally keeps implementation concerns (composition rules,
// dispatch, the bot runtime) out of scope; those live in the compose, dispatch,
// bot and runner packages and operate over the types defined here.
package core
