// Package core provides the foundational domain types, interfaces and
// execution context used by tripmesh. It defines the core abstractions for:
//
//   - Nodes (units of composable workflow work)
//   - SharedState (the run-scoped key/value medium stages communicate through)
//   - RunContext (scoped execution state passed down the workflow tree)
//   - The typed failure taxonomy surfaced by stages, groups and the coordinator
//
// The package intentionally keeps implementation concerns (composition
// primitives, coordination, concrete collaborators) out of scope, exposing
// small interfaces to enable custom nodes and extensions.
package core
