// Package workflow contains the composition primitives for building
// multi-stage pipelines over shared state. The package focuses on three
// concerns:
//
//  1. Base identity plumbing (BaseNode)
//  2. The atomic unit of work (Stage) bridging shared state and collaborators
//  3. Concrete coordination patterns (Sequential, Parallel, Loop)
//
// Design principles:
//   - Minimal hidden global state; explicit wiring via core.RunContext
//   - Composability; nodes nest arbitrarily into trees of groups
//   - Fail-fast sequential/loop semantics, join-then-aggregate parallel semantics
//   - Assembly-time validation; misconfigured trees are rejected before a run
//
// Execution model:
//   - A node's Run receives a *core.RunContext shared by the whole tree
//   - Composite nodes (sequential / parallel / loop) coordinate child Runs
//   - Stages call external collaborators and write one output key each
//
// Retry is deliberately absent from this package: the coordinator is the sole
// retry authority, applied at whole-pipeline granularity.
package workflow
