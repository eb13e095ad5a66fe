// Package pipeline runs one reconciliation: it loads the match sources,
// then for each bucket in order scans, resolves duplicates and extension
// conflicts, matches, plans and applies the output actions, and finally
// writes the summary and the missing list.
//
// Files:
//   - context.go: RunContext, the per-run state, and ErrContextDirty
//   - runner.go: Runner, ProgressFunc, Run
//   - discover.go: bucket selection
//   - stats.go: folding executor results into report counters
package pipeline
