// Package planner turns reconciliation results into filesystem actions.
// Each matched, redundant or unmatched asset yields exactly one Action;
// nothing here touches the disk.
//
// Files:
//   - types.go: Action, Kind, Purpose, Plan
//   - planner.go: Layout and the per-asset decision functions
package planner
