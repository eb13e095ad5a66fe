// Package organize places reconciled assets. The Organizer turns one
// bucket's matches, redundant variants and unmatched files into a
// planner.Plan, refusing destinations another asset already claimed. The
// Executor applies a plan through viant/afs; it is the only code in the
// module that writes to the asset or output trees.
package organize
