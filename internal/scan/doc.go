// Package scan enumerates the two collections a run reconciles: the asset
// collection (one subfolder per bucket, plus the reserved Root bucket for
// loose videos) and the canonical ROM collection. All enumeration is
// lexicographic so every later tie-break is deterministic.
package scan
