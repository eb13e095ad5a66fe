package report

import (
	"github.com/backmassage/mediamatch/internal/match"
	"github.com/backmassage/mediamatch/internal/planner"
)

// Stats tracks aggregate counters across a run.
type Stats struct {
	CanonicalFound int
	CatalogEntries int
	AssetsFound    int
	Buckets        int

	DuplicatesRemoved int
	DuplicatesSkipped int // removal disabled
	Conflicts         int

	MatchedCatalog int
	MatchedExact   int
	MatchedFuzzy   int
	Unmatched      int

	Copied     int
	Moved      int
	Renamed    int
	Relocated  int
	Collisions int

	Failed    int // file operations that failed
	Recovered int // every recovered error, including Failed
}

// Matched returns the number of matched assets across all methods.
func (s *Stats) Matched() int {
	return s.MatchedCatalog + s.MatchedExact + s.MatchedFuzzy
}

// RecordMatch counts m under its method.
func (s *Stats) RecordMatch(m match.Match) {
	switch m.Method {
	case match.MethodCatalog:
		s.MatchedCatalog++
	case match.MethodExact:
		s.MatchedExact++
	case match.MethodFuzzy:
		s.MatchedFuzzy++
	}
}

// RecordApplied counts an action the executor carried out (or, in dry-run
// mode, would have).
func (s *Stats) RecordApplied(a planner.Action) {
	switch {
	case a.Purpose == planner.PurposeDuplicate && a.Kind == planner.KindDelete:
		s.DuplicatesRemoved++
	case a.Purpose == planner.PurposeUnmatched && a.Kind == planner.KindMove:
		s.Relocated++
	case a.Kind == planner.KindCopy:
		s.Copied++
	case a.Kind == planner.KindMove:
		s.Moved++
	case a.Kind == planner.KindRename:
		s.Renamed++
	}
}

// RecordSkipped counts a skipped action. collision reports whether it was
// skipped because another asset claimed its destination.
func (s *Stats) RecordSkipped(a planner.Action, collision bool) {
	switch {
	case collision:
		s.Collisions++
	case a.Purpose == planner.PurposeDuplicate:
		s.DuplicatesSkipped++
	}
}

// RecordFailure counts a failed file operation.
func (s *Stats) RecordFailure() {
	s.Failed++
	s.Recovered++
}

// RecordRecovered counts a recovered error that was not a file operation.
func (s *Stats) RecordRecovered() { s.Recovered++ }
