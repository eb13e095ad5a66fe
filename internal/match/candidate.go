package match

import "sort"

// Candidate is one canonical name scored against an asset.
type Candidate struct {
	Name      string
	Score     float64
	Preferred bool // accepted by the engine's RegionPredicate
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}
	return c[i].Name < c[j].Name
}

// Best returns the winning candidate: the top preferred candidate when any
// exists, otherwise the top candidate overall. The list must be sorted.
func (c CandidateList) Best() (Candidate, bool) {
	if len(c) == 0 {
		return Candidate{}, false
	}
	for _, cand := range c {
		if cand.Preferred {
			return cand, true
		}
	}
	return c[0], true
}

func (c CandidateList) sorted() CandidateList {
	sort.Sort(c)
	return c
}
