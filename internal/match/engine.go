package match

import (
	"strings"

	"github.com/backmassage/mediamatch/internal/catalog"
	"github.com/backmassage/mediamatch/internal/naming"
	"github.com/backmassage/mediamatch/internal/scan"
)

// Method names how an asset was matched.
type Method string

const (
	MethodCatalog Method = "catalog"
	MethodExact   Method = "exact"
	MethodFuzzy   Method = "fuzzy"
)

// Match ties an asset file to its canonical name. Score is 100 for catalog
// and exact matches.
type Match struct {
	Asset     scan.AssetFile
	Canonical string
	Method    Method
	Score     float64
}

// RegionPredicate reports whether a canonical name belongs to the preferred
// region.
type RegionPredicate func(canonical string) bool

// USARegion prefers names tagged "(USA)" or "(U)".
func USARegion(canonical string) bool {
	return strings.Contains(canonical, "(USA)") || strings.Contains(canonical, "(U)")
}

// DefaultThreshold is used when Options.Threshold is zero.
const DefaultThreshold = 85

// Options configures an Engine.
type Options struct {
	Threshold int             // 0-100; zero selects DefaultThreshold
	Region    RegionPredicate // nil selects USARegion
}

// candidate holds the precomputed comparison forms of one canonical name.
type candidate struct {
	name      string
	norm      []rune
	core      []rune
	preferred bool
}

// Engine matches assets against a catalog and a canonical name set. It is
// immutable after construction and safe for concurrent use.
type Engine struct {
	catalog    catalog.Mapping
	canonical  *scan.CanonicalSet
	candidates []candidate
	threshold  float64
}

// NewEngine precomputes the normalized forms of every canonical name.
// Either source may be empty.
func NewEngine(m catalog.Mapping, canonical *scan.CanonicalSet, opts Options) *Engine {
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	region := opts.Region
	if region == nil {
		region = USARegion
	}
	e := &Engine{
		catalog:   m,
		canonical: canonical,
		threshold: float64(threshold),
	}
	for _, name := range canonical.Names() {
		norm := naming.Normalize(name)
		e.candidates = append(e.candidates, candidate{
			name:      name,
			norm:      []rune(norm),
			core:      []rune(naming.Core(norm)),
			preferred: region(name),
		})
	}
	return e
}

// Match resolves one asset. The second result is false when no method
// produced a canonical name.
func (e *Engine) Match(a scan.AssetFile) (Match, bool) {
	if canonical, ok := e.catalog.Lookup(a.Base); ok {
		return Match{Asset: a, Canonical: canonical, Method: MethodCatalog, Score: 100}, true
	}
	if e.canonical.Has(a.Base) {
		return Match{Asset: a, Canonical: a.Base, Method: MethodExact, Score: 100}, true
	}
	best, ok := e.Rank(a.Base).Best()
	if !ok {
		return Match{}, false
	}
	return Match{Asset: a, Canonical: best.Name, Method: MethodFuzzy, Score: best.Score}, true
}

// MatchAll resolves files in order, splitting them into matches and
// unmatched files.
func (e *Engine) MatchAll(files []scan.AssetFile) (matches []Match, unmatched []scan.AssetFile) {
	for _, f := range files {
		if m, ok := e.Match(f); ok {
			matches = append(matches, m)
		} else {
			unmatched = append(unmatched, f)
		}
	}
	return matches, unmatched
}

// Rank scores name against every canonical name and returns the candidates
// at or above the threshold, best first.
func (e *Engine) Rank(name string) CandidateList {
	norm := []rune(naming.Normalize(name))
	if len(norm) == 0 {
		return nil
	}
	core := []rune(naming.Core(string(norm)))

	var out CandidateList
	for _, c := range e.candidates {
		score := c.score(norm, core)
		if score >= e.threshold {
			out = append(out, Candidate{Name: c.name, Score: score, Preferred: c.preferred})
		}
	}
	return out.sorted()
}

// score is the best of the full ratio, the core ratio and the partial ratio
// of an asset's forms against c. Empty core forms are not compared.
func (c candidate) score(norm, core []rune) float64 {
	score := ratioRunes(norm, c.norm)
	if len(core) > 0 && len(c.core) > 0 {
		if s := ratioRunes(core, c.core); s > score {
			score = s
		}
	}
	if score < 100 {
		if s := partialRatioRunes(norm, c.norm); s > score {
			score = s
		}
	}
	return score
}
