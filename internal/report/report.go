// Package report accumulates the outcome of a run and renders it: the
// summary appended to the processing log and the list of canonical names
// still missing from mandatory buckets.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/backmassage/mediamatch/internal/display"
	"github.com/backmassage/mediamatch/internal/match"
	"github.com/backmassage/mediamatch/internal/resolve"
	"github.com/backmassage/mediamatch/internal/scan"
)

// MaxListedConflicts caps the conflicts written to the summary.
const MaxListedConflicts = 20

const timestampLayout = "20060102_150405"

// LogFileName returns the processing log name for a run started at t.
func LogFileName(t time.Time) string {
	return "processing_log_" + t.Format(timestampLayout) + ".txt"
}

// MissingListName returns the missing-list file name for a run started at t.
func MissingListName(t time.Time) string {
	return "Missing_" + t.Format(timestampLayout) + ".txt"
}

// Header identifies a run in the rendered report.
type Header struct {
	RunID           string
	Started         time.Time
	Media           string
	Platform        string
	CatalogFile     string
	CanonicalDir    string
	PreferExtension string
	DryRun          bool
}

// Completeness is the coverage of one mandatory bucket: distinct canonical
// names matched in the bucket over the canonical collection size.
type Completeness struct {
	Bucket  string
	Matched int
	Total   int
	Missing []string
}

// Complete reports whether every canonical name has an asset in the bucket.
func (c Completeness) Complete() bool { return c.Matched >= c.Total }

// Report is the accumulated outcome of one run.
type Report struct {
	Header    Header
	Stats     Stats
	Conflicts []resolve.Conflict

	canonical *scan.CanonicalSet
	mandatory []string
	buckets   []string
	matched   map[string]map[string]bool // bucket -> canonical names matched
}

// New returns an empty Report. mandatory lists the buckets whose
// completeness is verified.
func New(h Header, canonical *scan.CanonicalSet, mandatory []string) *Report {
	return &Report{
		Header:    h,
		canonical: canonical,
		mandatory: mandatory,
		matched:   make(map[string]map[string]bool),
	}
}

// AddBucket records that bucket was processed.
func (r *Report) AddBucket(bucket string) {
	r.buckets = append(r.buckets, bucket)
	r.Stats.Buckets++
}

// AddMatch records a match for completeness and counts it.
func (r *Report) AddMatch(m match.Match) {
	r.Stats.RecordMatch(m)
	names, ok := r.matched[m.Asset.Bucket]
	if !ok {
		names = make(map[string]bool)
		r.matched[m.Asset.Bucket] = names
	}
	names[m.Canonical] = true
}

// AddConflict records an extension conflict.
func (r *Report) AddConflict(c resolve.Conflict) {
	r.Conflicts = append(r.Conflicts, c)
	r.Stats.Conflicts++
}

// Buckets returns the processed buckets in processing order.
func (r *Report) Buckets() []string { return r.buckets }

// Completeness evaluates every mandatory bucket that was processed. It is
// empty when no canonical collection was scanned.
func (r *Report) Completeness() []Completeness {
	total := r.canonical.Len()
	if total == 0 {
		return nil
	}
	var out []Completeness
	for _, bucket := range r.mandatory {
		if !r.processed(bucket) {
			continue
		}
		c := Completeness{Bucket: bucket, Total: total}
		for _, name := range r.canonical.Names() {
			if r.matched[bucket][name] {
				c.Matched++
			} else {
				c.Missing = append(c.Missing, name)
			}
		}
		out = append(out, c)
	}
	return out
}

// Incomplete reports whether any evaluated mandatory bucket is missing
// canonical names.
func (r *Report) Incomplete() bool {
	for _, c := range r.Completeness() {
		if !c.Complete() {
			return true
		}
	}
	return false
}

// WithoutAssets returns the canonical names no processed bucket matched,
// sorted.
func (r *Report) WithoutAssets() []string {
	var out []string
	for _, name := range r.canonical.Names() {
		found := false
		for _, names := range r.matched {
			if names[name] {
				found = true
				break
			}
		}
		if !found {
			out = append(out, name)
		}
	}
	return out
}

func (r *Report) processed(bucket string) bool {
	for _, b := range r.buckets {
		if b == bucket {
			return true
		}
	}
	return false
}

// WriteSummary renders the end-of-run summary.
func (r *Report) WriteSummary(w io.Writer) error {
	var b strings.Builder
	rule := strings.Repeat("=", 70)
	h := r.Header
	s := r.Stats

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "mediamatch %s report\n", h.Media)
	fmt.Fprintf(&b, "Run: %s\n", h.RunID)
	fmt.Fprintf(&b, "Started: %s\n", h.Started.Format("2006-01-02 15:04:05"))
	if h.DryRun {
		fmt.Fprintln(&b, "Mode: dry run (no files were changed)")
	}
	if h.CatalogFile != "" {
		fmt.Fprintf(&b, "Catalog: %s (%d mappings)\n", filepath.Base(h.CatalogFile), s.CatalogEntries)
	}
	if h.Platform != "" {
		fmt.Fprintf(&b, "Platform: %s\n", h.Platform)
	}
	if h.CanonicalDir != "" {
		fmt.Fprintf(&b, "ROM folder: %s (%d ROMs)\n", h.CanonicalDir, s.CanonicalFound)
	}

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "--- SUMMARY ---")
	fmt.Fprintf(&b, "Buckets processed: %d\n", s.Buckets)
	if len(r.Buckets()) > 0 {
		fmt.Fprintf(&b, "  %s\n", strings.Join(r.Buckets(), ", "))
	}
	fmt.Fprintf(&b, "Assets found: %d\n", s.AssetsFound)
	fmt.Fprintf(&b, "Duplicates removed: %d\n", s.DuplicatesRemoved)
	if s.DuplicatesSkipped > 0 {
		fmt.Fprintf(&b, "Duplicates left in place: %d\n", s.DuplicatesSkipped)
	}
	fmt.Fprintf(&b, "Matched: %d\n", s.Matched())
	fmt.Fprintf(&b, "  - via catalog: %d\n", s.MatchedCatalog)
	fmt.Fprintf(&b, "  - via exact name: %d\n", s.MatchedExact)
	fmt.Fprintf(&b, "  - via fuzzy matching: %d\n", s.MatchedFuzzy)
	fmt.Fprintf(&b, "Unmatched assets: %d\n", s.Unmatched)
	fmt.Fprintf(&b, "Files copied: %d, moved: %d, renamed: %d, relocated: %d\n", s.Copied, s.Moved, s.Renamed, s.Relocated)
	if s.Collisions > 0 {
		fmt.Fprintf(&b, "Skipped (destination already claimed): %d\n", s.Collisions)
	}
	fmt.Fprintf(&b, "Failed operations: %d\n", s.Failed)
	fmt.Fprintf(&b, "Recovered errors: %d\n", s.Recovered)

	if len(r.Conflicts) > 0 {
		fmt.Fprintln(&b, rule)
		fmt.Fprintln(&b, "--- EXTENSION CONFLICTS ---")
		fmt.Fprintf(&b, "Found %s with multiple file types\n", display.Plural(len(r.Conflicts), "asset"))
		if h.PreferExtension != "" {
			fmt.Fprintf(&b, "Preference: %s (kept when present)\n", h.PreferExtension)
		} else {
			fmt.Fprintln(&b, "No preference set (kept first alphabetically)")
		}
		for i, c := range r.Conflicts {
			if i == MaxListedConflicts {
				fmt.Fprintf(&b, "... and %d more conflicts\n", len(r.Conflicts)-MaxListedConflicts)
				break
			}
			fmt.Fprintf(&b, "[%s] %s: %s (kept %s)\n", c.Bucket, c.Base, strings.Join(c.Extensions, ", "), c.Chosen)
		}
	}

	if r.canonical.Len() > 0 {
		fmt.Fprintln(&b, rule)
		fmt.Fprintln(&b, "--- ROMS WITHOUT ASSETS ---")
		without := r.WithoutAssets()
		if len(without) == 0 {
			fmt.Fprintln(&b, "None - every ROM has at least one asset")
		}
		for _, name := range without {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}

	if comp := r.Completeness(); len(comp) > 0 {
		fmt.Fprintln(&b, rule)
		fmt.Fprintln(&b, "--- MANDATORY BUCKETS ---")
		for _, c := range comp {
			status := "OK"
			if !c.Complete() {
				status = "INCOMPLETE"
			}
			fmt.Fprintf(&b, "%-10s %s: %s\n", status, c.Bucket, display.FormatRatio(c.Matched, c.Total))
			if !c.Complete() {
				fmt.Fprintf(&b, "           missing: %d\n", len(c.Missing))
			}
		}
	}
	fmt.Fprintln(&b, rule)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteMissingList renders, per incomplete mandatory bucket, the canonical
// names that bucket lacks with their ROM paths, followed by the union of all
// missing names.
func (r *Report) WriteMissingList(w io.Writer) error {
	var b strings.Builder
	union := make(map[string]bool)
	fmt.Fprintf(&b, "Missing assets - run %s\n", r.Header.RunID)
	fmt.Fprintf(&b, "Generated: %s\n\n", r.Header.Started.Format("2006-01-02 15:04:05"))
	for _, c := range r.Completeness() {
		if c.Complete() {
			continue
		}
		fmt.Fprintf(&b, "%s: missing %d of %d\n", c.Bucket, len(c.Missing), c.Total)
		for _, name := range c.Missing {
			if path := r.canonical.Path(name); path != "" {
				fmt.Fprintf(&b, "  %s  [%s]\n", name, path)
			} else {
				fmt.Fprintf(&b, "  %s\n", name)
			}
			union[name] = true
		}
		fmt.Fprintln(&b)
	}
	names := make([]string, 0, len(union))
	for name := range union {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(&b, "Total missing: %d\n", len(names))
	for _, name := range names {
		fmt.Fprintln(&b, name)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ExportMissingList uploads the missing list into dir when any mandatory
// bucket is incomplete and returns its location; otherwise it returns "".
func (r *Report) ExportMissingList(ctx context.Context, fs afs.Service, dir string) (string, error) {
	if !r.Incomplete() {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.WriteMissingList(&buf); err != nil {
		return "", err
	}
	dest := filepath.Join(dir, MissingListName(r.Header.Started))
	if err := fs.Upload(ctx, dest, file.DefaultFileOsMode, &buf); err != nil {
		return "", errors.Wrapf(err, "writing %s", dest)
	}
	return dest, nil
}
