package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// multiFileExtensions mark the member of a directory-based ROM set that
// names it.
var multiFileExtensions = map[string]bool{
	".bin": true,
	".gdi": true,
}

// Canonical is one entry of the canonical ROM collection.
type Canonical struct {
	Name string
	Path string
}

// ScanCanonical enumerates the top-level entries of dir in lexicographic
// order. A file is one ROM named by its stem. A directory is one ROM when it
// holds a .bin or .gdi member; the first such member supplies the name.
// Hidden entries are ignored.
func ScanCanonical(dir string) ([]Canonical, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ScanError{Path: dir, Err: err}
	}
	var out []Canonical
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !e.IsDir() {
			out = append(out, Canonical{Name: strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())), Path: path})
			continue
		}
		if name, ok := multiFileName(path); ok {
			out = append(out, Canonical{Name: name, Path: path})
		}
	}
	return out, nil
}

// multiFileName returns the stem of the first .bin/.gdi file in dir.
func multiFileName(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if multiFileExtensions[strings.ToLower(ext)] {
			return strings.TrimSuffix(e.Name(), ext), true
		}
	}
	return "", false
}

// CanonicalSet is the deduplicated canonical name set of a run. Names that
// appear twice keep the path of the later entry.
type CanonicalSet struct {
	names []string
	paths map[string]string
}

// NewCanonicalSet indexes entries in order.
func NewCanonicalSet(entries []Canonical) *CanonicalSet {
	s := &CanonicalSet{paths: make(map[string]string, len(entries))}
	for _, c := range entries {
		if _, seen := s.paths[c.Name]; !seen {
			s.names = append(s.names, c.Name)
		}
		s.paths[c.Name] = c.Path
	}
	sort.Strings(s.names)
	return s
}

// Names returns every canonical name, sorted. The slice must not be modified.
func (s *CanonicalSet) Names() []string {
	if s == nil {
		return nil
	}
	return s.names
}

// Has reports whether name is a canonical name.
func (s *CanonicalSet) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.paths[name]
	return ok
}

// Path returns the source of a canonical name.
func (s *CanonicalSet) Path(name string) string {
	if s == nil {
		return ""
	}
	return s.paths[name]
}

// Len returns the number of distinct canonical names.
func (s *CanonicalSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}
