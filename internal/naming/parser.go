package naming

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// ParsedName holds the structured result of asset filename parsing.
type ParsedName struct {
	Stem      string // filename without extension, e.g. "Mega Man-02"
	Base      string // stem with the numeric duplicate suffix stripped, e.g. "Mega Man"
	Suffix    int    // numeric duplicate suffix; meaningful only when HasSuffix
	HasSuffix bool
	Ext       string // extension as found on disk, e.g. ".PNG"
}

// reDupSuffix matches the "-01", "-02" duplicate suffix frontends append to
// repeated downloads of the same asset.
var reDupSuffix = regexp.MustCompile(`^(.*)-([0-9]+)$`)

// ParseFilename splits an asset filename (no directory) into its stem, base
// name, duplicate suffix, and extension.
func ParseFilename(basename string) ParsedName {
	ext := filepath.Ext(basename)
	stem := strings.TrimSuffix(basename, ext)

	p := ParsedName{Stem: stem, Base: stem, Ext: ext}
	m := reDupSuffix.FindStringSubmatch(stem)
	if m == nil || m[1] == "" {
		return p
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		// Suffix too large for an int; treat the whole stem as the name.
		return p
	}
	p.Base = m[1]
	p.Suffix = n
	p.HasSuffix = true
	return p
}

// StripSuffix removes a trailing "-<digits>" suffix from name.
func StripSuffix(name string) string {
	m := reDupSuffix.FindStringSubmatch(name)
	if m == nil || m[1] == "" {
		return name
	}
	return m[1]
}

// Stem returns the last path element of p without its extension. Both "/"
// and "\" are accepted as separators, since catalog exports carry Windows
// paths regardless of the host OS.
func Stem(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	return strings.TrimSuffix(p, filepath.Ext(p))
}
