package naming

import (
	"path/filepath"
	"regexp"
	"strings"
)

var sepReplacer = strings.NewReplacer("_", " ")

// sepsToSpaces replaces underscores with spaces.
func sepsToSpaces(s string) string { return sepReplacer.Replace(s) }

// collapseSpaces trims s and folds runs of whitespace into single spaces.
func collapseSpaces(s string) string { return strings.Join(strings.Fields(s), " ") }

// reBrackets matches square-bracket groups like [!] or [T+Eng].
var reBrackets = regexp.MustCompile(`\[[^\]]*\]`)

// reParens matches parenthetical groups like (USA) or (Rev 1).
var reParens = regexp.MustCompile(`\([^)]*\)`)

// Normalize returns the fuzzy-comparison form of a name: a recognized media
// extension is dropped, then the duplicate suffix, underscores become spaces,
// and whitespace is collapsed. Names are stems already, so only media
// extensions are stripped; "Dr. Mario" keeps its dot.
func Normalize(name string) string {
	if ext := filepath.Ext(name); ext != "" && IsMediaExtension(ext) {
		name = strings.TrimSuffix(name, ext)
	}
	name = StripSuffix(name)
	name = sepsToSpaces(name)
	return collapseSpaces(name)
}

// Core strips region and version tags, i.e. every (...) and [...] group,
// from a normalized name.
func Core(normalized string) string {
	core := reParens.ReplaceAllString(normalized, "")
	core = reBrackets.ReplaceAllString(core, "")
	return collapseSpaces(core)
}
