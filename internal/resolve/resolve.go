// Package resolve reduces each asset group to the single file that takes
// part in matching. Numbered variants (-01, -02, ...) of one extension are
// collapsed first; when the survivors still span several extensions one is
// chosen and the choice is recorded as a Conflict.
package resolve

import (
	"sort"

	"github.com/backmassage/mediamatch/internal/scan"
)

// Conflict records one base name observed with several extensions.
type Conflict struct {
	Base       string
	Bucket     string
	Extensions []string // lowercased, sorted
	Chosen     string
}

// Resolution is the outcome of resolving one AssetGroup.
type Resolution struct {
	Kept      scan.AssetFile
	Redundant []scan.AssetFile // numbered variants beyond the lowest; removable
	Dropped   []scan.AssetFile // files left untouched and not matched
	Conflict  *Conflict
}

// Resolve runs [Duplicates] then [Extensions] on g. preferred is a
// lowercase extension with its dot, or "" for no preference.
func Resolve(g scan.AssetGroup, preferred string) Resolution {
	survivors, redundant, retained := Duplicates(g.Files)
	kept, dropped, conflict := Extensions(g, survivors, preferred)
	dropped = append(dropped, retained...)
	sortByPath(dropped)
	return Resolution{
		Kept:      kept,
		Redundant: redundant,
		Dropped:   dropped,
		Conflict:  conflict,
	}
}

// Duplicates partitions the files of one group per lowercased extension.
//
// Only numbered files (-01, -02, ...) are duplicates of each other: among
// them the lowest suffix is kept and the rest are redundant. A file without
// a suffix is never redundant. When one exists it is the survivor that takes
// part in matching, and the lowest numbered variant is retained in place.
// Files whose names differ only in extension case are not variants either;
// beyond the survivor they are retained too.
//
// Survivors are returned in extension order, redundant and retained files
// in path order.
func Duplicates(files []scan.AssetFile) (survivors, redundant, retained []scan.AssetFile) {
	byExt := make(map[string][]scan.AssetFile)
	var exts []string
	for _, f := range files {
		ext := f.LowerExt()
		if _, ok := byExt[ext]; !ok {
			exts = append(exts, ext)
		}
		byExt[ext] = append(byExt[ext], f)
	}
	sort.Strings(exts)

	for _, ext := range exts {
		var plain, numbered []scan.AssetFile
		for _, f := range byExt[ext] {
			if f.HasSuffix {
				numbered = append(numbered, f)
			} else {
				plain = append(plain, f)
			}
		}
		sortByPath(plain)
		sort.SliceStable(numbered, func(i, j int) bool { return lowerSuffix(numbered[i], numbered[j]) })

		if len(numbered) > 1 {
			redundant = append(redundant, numbered[1:]...)
			numbered = numbered[:1]
		}
		if len(plain) == 0 {
			survivors = append(survivors, numbered[0])
			continue
		}
		survivors = append(survivors, plain[0])
		retained = append(retained, plain[1:]...)
		retained = append(retained, numbered...)
	}
	sortByPath(redundant)
	sortByPath(retained)
	return survivors, redundant, retained
}

// lowerSuffix orders numbered variants by suffix, then path.
func lowerSuffix(a, b scan.AssetFile) bool {
	if a.Suffix != b.Suffix {
		return a.Suffix < b.Suffix
	}
	return a.Path < b.Path
}

func sortByPath(files []scan.AssetFile) {
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
}

// Extensions picks one survivor when several extensions remain: the
// preferred extension when present, otherwise the lexicographically first.
// survivors must hold at most one file per extension, as returned by
// [Duplicates]. A Conflict is returned whenever more than one extension was
// observed.
func Extensions(g scan.AssetGroup, survivors []scan.AssetFile, preferred string) (kept scan.AssetFile, dropped []scan.AssetFile, conflict *Conflict) {
	if len(survivors) == 0 {
		return scan.AssetFile{}, nil, nil
	}
	if len(survivors) == 1 {
		return survivors[0], nil, nil
	}

	sorted := append([]scan.AssetFile(nil), survivors...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LowerExt() < sorted[j].LowerExt() })

	idx := 0
	exts := make([]string, len(sorted))
	for i, f := range sorted {
		exts[i] = f.LowerExt()
		if preferred != "" && exts[i] == preferred {
			idx = i
		}
	}
	kept = sorted[idx]
	for i, f := range sorted {
		if i != idx {
			dropped = append(dropped, f)
		}
	}
	conflict = &Conflict{
		Base:       g.Base,
		Bucket:     g.Bucket,
		Extensions: exts,
		Chosen:     kept.LowerExt(),
	}
	return kept, dropped, conflict
}
