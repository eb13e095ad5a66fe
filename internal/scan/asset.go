package scan

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/mediamatch/internal/config"
	"github.com/backmassage/mediamatch/internal/naming"
)

// AssetFile is one recognized media file inside a bucket.
type AssetFile struct {
	Path      string
	Bucket    string
	Stem      string // file name without extension
	Base      string // stem with the -NN duplicate suffix stripped
	Suffix    int    // duplicate suffix; meaningful only when HasSuffix
	HasSuffix bool
	Ext       string // extension as found on disk
}

// NewAssetFile parses path into an AssetFile belonging to bucket.
func NewAssetFile(path, bucket string) AssetFile {
	p := naming.ParseFilename(filepath.Base(path))
	return AssetFile{
		Path:      path,
		Bucket:    bucket,
		Stem:      p.Stem,
		Base:      p.Base,
		Suffix:    p.Suffix,
		HasSuffix: p.HasSuffix,
		Ext:       p.Ext,
	}
}

// Name returns the file name including extension.
func (a AssetFile) Name() string { return filepath.Base(a.Path) }

// LowerExt returns the extension lowercased, for comparisons.
func (a AssetFile) LowerExt() string { return strings.ToLower(a.Ext) }

// AssetGroup is every file of one bucket sharing a base name.
type AssetGroup struct {
	Base   string
	Bucket string
	Files  []AssetFile
}

// Group buckets files by base name. Groups are ordered by base name and the
// files of each group by path.
func Group(files []AssetFile) []AssetGroup {
	byBase := make(map[string]*AssetGroup)
	var bases []string
	for _, f := range files {
		g, ok := byBase[f.Base]
		if !ok {
			g = &AssetGroup{Base: f.Base, Bucket: f.Bucket}
			byBase[f.Base] = g
			bases = append(bases, f.Base)
		}
		g.Files = append(g.Files, f)
	}
	sort.Strings(bases)

	groups := make([]AssetGroup, 0, len(bases))
	for _, base := range bases {
		g := byBase[base]
		sort.Slice(g.Files, func(i, j int) bool { return g.Files[i].Path < g.Files[j].Path })
		groups = append(groups, *g)
	}
	return groups
}

// Extensions returns the recognized extension set for kind.
func Extensions(kind config.MediaKind) map[string]bool {
	if kind == config.MediaVideos {
		return naming.VideoExtensions
	}
	return naming.ImageExtensions
}

// recognized reports whether name carries an extension in exts.
func recognized(name string, exts map[string]bool) bool {
	return exts[strings.ToLower(filepath.Ext(name))]
}
