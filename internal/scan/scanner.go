package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/backmassage/mediamatch/internal/config"
	"github.com/backmassage/mediamatch/internal/naming"
)

// ScanError reports a directory that could not be read. The branch is
// treated as empty and enumeration continues.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string { return fmt.Sprintf("scan %s: %v", e.Path, e.Err) }

func (e *ScanError) Unwrap() error { return e.Err }

// ScanBucket collects the recognized files of one bucket. Regular buckets
// are walked recursively under root/bucket; the Root bucket reads root
// itself without descending. Files are returned sorted by path; unreadable
// directories are reported as *ScanError values.
func ScanBucket(root, bucket string, kind config.MediaKind) ([]AssetFile, []*ScanError) {
	exts := Extensions(kind)
	if bucket == naming.RootBucket {
		return scanFlat(root, bucket, exts)
	}

	var (
		files []AssetFile
		errs  []*ScanError
	)
	dir := filepath.Join(root, bucket)
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, &ScanError{Path: path, Err: err})
			if d != nil && d.IsDir() && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !recognized(d.Name(), exts) {
			return nil
		}
		files = append(files, NewAssetFile(path, bucket))
		return nil
	})
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, errs
}

// scanFlat lists the recognized files directly inside dir.
func scanFlat(dir, bucket string, exts map[string]bool) ([]AssetFile, []*ScanError) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, []*ScanError{{Path: dir, Err: err}}
	}
	var files []AssetFile
	for _, e := range entries {
		if e.IsDir() || !recognized(e.Name(), exts) {
			continue
		}
		files = append(files, NewAssetFile(filepath.Join(dir, e.Name()), bucket))
	}
	return files, nil
}

// DiscoverBuckets returns the buckets under root that hold at least one
// recognized file at any depth, sorted. For videos the Root bucket is
// included when root itself holds videos. The Unmatched relocation folder is
// never a bucket.
func DiscoverBuckets(root string, kind config.MediaKind) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &ScanError{Path: root, Err: err}
	}
	exts := Extensions(kind)

	var buckets []string
	rootHasMedia := false
	for _, e := range entries {
		if !e.IsDir() {
			if recognized(e.Name(), exts) {
				rootHasMedia = true
			}
			continue
		}
		if e.Name() == naming.UnmatchedDir {
			continue
		}
		if containsMedia(filepath.Join(root, e.Name()), exts) {
			buckets = append(buckets, e.Name())
		}
	}
	if kind == config.MediaVideos && rootHasMedia {
		buckets = append(buckets, naming.RootBucket)
	}
	sort.Strings(buckets)
	return buckets, nil
}

// containsMedia reports whether dir holds a recognized file at any depth.
func containsMedia(dir string, exts map[string]bool) bool {
	found := false
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && recognized(d.Name(), exts) {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}
