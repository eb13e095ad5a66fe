package naming

import "path/filepath"

// RootBucket is the reserved bucket for videos stored directly in the
// collection root instead of a type subfolder.
const RootBucket = "Root"

// VideosDir is the output segment that holds every video bucket.
const VideosDir = "Videos"

// UnmatchedDir is the folder, under the asset collection root, that receives
// relocated unmatched assets.
const UnmatchedDir = "Unmatched"

// BucketDir returns the output directory for a bucket. platform is the
// optional namespace segment; video buckets nest under [VideosDir].
//
//	Images: <outputDir>[/<platform>]/<bucket>
//	Videos: <outputDir>[/<platform>]/Videos[/<bucket>]   (Root goes directly in Videos)
func BucketDir(outputDir, platform, bucket string, video bool) string {
	dir := outputDir
	if platform != "" {
		dir = filepath.Join(dir, platform)
	}
	if !video {
		return filepath.Join(dir, bucket)
	}
	dir = filepath.Join(dir, VideosDir)
	if bucket == RootBucket {
		return dir
	}
	return filepath.Join(dir, bucket)
}

// GetOutputPath builds the destination of a matched asset: the bucket
// directory plus the canonical name and the asset's own extension.
func GetOutputPath(outputDir, platform, bucket, canonical, ext string, video bool) string {
	return filepath.Join(BucketDir(outputDir, platform, bucket, video), canonical+ext)
}

// RenamedPath returns the in-place rename target for src: same directory,
// canonical name, source extension.
func RenamedPath(src, canonical, ext string) string {
	return filepath.Join(filepath.Dir(src), canonical+ext)
}

// UnmatchedPath returns where an unmatched asset is relocated:
// <collectionRoot>/Unmatched/<bucket>/<filename>.
func UnmatchedPath(collectionRoot, bucket, src string) string {
	return filepath.Join(collectionRoot, UnmatchedDir, bucket, filepath.Base(src))
}
