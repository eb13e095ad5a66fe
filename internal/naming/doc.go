// Package naming derives comparison keys and output names from asset and
// catalog names.
//
// It holds the pure string transforms shared by the rest of the pipeline:
//   - SanitizeTitle: reserved-character substitution for catalog titles
//   - ParseFilename: stem, base name, numeric suffix, and extension of an asset file
//   - Normalize / Core: fuzzy-comparison forms of a name
//   - GetOutputPath / BucketDir: destination paths inside the output tree
//   - CollisionResolver: first-claim ownership of destination paths within a run
//
// Nothing in this package touches the filesystem.
package naming
