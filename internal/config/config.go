// Package config holds runtime configuration: defaults, CLI flag binding,
// config-file loading, and validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/mediamatch/internal/naming"
)

// --- Enum types for validated string fields ---

// MediaKind selects which asset collection is being reconciled.
type MediaKind string

const (
	MediaImages MediaKind = "images" // Box art, logos, screenshots (default).
	MediaVideos MediaKind = "videos" // Preview videos, including the Root bucket.
)

// VideoMode controls what happens to matched videos.
type VideoMode string

const (
	VideoRename VideoMode = "rename" // Rename in place next to the source (default).
	VideoMove   VideoMode = "move"   // Move into the output tree.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Threshold bounds for fuzzy matching, on a 0-100 similarity scale.
const (
	MinThreshold     = 60
	MaxThreshold     = 100
	DefaultThreshold = 85
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by a config file ([LoadFile]) and then by explicitly
// set CLI flags ([FlagSet.Resolve]) before being passed by pointer to the packages
// that need it. Field tags name the keys accepted in YAML and TOML files.
type Config struct {
	// Paths.
	CollectionDir string `yaml:"collection" toml:"collection"` // Asset collection root (one subfolder per bucket).
	CatalogFile   string `yaml:"catalog" toml:"catalog"`       // Catalog XML (local path or afs URL).
	CanonicalDir  string `yaml:"roms" toml:"roms"`             // Canonical ROM collection.
	OutputDir     string `yaml:"output" toml:"output"`         // Output root (copy/move targets, logs).

	// Matching.
	Media            MediaKind `yaml:"media" toml:"media"`                         // Default: "images".
	Threshold        int       `yaml:"threshold" toml:"threshold"`                 // Default: 85, range 60-100.
	PreferExtension  string    `yaml:"prefer_extension" toml:"prefer_extension"`   // Default: none.
	Buckets          []string  `yaml:"buckets" toml:"buckets"`                     // Empty: every discovered bucket.
	MandatoryBuckets []string  `yaml:"mandatory_buckets" toml:"mandatory_buckets"` // Default: Box - Front, Clear Logo.

	// Behavior flags.
	RemoveDuplicates bool      `yaml:"remove_duplicates" toml:"remove_duplicates"` // Deletes source files; opt-in.
	MoveUnmatched    bool      `yaml:"move_unmatched" toml:"move_unmatched"`
	PlatformFolder   bool      `yaml:"platform_folder" toml:"platform_folder"` // Default: true.
	VideoMode        VideoMode `yaml:"video_mode" toml:"video_mode"`           // Default: "rename".
	DryRun           bool      `yaml:"dry_run" toml:"dry_run"`

	// Display and logging.
	Verbose   bool      `yaml:"verbose" toml:"verbose"`
	ColorMode ColorMode `yaml:"color" toml:"color"`       // Default: "auto".
	LogFile   string    `yaml:"log_file" toml:"log_file"` // Default: derived per run.

	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string `yaml:"-" toml:"-"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	return Config{
		Media:            MediaImages,
		Threshold:        DefaultThreshold,
		MandatoryBuckets: []string{"Box - Front", "Clear Logo"},
		PlatformFolder:   true,
		VideoMode:        VideoRename,
		ColorMode:        ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and ranges, and canonicalizes the preferred
// extension to lowercase with a leading dot. Path presence is checked
// separately by the check package so that listing commands can share Config.
func (c *Config) Validate() error {
	switch c.Media {
	case MediaImages, MediaVideos:
		// valid
	default:
		return errors.New("invalid media (use 'images' or 'videos')")
	}

	switch c.VideoMode {
	case VideoRename, VideoMove:
		// valid
	default:
		return errors.New("invalid video mode (use 'rename' or 'move')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Threshold < MinThreshold || c.Threshold > MaxThreshold {
		return fmt.Errorf("threshold %d out of range (%d-%d)", c.Threshold, MinThreshold, MaxThreshold)
	}

	ext, err := normalizeExtension(c.PreferExtension, c.Media)
	if err != nil {
		return err
	}
	c.PreferExtension = ext
	return nil
}

// IsVideo reports whether the run reconciles video assets.
func (c *Config) IsVideo() bool { return c.Media == MediaVideos }

// Extensions returns the recognized extension set for the configured media.
func (c *Config) Extensions() []string {
	set := naming.ImageExtensions
	if c.IsVideo() {
		set = naming.VideoExtensions
	}
	exts := make([]string, 0, len(set))
	for ext := range set {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// normalizeExtension canonicalizes a user-supplied extension. Accepted
// forms: "png", ".png", ".PNG". Empty (or "none") means no preference.
func normalizeExtension(raw string, media MediaKind) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || s == "none" {
		return "", nil
	}
	if !strings.HasPrefix(s, ".") {
		s = "." + s
	}
	c := Config{Media: media}
	for _, ext := range c.Extensions() {
		if ext == s {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid preferred extension %q (use one of %s)", raw, strings.Join(c.Extensions(), ", "))
}

// ValidatePaths ensures the resolved output directory is not inside (or equal
// to) the resolved collection directory. This keeps renamed copies from being
// scanned as a bucket on the next run. Both arguments must be absolute,
// symlink-resolved paths.
func (c *Config) ValidatePaths(collectionAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == collectionAbs || strings.HasPrefix(outputAbs+sep, collectionAbs+sep) {
		return errors.New("output directory must not be inside the asset collection")
	}
	return nil
}
