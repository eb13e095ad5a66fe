package config

// This file binds CLI flags onto a pflag.FlagSet (owned by the cobra
// commands in cmd/mediamatch) and merges them with defaults and an optional
// config file. Flags are grouped into paths, matching, behavior, and display.
// Negated flags (e.g. --no-platform-folder) are applied after the merge so
// file values and defaults hold unless the flag is passed.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// FlagSet holds the values bound to CLI flags until [FlagSet.Resolve]
// merges them into a Config.
type FlagSet struct {
	values  Config
	negated negatedFlags
}

// negatedFlags holds boolean flags that invert a default after merging.
type negatedFlags struct {
	noPlatformFolder bool
	forceColor       bool
	noColor          bool
}

// NewFlagSet returns a FlagSet whose bound values start at [DefaultConfig].
func NewFlagSet() *FlagSet {
	return &FlagSet{values: DefaultConfig()}
}

// Bind registers every run flag on fs.
func (f *FlagSet) Bind(fs *pflag.FlagSet) {
	definePathFlags(fs, &f.values)
	defineMatchingFlags(fs, &f.values)
	defineBehaviorFlags(fs, &f.values, &f.negated)
	defineDisplayFlags(fs, &f.values, &f.negated)
}

// definePathFlags registers --catalog, --roms, --output, --config.
func definePathFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.CatalogFile, "catalog", "x", "", "Catalog XML mapping titles to ROM files")
	fs.StringVarP(&cfg.CanonicalDir, "roms", "r", "", "Canonical ROM collection directory")
	fs.StringVarP(&cfg.OutputDir, "output", "o", "", "Output root for renamed assets and logs")
	fs.StringVarP(&cfg.ConfigFile, "config", "c", "", "Read settings from a .yaml or .toml file")
}

// defineMatchingFlags registers --media, --threshold, --prefer-ext, --bucket, --mandatory.
func defineMatchingFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.VarP(&mediaValue{&cfg.Media}, "media", "m", "Asset collection type: images | videos")
	fs.IntVarP(&cfg.Threshold, "threshold", "t", cfg.Threshold, "Fuzzy match threshold (60-100)")
	fs.StringVar(&cfg.PreferExtension, "prefer-ext", "", "Extension kept when one name exists in several formats")
	fs.StringArrayVarP(&cfg.Buckets, "bucket", "b", nil, "Process only this bucket (repeatable, processed in order)")
	fs.StringArrayVar(&cfg.MandatoryBuckets, "mandatory", cfg.MandatoryBuckets, "Bucket whose completeness is verified (repeatable)")
}

// defineBehaviorFlags registers duplicate removal, relocation, platform folder, video mode, dry-run.
func defineBehaviorFlags(fs *pflag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.RemoveDuplicates, "remove-duplicates", false, "Delete -NN duplicate variants, keeping the lowest")
	fs.BoolVar(&cfg.MoveUnmatched, "move-unmatched", false, "Move unmatched assets into the Unmatched folder")
	fs.BoolVar(&n.noPlatformFolder, "no-platform-folder", false, "Do not nest output under the catalog's platform name")
	fs.Var(&videoModeValue{&cfg.VideoMode}, "video-mode", "Matched videos: rename (in place) | move (to output)")
	fs.BoolVarP(&cfg.DryRun, "dry-run", "d", false, "Preview only; do not touch any file")
}

// defineDisplayFlags registers --color, --no-color, --verbose, --log.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	fs.StringVarP(&cfg.LogFile, "log", "l", "", "Processing log path (default: timestamped file in the output)")
}

// flagOverrides copies one flag-bound value into the merged Config. Only
// flags the user actually set are applied, so file values survive.
var flagOverrides = map[string]func(dst, src *Config){
	"catalog":           func(d, s *Config) { d.CatalogFile = s.CatalogFile },
	"roms":              func(d, s *Config) { d.CanonicalDir = s.CanonicalDir },
	"output":            func(d, s *Config) { d.OutputDir = s.OutputDir },
	"media":             func(d, s *Config) { d.Media = s.Media },
	"threshold":         func(d, s *Config) { d.Threshold = s.Threshold },
	"prefer-ext":        func(d, s *Config) { d.PreferExtension = s.PreferExtension },
	"bucket":            func(d, s *Config) { d.Buckets = s.Buckets },
	"mandatory":         func(d, s *Config) { d.MandatoryBuckets = s.MandatoryBuckets },
	"remove-duplicates": func(d, s *Config) { d.RemoveDuplicates = s.RemoveDuplicates },
	"move-unmatched":    func(d, s *Config) { d.MoveUnmatched = s.MoveUnmatched },
	"video-mode":        func(d, s *Config) { d.VideoMode = s.VideoMode },
	"dry-run":           func(d, s *Config) { d.DryRun = s.DryRun },
	"verbose":           func(d, s *Config) { d.Verbose = s.Verbose },
	"log":               func(d, s *Config) { d.LogFile = s.LogFile },
}

// Resolve builds the effective Config: defaults, then the config file named
// by --config (if any), then every flag explicitly set on fs, then negated
// flags. args are the positional arguments; the first one, when present, is
// the asset collection directory. The result is validated.
func (f *FlagSet) Resolve(fs *pflag.FlagSet, args []string) (Config, error) {
	cfg := DefaultConfig()
	if f.values.ConfigFile != "" {
		if err := LoadFile(f.values.ConfigFile, &cfg); err != nil {
			return cfg, err
		}
	}

	fs.Visit(func(fl *pflag.Flag) {
		if apply, ok := flagOverrides[fl.Name]; ok {
			apply(&cfg, &f.values)
		}
	})
	applyNegatedFlags(&cfg, &f.negated)

	if len(args) > 0 {
		cfg.CollectionDir = args[0]
	}
	cfg.CollectionDir = NormalizeDirArg(cfg.CollectionDir)
	cfg.CanonicalDir = NormalizeDirArg(cfg.CanonicalDir)
	cfg.OutputDir = NormalizeDirArg(cfg.OutputDir)

	return cfg, cfg.Validate()
}

// applyNegatedFlags copies negated flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noPlatformFolder {
		cfg.PlatformFolder = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// pflag.Value adapters so enum types (MediaKind, VideoMode) validate at parse time.

type mediaValue struct{ p *MediaKind }

func (m *mediaValue) String() string { return string(*m.p) }
func (m *mediaValue) Type() string   { return "media" }
func (m *mediaValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "images", "image":
		*m.p = MediaImages
	case "videos", "video":
		*m.p = MediaVideos
	default:
		return fmt.Errorf("invalid media %q (use 'images' or 'videos')", s)
	}
	return nil
}

type videoModeValue struct{ p *VideoMode }

func (v *videoModeValue) String() string { return string(*v.p) }
func (v *videoModeValue) Type() string   { return "mode" }
func (v *videoModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "rename":
		*v.p = VideoRename
	case "move":
		*v.p = VideoMove
	default:
		return fmt.Errorf("invalid video mode %q (use 'rename' or 'move')", s)
	}
	return nil
}
