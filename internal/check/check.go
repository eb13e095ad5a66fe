// Package check provides up-front configuration diagnostics (the check
// command) and the preflight validation every run performs before touching
// any file.
package check

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/viant/afs"

	"github.com/backmassage/mediamatch/internal/catalog"
	"github.com/backmassage/mediamatch/internal/config"
	"github.com/backmassage/mediamatch/internal/scan"
)

// Sentinel errors returned by Preflight when the configuration cannot
// describe a run.
var (
	ErrNoCollection      = errors.New("no asset collection directory given")
	ErrCollectionMissing = errors.New("asset collection directory does not exist")
	ErrNoMatchSource     = errors.New("no match source: set a catalog file, a ROM folder, or both")
	ErrSourceMissing     = errors.New("match source does not exist")
	ErrNoOutputDir       = errors.New("an output directory is required for this media type and video mode")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Preflight validates that cfg describes a runnable reconciliation:
// the collection exists, at least one match source is set and exists, an
// output directory is present when the run writes one, and the output does
// not live inside the collection. It returns a sentinel error (wrapped with
// the offending path where useful) on the first failure.
func Preflight(cfg *config.Config) error {
	if cfg.CollectionDir == "" {
		return ErrNoCollection
	}
	if !isDir(cfg.CollectionDir) {
		return wrapPath(ErrCollectionMissing, cfg.CollectionDir)
	}
	if cfg.CatalogFile == "" && cfg.CanonicalDir == "" {
		return ErrNoMatchSource
	}
	if cfg.CatalogFile != "" && isLocal(cfg.CatalogFile) && !exists(cfg.CatalogFile) {
		return wrapPath(ErrSourceMissing, cfg.CatalogFile)
	}
	if cfg.CanonicalDir != "" && !isDir(cfg.CanonicalDir) {
		return wrapPath(ErrSourceMissing, cfg.CanonicalDir)
	}
	if NeedsOutput(cfg) && cfg.OutputDir == "" {
		return ErrNoOutputDir
	}
	if cfg.OutputDir != "" {
		if err := cfg.ValidatePaths(resolvePath(cfg.CollectionDir), resolvePath(cfg.OutputDir)); err != nil {
			return err
		}
	}
	return nil
}

// NeedsOutput reports whether the run writes into an output tree: always for
// images, and for videos in move mode.
func NeedsOutput(cfg *config.Config) bool {
	return !cfg.IsVideo() || cfg.VideoMode == config.VideoMove
}

// RunCheck runs the check command: it reports every input the configuration
// names, how many entries each yields, and the buckets a run would process.
// It returns the Preflight result so the command can exit non-zero.
func RunCheck(ctx context.Context, cfg *config.Config, fs afs.Service, log Logger) error {
	log.Info("=== Configuration Check ===")
	if cfg.ConfigFile != "" {
		log.Info("Config file: %s", cfg.ConfigFile)
	}
	log.Info("Media: %s, threshold: %d", cfg.Media, cfg.Threshold)

	checkCatalog(ctx, cfg, fs, log)
	checkCanonical(cfg, log)
	checkBuckets(cfg, log)

	if err := Preflight(cfg); err != nil {
		log.Error("Preflight failed: %v", err)
		return err
	}
	log.Success("Configuration is ready to run")
	return nil
}

func checkCatalog(ctx context.Context, cfg *config.Config, fs afs.Service, log Logger) {
	if cfg.CatalogFile == "" {
		log.Info("Catalog: not set")
		return
	}
	m, err := catalog.Load(ctx, fs, cfg.CatalogFile)
	if err != nil {
		log.Warn("Catalog unusable (runs fall back to name matching): %v", err)
		return
	}
	log.Success("Catalog: %d title mappings (platform %q)", len(m), catalog.PlatformName(cfg.CatalogFile))
}

func checkCanonical(cfg *config.Config, log Logger) {
	if cfg.CanonicalDir == "" {
		log.Info("ROM folder: not set")
		return
	}
	roms, err := scan.ScanCanonical(cfg.CanonicalDir)
	if err != nil {
		log.Error("ROM folder: %v", err)
		return
	}
	log.Success("ROM folder: %d ROMs", scan.NewCanonicalSet(roms).Len())
}

func checkBuckets(cfg *config.Config, log Logger) {
	if cfg.CollectionDir == "" {
		log.Error("Asset collection: not set")
		return
	}
	buckets, err := scan.DiscoverBuckets(cfg.CollectionDir, cfg.Media)
	if err != nil {
		log.Error("Asset collection: %v", err)
		return
	}
	if len(buckets) == 0 {
		log.Warn("Asset collection: no buckets with %s found", cfg.Media)
		return
	}
	log.Success("Asset collection: %d buckets", len(buckets))
	for _, b := range buckets {
		log.Info("  %s", b)
	}
}

// --- internal helpers ---

// wrapPath prefixes a sentinel with the offending path; errors.Is still
// matches the sentinel.
func wrapPath(err error, path string) error {
	return errors.Wrap(err, path)
}

// isLocal reports whether source is a plain path rather than an afs URL.
func isLocal(source string) bool {
	return !strings.Contains(source, "://") || strings.HasPrefix(source, "file://")
}

func exists(path string) bool {
	_, err := os.Stat(strings.TrimPrefix(path, "file://"))
	return err == nil
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// resolvePath returns the absolute, symlink-resolved form of path. When path
// does not exist yet its nearest existing parent is resolved instead.
func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	parent := filepath.Dir(abs)
	if parent == abs {
		return abs
	}
	return filepath.Join(resolvePath(parent), filepath.Base(abs))
}
