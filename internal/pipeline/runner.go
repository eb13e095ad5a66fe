package pipeline

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/viant/afs"

	"github.com/backmassage/mediamatch/internal/catalog"
	"github.com/backmassage/mediamatch/internal/check"
	"github.com/backmassage/mediamatch/internal/config"
	"github.com/backmassage/mediamatch/internal/display"
	"github.com/backmassage/mediamatch/internal/logging"
	"github.com/backmassage/mediamatch/internal/match"
	"github.com/backmassage/mediamatch/internal/organize"
	"github.com/backmassage/mediamatch/internal/planner"
	"github.com/backmassage/mediamatch/internal/report"
	"github.com/backmassage/mediamatch/internal/resolve"
	"github.com/backmassage/mediamatch/internal/scan"
)

// ProgressFunc receives named checkpoints: step counts from 1 to total.
type ProgressFunc func(step, total int, status string)

// Runner executes reconciliation runs for one configuration.
type Runner struct {
	cfg      *config.Config
	log      *logging.Logger
	fs       afs.Service
	progress ProgressFunc
	now      func() time.Time
}

// NewRunner returns a Runner that performs file operations through fs.
func NewRunner(cfg *config.Config, log *logging.Logger, fs afs.Service) *Runner {
	return &Runner{cfg: cfg, log: log, fs: fs, now: time.Now}
}

// OnProgress registers fn to receive progress checkpoints.
func (r *Runner) OnProgress(fn ProgressFunc) { r.progress = fn }

// Run is the top-level entry point: a Runner on the local filesystem and a
// fresh RunContext.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (*report.Report, error) {
	return NewRunner(cfg, log, afs.New()).Run(ctx, NewRunContext())
}

// run carries the per-run collaborators between steps.
type run struct {
	*Runner
	rc        *RunContext
	rep       *report.Report
	engine    *match.Engine
	organizer *organize.Organizer
	executor  *organize.Executor
	step      int
	total     int
	recovered int // errors recovered before the report exists
}

// Run performs one reconciliation using rc for all per-run state. rc must be
// clean (fresh or Reset). Configuration problems are returned before any
// file is touched. Catalog, scan and file-operation errors are logged,
// counted and recovered from. When ctx is cancelled the run stops between
// buckets, still writes the summary, and returns ctx.Err() with the report.
func (r *Runner) Run(ctx context.Context, rc *RunContext) (*report.Report, error) {
	cfg := r.cfg
	if err := check.Preflight(cfg); err != nil {
		return nil, err
	}
	buckets, err := SelectBuckets(cfg)
	if err != nil {
		return nil, err
	}
	if err := rc.begin(r.now()); err != nil {
		return nil, err
	}

	x := &run{Runner: r, rc: rc, total: 3 + 3*len(buckets)}
	x.openLog()
	x.logHeader(buckets)

	x.loadSources(ctx)
	x.rep = report.New(report.Header{
		RunID:           rc.RunID,
		Started:         rc.Started,
		Media:           string(cfg.Media),
		Platform:        rc.Platform,
		CatalogFile:     cfg.CatalogFile,
		CanonicalDir:    cfg.CanonicalDir,
		PreferExtension: cfg.PreferExtension,
		DryRun:          cfg.DryRun,
	}, rc.Canonical, cfg.MandatoryBuckets)
	rc.Report = x.rep
	x.rep.Stats.CatalogEntries = len(rc.Catalog)
	x.rep.Stats.CanonicalFound = rc.Canonical.Len()
	x.rep.Stats.Recovered = x.recovered

	x.engine = match.NewEngine(rc.Catalog, rc.Canonical, match.Options{Threshold: cfg.Threshold, Region: match.USARegion})
	x.organizer = organize.NewOrganizer(cfg, planner.NewLayout(cfg, rc.Platform), rc.Claims)
	x.executor = organize.NewExecutor(r.fs, cfg.DryRun, cfg.Verbose, r.log)

	var runErr error
	for _, bucket := range buckets {
		if err := ctx.Err(); err != nil {
			r.log.Warn("Interrupted")
			runErr = err
			break
		}
		if err := x.processBucket(ctx, bucket); err != nil {
			r.log.Warn("Interrupted")
			runErr = err
			break
		}
	}

	x.finalize(ctx)
	return x.rep, runErr
}

// openLog starts the processing log unless the logger already writes one.
// It lives in the output root, or in the collection root when the run has
// no output tree. A dry run writes no log of its own.
func (x *run) openLog() {
	if path := x.log.FilePath(); path != "" {
		x.rc.LogPath = path
		return
	}
	if x.cfg.DryRun {
		return
	}
	path := filepath.Join(x.reportDir(), report.LogFileName(x.rc.Started))
	if err := x.log.OpenFile(path); err != nil {
		x.log.Warn("Cannot open processing log: %v", err)
		return
	}
	x.rc.LogPath = path
}

func (x *run) reportDir() string {
	if check.NeedsOutput(x.cfg) {
		return x.cfg.OutputDir
	}
	return x.cfg.CollectionDir
}

func (x *run) advance(status string) {
	x.step++
	if x.progress != nil {
		x.progress(x.step, x.total, status)
	}
}

func (x *run) logHeader(buckets []string) {
	cfg := x.cfg
	x.log.Info("Run %s: %s in %s", x.rc.RunID, cfg.Media, cfg.CollectionDir)
	x.log.Info("Buckets: %s", strings.Join(buckets, ", "))
	x.log.Info("Fuzzy threshold: %d", cfg.Threshold)
	if cfg.IsVideo() {
		x.log.Info("Video mode: %s", cfg.VideoMode)
	}
	if cfg.RemoveDuplicates {
		x.log.Info("Duplicate removal: enabled")
	}
	if cfg.MoveUnmatched {
		x.log.Info("Unmatched assets: relocated to %s", filepath.Join(cfg.CollectionDir, "Unmatched"))
	}
	if cfg.DryRun {
		x.log.Warn("Dry run: no files will be changed")
	}
}

// loadSources fills the catalog mapping and canonical set of the context.
// Failures are recovered: the affected source is simply empty.
func (x *run) loadSources(ctx context.Context) {
	cfg, rc := x.cfg, x.rc

	x.advance("Parsing catalog")
	rc.Catalog = catalog.Mapping{}
	if cfg.CatalogFile != "" {
		m, err := catalog.Load(ctx, x.fs, cfg.CatalogFile)
		if err != nil {
			x.log.Warn("%v; falling back to name matching", err)
			x.recovered++
		} else {
			x.log.Info("Catalog: %d title mappings", len(m))
		}
		rc.Catalog = m
		rc.Platform = catalog.PlatformName(cfg.CatalogFile)
	}

	x.advance("Scanning ROMs")
	rc.Canonical = scan.NewCanonicalSet(nil)
	if cfg.CanonicalDir != "" {
		roms, err := scan.ScanCanonical(cfg.CanonicalDir)
		if err != nil {
			x.log.Warn("%v; continuing without a ROM list", err)
			x.recovered++
		}
		rc.Canonical = scan.NewCanonicalSet(roms)
		x.log.Info("ROMs: %d", rc.Canonical.Len())
	}
}

// processBucket runs scan, resolve, match, organize and execute for one
// bucket. It returns a non-nil error only when ctx was cancelled mid-bucket.
func (x *run) processBucket(ctx context.Context, bucket string) error {
	cfg, stats := x.cfg, &x.rep.Stats
	x.log.Info("=== %s ===", bucket)

	x.advance("Scanning " + bucket)
	files, scanErrs := scan.ScanBucket(cfg.CollectionDir, bucket, cfg.Media)
	for _, err := range scanErrs {
		x.log.Warn("%v", err)
		stats.RecordRecovered()
	}
	x.rep.AddBucket(bucket)
	stats.AssetsFound += len(files)
	x.log.Info("Assets found: %d", len(files))

	var (
		kept      []scan.AssetFile
		redundant []scan.AssetFile
	)
	for _, g := range scan.Group(files) {
		res := resolve.Resolve(g, cfg.PreferExtension)
		redundant = append(redundant, res.Redundant...)
		if res.Conflict != nil {
			x.rep.AddConflict(*res.Conflict)
			x.log.Debug(cfg.Verbose, "Conflict %s: %s, kept %s", g.Base, strings.Join(res.Conflict.Extensions, ", "), res.Conflict.Chosen)
		}
		for _, f := range res.Dropped {
			x.log.Debug(cfg.Verbose, "Left in place: %s", f.Name())
		}
		kept = append(kept, res.Kept)
	}
	if n := len(redundant); n > 0 && !cfg.RemoveDuplicates {
		x.log.Info("%s left in place (duplicate removal disabled)", display.Plural(n, "duplicate"))
	}

	x.advance("Matching " + bucket)
	matches, unmatched := x.engine.MatchAll(kept)
	for _, m := range matches {
		x.rep.AddMatch(m)
		x.log.Match("[%s] %s -> %s (%s, %.0f)", bucket, m.Asset.Name(), m.Canonical+m.Asset.Ext, m.Method, m.Score)
	}
	stats.Unmatched += len(unmatched)
	for _, f := range unmatched {
		x.log.Debug(cfg.Verbose, "No match: %s", f.Name())
	}
	x.log.Info("Matched %s, unmatched %d", display.FormatRatio(len(matches), len(kept)), len(unmatched))

	x.advance("Organizing " + bucket)
	plan := x.organizer.Plan(organize.Bucket{Matches: matches, Redundant: redundant, Unmatched: unmatched})
	res, err := x.executor.Apply(ctx, plan)
	recordResult(stats, res, x.log, cfg.Verbose)
	return err
}

// finalize writes the summary to the log and exports the missing list.
// A dry run logs the missing list instead of writing it.
func (x *run) finalize(ctx context.Context) {
	x.advance("Finalizing")

	var buf bytes.Buffer
	if err := x.rep.WriteSummary(&buf); err == nil {
		for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
			x.log.Info("%s", line)
		}
	}

	if x.cfg.DryRun {
		x.previewMissingList()
	} else {
		x.exportMissingList(ctx)
	}
	if x.rc.LogPath != "" {
		x.log.Info("Processing log: %s", x.rc.LogPath)
	}
}

func (x *run) exportMissingList(ctx context.Context) {
	// The export runs even after an interrupt.
	path, err := x.rep.ExportMissingList(context.WithoutCancel(ctx), x.fs, x.reportDir())
	switch {
	case err != nil:
		x.log.Error("Missing list: %v", err)
	case path != "":
		x.log.Warn("Mandatory buckets incomplete; missing list: %s", path)
	default:
		if len(x.rep.Completeness()) > 0 {
			x.log.Success("All mandatory buckets complete")
		}
	}
}

func (x *run) previewMissingList() {
	if !x.rep.Incomplete() {
		return
	}
	dest := filepath.Join(x.reportDir(), report.MissingListName(x.rc.Started))
	x.log.Warn("[dry-run] Mandatory buckets incomplete; would write %s", dest)
	var buf bytes.Buffer
	if err := x.rep.WriteMissingList(&buf); err != nil {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		x.log.Info("%s", line)
	}
}
