package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/backmassage/mediamatch/internal/check"
	"github.com/backmassage/mediamatch/internal/config"
	"github.com/backmassage/mediamatch/internal/logging"
	"github.com/backmassage/mediamatch/internal/report"
)

const genesisCatalog = `<?xml version="1.0" standalone="yes"?>
<LaunchBox>
  <Game>
    <Title>Sonic The Hedgehog</Title>
    <ApplicationPath>Games\Sega Genesis\Sonic The Hedgehog (USA, Europe).md</ApplicationPath>
  </Game>
</LaunchBox>
`

var fixedStart = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(filepath.Base(path)), 0o644))
}

type fixture struct {
	root       string
	collection string
	roms       string
	out        string
	cfg        config.Config
}

// newFixture lays out a small image collection: a catalog hit, a fuzzy hit,
// a duplicate pair, an extension conflict, an unknown asset, and one ROM
// (Secret of Mana) without assets.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{root: t.TempDir()}
	f.collection = filepath.Join(f.root, "media")
	f.roms = filepath.Join(f.root, "roms")
	f.out = filepath.Join(f.root, "out")

	for _, rom := range []string{
		"Sonic The Hedgehog (USA, Europe).md",
		"Chrono Trigger (USA).sfc",
		"Mega Man 2 (USA).nes",
		"Contra (USA).nes",
		"Secret of Mana (USA).sfc",
	} {
		touch(t, filepath.Join(f.roms, rom))
	}
	catalogPath := filepath.Join(f.root, "Sega Genesis.xml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(genesisCatalog), 0o644))

	front := filepath.Join(f.collection, "Box - Front")
	for _, name := range []string{
		"Sonic The Hedgehog.png",
		"Chrono_Trigger.jpg",
		"Mega Man 2 (USA)-01.png",
		"Mega Man 2 (USA)-02.png",
		"Contra (USA).png",
		"Contra (USA).jpg",
		"Xyzzy Plugh.png",
	} {
		touch(t, filepath.Join(front, name))
	}
	touch(t, filepath.Join(f.collection, "Clear Logo", "Sonic The Hedgehog.png"))

	f.cfg = config.DefaultConfig()
	f.cfg.ColorMode = config.ColorNever
	f.cfg.CollectionDir = f.collection
	f.cfg.CatalogFile = catalogPath
	f.cfg.CanonicalDir = f.roms
	f.cfg.OutputDir = f.out
	f.cfg.RemoveDuplicates = true
	return f
}

func newRunner(t *testing.T, cfg *config.Config) (*Runner, *bytes.Buffer) {
	t.Helper()
	log, err := logging.NewLogger(cfg)
	require.NoError(t, err)
	var out bytes.Buffer
	log.SetOutput(&out, &out)
	t.Cleanup(func() { _ = log.Close() })

	r := NewRunner(cfg, log, afs.New())
	r.now = func() time.Time { return fixedStart }
	return r, &out
}

func TestRunner_ImageRun(t *testing.T) {
	f := newFixture(t)
	r, _ := newRunner(t, &f.cfg)

	rep, err := r.Run(context.Background(), NewRunContext())
	require.NoError(t, err)

	s := rep.Stats
	assert.Equal(t, 5, s.CanonicalFound)
	assert.Equal(t, 1, s.CatalogEntries)
	assert.Equal(t, 2, s.Buckets)
	assert.Equal(t, 8, s.AssetsFound)
	assert.Equal(t, 2, s.MatchedCatalog)
	assert.Equal(t, 2, s.MatchedExact)
	assert.Equal(t, 1, s.MatchedFuzzy)
	assert.Equal(t, 1, s.Unmatched)
	assert.Equal(t, 1, s.DuplicatesRemoved)
	assert.Equal(t, 1, s.Conflicts)
	assert.Equal(t, 5, s.Copied)
	assert.Zero(t, s.Failed)
	assert.Zero(t, s.Recovered)

	dest := filepath.Join(f.out, "Sega Genesis", "Box - Front")
	for _, name := range []string{
		"Sonic The Hedgehog (USA, Europe).png",
		"Chrono Trigger (USA).jpg",
		"Mega Man 2 (USA).png",
		"Contra (USA).jpg",
	} {
		assert.FileExists(t, filepath.Join(dest, name))
	}
	assert.FileExists(t, filepath.Join(f.out, "Sega Genesis", "Clear Logo", "Sonic The Hedgehog (USA, Europe).png"))

	front := filepath.Join(f.collection, "Box - Front")
	assert.FileExists(t, filepath.Join(front, "Mega Man 2 (USA)-01.png"))
	assert.NoFileExists(t, filepath.Join(front, "Mega Man 2 (USA)-02.png"))
	assert.FileExists(t, filepath.Join(front, "Contra (USA).png"), "conflict loser stays in place")
	assert.FileExists(t, filepath.Join(front, "Xyzzy Plugh.png"))

	require.Len(t, rep.Conflicts, 1)
	assert.Equal(t, []string{".jpg", ".png"}, rep.Conflicts[0].Extensions)
	assert.Equal(t, []string{"Secret of Mana (USA)"}, rep.WithoutAssets())
}

func TestRunner_WritesLogAndMissingList(t *testing.T) {
	f := newFixture(t)
	r, _ := newRunner(t, &f.cfg)
	rc := NewRunContext()

	rep, err := r.Run(context.Background(), rc)
	require.NoError(t, err)
	assert.True(t, rep.Incomplete())

	logPath := filepath.Join(f.out, report.LogFileName(fixedStart))
	assert.Equal(t, logPath, rc.LogPath)
	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "--- SUMMARY ---")
	assert.Contains(t, string(b), "Chrono_Trigger.jpg -> Chrono Trigger (USA).jpg")

	missing, err := os.ReadFile(filepath.Join(f.out, report.MissingListName(fixedStart)))
	require.NoError(t, err)
	assert.Contains(t, string(missing), "Box - Front: missing 1 of 5")
	assert.Contains(t, string(missing), "Secret of Mana (USA)")
}

func TestRunner_ContextReuse(t *testing.T) {
	f := newFixture(t)
	r, _ := newRunner(t, &f.cfg)
	rc := NewRunContext()

	_, err := r.Run(context.Background(), rc)
	require.NoError(t, err)
	assert.True(t, rc.Dirty())
	firstID := rc.RunID

	_, err = r.Run(context.Background(), rc)
	assert.ErrorIs(t, err, ErrContextDirty)

	rc.Reset()
	assert.False(t, rc.Dirty())
	rep, err := r.Run(context.Background(), rc)
	require.NoError(t, err)
	assert.NotEqual(t, firstID, rc.RunID)
	assert.Zero(t, rep.Stats.Collisions, "destination claims do not survive Reset")
	assert.Equal(t, 5, rep.Stats.Copied)
}

func TestRunner_Progress(t *testing.T) {
	f := newFixture(t)
	r, _ := newRunner(t, &f.cfg)

	type call struct {
		step, total int
		status      string
	}
	var calls []call
	r.OnProgress(func(step, total int, status string) {
		calls = append(calls, call{step, total, status})
	})

	_, err := r.Run(context.Background(), NewRunContext())
	require.NoError(t, err)

	require.Len(t, calls, 9)
	for i, c := range calls {
		assert.Equal(t, i+1, c.step)
		assert.Equal(t, 9, c.total)
	}
	assert.Equal(t, "Parsing catalog", calls[0].status)
	assert.Equal(t, "Scanning ROMs", calls[1].status)
	assert.Equal(t, "Scanning Box - Front", calls[2].status)
	assert.Equal(t, "Matching Box - Front", calls[3].status)
	assert.Equal(t, "Organizing Box - Front", calls[4].status)
	assert.Equal(t, "Finalizing", calls[8].status)
}

func TestRunner_DryRun(t *testing.T) {
	f := newFixture(t)
	f.cfg.DryRun = true
	r, out := newRunner(t, &f.cfg)

	rep, err := r.Run(context.Background(), NewRunContext())
	require.NoError(t, err)

	assert.Equal(t, 5, rep.Stats.Copied)
	assert.Equal(t, 1, rep.Stats.DuplicatesRemoved)
	assert.NoDirExists(t, f.out, "a dry run writes neither output nor log")
	assert.FileExists(t, filepath.Join(f.collection, "Box - Front", "Mega Man 2 (USA)-02.png"))
	assert.Contains(t, out.String(), "[dry-run]")
	assert.Contains(t, out.String(), "would write "+filepath.Join(f.out, report.MissingListName(fixedStart)))
	assert.Contains(t, out.String(), "Secret of Mana (USA)")
}

func TestRunner_DuplicatesKeptWhenRemovalDisabled(t *testing.T) {
	f := newFixture(t)
	f.cfg.RemoveDuplicates = false
	r, _ := newRunner(t, &f.cfg)

	rep, err := r.Run(context.Background(), NewRunContext())
	require.NoError(t, err)
	assert.Zero(t, rep.Stats.DuplicatesRemoved)
	assert.Equal(t, 1, rep.Stats.DuplicatesSkipped)
	assert.FileExists(t, filepath.Join(f.collection, "Box - Front", "Mega Man 2 (USA)-02.png"))
}

func TestRunner_MoveUnmatched(t *testing.T) {
	f := newFixture(t)
	f.cfg.MoveUnmatched = true
	r, _ := newRunner(t, &f.cfg)

	rep, err := r.Run(context.Background(), NewRunContext())
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Stats.Relocated)
	assert.FileExists(t, filepath.Join(f.collection, "Unmatched", "Box - Front", "Xyzzy Plugh.png"))
	assert.NoFileExists(t, filepath.Join(f.collection, "Box - Front", "Xyzzy Plugh.png"))

	buckets, err := SelectBuckets(&f.cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"Box - Front", "Clear Logo"}, buckets)
}

func TestRunner_BrokenCatalogRecovers(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.cfg.CatalogFile, []byte("<LaunchBox><Game>"), 0o644))
	r, out := newRunner(t, &f.cfg)

	rep, err := r.Run(context.Background(), NewRunContext())
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Stats.Recovered)
	assert.Zero(t, rep.Stats.MatchedCatalog)
	assert.Contains(t, out.String(), "falling back to name matching")
}

func TestRunner_PreflightFailure(t *testing.T) {
	f := newFixture(t)
	f.cfg.CatalogFile = ""
	f.cfg.CanonicalDir = ""
	r, _ := newRunner(t, &f.cfg)
	rc := NewRunContext()

	rep, err := r.Run(context.Background(), rc)
	assert.ErrorIs(t, err, check.ErrNoMatchSource)
	assert.Nil(t, rep)
	assert.False(t, rc.Dirty())
}

func TestRunner_Cancelled(t *testing.T) {
	f := newFixture(t)
	r, out := newRunner(t, &f.cfg)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := r.Run(ctx, NewRunContext())
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, rep)
	assert.Zero(t, rep.Stats.Buckets)
	assert.Contains(t, out.String(), "Interrupted")
	assert.NoDirExists(t, filepath.Join(f.out, "Sega Genesis"))
}

func TestRunner_InterruptedStillExportsMissingList(t *testing.T) {
	f := newFixture(t)
	r, _ := newRunner(t, &f.cfg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.OnProgress(func(_, _ int, status string) {
		if status == "Organizing Box - Front" {
			cancel()
		}
	})

	rep, err := r.Run(ctx, NewRunContext())
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, rep)
	assert.Equal(t, []string{"Box - Front"}, rep.Buckets())
	assert.Zero(t, rep.Stats.Copied)

	missing, err := os.ReadFile(filepath.Join(f.out, report.MissingListName(fixedStart)))
	require.NoError(t, err)
	assert.Contains(t, string(missing), "Box - Front: missing 1 of 5")
}

func TestRunner_UnsuffixedOriginalSurvivesDuplicateRemoval(t *testing.T) {
	root := t.TempDir()
	collection := filepath.Join(root, "media")
	roms := filepath.Join(root, "roms")
	out := filepath.Join(root, "out")
	touch(t, filepath.Join(roms, "Contra.nes"))
	front := filepath.Join(collection, "Box - Front")
	for _, name := range []string{"Contra.png", "Contra-01.png", "Contra-02.png"} {
		touch(t, filepath.Join(front, name))
	}

	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.CollectionDir = collection
	cfg.CanonicalDir = roms
	cfg.OutputDir = out
	cfg.RemoveDuplicates = true
	r, _ := newRunner(t, &cfg)

	rep, err := r.Run(context.Background(), NewRunContext())
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Stats.DuplicatesRemoved)
	assert.FileExists(t, filepath.Join(front, "Contra.png"))
	assert.FileExists(t, filepath.Join(front, "Contra-01.png"))
	assert.NoFileExists(t, filepath.Join(front, "Contra-02.png"))

	b, err := os.ReadFile(filepath.Join(out, "Box - Front", "Contra.png"))
	require.NoError(t, err)
	assert.Equal(t, "Contra.png", string(b), "the unsuffixed original is the one copied")
}

func TestRunner_VideoRename(t *testing.T) {
	root := t.TempDir()
	collection := filepath.Join(root, "Videos")
	roms := filepath.Join(root, "roms")
	touch(t, filepath.Join(roms, "Chrono Trigger (USA).sfc"))
	touch(t, filepath.Join(roms, "Mega Man 2 (USA).nes"))
	touch(t, filepath.Join(collection, "Chrono_Trigger.mp4"))
	touch(t, filepath.Join(collection, "Mega Man 2 (USA).mp4"))

	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.Media = config.MediaVideos
	cfg.CollectionDir = collection
	cfg.CanonicalDir = roms
	r, _ := newRunner(t, &cfg)

	rep, err := r.Run(context.Background(), NewRunContext())
	require.NoError(t, err)

	assert.Equal(t, []string{"Root"}, rep.Buckets())
	assert.Equal(t, 1, rep.Stats.Renamed)
	assert.FileExists(t, filepath.Join(collection, "Chrono Trigger (USA).mp4"))
	assert.NoFileExists(t, filepath.Join(collection, "Chrono_Trigger.mp4"))
	assert.FileExists(t, filepath.Join(collection, "Mega Man 2 (USA).mp4"))
	assert.Zero(t, rep.Stats.Collisions)
	assert.FileExists(t, filepath.Join(collection, report.LogFileName(fixedStart)))
	assert.False(t, rep.Incomplete())
}

func TestSelectBuckets(t *testing.T) {
	f := newFixture(t)

	got, err := SelectBuckets(&f.cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"Box - Front", "Clear Logo"}, got)

	f.cfg.Buckets = []string{"Clear Logo", "Unmatched", "Box - Front", "Clear Logo", ""}
	got, err = SelectBuckets(&f.cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"Clear Logo", "Box - Front"}, got)
}
