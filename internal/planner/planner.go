package planner

import (
	"path/filepath"

	"github.com/backmassage/mediamatch/internal/config"
	"github.com/backmassage/mediamatch/internal/match"
	"github.com/backmassage/mediamatch/internal/naming"
	"github.com/backmassage/mediamatch/internal/scan"
)

// Layout is the output geometry of one run.
type Layout struct {
	OutputDir     string
	Platform      string // empty when platform folders are disabled or unknown
	CollectionDir string
	Video         bool
	VideoMode     config.VideoMode
}

// NewLayout derives the layout from cfg. platform is the catalog's platform
// namespace; it is dropped when cfg disables platform folders.
func NewLayout(cfg *config.Config, platform string) Layout {
	if !cfg.PlatformFolder {
		platform = ""
	}
	return Layout{
		OutputDir:     cfg.OutputDir,
		Platform:      platform,
		CollectionDir: cfg.CollectionDir,
		Video:         cfg.IsVideo(),
		VideoMode:     cfg.VideoMode,
	}
}

// PlanMatch decides what happens to a matched asset. Decision matrix:
//
//	images                -> copy to <output>[/platform]/<bucket>/<canonical><ext>
//	videos, rename mode   -> rename in place to <canonical><ext>
//	videos, move mode     -> move to <output>[/platform]/Videos[/<bucket>]/<canonical><ext>
//
// A rename onto itself becomes a skip.
func PlanMatch(l Layout, m match.Match) Action {
	a := Action{
		Purpose:   PurposeOutput,
		Source:    m.Asset.Path,
		Bucket:    m.Asset.Bucket,
		Canonical: m.Canonical,
	}
	switch {
	case !l.Video:
		a.Kind = KindCopy
		a.Dest = naming.GetOutputPath(l.OutputDir, l.Platform, m.Asset.Bucket, m.Canonical, m.Asset.Ext, false)
	case l.VideoMode == config.VideoMove:
		a.Kind = KindMove
		a.Dest = naming.GetOutputPath(l.OutputDir, l.Platform, m.Asset.Bucket, m.Canonical, m.Asset.Ext, true)
	default:
		a.Kind = KindRename
		a.Dest = naming.RenamedPath(m.Asset.Path, m.Canonical, m.Asset.Ext)
	}
	if filepath.Clean(a.Dest) == filepath.Clean(a.Source) {
		a.Kind = KindSkip
		a.Dest = ""
		a.Reason = "already named"
	}
	return a
}

// PlanDuplicate deletes a redundant variant when duplicate removal is
// enabled and skips it otherwise.
func PlanDuplicate(cfg *config.Config, f scan.AssetFile) Action {
	a := Action{Kind: KindDelete, Purpose: PurposeDuplicate, Source: f.Path, Bucket: f.Bucket}
	if !cfg.RemoveDuplicates {
		a.Kind = KindSkip
		a.Reason = "duplicate removal disabled"
	}
	return a
}

// PlanUnmatched relocates an unmatched asset to
// <collection>/Unmatched/<bucket>/ when relocation is enabled and skips it
// otherwise.
func PlanUnmatched(cfg *config.Config, l Layout, f scan.AssetFile) Action {
	a := Action{Kind: KindSkip, Purpose: PurposeUnmatched, Source: f.Path, Bucket: f.Bucket, Reason: "no match"}
	if cfg.MoveUnmatched {
		a.Kind = KindMove
		a.Dest = naming.UnmatchedPath(l.CollectionDir, f.Bucket, f.Path)
		a.Reason = ""
	}
	return a
}
