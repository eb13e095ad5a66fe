package pipeline

import (
	"path/filepath"

	"github.com/backmassage/mediamatch/internal/logging"
	"github.com/backmassage/mediamatch/internal/organize"
	"github.com/backmassage/mediamatch/internal/planner"
	"github.com/backmassage/mediamatch/internal/report"
)

// recordResult folds one bucket's executor result into stats, logging the
// skips a user needs to know about.
func recordResult(stats *report.Stats, res organize.Result, log *logging.Logger, verbose bool) {
	for _, a := range res.Applied {
		stats.RecordApplied(a)
	}
	for _, a := range res.Skipped {
		collision := organize.IsCollision(a)
		if collision {
			log.Warn("Skip %s: %s", filepath.Base(a.Source), a.Reason)
		}
		stats.RecordSkipped(a, collision)
	}
	for range res.Failures {
		stats.RecordFailure()
	}
	applied := res.Applied
	log.Debug(verbose, "Copied %d, moved %d, renamed %d, removed %d, relocated %d; skipped %d, failed %d",
		applied.Count(planner.KindCopy, planner.PurposeOutput),
		applied.Count(planner.KindMove, planner.PurposeOutput),
		applied.Count(planner.KindRename, planner.PurposeOutput),
		applied.Count(planner.KindDelete, planner.PurposeDuplicate),
		applied.Count(planner.KindMove, planner.PurposeUnmatched),
		len(res.Skipped), len(res.Failures))
}
