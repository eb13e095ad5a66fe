package pipeline

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/backmassage/mediamatch/internal/catalog"
	"github.com/backmassage/mediamatch/internal/naming"
	"github.com/backmassage/mediamatch/internal/report"
	"github.com/backmassage/mediamatch/internal/scan"
)

// ErrContextDirty is returned when a RunContext that already served a run is
// reused without Reset.
var ErrContextDirty = errors.New("run context holds state from a previous run; call Reset first")

// RunContext holds every piece of per-run state. A context serves one run;
// Reset clears it for the next.
type RunContext struct {
	RunID     string
	Started   time.Time
	Catalog   catalog.Mapping
	Canonical *scan.CanonicalSet
	Platform  string
	Claims    *naming.CollisionResolver
	Report    *report.Report
	LogPath   string

	dirty bool
}

// NewRunContext returns a clean context.
func NewRunContext() *RunContext {
	rc := &RunContext{}
	rc.Reset()
	return rc
}

// Reset discards the state of the previous run.
func (rc *RunContext) Reset() {
	claims := rc.Claims
	if claims == nil {
		claims = naming.NewCollisionResolver()
	} else {
		claims.Reset()
	}
	*rc = RunContext{Claims: claims}
}

// Dirty reports whether the context served a run since the last Reset.
func (rc *RunContext) Dirty() bool { return rc.dirty }

// begin claims the context for a run started at now.
func (rc *RunContext) begin(now time.Time) error {
	if rc.dirty {
		return ErrContextDirty
	}
	if rc.Claims == nil {
		rc.Claims = naming.NewCollisionResolver()
	}
	rc.dirty = true
	rc.RunID = uuid.NewString()
	rc.Started = now
	return nil
}
