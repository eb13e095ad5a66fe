package organize

import (
	"fmt"
	"path/filepath"

	"github.com/backmassage/mediamatch/internal/config"
	"github.com/backmassage/mediamatch/internal/match"
	"github.com/backmassage/mediamatch/internal/naming"
	"github.com/backmassage/mediamatch/internal/planner"
	"github.com/backmassage/mediamatch/internal/scan"
)

// Organizer plans the actions of a run. Destination claims persist across
// buckets until the shared resolver is reset.
type Organizer struct {
	cfg    *config.Config
	layout planner.Layout
	claims *naming.CollisionResolver
}

// NewOrganizer returns an Organizer for cfg and layout. claims may be
// shared with the caller; nil allocates a fresh resolver.
func NewOrganizer(cfg *config.Config, layout planner.Layout, claims *naming.CollisionResolver) *Organizer {
	if claims == nil {
		claims = naming.NewCollisionResolver()
	}
	return &Organizer{cfg: cfg, layout: layout, claims: claims}
}

// Bucket is the reconciled content of one bucket.
type Bucket struct {
	Matches   []match.Match
	Redundant []scan.AssetFile
	Unmatched []scan.AssetFile
}

// Plan returns the actions for b: redundant variants first, then matched
// assets in the given order, then unmatched files. Assets already carrying
// their canonical name claim their destination before any other asset, so
// an in-place rename never displaces a correctly named file. A destination
// claimed earlier turns the later action into a skip.
func (o *Organizer) Plan(b Bucket) planner.Plan {
	var plan planner.Plan
	for _, f := range b.Redundant {
		plan = append(plan, planner.PlanDuplicate(o.cfg, f))
	}

	outputs := make([]planner.Action, len(b.Matches))
	for i, m := range b.Matches {
		outputs[i] = planner.PlanMatch(o.layout, m)
		if outputs[i].Kind == planner.KindSkip {
			o.claims.Claim(outputs[i].Source, filepath.Clean(outputs[i].Source))
		}
	}
	for _, a := range outputs {
		if a.Kind != planner.KindSkip {
			a = o.claim(a)
		}
		plan = append(plan, a)
	}

	for _, f := range b.Unmatched {
		a := planner.PlanUnmatched(o.cfg, o.layout, f)
		if a.Kind != planner.KindSkip {
			a = o.claim(a)
		}
		plan = append(plan, a)
	}
	return plan
}

// claim registers a's destination, converting a into a skip when another
// source owns it.
func (o *Organizer) claim(a planner.Action) planner.Action {
	owner, ok := o.claims.Claim(a.Source, filepath.Clean(a.Dest))
	if ok {
		return a
	}
	a.Kind = planner.KindSkip
	a.Reason = fmt.Sprintf("destination %s already claimed by %s", filepath.Base(a.Dest), filepath.Base(owner))
	return a
}

// IsCollision reports whether a was skipped because of a destination claim.
func IsCollision(a planner.Action) bool {
	return a.Kind == planner.KindSkip && a.Dest != ""
}
