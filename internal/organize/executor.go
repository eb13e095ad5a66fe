package organize

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/backmassage/mediamatch/internal/planner"
)

// Logger is the minimal logging interface needed by the Executor.
type Logger interface {
	Info(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// OperationError reports one action that failed. The executor logs it and
// continues with the next action.
type OperationError struct {
	Action planner.Action
	Err    error
}

func (e *OperationError) Error() string {
	if e.Action.Dest == "" {
		return fmt.Sprintf("%s %s: %v", e.Action.Kind, e.Action.Source, e.Err)
	}
	return fmt.Sprintf("%s %s -> %s: %v", e.Action.Kind, e.Action.Source, e.Action.Dest, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// Result summarizes an applied plan.
type Result struct {
	Applied  planner.Plan
	Skipped  planner.Plan
	Failures []*OperationError
}

// Executor applies plans through an afs.Service.
type Executor struct {
	fs      afs.Service
	dryRun  bool
	verbose bool
	log     Logger
}

// NewExecutor returns an Executor. In dry-run mode actions are logged and
// reported as applied without touching the filesystem.
func NewExecutor(fs afs.Service, dryRun, verbose bool, log Logger) *Executor {
	return &Executor{fs: fs, dryRun: dryRun, verbose: verbose, log: log}
}

// Apply runs every action of plan in order. A failing action is recorded
// and skipped; there is no rollback. Apply stops early only when ctx is
// cancelled, returning ctx.Err().
func (x *Executor) Apply(ctx context.Context, plan planner.Plan) (Result, error) {
	var res Result
	for _, a := range plan {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if a.Kind == planner.KindSkip {
			res.Skipped = append(res.Skipped, a)
			x.log.Debug(x.verbose, "skip %s: %s", filepath.Base(a.Source), a.Reason)
			continue
		}
		if x.dryRun {
			x.log.Info("[dry-run] %s", describe(a))
			res.Applied = append(res.Applied, a)
			continue
		}
		if err := x.apply(ctx, a); err != nil {
			opErr := &OperationError{Action: a, Err: err}
			x.log.Error("%v", opErr)
			res.Failures = append(res.Failures, opErr)
			continue
		}
		x.log.Debug(x.verbose, "%s", describe(a))
		res.Applied = append(res.Applied, a)
	}
	return res, nil
}

func (x *Executor) apply(ctx context.Context, a planner.Action) error {
	switch a.Kind {
	case planner.KindDelete:
		return errors.Wrap(x.fs.Delete(ctx, a.Source), "deleting")
	case planner.KindCopy:
		if err := x.ensureDir(ctx, filepath.Dir(a.Dest)); err != nil {
			return err
		}
		return errors.Wrap(x.fs.Copy(ctx, a.Source, a.Dest), "copying")
	case planner.KindMove, planner.KindRename:
		if err := x.ensureDir(ctx, filepath.Dir(a.Dest)); err != nil {
			return err
		}
		return errors.Wrap(x.fs.Move(ctx, a.Source, a.Dest), "moving")
	}
	return errors.Errorf("unsupported action %s", a.Kind)
}

// ensureDir creates dir when it does not exist yet.
func (x *Executor) ensureDir(ctx context.Context, dir string) error {
	exists, err := x.fs.Exists(ctx, dir)
	if err != nil {
		return errors.Wrapf(err, "checking %s", dir)
	}
	if exists {
		return nil
	}
	return errors.Wrapf(x.fs.Create(ctx, dir, file.DefaultDirOsMode, true), "creating %s", dir)
}

func describe(a planner.Action) string {
	if a.Dest == "" {
		return fmt.Sprintf("%s %s", a.Kind, a.Source)
	}
	return fmt.Sprintf("%s %s -> %s", a.Kind, a.Source, a.Dest)
}
