package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/viant/afs"

	"github.com/backmassage/mediamatch/internal/check"
	"github.com/backmassage/mediamatch/internal/config"
	"github.com/backmassage/mediamatch/internal/display"
	"github.com/backmassage/mediamatch/internal/logging"
	"github.com/backmassage/mediamatch/internal/pipeline"
	"github.com/backmassage/mediamatch/internal/scan"
)

func newRootCmd() *cobra.Command {
	flags := config.NewFlagSet()
	cmd := &cobra.Command{
		Use:   "mediamatch",
		Short: "Match, deduplicate and organize frontend media against a ROM collection",
		Long: `mediamatch renames cover art, logos and preview videos to the canonical
names of a ROM collection. Titles are resolved through a catalog XML first,
then by exact name, then by fuzzy similarity.

Examples:
  mediamatch run ./Images -x "Sega Genesis.xml" -r ./roms -o ./out
  mediamatch run ./Videos -m videos -r ./roms --video-mode rename
  mediamatch buckets ./Images
  mediamatch check ./Images -c mediamatch.yaml`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags.Bind(cmd.PersistentFlags())

	cmd.AddCommand(newRunCmd(flags), newBucketsCmd(flags), newCheckCmd(flags))
	return cmd
}

func newRunCmd(flags *config.FlagSet) *cobra.Command {
	return &cobra.Command{
		Use:   "run [collection]",
		Short: "Reconcile an asset collection",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Resolve(cmd.Flags(), args)
			if err != nil {
				return err
			}
			return runReconcile(cmd.Context(), &cfg, cmd.OutOrStdout())
		},
	}
}

func runReconcile(ctx context.Context, cfg *config.Config, out io.Writer) error {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner(out)
	log.Info("=== mediamatch v%s (%s) ===", version, commit)

	// Cancel on SIGINT/SIGTERM so the run stops between buckets and still
	// writes its summary.
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, finishing current file...")
			cancel()
		case <-ctx.Done():
		}
	}()

	r := pipeline.NewRunner(cfg, log, afs.New())
	r.OnProgress(func(step, total int, status string) {
		log.Info("[%d/%d] %s", step, total, status)
	})

	rep, err := r.Run(ctx, pipeline.NewRunContext())
	switch {
	case errors.Is(err, context.Canceled):
		log.Warn("Run interrupted; the summary covers the buckets processed so far")
		return &loggedError{err: err, code: exitInterrupted}
	case err != nil:
		log.Error("%v", err)
		return &loggedError{err: err, code: exitFailure}
	case rep.Stats.Failed > 0:
		err := errors.Errorf("%s failed", display.Plural(rep.Stats.Failed, "file operation"))
		log.Error("%v", err)
		return &loggedError{err: err, code: exitFailure}
	}
	log.Success("Done: %s matched", display.FormatRatio(rep.Stats.Matched(), rep.Stats.AssetsFound))
	return nil
}

func newBucketsCmd(flags *config.FlagSet) *cobra.Command {
	return &cobra.Command{
		Use:   "buckets [collection]",
		Short: "List the buckets a run would process and their asset counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Resolve(cmd.Flags(), args)
			if err != nil {
				return err
			}
			if cfg.CollectionDir == "" {
				return check.ErrNoCollection
			}
			return listBuckets(&cfg, cmd.OutOrStdout())
		},
	}
}

// listBuckets prints one line per bucket: its name and recognized file count.
func listBuckets(cfg *config.Config, out io.Writer) error {
	buckets, err := pipeline.SelectBuckets(cfg)
	if err != nil {
		return err
	}
	if len(buckets) == 0 {
		fmt.Fprintf(out, "No %s buckets found in %s\n", cfg.Media, cfg.CollectionDir)
		return nil
	}
	total := 0
	for _, b := range buckets {
		files, _ := scan.ScanBucket(cfg.CollectionDir, b, cfg.Media)
		total += len(files)
		fmt.Fprintf(out, "%-32s %6d\n", b, len(files))
	}
	fmt.Fprintf(out, "%-32s %6d\n", "Total", total)
	return nil
}

func newCheckCmd(flags *config.FlagSet) *cobra.Command {
	return &cobra.Command{
		Use:   "check [collection]",
		Short: "Validate the configuration and report what a run would use",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Resolve(cmd.Flags(), args)
			if err != nil {
				return err
			}
			log, err := logging.NewLogger(&cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			display.PrintBanner(cmd.OutOrStdout())
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := check.RunCheck(ctx, &cfg, afs.New(), log); err != nil {
				return &loggedError{err: err, code: exitFailure}
			}
			return nil
		},
	}
}
