package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/infodancer/mailclean"
	"github.com/infodancer/mailclean/errors"
	"github.com/infodancer/mailclean/metrics"

	// Import maildir to register the "maildir" store
	_ "github.com/infodancer/mailclean/maildir"
)

var modeHelp = map[mailclean.Mode]string{
	mailclean.ModeArchive: "Move old messages into dated archive folders",
	mailclean.ModeTrash:   "Move old messages into the trash folder",
	mailclean.ModeDelete:  "Delete old messages permanently",
}

func newCleanCmd(name string, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   name + " FOLDER...",
		Short: modeHelp[mailclean.Mode(name)],
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &usageError{err: errors.ErrNoFolders}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := mailclean.ParseMode(cmd.Name())
			if err != nil {
				return &usageError{err: err}
			}
			return runClean(cmd, mode, args, opts)
		},
	}
}

func runClean(cmd *cobra.Command, mode mailclean.Mode, folders []string, opts *options) error {
	log, err := opts.newLogger(cmd.ErrOrStderr())
	if err != nil {
		return &usageError{err: err}
	}
	slog.SetDefault(log)

	cfg, err := opts.resolveConfig(cmd.Flags())
	if err != nil {
		return &usageError{err: err}
	}
	if err := cfg.Validate(mode); err != nil {
		return &usageError{err: err}
	}

	store, err := mailclean.Open(mailclean.StoreConfig{
		Type:     "maildir",
		BasePath: cfg.BasePath,
		Options: map[string]string{
			"prefix":      cfg.Prefix,
			"separator":   cfg.Separator,
			"retry_delay": cfg.RetryDelay.String(),
		},
	})
	if err != nil {
		return &usageError{err: err}
	}

	recorder := metrics.New()
	engine := mailclean.NewEngine(cfg, store, store,
		mailclean.WithLogger(log),
		mailclean.WithRecorder(recorder))

	log.Debug("starting cleanup",
		slog.String("mode", string(mode)),
		slog.String("maildir_root", cfg.BasePath),
		slog.String("min_age_days", strconv.FormatFloat(cfg.MinAgeDays, 'f', -1, 64)),
		slog.Bool("keep_read", cfg.KeepRead),
		slog.Bool("keep_flagged_threads", cfg.KeepFlaggedThreads),
		slog.Bool("trial_run", cfg.TrialRun))

	start := time.Now()
	stats, runErr := engine.Run(cmd.Context(), mode, folders)
	recorder.Finish(start, cfg.TrialRun)

	if opts.metricsFile != "" {
		if err := recorder.WriteFile(opts.metricsFile); err != nil {
			log.Error("failed to write metrics", slog.String("path", opts.metricsFile), slog.String("error", err.Error()))
		}
	}
	if runErr != nil {
		return runErr
	}

	verb := map[mailclean.Mode]string{
		mailclean.ModeArchive: "archived",
		mailclean.ModeTrash:   "trashed",
		mailclean.ModeDelete:  "deleted",
	}[mode]
	n := map[mailclean.Mode]int{
		mailclean.ModeArchive: stats.Archived,
		mailclean.ModeTrash:   stats.Trashed,
		mailclean.ModeDelete:  stats.Deleted,
	}[mode]
	prefix := ""
	if cfg.TrialRun {
		prefix = "trial run: would have "
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s%s %d of %d messages\n", prefix, verb, n, stats.Total)
	return nil
}
