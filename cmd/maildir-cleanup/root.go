package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/infodancer/mailclean"
)

// options holds the values of the persistent flags.
type options struct {
	configFile  string
	metricsFile string
	logLevel    string
	logFormat   string
	quiet       bool
	verbose     bool

	cfg mailclean.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{cfg: mailclean.DefaultConfig()}

	rootCmd := &cobra.Command{
		Use:   "maildir-cleanup",
		Short: "Archive, trash or delete old messages in maildir folders",
		Long: `maildir-cleanup ages out messages older than a threshold from maildir
folders. Messages are moved with hard links through tmp/, new/ and cur/
so that no message is lost or duplicated if the process is interrupted.

Read messages and threads containing a flagged message can be kept.
The folder name INBOX refers to the top-level maildir.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "TOML configuration file")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format (text, json)")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "only log warnings and errors")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug messages")

	flags.StringVarP(&opts.cfg.BasePath, "maildir-root", "d", opts.cfg.BasePath, "maildir root holding the top-level inbox")
	flags.StringVar(&opts.cfg.Prefix, "folder-prefix", opts.cfg.Prefix, "prefix of folder directory names")
	flags.StringVar(&opts.cfg.Separator, "folder-separator", opts.cfg.Separator, "separator replacing / in folder names")
	flags.StringVar(&opts.cfg.TrashFolder, "trash-folder", opts.cfg.TrashFolder, "folder trashed messages are moved to")
	flags.StringVar(&opts.cfg.ArchiveFolder, "archive-folder", opts.cfg.ArchiveFolder, "base folder for archived messages")
	flags.IntVar(&opts.cfg.ArchiveDepth, "archive-hierarchy-depth", opts.cfg.ArchiveDepth, "archive folder date levels: 1 year, 2 month, 3 day")
	flags.Float64VarP(&opts.cfg.MinAgeDays, "age", "a", opts.cfg.MinAgeDays, "minimum age in days of messages to clean up")
	flags.BoolVar(&opts.cfg.KeepRead, "keep-read", false, "keep messages that have been read")
	flags.BoolVar(&opts.cfg.KeepFlaggedThreads, "keep-flagged-threads", false, "keep every message of a thread with a flagged message")
	flags.BoolVarP(&opts.cfg.TrialRun, "trial-run", "n", false, "log decisions without changing anything")
	flags.DurationVar(&opts.cfg.RetryDelay, "retry-delay", opts.cfg.RetryDelay, "pause between failed delivery attempts")

	for _, name := range []string{"archive", "trash", "delete"} {
		rootCmd.AddCommand(newCleanCmd(name, opts))
	}
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// resolveConfig applies the config file underneath any flags set
// explicitly on the command line.
func (o *options) resolveConfig(flags *pflag.FlagSet) (mailclean.Config, error) {
	if o.configFile == "" {
		return o.cfg, nil
	}

	cfg := mailclean.DefaultConfig()
	if err := mailclean.LoadConfigFile(o.configFile, &cfg); err != nil {
		return cfg, err
	}

	overrides := map[string]func(){
		"maildir-root":            func() { cfg.BasePath = o.cfg.BasePath },
		"folder-prefix":           func() { cfg.Prefix = o.cfg.Prefix },
		"folder-separator":        func() { cfg.Separator = o.cfg.Separator },
		"trash-folder":            func() { cfg.TrashFolder = o.cfg.TrashFolder },
		"archive-folder":          func() { cfg.ArchiveFolder = o.cfg.ArchiveFolder },
		"archive-hierarchy-depth": func() { cfg.ArchiveDepth = o.cfg.ArchiveDepth },
		"age":                     func() { cfg.MinAgeDays = o.cfg.MinAgeDays },
		"keep-read":               func() { cfg.KeepRead = o.cfg.KeepRead },
		"keep-flagged-threads":    func() { cfg.KeepFlaggedThreads = o.cfg.KeepFlaggedThreads },
		"trial-run":               func() { cfg.TrialRun = o.cfg.TrialRun },
		"retry-delay":             func() { cfg.RetryDelay = o.cfg.RetryDelay },
	}
	flags.Visit(func(f *pflag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply()
		}
	})
	return cfg, nil
}

// newLogger builds the slog logger selected by the logging flags.
func (o *options) newLogger(w io.Writer) (*slog.Logger, error) {
	level := o.logLevel
	switch {
	case o.quiet:
		level = "warn"
	case o.verbose:
		level = "debug"
	}

	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s (expected: debug, info, warn, error)", level)
	}

	handlerOpts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(o.logFormat) {
	case "text":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("invalid log format: %s (expected: json, text)", o.logFormat)
	}
}
