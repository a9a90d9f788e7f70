package mailclean

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Recorder observes every decision the engine makes.
type Recorder interface {
	Observe(folder string, action Action)
}

// Engine runs cleanup passes over folders of one store.
// It is not safe for concurrent use.
type Engine struct {
	cfg      Config
	store    FolderStore
	writer   Deliverer
	log      *slog.Logger
	now      func() time.Time
	recorder Recorder
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger decisions are written to.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithClock sets the time source used for message ages.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRecorder registers a Recorder for every decision.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// NewEngine creates an Engine that reads folders from store and moves
// messages with writer.
func NewEngine(cfg Config, store FolderStore, writer Deliverer, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		store:  store,
		writer: writer,
		log:    slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run cleans every folder in order and returns the accumulated stats.
// The first error aborts the run; work already done is not rolled back.
func (e *Engine) Run(ctx context.Context, mode Mode, folders []string) (Stats, error) {
	var total Stats
	for _, name := range folders {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		stats, err := e.Clean(ctx, mode, name)
		total = total.Add(stats)
		if err != nil {
			return total, err
		}
	}
	e.log.Info("cleanup finished",
		slog.String("mode", string(mode)),
		slog.Bool("trial_run", e.cfg.TrialRun),
		slog.Int("total", total.Total),
		slog.Int("archived", total.Archived),
		slog.Int("trashed", total.Trashed),
		slog.Int("deleted", total.Deleted))
	return total, nil
}

// Clean performs one cleanup pass over the logical folder name.
func (e *Engine) Clean(ctx context.Context, mode Mode, name string) (Stats, error) {
	var stats Stats

	path, err := e.store.FolderPath(name)
	if err != nil {
		return stats, err
	}
	folder, err := e.store.Open(ctx, path)
	if err != nil {
		return stats, fmt.Errorf("open folder %s: %w", name, err)
	}

	// The thread index is built by a full scan before any message is acted on.
	var threads RetentionIndex
	if e.cfg.KeepFlaggedThreads {
		threads, err = ScanThreads(ctx, folder)
		if err != nil {
			return stats, fmt.Errorf("scan threads in %s: %w", name, err)
		}
		e.log.Debug("indexed flagged threads",
			slog.String("folder", name),
			slog.Int("threads", len(threads)))
	}

	msgs, err := folder.Messages(ctx)
	if err != nil {
		return stats, fmt.Errorf("list folder %s: %w", name, err)
	}

	now := e.now()
	for _, msg := range msgs {
		action, age := e.classify(mode, msg, threads, now)
		e.logDecision(name, msg, action, age)

		if !action.Kept() && !e.cfg.TrialRun {
			if err := e.apply(ctx, action, folder, msg); err != nil {
				return stats, err
			}
		}
		stats.record(action)
		if e.recorder != nil {
			e.recorder.Observe(name, action)
		}
	}

	e.log.Info("folder cleaned",
		slog.String("folder", name),
		slog.Int("total", stats.Total),
		slog.Int("archived", stats.Archived),
		slog.Int("trashed", stats.Trashed),
		slog.Int("deleted", stats.Deleted))
	return stats, nil
}

// classify decides the fate of msg. Checks run in a fixed order:
// thread protection, freshness, read state, then the mode.
func (e *Engine) classify(mode Mode, msg Message, threads RetentionIndex, now time.Time) (Action, float64) {
	age := AgeDays(msg, now)
	if threads != nil && threads.Protects(MessageThreadKey(msg)) {
		return ActionKeepThread, age
	}
	if age < e.cfg.MinAgeDays {
		return ActionKeepFresh, age
	}
	if e.cfg.KeepRead && HasFlag(msg.Flags(), FlagSeen) {
		return ActionKeepRead, age
	}
	switch mode {
	case ModeArchive:
		return ActionArchive, age
	case ModeTrash:
		return ActionTrash, age
	default:
		return ActionDelete, age
	}
}

func (e *Engine) apply(ctx context.Context, action Action, folder FolderReader, msg Message) error {
	switch action {
	case ActionTrash:
		dest, err := e.store.FolderPath(e.cfg.TrashFolder)
		if err != nil {
			return err
		}
		if err := e.store.Create(ctx, dest); err != nil {
			return fmt.Errorf("create trash folder %s: %w", e.cfg.TrashFolder, err)
		}
		if _, err := e.writer.Deliver(ctx, msg, dest); err != nil {
			return err
		}
	case ActionArchive:
		name, err := ArchiveFolderName(e.cfg.ArchiveFolder, e.cfg.Separator, SentOrReceivedDate(msg), e.cfg.ArchiveDepth)
		if err != nil {
			return err
		}
		dest, err := e.store.FolderPath(name)
		if err != nil {
			return err
		}
		if err := e.store.Create(ctx, dest); err != nil {
			return fmt.Errorf("create archive folder %s: %w", name, err)
		}
		if _, err := e.writer.Deliver(ctx, msg, dest); err != nil {
			return err
		}
	}
	if err := folder.Remove(ctx, msg.Key()); err != nil {
		return fmt.Errorf("remove %s: %w", msg.Key(), err)
	}
	return nil
}

func (e *Engine) logDecision(folder string, msg Message, action Action, age float64) {
	e.log.Info("message",
		slog.String("folder", folder),
		slog.String("key", msg.Key()),
		slog.String("action", action.String()),
		slog.String("age_days", fmt.Sprintf("%.2f", age)),
		slog.String("subject", e.subject(msg)))
}

// subject returns the decoded Subject for logging. Undecodable headers
// are logged raw.
func (e *Engine) subject(msg Message) string {
	h := msg.Header()
	s, err := h.Subject()
	if err != nil {
		e.log.Debug("undecodable subject",
			slog.String("key", msg.Key()),
			slog.String("error", err.Error()))
		return h.Get("Subject")
	}
	return s
}
