package maildir

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/infodancer/mailclean"
	"github.com/infodancer/mailclean/errors"
)

const (
	// MaxDeliveryAttempts bounds the retries of a single delivery.
	MaxDeliveryAttempts = 10

	defaultRetryDelay = 2 * time.Second
)

// Writer delivers existing message files into maildir folders by
// hard-linking them through tmp/, new/ and cur/ of the destination.
// Each link is atomic, so concurrent readers and writers of the
// destination never observe a partial message.
type Writer struct {
	names       *namer
	maxAttempts int
	retryDelay  time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
	log         *slog.Logger
}

// NewWriter creates a Writer with the default retry policy.
func NewWriter() *Writer {
	return &Writer{
		names:       newNamer(),
		maxAttempts: MaxDeliveryAttempts,
		retryDelay:  defaultRetryDelay,
		sleep:       sleepContext,
		log:         slog.Default(),
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Deliver implements mailclean.Deliverer.
//
// The message is linked into tmp/ (staged), then new/ (visible to
// readers), then cur/ with the source flags re-appended, after which
// the new/ and tmp/ links are removed. A failed attempt cleans up its
// own links and is retried under a fresh name; after MaxDeliveryAttempts
// failures an *errors.DeliveryError is returned.
func (w *Writer) Deliver(ctx context.Context, msg mailclean.Message, destPath string) (string, error) {
	dest := New(destPath)
	suffix := infoSuffix(msg.Flags())

	var lastErr error
	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		name := w.names.next()
		err := w.link(msg.Filename(), dest, name, suffix)
		if err == nil {
			return name + suffix, nil
		}
		lastErr = err
		w.log.Warn("delivery attempt failed",
			slog.String("key", msg.Key()),
			slog.String("dest", destPath),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))

		if attempt == w.maxAttempts {
			break
		}
		if err := w.sleep(ctx, w.retryDelay); err != nil {
			return "", &errors.DeliveryError{Attempts: attempt, Err: err}
		}
	}
	return "", &errors.DeliveryError{Attempts: w.maxAttempts, Err: lastErr}
}

// link performs one delivery attempt. On failure every link it made
// is removed again; the source file is never touched.
func (w *Writer) link(src string, dest *Folder, name, suffix string) error {
	tmpPath := filepath.Join(dest.area(areaTmp), name)
	newPath := filepath.Join(dest.area(areaNew), name)
	curPath := filepath.Join(dest.area(areaCur), name+suffix)

	if err := os.Link(src, tmpPath); err != nil {
		return fmt.Errorf("stage: %w", err)
	}
	if err := os.Link(tmpPath, newPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("commit to new: %w", err)
	}
	if err := os.Link(newPath, curPath); err != nil {
		_ = os.Remove(newPath)
		_ = os.Remove(tmpPath)
		return fmt.Errorf("commit to cur: %w", err)
	}

	// The message is committed in cur/; what remains is tidying up.
	if err := os.Remove(newPath); err != nil {
		w.log.Warn("remove new link", slog.String("path", newPath), slog.String("error", err.Error()))
	}
	if err := os.Remove(tmpPath); err != nil {
		w.log.Warn("remove tmp link", slog.String("path", tmpPath), slog.String("error", err.Error()))
	}
	return nil
}
