package mailclean

import (
	"context"
	"time"

	"github.com/emersion/go-message/mail"
)

// FolderStore maps logical folder names to folders on disk.
type FolderStore interface {
	// FolderPath returns the filesystem path for a logical folder name.
	// The name "INBOX" maps to the store's base path.
	FolderPath(name string) (string, error)

	// Open returns a reader over the folder at path.
	// Returns errors.ErrFolderNotFound if the folder does not exist.
	Open(ctx context.Context, path string) (FolderReader, error)

	// Create creates the folder at path, including any parent folders
	// of its hierarchy. Existing folders are left untouched.
	Create(ctx context.Context, path string) error
}

// FolderReader enumerates the messages of one folder.
// Iteration order is not stable across calls.
type FolderReader interface {
	// Path returns the folder path.
	Path() string

	// Messages returns every message currently in the folder.
	Messages(ctx context.Context) ([]Message, error)

	// Remove deletes the message with the given key from the folder.
	Remove(ctx context.Context, key string) error
}

// Message is a stored message as seen by the cleanup engine.
// The value is invalid once the message is moved or removed.
type Message interface {
	// Key is the message identifier, unique within its folder.
	Key() string

	// Header returns the parsed message header.
	Header() mail.Header

	// Flags returns the message markers.
	Flags() []Flag

	// Filename returns the absolute path of the message file.
	Filename() string

	// ReceivedTime is when the message arrived in storage,
	// taken from the storage metadata rather than the headers.
	ReceivedTime() time.Time
}
