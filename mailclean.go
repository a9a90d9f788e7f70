// Package mailclean performs crash-safe housekeeping over maildir folders.
//
// An Engine walks a folder through a FolderReader, decides for every
// message whether it is kept, archived, trashed or deleted, and moves
// messages with a Deliverer. Storage implementations register themselves
// with Register; the maildir package provides the "maildir" store:
//
//	import _ "github.com/infodancer/mailclean/maildir"
//
//	store, err := mailclean.Open(mailclean.StoreConfig{
//	    Type:     "maildir",
//	    BasePath: "/home/user/Maildir",
//	})
package mailclean

import (
	"fmt"
	"strings"

	"github.com/infodancer/mailclean/errors"
)

// Flag is a single-character message marker as stored in a maildir filename.
type Flag rune

// Maildir info flags understood by the cleanup engine.
const (
	FlagPassed  Flag = 'P'
	FlagReplied Flag = 'R'
	FlagSeen    Flag = 'S'
	FlagTrashed Flag = 'T'
	FlagDraft   Flag = 'D'
	FlagFlagged Flag = 'F'
)

// HasFlag reports whether flags contains f.
func HasFlag(flags []Flag, f Flag) bool {
	for _, x := range flags {
		if x == f {
			return true
		}
	}
	return false
}

// Mode selects what happens to messages eligible for cleanup.
type Mode string

const (
	ModeArchive Mode = "archive"
	ModeTrash   Mode = "trash"
	ModeDelete  Mode = "delete"
)

// ParseMode converts a command name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case ModeArchive, ModeTrash, ModeDelete:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q (expected: archive, trash, delete)", errors.ErrInvalidMode, s)
}

// Action is the outcome decided for a single message.
type Action int

const (
	ActionKeepThread Action = iota // thread has a flagged message
	ActionKeepFresh                // younger than the minimum age
	ActionKeepRead                 // read and keep-read is enabled
	ActionArchive
	ActionTrash
	ActionDelete
)

var actionNames = [...]string{
	ActionKeepThread: "keep-thread",
	ActionKeepFresh:  "keep-fresh",
	ActionKeepRead:   "keep-read",
	ActionArchive:    "archive",
	ActionTrash:      "trash",
	ActionDelete:     "delete",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// Kept reports whether the action leaves the message in place.
func (a Action) Kept() bool {
	return a == ActionKeepThread || a == ActionKeepFresh || a == ActionKeepRead
}

// Stats counts the outcome of a run.
type Stats struct {
	Total    int
	Archived int
	Trashed  int
	Deleted  int
}

// Add returns the element-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Total:    s.Total + o.Total,
		Archived: s.Archived + o.Archived,
		Trashed:  s.Trashed + o.Trashed,
		Deleted:  s.Deleted + o.Deleted,
	}
}

func (s *Stats) record(a Action) {
	s.Total++
	switch a {
	case ActionArchive:
		s.Archived++
	case ActionTrash:
		s.Trashed++
	case ActionDelete:
		s.Deleted++
	}
}
