package mailclean

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NoSubjectKey is the thread key of messages without a Subject header.
const NoSubjectKey = "\x00no-subject"

// replyPrefixes are stripped once from the front of a lowercased subject.
var replyPrefixes = []string{"re:", "fwd:", "fw:"}

var lower = cases.Lower(language.Und)

// ThreadKey returns the grouping key for a message subject: lowercased,
// trimmed, with at most one leading reply or forward marker removed.
// Threads are grouped by subject text only; In-Reply-To is ignored.
func ThreadKey(subject string) string {
	if subject == "" {
		return NoSubjectKey
	}
	key := strings.TrimSpace(lower.String(subject))
	for _, p := range replyPrefixes {
		if strings.HasPrefix(key, p) {
			key = strings.TrimSpace(key[len(p):])
			break
		}
	}
	return key
}

// MessageThreadKey returns the thread key of msg from its raw Subject header.
func MessageThreadKey(msg Message) string {
	h := msg.Header()
	if !h.Has("Subject") {
		return NoSubjectKey
	}
	return ThreadKey(h.Get("Subject"))
}

// RetentionIndex is the set of thread keys with at least one flagged
// message in a folder.
type RetentionIndex map[string]struct{}

// Protects reports whether the thread of key holds a flagged message.
func (r RetentionIndex) Protects(key string) bool {
	_, ok := r[key]
	return ok
}

// ScanThreads builds the RetentionIndex of the messages in folder.
func ScanThreads(ctx context.Context, folder FolderReader) (RetentionIndex, error) {
	msgs, err := folder.Messages(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(RetentionIndex)
	for _, msg := range msgs {
		if HasFlag(msg.Flags(), FlagFlagged) {
			idx[MessageThreadKey(msg)] = struct{}{}
		}
	}
	return idx, nil
}
