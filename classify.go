package mailclean

import (
	"fmt"
	"time"

	"github.com/infodancer/mailclean/errors"
)

// SentDate is the parsed Date header of a message, or the reason it
// is unavailable.
type SentDate struct {
	Time time.Time
	Err  error // matches errors.ErrMessageDate when set
}

// Available reports whether the header yielded a timestamp.
func (d SentDate) Available() bool {
	return d.Err == nil
}

// DateSent parses the Date header of msg.
func DateSent(msg Message) SentDate {
	h := msg.Header()
	if !h.Has("Date") {
		return SentDate{Err: fmt.Errorf("%w: no Date header", errors.ErrMessageDate)}
	}
	t, err := h.Date()
	if err != nil {
		return SentDate{Err: fmt.Errorf("%w: %v", errors.ErrMessageDate, err)}
	}
	if t.IsZero() {
		return SentDate{Err: fmt.Errorf("%w: empty Date header", errors.ErrMessageDate)}
	}
	return SentDate{Time: t}
}

// SentOrReceivedDate returns the sent time of msg, or its received time
// when the Date header is unusable.
func SentOrReceivedDate(msg Message) time.Time {
	if d := DateSent(msg); d.Available() {
		return d.Time
	}
	return msg.ReceivedTime()
}

// AgeDays returns the fractional number of days between the received
// time of msg and now. The Date header is never consulted: senders
// control it.
func AgeDays(msg Message, now time.Time) float64 {
	return now.UTC().Sub(msg.ReceivedTime().UTC()).Hours() / 24
}
