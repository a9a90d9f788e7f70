package maildir

import (
	"bufio"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-maildir"
	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-message/textproto"

	"github.com/infodancer/mailclean"
)

// Message is a message file in a maildir folder.
type Message struct {
	key      string
	filename string
	flags    []mailclean.Flag
	received time.Time
	header   mail.Header
}

// Key implements mailclean.Message.
func (m *Message) Key() string { return m.key }

// Header implements mailclean.Message.
func (m *Message) Header() mail.Header { return m.header }

// Flags implements mailclean.Message.
func (m *Message) Flags() []mailclean.Flag { return m.flags }

// Filename implements mailclean.Message.
func (m *Message) Filename() string { return m.filename }

// ReceivedTime implements mailclean.Message. It is the modification
// time of the message file, which delivery agents set on arrival.
func (m *Message) ReceivedTime() time.Time { return m.received }

// loadMessage stats filename and reads its header block.
// A malformed header yields an empty header rather than an error;
// only the Subject and Date fields are ever consulted.
func loadMessage(key, filename string, flags []mailclean.Flag) (*Message, error) {
	fi, err := os.Stat(filename)
	if err != nil {
		return nil, err
	}
	m := &Message{
		key:      key,
		filename: filename,
		flags:    flags,
		received: fi.ModTime(),
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	h, err := textproto.ReadHeader(bufio.NewReader(f))
	if err != nil {
		slog.Warn("unreadable message header",
			slog.String("file", filename),
			slog.String("error", err.Error()))
		h = textproto.Header{}
	}
	m.header = mail.Header{Header: message.Header{Header: h}}
	return m, nil
}

// convertFlags converts go-maildir flags to mailclean flags.
// Dovecot keyword letters are carried through unchanged.
func convertFlags(flags []maildir.Flag) []mailclean.Flag {
	if len(flags) == 0 {
		return nil
	}
	result := make([]mailclean.Flag, 0, len(flags))
	for _, f := range flags {
		result = append(result, mailclean.Flag(f))
	}
	return result
}

// Compile-time interface verification.
var _ mailclean.Message = (*Message)(nil)
