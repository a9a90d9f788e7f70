package mailclean

import (
	"time"

	"github.com/emersion/go-message/mail"
)

type testMessage struct {
	key      string
	header   mail.Header
	flags    []Flag
	received time.Time
}

func (m *testMessage) Key() string             { return m.key }
func (m *testMessage) Header() mail.Header     { return m.header }
func (m *testMessage) Flags() []Flag           { return m.flags }
func (m *testMessage) Filename() string        { return "/nonexistent/" + m.key }
func (m *testMessage) ReceivedTime() time.Time { return m.received }

// newTestMessage builds a message from alternating header names and values.
func newTestMessage(key string, received time.Time, flags []Flag, fields ...string) *testMessage {
	var h mail.Header
	for i := 0; i+1 < len(fields); i += 2 {
		h.Set(fields[i], fields[i+1])
	}
	return &testMessage{key: key, header: h, flags: flags, received: received}
}
