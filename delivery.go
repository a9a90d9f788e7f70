package mailclean

import "context"

// Deliverer places a copy of a message into another folder.
// The engine calls Deliver before removing the message from its source.
type Deliverer interface {
	// Deliver links msg into the folder at destPath and returns the
	// committed filename. The source file is left untouched.
	// A failure is fatal; it matches errors.ErrDeliveryFailed.
	Deliver(ctx context.Context, msg Message, destPath string) (string, error)
}
