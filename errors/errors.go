// Package errors provides centralized error definitions for mailclean.
package errors

import (
	"errors"
	"fmt"
)

// Message errors.
var (
	// ErrMessageDate indicates the Date header is absent or unparsable.
	// It never leaves the age classifier; callers fall back to the received time.
	ErrMessageDate = errors.New("message date unavailable")

	// ErrMessageNotFound indicates the requested message does not exist.
	ErrMessageNotFound = errors.New("message not found")
)

// Configuration errors.
var (
	// ErrInvalidMode indicates an unknown cleanup command.
	ErrInvalidMode = errors.New("invalid cleanup mode")

	// ErrInvalidDepth indicates an archive hierarchy depth outside 1-3.
	ErrInvalidDepth = errors.New("invalid archive hierarchy depth")

	// ErrInvalidAge indicates a negative minimum age.
	ErrInvalidAge = errors.New("invalid minimum age")

	// ErrNoFolders indicates no folder names were given.
	ErrNoFolders = errors.New("no folders given")

	// ErrEmptyFolderName indicates a trash or archive folder name is empty.
	ErrEmptyFolderName = errors.New("empty folder name")
)

// Store errors.
var (
	// ErrStoreNotRegistered indicates the requested store type is not registered.
	ErrStoreNotRegistered = errors.New("store type not registered")

	// ErrStoreConfigInvalid indicates the store configuration is invalid.
	ErrStoreConfigInvalid = errors.New("invalid store configuration")

	// ErrFolderNotFound indicates the folder directory does not exist
	// or lacks one of tmp, new and cur.
	ErrFolderNotFound = errors.New("folder not found")

	// ErrInvalidPath indicates an empty or malformed folder name.
	ErrInvalidPath = errors.New("invalid folder path")

	// ErrPathTraversal indicates a folder name resolves outside the base path.
	ErrPathTraversal = errors.New("path escapes base directory")
)

// ErrDeliveryFailed indicates a message could not be delivered
// after the writer exhausted its attempts.
var ErrDeliveryFailed = errors.New("delivery failed")

// DeliveryError reports a delivery abandoned after Attempts tries.
// Err is the error of the last attempt.
type DeliveryError struct {
	Attempts int
	Err      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Is reports ErrDeliveryFailed as a match so callers need not know the type.
func (e *DeliveryError) Is(target error) bool {
	return target == ErrDeliveryFailed
}
