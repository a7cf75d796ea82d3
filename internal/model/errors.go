// Package model holds the shared entities and error taxonomy used across
// every organizer subsystem: audiobook folders, raw and consolidated
// metadata, duplication candidates, organization plans, and file operation
// results.
package model

import (
	"errors"
	"fmt"
)

// ErrorKind is the taxonomy of failures a core operation can report. It
// groups errors the way spec §7 does, by consequence rather than by Go type.
type ErrorKind string

const (
	// Input errors.
	ErrSourceNotFound   ErrorKind = "source_not_found"
	ErrInvalidArgument  ErrorKind = "invalid_argument"
	ErrDestinationExists ErrorKind = "destination_exists"

	// Extraction errors.
	ErrCorruptAudioFile ErrorKind = "corrupt_audio_file"
	ErrUnsupportedFormat ErrorKind = "unsupported_format"
	ErrNoAudioFiles     ErrorKind = "no_audio_files"

	// IO errors.
	ErrFileNotFound        ErrorKind = "file_not_found"
	ErrPermissionDenied    ErrorKind = "permission_denied"
	ErrIO                  ErrorKind = "io_error"
	ErrDirectoryScanFailed ErrorKind = "directory_scan_failed"

	// Integrity errors.
	ErrIntegrityFailure ErrorKind = "integrity_failure"
	ErrCleanupFailed    ErrorKind = "cleanup_failed"

	// Plan errors.
	ErrUnsupportedOperation ErrorKind = "unsupported_operation"
	ErrPathTooLong          ErrorKind = "path_too_long"

	// Cancellation.
	ErrCancelled ErrorKind = "cancelled"
)

// Error is the single error type returned across package boundaries. It
// carries a Kind so callers can branch with errors.Is against the sentinels
// below, plus an optional wrapped cause and a path for diagnostics.
type Error struct {
	Kind    ErrorKind
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Path != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s (%s): %v", e.Kind, e.Message, e.Path, e.Cause)
		}
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, model.Kind(X)) match regardless of message/path.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// New builds a model.Error of the given kind.
func New(kind ErrorKind, path, message string) *Error {
	return &Error{Kind: kind, Path: path, Message: message}
}

// Wrap builds a model.Error of the given kind wrapping a lower-level cause.
func Wrap(kind ErrorKind, path, message string, cause error) *Error {
	return &Error{Kind: kind, Path: path, Message: message, Cause: cause}
}

// Kind returns a zero-value sentinel *Error usable with errors.Is to test
// whether an error carries a particular kind, e.g.:
//
//	if errors.Is(err, model.Kind(model.ErrSourceNotFound)) { ... }
func Kind(k ErrorKind) error {
	return &Error{Kind: k}
}

// OfKind reports whether err (or something it wraps) is a *Error of kind k.
func OfKind(err error, k ErrorKind) bool {
	return errors.Is(err, Kind(k))
}
