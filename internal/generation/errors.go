package generation

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two defined failure kinds. Every error returned
// by this package matches exactly one of them under errors.Is; callers
// never see an untyped failure.
var (
	// ErrBackendFailure is matched by errors from the remote call itself:
	// network, auth, quota, or a remote-side exception.
	ErrBackendFailure = errors.New("generation backend call failed")

	// ErrMalformedResponse is matched by errors where the remote call
	// succeeded but the returned text could not be decoded into the
	// expected shape.
	ErrMalformedResponse = errors.New("malformed response from generation backend")

	// ErrInvalidConfig is returned when the client configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generation client configuration")
)

// BackendError reports that the remote generation call failed. The message
// is prefixed with the originating feature's name for traceability.
type BackendError struct {
	// Feature is the name of the calling feature (e.g. "flashcards").
	Feature string

	// Err is the underlying remote error.
	Err error
}

// NewBackendError wraps a remote failure with the calling feature's name.
func NewBackendError(feature string, err error) *BackendError {
	return &BackendError{Feature: feature, Err: err}
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Feature, ErrBackendFailure, e.Err)
}

// Unwrap returns the underlying remote error.
func (e *BackendError) Unwrap() error { return e.Err }

// Is reports a match against the ErrBackendFailure sentinel.
func (e *BackendError) Is(target error) bool { return target == ErrBackendFailure }

// MalformedResponseError reports that the remote call succeeded but its
// output is not parseable JSON or does not match the expected shape. Raw
// retains the offending text for diagnostics; it must never be shown to
// the end user.
type MalformedResponseError struct {
	// Feature is the name of the calling feature.
	Feature string

	// Raw is the offending response text, retained for logging only.
	Raw string

	// Err is the underlying decode error, if any.
	Err error
}

// NewMalformedResponseError wraps a decode failure with the calling
// feature's name and the raw response text.
func NewMalformedResponseError(feature, raw string, err error) *MalformedResponseError {
	return &MalformedResponseError{Feature: feature, Raw: raw, Err: err}
}

func (e *MalformedResponseError) Error() string {
	// Raw is deliberately excluded: it belongs in logs, not in messages
	// that may reach a user.
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Feature, ErrMalformedResponse, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Feature, ErrMalformedResponse)
}

// Unwrap returns the underlying decode error.
func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Is reports a match against the ErrMalformedResponse sentinel.
func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }
