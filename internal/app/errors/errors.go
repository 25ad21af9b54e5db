package errors

import (
	"fmt"
)

// Input errors
var (
	ErrMissingFile      = New("file is required")
	ErrUnsafeFilename   = New("unsafe filename")
	ErrUnsupportedMedia = New("unsupported media type")
	ErrTooLarge         = New("file too large")
)

// Media errors
var (
	ErrMediaDecode  = New("media could not be decoded")
	ErrNoAudioTrack = New("media has no audio track")
)

// Storage errors
var (
	ErrIO               = New("storage I/O failed")
	ErrArtifactNotFound = New("artifact not found")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Wrap attaches a sentinel to a lower-level cause. The result matches
// sentinel with errors.Is and still unwraps to cause.
func Wrap(sentinel *Error, cause error) error {
	if cause == nil {
		return sentinel
	}
	return &Error{
		message: sentinel.message,
		cause:   cause,
	}
}

// Wrapf wraps a sentinel with formatted detail
func Wrapf(sentinel *Error, format string, args ...interface{}) error {
	return &Error{
		message: sentinel.message,
		cause:   fmt.Errorf(format, args...),
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}
