package capture

import (
	"errors"
	"fmt"
)

var (
	// ErrDeviceBusy is reported when a capture is already in flight on the session.
	ErrDeviceBusy = errors.New("camera busy")
	// ErrSessionClosed is reported when the session lifecycle has ended.
	ErrSessionClosed = errors.New("camera session closed")
	// ErrNotWritable is reported when the destination directory cannot be written.
	ErrNotWritable = errors.New("destination not writable")
)

// CaptureError wraps a hardware or I/O failure during capture of Path.
// Path is empty when the failure happened before a destination was chosen.
type CaptureError struct {
	Path  string
	Cause error
}

func (e *CaptureError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("capture: %v", e.Cause)
	}
	return fmt.Sprintf("capture %s: %v", e.Path, e.Cause)
}

func (e *CaptureError) Unwrap() error { return e.Cause }

func newCaptureError(path string, cause error) *CaptureError {
	var ce *CaptureError
	if errors.As(cause, &ce) {
		return ce
	}
	return &CaptureError{Path: path, Cause: cause}
}
