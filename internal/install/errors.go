package install

import "fmt"

// TransportError covers download and extraction failures. Either aborts the
// whole run; this is a one-shot bootstrap, not a resilient sync client, so
// no retry is attempted.
type TransportError struct {
	Op     string // "download" or "extract"
	Source string // URL or archive path
	Cause  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Source, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// PermissionError indicates the install directory could not be created or
// written to.
type PermissionError struct {
	Path  string
	Cause error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("install directory %s is not writable: %v", e.Path, e.Cause)
}

func (e *PermissionError) Unwrap() error {
	return e.Cause
}

// VerificationError indicates the downloaded archive failed integrity or
// authenticity verification. Distinct from TransportError: the bytes arrived
// intact but are not the bytes the release promised.
type VerificationError struct {
	Method string // "sha256" or "gpg"
	Reason string
	Cause  error
}

func (e *VerificationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s verification failed: %s: %v", e.Method, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s verification failed: %s", e.Method, e.Reason)
}

func (e *VerificationError) Unwrap() error {
	return e.Cause
}
