// Package ops provides the core domain model for tracking long-running
// administrative operations of the content store: a one-shot Operation
// wrapper, the Status snapshots it derives, a process-wide id source, and
// the fixed record encoding consumed by management tooling.
package ops

import "fmt"

// Status is an immutable point-in-time classification of an operation's
// outcome. It is created once, compared by value, and has no lifecycle
// beyond construction. The struct is comparable so it can be used directly
// as a map key.
type Status struct {
	code    Code
	id      int32
	message string
}

func newStatus(code Code, id int32, message string) Status {
	return Status{code: code, id: id, message: message}
}

// Unavailable returns a Status reporting that the operation is not available.
func Unavailable(id int32, message string) Status { return newStatus(CodeUnavailable, id, message) }

// None returns a Status reporting that no work was needed. Distinct from
// Succeeded: callers must not treat the two as interchangeable.
func None(id int32, message string) Status { return newStatus(CodeNone, id, message) }

// Initiated returns a Status reporting that an operation was accepted but
// not yet started.
func Initiated(id int32, message string) Status { return newStatus(CodeInitiated, id, message) }

// Running returns a Status reporting that an operation has not finished.
func Running(id int32, message string) Status { return newStatus(CodeRunning, id, message) }

// Succeeded returns a Status reporting that an operation finished without
// errors.
func Succeeded(id int32, message string) Status { return newStatus(CodeSucceeded, id, message) }

// Failed returns a Status reporting that an operation failed or was
// cancelled.
func Failed(id int32, message string) Status { return newStatus(CodeFailed, id, message) }

// Code returns the status code.
func (s Status) Code() Code { return s.code }

// ID returns the operation/status id.
func (s Status) ID() int32 { return s.id }

// Message returns the human readable message. It is never absent; a status
// without a message carries the empty string.
func (s Status) Message() string { return s.message }

// Name returns the human readable label of the status code.
func (s Status) Name() string { return s.code.Name() }

// IsSuccess reports whether the code is SUCCEEDED.
func (s Status) IsSuccess() bool { return s.code == CodeSucceeded }

// IsFailure reports whether the code is FAILED.
func (s Status) IsFailure() bool { return s.code == CodeFailed }

// Equal reports structural equality over code, id, and message.
func (s Status) Equal(other Status) bool { return s == other }

func (s Status) String() string {
	return fmt.Sprintf("Status{%s id=%d message=%q}", s.code, s.id, s.message)
}

// StatusFactory mints standalone statuses, consuming one fresh id from the
// shared source per status. It is used by callers outside the operation
// lifecycle, e.g. to report "no such operation" or "operation accepted".
type StatusFactory struct {
	ids *IDSource
}

// NewStatusFactory returns a factory bound to the given id source.
func NewStatusFactory(ids *IDSource) StatusFactory { return StatusFactory{ids: ids} }

// Unavailable mints a standalone UNAVAILABLE status.
func (f StatusFactory) Unavailable(message string) Status {
	return Unavailable(f.ids.Next(), message)
}

// None mints a standalone NONE status.
func (f StatusFactory) None(message string) Status { return None(f.ids.Next(), message) }

// Initiated mints a standalone INITIATED status.
func (f StatusFactory) Initiated(message string) Status { return Initiated(f.ids.Next(), message) }

// Running mints a standalone RUNNING status.
func (f StatusFactory) Running(message string) Status { return Running(f.ids.Next(), message) }

// Succeeded mints a standalone SUCCEEDED status.
func (f StatusFactory) Succeeded(message string) Status { return Succeeded(f.ids.Next(), message) }

// Failed mints a standalone FAILED status.
func (f StatusFactory) Failed(message string) Status { return Failed(f.ids.Next(), message) }
