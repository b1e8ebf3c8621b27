package ops

import "go.uber.org/atomic"

// IDSource mints unique identifiers for operations and standalone statuses.
// Ids are strictly increasing and never reused for the lifetime of the
// source, even when the consuming operation fails. The counter wraps on
// overflow, which is acceptable at expected operation volumes.
//
// A single source is shared by every component that mints ids so that ids
// stay unique within the process.
type IDSource struct {
	n atomic.Int32
}

// NewIDSource returns a source whose first id is 1.
func NewIDSource() *IDSource { return &IDSource{} }

// Next consumes and returns a fresh id. Safe for concurrent use; lock-free.
func (s *IDSource) Next() int32 { return s.n.Inc() }
