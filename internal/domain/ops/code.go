package ops

// Code classifies the outcome of an administrative operation for the
// management/monitoring surface.
type Code string

const (
	// CodeUnavailable indicates the requested operation is not available
	// on this deployment (e.g. no such operation is registered).
	CodeUnavailable Code = "UNAVAILABLE"

	// CodeNone indicates no work was needed; the operation never started.
	CodeNone Code = "NONE"

	// CodeInitiated indicates an operation was accepted but has not been
	// started yet.
	CodeInitiated Code = "INITIATED"

	// CodeRunning indicates an operation has not finished. This covers
	// operations that are queued but not yet picked up by a worker.
	CodeRunning Code = "RUNNING"

	// CodeSucceeded indicates the operation finished without errors.
	CodeSucceeded Code = "SUCCEEDED"

	// CodeFailed indicates the operation failed, was cancelled, or its
	// outcome could not be determined.
	CodeFailed Code = "FAILED"
)

func (c Code) String() string { return string(c) }

// Name returns the human readable label of the code.
func (c Code) Name() string {
	switch c {
	case CodeUnavailable:
		return "unavailable"
	case CodeNone:
		return "none"
	case CodeInitiated:
		return "initiated"
	case CodeRunning:
		return "running"
	case CodeSucceeded:
		return "succeeded"
	case CodeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Int32 returns the fixed wire ordinal of the code. The ordinals are part of
// the external record contract and must never be reordered.
func (c Code) Int32() int32 {
	switch c {
	case CodeUnavailable:
		return 0
	case CodeNone:
		return 1
	case CodeInitiated:
		return 2
	case CodeRunning:
		return 3
	case CodeSucceeded:
		return 4
	case CodeFailed:
		return 5
	default:
		return -1
	}
}

// CodeFromInt32 maps a wire ordinal back to its Code. An out of range
// ordinal is rejected with ErrUnknownCode rather than coerced.
func CodeFromInt32(i int32) (Code, error) {
	switch i {
	case 0:
		return CodeUnavailable, nil
	case 1:
		return CodeNone, nil
	case 2:
		return CodeInitiated, nil
	case 3:
		return CodeRunning, nil
	case 4:
		return CodeSucceeded, nil
	case 5:
		return CodeFailed, nil
	default:
		return "", ErrUnknownCode{Value: i}
	}
}

// ParseCode converts a string to a Code.
func ParseCode(s string) Code {
	switch s {
	case "UNAVAILABLE":
		return CodeUnavailable
	case "NONE":
		return CodeNone
	case "INITIATED":
		return CodeInitiated
	case "RUNNING":
		return CodeRunning
	case "SUCCEEDED":
		return CodeSucceeded
	case "FAILED":
		return CodeFailed
	default:
		return "" // represents unspecified
	}
}
