package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		code     Code
		expected string
	}{
		{
			name:     "unavailable code",
			code:     CodeUnavailable,
			expected: "UNAVAILABLE",
		},
		{
			name:     "none code",
			code:     CodeNone,
			expected: "NONE",
		},
		{
			name:     "initiated code",
			code:     CodeInitiated,
			expected: "INITIATED",
		},
		{
			name:     "running code",
			code:     CodeRunning,
			expected: "RUNNING",
		},
		{
			name:     "succeeded code",
			code:     CodeSucceeded,
			expected: "SUCCEEDED",
		},
		{
			name:     "failed code",
			code:     CodeFailed,
			expected: "FAILED",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.code.String())
		})
	}
}

func TestCode_Int32(t *testing.T) {
	t.Parallel()

	// The ordinals are part of the wire contract and must match the
	// declaration order of the enumeration exactly.
	tests := []struct {
		name     string
		code     Code
		expected int32
	}{
		{name: "unavailable is 0", code: CodeUnavailable, expected: 0},
		{name: "none is 1", code: CodeNone, expected: 1},
		{name: "initiated is 2", code: CodeInitiated, expected: 2},
		{name: "running is 3", code: CodeRunning, expected: 3},
		{name: "succeeded is 4", code: CodeSucceeded, expected: 4},
		{name: "failed is 5", code: CodeFailed, expected: 5},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.code.Int32())
		})
	}
}

func TestCodeFromInt32(t *testing.T) {
	t.Parallel()

	for _, code := range []Code{
		CodeUnavailable,
		CodeNone,
		CodeInitiated,
		CodeRunning,
		CodeSucceeded,
		CodeFailed,
	} {
		code := code
		t.Run(code.String(), func(t *testing.T) {
			t.Parallel()

			got, err := CodeFromInt32(code.Int32())
			require.NoError(t, err)
			assert.Equal(t, code, got)
		})
	}
}

func TestCodeFromInt32_OutOfRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ordinal int32
	}{
		{name: "negative ordinal", ordinal: -1},
		{name: "past last ordinal", ordinal: 6},
		{name: "large ordinal", ordinal: 1 << 20},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := CodeFromInt32(tt.ordinal)
			require.Error(t, err)

			var unknownErr ErrUnknownCode
			require.ErrorAs(t, err, &unknownErr)
			assert.Equal(t, tt.ordinal, unknownErr.Value)
		})
	}
}

func TestCode_Name(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		code     Code
		expected string
	}{
		{name: "unavailable label", code: CodeUnavailable, expected: "unavailable"},
		{name: "none label", code: CodeNone, expected: "none"},
		{name: "initiated label", code: CodeInitiated, expected: "initiated"},
		{name: "running label", code: CodeRunning, expected: "running"},
		{name: "succeeded label", code: CodeSucceeded, expected: "succeeded"},
		{name: "failed label", code: CodeFailed, expected: "failed"},
		{name: "unknown label", code: Code("BOGUS"), expected: "unknown"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.code.Name())
		})
	}
}

func TestParseCode(t *testing.T) {
	t.Parallel()

	for _, code := range []Code{
		CodeUnavailable,
		CodeNone,
		CodeInitiated,
		CodeRunning,
		CodeSucceeded,
		CodeFailed,
	} {
		code := code
		t.Run(code.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, code, ParseCode(code.String()))
		})
	}

	t.Run("unknown string", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, Code(""), ParseCode("BOGUS"))
	})
}
