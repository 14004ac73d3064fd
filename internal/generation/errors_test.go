package generation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendError(t *testing.T) {
	t.Parallel()

	cause := errors.New("429 quota exceeded")
	err := NewBackendError("summarize", cause)

	assert.ErrorIs(t, err, ErrBackendFailure)
	assert.NotErrorIs(t, err, ErrMalformedResponse)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "summarize")

	// Matching survives further wrapping up the call stack.
	wrapped := fmt.Errorf("study kit failed: %w", err)
	assert.ErrorIs(t, wrapped, ErrBackendFailure)

	var backend *BackendError
	require.True(t, errors.As(wrapped, &backend))
	assert.Equal(t, "summarize", backend.Feature)
}

func TestMalformedResponseError(t *testing.T) {
	t.Parallel()

	cause := errors.New("unexpected end of JSON input")
	err := NewMalformedResponseError("mcqs", `{"questions": [`, cause)

	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.NotErrorIs(t, err, ErrBackendFailure)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "mcqs")

	var malformed *MalformedResponseError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, `{"questions": [`, malformed.Raw)
}

func TestErrorKindsAreDisjoint(t *testing.T) {
	t.Parallel()

	// The two kinds partition all generation failures; nothing matches
	// both, so callers can branch on errors.Is alone.
	backend := NewBackendError("tutor", errors.New("connection refused"))
	malformed := NewMalformedResponseError("tutor", "oops", errors.New("bad json"))

	assert.True(t, errors.Is(backend, ErrBackendFailure) != errors.Is(backend, ErrMalformedResponse))
	assert.True(t, errors.Is(malformed, ErrMalformedResponse) != errors.Is(malformed, ErrBackendFailure))
}
