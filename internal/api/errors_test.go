package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sagelearning/sage-api/internal/generation"
	"github.com/sagelearning/sage-api/internal/service/auth"
	"github.com/sagelearning/sage-api/internal/service/card_review"
	"github.com/sagelearning/sage-api/internal/service/study"
	"github.com/sagelearning/sage-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"card not owned", card_review.ErrCardNotOwned, http.StatusForbidden},
		{"material not owned", study.ErrMaterialNotOwned, http.StatusForbidden},
		{"card not found", card_review.ErrCardNotFound, http.StatusNotFound},
		{"material not found", study.ErrMaterialNotFound, http.StatusNotFound},
		{"store user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"invalid grade", card_review.ErrInvalidGrade, http.StatusBadRequest},
		{"empty query", study.ErrEmptyQuery, http.StatusBadRequest},
		{"no cards due", card_review.ErrNoCardsDue, http.StatusNoContent},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{
			"backend failure maps upstream",
			generation.NewBackendError("summarize", errors.New("503")),
			http.StatusBadGateway,
		},
		{
			"malformed response maps upstream",
			generation.NewMalformedResponseError("mcqs", "raw", errors.New("bad json")),
			http.StatusBadGateway,
		},
		{
			"wrapped errors still match",
			fmt.Errorf("handler: %w", study.ErrMaterialNotFound),
			http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("known errors map to friendly text", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Email already exists", GetSafeErrorMessage(store.ErrEmailExists))
		assert.Equal(t, "Card not found", GetSafeErrorMessage(card_review.ErrCardNotFound))
		assert.Equal(t, "The generation service is unavailable",
			GetSafeErrorMessage(generation.NewBackendError("tutor", errors.New("dial tcp: refused"))))
	})

	t.Run("internal details never leak", func(t *testing.T) {
		t.Parallel()

		err := errors.New("pq: connection to postgres://user:password@db failed")
		msg := GetSafeErrorMessage(err)

		assert.Equal(t, "An unexpected error occurred", msg)
		assert.NotContains(t, msg, "postgres")
	})

	t.Run("malformed raw text never leaks", func(t *testing.T) {
		t.Parallel()

		err := generation.NewMalformedResponseError(
			"flashcards", "the raw model output", errors.New("invalid character"))
		msg := GetSafeErrorMessage(err)

		assert.NotContains(t, msg, "raw model output")
	})

	t.Run("nil error gets a generic message", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	})
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	t.Run("field validation errors are condensed", func(t *testing.T) {
		t.Parallel()

		err := errors.New(
			"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag")

		assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))
	})

	t.Run("other errors get the generic message", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
	})
}
