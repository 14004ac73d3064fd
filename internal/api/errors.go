package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sagelearning/sage-api/internal/domain"
	"github.com/sagelearning/sage-api/internal/generation"
	"github.com/sagelearning/sage-api/internal/service/auth"
	"github.com/sagelearning/sage-api/internal/service/card_review"
	"github.com/sagelearning/sage-api/internal/service/study"
	"github.com/sagelearning/sage-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based
// on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, card_review.ErrCardNotOwned),
		errors.Is(err, study.ErrMaterialNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrCardNotFound),
		errors.Is(err, store.ErrMaterialNotFound),
		errors.Is(err, card_review.ErrCardNotFound),
		errors.Is(err, study.ErrMaterialNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, card_review.ErrInvalidGrade),
		errors.Is(err, study.ErrEmptyMaterial),
		errors.Is(err, study.ErrEmptyQuery),
		errors.Is(err, study.ErrEmptyTopic),
		errors.Is(err, domain.ErrChatHistoryEmpty),
		errors.Is(err, domain.ErrChatRoleInvalid),
		errors.Is(err, domain.ErrChatContentEmpty):
		return http.StatusBadRequest

	// Upstream generation failures: the backend rejected the call or
	// returned something undecodable. Either way the fault is upstream
	// of this service.
	case errors.Is(err, generation.ErrBackendFailure),
		errors.Is(err, generation.ErrMalformedResponse):
		return http.StatusBadGateway

	// Special cases
	case errors.Is(err, card_review.ErrNoCardsDue):
		return http.StatusNoContent

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal
// details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"

	// Authorization errors
	case errors.Is(err, card_review.ErrCardNotOwned):
		return "You do not own this card"

	case errors.Is(err, study.ErrMaterialNotOwned):
		return "You do not own this material"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrCardNotFound),
		errors.Is(err, card_review.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, store.ErrMaterialNotFound),
		errors.Is(err, study.ErrMaterialNotFound):
		return "Material not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, card_review.ErrInvalidGrade):
		return "Invalid review grade"

	case errors.Is(err, study.ErrEmptyMaterial):
		return "Material text is empty"

	case errors.Is(err, study.ErrEmptyQuery):
		return "Search query is empty"

	case errors.Is(err, study.ErrEmptyTopic):
		return "Topic is required"

	case errors.Is(err, domain.ErrChatHistoryEmpty),
		errors.Is(err, domain.ErrChatRoleInvalid),
		errors.Is(err, domain.ErrChatContentEmpty):
		return "Invalid conversation history"

	// Upstream generation failures
	case errors.Is(err, generation.ErrBackendFailure):
		return "The generation service is unavailable"

	case errors.Is(err, generation.ErrMalformedResponse):
		return "The generation service returned an unusable response"

	// No cards due is handled separately with StatusNoContent

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation
// errors and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Message format: "Key: 'LoginRequest.Email' Error:Field validation
	// for 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
