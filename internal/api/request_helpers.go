package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sagelearning/sage-api/internal/api/shared"
	"github.com/sagelearning/sage-api/internal/domain"
)

// getUserIDFromContext extracts the authenticated user's UUID from the
// request context. The auth middleware is responsible for putting it
// there; absence means the route was wired without authentication.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// requireUserID extracts the authenticated user ID or writes a 401 and
// reports failure.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}

// getPathUUID parses a UUID path parameter, writing a 400 on failure.
func getPathUUID(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, bool) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, paramName+" is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+paramName+" format")
		return uuid.Nil, false
	}

	return id, true
}

// materialToResponse converts a domain.Material to a MaterialResponse.
func materialToResponse(material *domain.Material) MaterialResponse {
	return MaterialResponse{
		ID:        material.ID.String(),
		Source:    string(material.Source),
		Text:      material.Text,
		CreatedAt: material.CreatedAt.Format(time.RFC3339),
	}
}

// cardToResponse converts a domain.ScheduledCard to a CardResponse.
func cardToResponse(card *domain.ScheduledCard) CardResponse {
	return CardResponse{
		ID:         card.ID.String(),
		MaterialID: card.MaterialID.String(),
		Question:   card.Question,
		Answer:     card.Answer,
		EaseFactor: card.EaseFactor,
		Interval:   card.Interval,
		DueAt:      card.DueAt.Format(time.RFC3339),
	}
}

// cardsToResponse converts a batch of scheduled cards.
func cardsToResponse(cards []*domain.ScheduledCard) []CardResponse {
	responses := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		responses = append(responses, cardToResponse(card))
	}
	return responses
}

// attemptToResponse converts a domain.MCQAttempt to an AttemptResponse.
func attemptToResponse(attempt *domain.MCQAttempt) AttemptResponse {
	return AttemptResponse{
		ID:                 attempt.ID.String(),
		Score:              attempt.Score,
		Total:              attempt.Total,
		IncorrectQuestions: attempt.IncorrectQuestions,
		AttemptedAt:        attempt.AttemptedAt.Format(time.RFC3339),
	}
}
