package api

import (
	"github.com/google/uuid"
	"github.com/sagelearning/sage-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Token  string    `json:"token"`
}

// IngestTextRequest defines the payload for pasting raw material text.
type IngestTextRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// MaterialResponse defines the response shape for a stored material.
type MaterialResponse struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// GenerateRequest defines the payload for count-bounded generation
// endpoints (flashcards, quiz questions).
type GenerateRequest struct {
	Count int `json:"count" validate:"omitempty,min=1,max=50"`
}

// SummaryResponse defines the response for the summarize endpoint.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// SearchRequest defines the payload for the semantic search endpoint.
type SearchRequest struct {
	Query string `json:"query" validate:"required,min=1"`
}

// SearchResponse defines the response for the semantic search endpoint.
type SearchResponse struct {
	Snippets []string `json:"snippets"`
}

// SearchHistoryResponse defines the response for the search history
// endpoint, most recent query first.
type SearchHistoryResponse struct {
	Queries []string `json:"queries"`
}

// TutorRequest defines the payload for the tutor chat endpoint: the
// full ordered conversation so far, ending with the user's latest turn.
type TutorRequest struct {
	Messages []domain.ChatMessage `json:"messages" validate:"required,min=1"`
}

// TutorResponse defines the response for the tutor chat endpoint.
type TutorResponse struct {
	Reply string `json:"reply"`
}

// EssayOutlineRequest defines the payload for the essay outline endpoint.
type EssayOutlineRequest struct {
	Topic string `json:"topic" validate:"required,min=1"`
}

// LessonPlanRequest defines the payload for the lesson plan endpoint.
type LessonPlanRequest struct {
	Topic string `json:"topic" validate:"required,min=1"`
	Level string `json:"level" validate:"omitempty,max=100"`
}

// StudyPlanRequest defines the payload for the study plan endpoint.
type StudyPlanRequest struct {
	Goal string `json:"goal" validate:"required,min=1"`
	Days int    `json:"days" validate:"omitempty,min=1,max=365"`
}

// ReviewRequest defines the payload for grading a card review.
type ReviewRequest struct {
	Grade string `json:"grade" validate:"required,oneof=again hard good easy"`
}

// PostponeRequest defines the payload for postponing a card.
type PostponeRequest struct {
	Days int `json:"days" validate:"required,min=1,max=365"`
}

// CardResponse defines the response shape for a scheduled card.
type CardResponse struct {
	ID         string  `json:"id"`
	MaterialID string  `json:"material_id"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	EaseFactor float64 `json:"ease_factor"`
	Interval   int     `json:"interval"`
	DueAt      string  `json:"due_at"`
}

// AttemptRequest defines the payload for recording a quiz attempt.
type AttemptRequest struct {
	Score              int      `json:"score"              validate:"min=0"`
	Total              int      `json:"total"              validate:"required,min=1"`
	IncorrectQuestions []string `json:"incorrect_questions"`
}

// AttemptResponse defines the response shape for a recorded quiz attempt.
type AttemptResponse struct {
	ID                 string   `json:"id"`
	Score              int      `json:"score"`
	Total              int      `json:"total"`
	IncorrectQuestions []string `json:"incorrect_questions"`
	AttemptedAt        string   `json:"attempted_at"`
}
