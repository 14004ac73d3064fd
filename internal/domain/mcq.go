package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MCQ-specific validation errors
var (
	ErrMCQQuestionEmpty   = errors.New("mcq question cannot be empty")
	ErrMCQOptionCount     = errors.New("mcq must have exactly 4 options")
	ErrMCQAnswerNotOption = errors.New("mcq correct answer must match one of the options")
	ErrAttemptUserIDEmpty = errors.New("quiz attempt user ID cannot be empty")
	ErrAttemptInvalidScore = errors.New(
		"quiz attempt score must be between 0 and the total question count",
	)
)

// MCQOptionCount is the fixed number of answer options per question.
const MCQOptionCount = 4

// MCQ is a multiple-choice question produced by the generation backend.
// Exactly one of the four options matches CorrectAnswer verbatim.
type MCQ struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Validate checks the MCQ invariants: non-empty question, exactly four
// options, and a correct answer that matches one option exactly.
func (q *MCQ) Validate() error {
	if q.Question == "" {
		return ErrMCQQuestionEmpty
	}

	if len(q.Options) != MCQOptionCount {
		return ErrMCQOptionCount
	}

	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return nil
		}
	}

	return ErrMCQAnswerNotOption
}

// MCQAttempt records one completed quiz run. Attempts form an append-only
// history log and are never mutated after creation.
type MCQAttempt struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	Score              int       `json:"score"`
	Total              int       `json:"total"`
	IncorrectQuestions []string  `json:"incorrect_questions"`
	AttemptedAt        time.Time `json:"attempted_at"`
}

// NewMCQAttempt creates an attempt record for the given user and result.
func NewMCQAttempt(
	userID uuid.UUID,
	score, total int,
	incorrectQuestions []string,
) (*MCQAttempt, error) {
	attempt := &MCQAttempt{
		ID:                 uuid.New(),
		UserID:             userID,
		Score:              score,
		Total:              total,
		IncorrectQuestions: incorrectQuestions,
		AttemptedAt:        time.Now().UTC(),
	}

	if err := attempt.Validate(); err != nil {
		return nil, err
	}

	return attempt, nil
}

// Validate checks if the MCQAttempt has valid data.
func (a *MCQAttempt) Validate() error {
	if a.UserID == uuid.Nil {
		return ErrAttemptUserIDEmpty
	}

	if a.Total < 0 || a.Score < 0 || a.Score > a.Total {
		return ErrAttemptInvalidScore
	}

	return nil
}
