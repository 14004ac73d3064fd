package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Flashcard-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardUserIDEmpty is returned when a card's user ID is empty or nil.
	ErrCardUserIDEmpty = errors.New("card user ID cannot be empty")

	// ErrCardQuestionEmpty is returned when a card's question side is empty.
	ErrCardQuestionEmpty = errors.New("card question cannot be empty")

	// ErrCardAnswerEmpty is returned when a card's answer side is empty.
	ErrCardAnswerEmpty = errors.New("card answer cannot be empty")

	// ErrInvalidInterval is returned when a card's interval is negative.
	ErrInvalidInterval = errors.New("interval must be greater than or equal to 0")

	// ErrInvalidEaseFactor is returned when a card's ease factor is not positive.
	ErrInvalidEaseFactor = errors.New("ease factor must be greater than 1.0")
)

// DefaultEaseFactor is the ease factor assigned to newly created cards.
const DefaultEaseFactor = 2.5

// Flashcard is an immutable question/answer content pair, typically
// produced by the generation backend from ingested material.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ScheduledCard is a flashcard together with its spaced-repetition
// scheduling state. The due date is always Interval days after the most
// recent grading event; the ease factor only changes on grading.
type ScheduledCard struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	MaterialID     uuid.UUID `json:"material_id"`
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	EaseFactor     float64   `json:"ease_factor"`
	Interval       int       `json:"interval"` // days
	DueAt          time.Time `json:"due_at"`
	LastReviewedAt time.Time `json:"last_reviewed_at"`
	ReviewCount    int       `json:"review_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewScheduledCard creates a scheduled card from generated flashcard
// content. New cards start at the default ease factor with a zero
// interval so they are due for review immediately.
func NewScheduledCard(userID, materialID uuid.UUID, content Flashcard) (*ScheduledCard, error) {
	now := time.Now().UTC()
	card := &ScheduledCard{
		ID:          uuid.New(),
		UserID:      userID,
		MaterialID:  materialID,
		Question:    content.Question,
		Answer:      content.Answer,
		EaseFactor:  DefaultEaseFactor,
		Interval:    0,
		DueAt:       now,
		ReviewCount: 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the ScheduledCard has valid data.
// Returns an error if any field fails validation.
func (c *ScheduledCard) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.UserID == uuid.Nil {
		return ErrCardUserIDEmpty
	}

	if c.Question == "" {
		return ErrCardQuestionEmpty
	}

	if c.Answer == "" {
		return ErrCardAnswerEmpty
	}

	if c.Interval < 0 {
		return ErrInvalidInterval
	}

	if c.EaseFactor <= 1.0 {
		return ErrInvalidEaseFactor
	}

	return nil
}

// Content returns the card's immutable question/answer pair.
func (c *ScheduledCard) Content() Flashcard {
	return Flashcard{Question: c.Question, Answer: c.Answer}
}
