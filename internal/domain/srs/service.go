// Package srs implements the spaced-repetition scheduler: an SM-2-family
// algorithm that maps a graded recall to the card's next review interval,
// ease factor, and due date. The scheduler performs no I/O and touches no
// state beyond the single card, so scheduling of different cards is
// independent and order-insensitive.
package srs

import (
	"errors"
	"time"

	"github.com/sagelearning/sage-api/internal/domain"
)

// Common errors
var (
	ErrNilCard      = errors.New("scheduled card cannot be nil")
	ErrInvalidGrade = errors.New("invalid review grade")
	ErrInvalidDays  = errors.New("postpone days must be at least 1")
)

// Service defines the interface for SRS scheduling operations
type Service interface {
	// Review computes a card's next scheduling state from a review grade.
	// gradedAt is the time of the grading event and anchors the new due
	// date; it is injected for determinism.
	Review(
		card *domain.ScheduledCard,
		grade domain.ReviewGrade,
		gradedAt time.Time,
	) (*domain.ScheduledCard, error)

	// Postpone pushes the card's due date forward by a number of days
	// without touching its retention parameters.
	Postpone(
		card *domain.ScheduledCard,
		days int,
		now time.Time,
	) (*domain.ScheduledCard, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// Review implements the Service interface for grading a card.
func (s *defaultService) Review(
	card *domain.ScheduledCard,
	grade domain.ReviewGrade,
	gradedAt time.Time,
) (*domain.ScheduledCard, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	if !grade.IsValid() {
		return nil, ErrInvalidGrade
	}

	return calculateNextCard(card, grade, gradedAt, s.params), nil
}

// Postpone implements the Service interface for postponing reviews.
func (s *defaultService) Postpone(
	card *domain.ScheduledCard,
	days int,
	now time.Time,
) (*domain.ScheduledCard, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	if days < 1 {
		return nil, ErrInvalidDays
	}

	newCard := *card
	newCard.DueAt = card.DueAt.AddDate(0, 0, days)
	newCard.UpdatedAt = now

	return &newCard, nil
}
