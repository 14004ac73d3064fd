// Package card_review implements the review workflow: fetching the next
// due card and applying the spaced-repetition scheduler to a graded
// recall, persisting the updated schedule.
package card_review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sagelearning/sage-api/internal/domain"
	"github.com/sagelearning/sage-api/internal/domain/srs"
	"github.com/sagelearning/sage-api/internal/platform/logger"
	"github.com/sagelearning/sage-api/internal/store"
)

// Common card review errors
var (
	// ErrNoCardsDue indicates the user has no cards due for review.
	ErrNoCardsDue = errors.New("no cards due for review")

	// ErrCardNotFound indicates the requested card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrCardNotOwned indicates the card belongs to a different user.
	ErrCardNotOwned = errors.New("card not owned by user")

	// ErrInvalidGrade indicates a grade outside the closed set.
	ErrInvalidGrade = errors.New("invalid review grade")
)

// CardReviewService defines the review workflow operations.
type CardReviewService interface {
	// GetNextCard returns the user's next card due for review.
	// Returns ErrNoCardsDue when nothing is due.
	GetNextCard(ctx context.Context, userID uuid.UUID) (*domain.ScheduledCard, error)

	// SubmitReview grades a card and persists its updated schedule,
	// returning the updated card.
	SubmitReview(
		ctx context.Context,
		userID, cardID uuid.UUID,
		grade domain.ReviewGrade,
	) (*domain.ScheduledCard, error)

	// PostponeCard pushes a card's due date forward by the given number
	// of days.
	PostponeCard(
		ctx context.Context,
		userID, cardID uuid.UUID,
		days int,
	) (*domain.ScheduledCard, error)
}

// service is the standard implementation of CardReviewService.
type service struct {
	cardStore store.CardStore
	scheduler srs.Service
	logger    *slog.Logger
	// timeFunc supplies the grading time; injectable for testing.
	timeFunc func() time.Time
}

// NewService creates a new CardReviewService.
func NewService(
	cardStore store.CardStore,
	scheduler srs.Service,
	logger *slog.Logger,
) (CardReviewService, error) {
	if cardStore == nil {
		return nil, errors.New("card store cannot be nil")
	}
	if scheduler == nil {
		return nil, errors.New("scheduler cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &service{
		cardStore: cardStore,
		scheduler: scheduler,
		logger:    logger.With(slog.String("component", "card_review_service")),
		timeFunc:  func() time.Time { return time.Now().UTC() },
	}, nil
}

// GetNextCard implements CardReviewService.GetNextCard
func (s *service) GetNextCard(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.ScheduledCard, error) {
	card, err := s.cardStore.GetNextDue(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return nil, ErrNoCardsDue
		}
		return nil, fmt.Errorf("failed to get next due card: %w", err)
	}

	return card, nil
}

// SubmitReview implements CardReviewService.SubmitReview
func (s *service) SubmitReview(
	ctx context.Context,
	userID, cardID uuid.UUID,
	grade domain.ReviewGrade,
) (*domain.ScheduledCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !grade.IsValid() {
		return nil, ErrInvalidGrade
	}

	card, err := s.fetchOwnedCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	updated, err := s.scheduler.Review(card, grade, s.timeFunc())
	if err != nil {
		return nil, fmt.Errorf("failed to compute next review: %w", err)
	}

	if err := s.cardStore.UpdateSchedule(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to persist card schedule: %w", err)
	}

	log.Info("card review submitted",
		slog.String("card_id", cardID.String()),
		slog.String("grade", string(grade)),
		slog.Int("new_interval", updated.Interval),
		slog.Float64("new_ease_factor", updated.EaseFactor))

	return updated, nil
}

// PostponeCard implements CardReviewService.PostponeCard
func (s *service) PostponeCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	days int,
) (*domain.ScheduledCard, error) {
	card, err := s.fetchOwnedCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	updated, err := s.scheduler.Postpone(card, days, s.timeFunc())
	if err != nil {
		return nil, err
	}

	if err := s.cardStore.UpdateSchedule(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to persist card schedule: %w", err)
	}

	return updated, nil
}

// fetchOwnedCard loads a card and verifies ownership.
func (s *service) fetchOwnedCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.ScheduledCard, error) {
	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	if card.UserID != userID {
		return nil, ErrCardNotOwned
	}

	return card, nil
}
