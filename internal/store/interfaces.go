package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/sagelearning/sage-api/internal/domain"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	// Create saves a new user. Returns ErrEmailExists if the email is
	// already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// MaterialStore defines persistence operations for ingested materials.
type MaterialStore interface {
	// Create saves a new material.
	Create(ctx context.Context, material *domain.Material) error

	// GetByID retrieves a material by ID. Returns ErrMaterialNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Material, error)
}

// CardStore defines persistence operations for scheduled flashcards.
type CardStore interface {
	// CreateMultiple saves a batch of cards atomically: either all cards
	// are created or none.
	CreateMultiple(ctx context.Context, cards []*domain.ScheduledCard) error

	// GetByID retrieves a card by ID. Returns ErrCardNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ScheduledCard, error)

	// GetNextDue retrieves the user's card with the earliest due date not
	// after now. Returns ErrCardNotFound when nothing is due.
	GetNextDue(ctx context.Context, userID uuid.UUID) (*domain.ScheduledCard, error)

	// UpdateSchedule persists a card's scheduling fields after a grading
	// or postpone event. Returns ErrCardNotFound if the card is absent.
	UpdateSchedule(ctx context.Context, card *domain.ScheduledCard) error
}

// AttemptStore defines persistence for the append-only quiz attempt log.
type AttemptStore interface {
	// Create appends an attempt to the log. Attempts are never updated
	// or deleted afterwards.
	Create(ctx context.Context, attempt *domain.MCQAttempt) error

	// ListByUser returns the user's attempts, most recent first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.MCQAttempt, error)
}

// SearchHistoryStore defines persistence for the bounded per-user list of
// recent search queries.
type SearchHistoryStore interface {
	// Get returns the user's recent queries, most recent first. An
	// unknown user yields an empty list, not an error.
	Get(ctx context.Context, userID uuid.UUID) ([]string, error)

	// Put replaces the user's history with the given list.
	Put(ctx context.Context, userID uuid.UUID, queries []string) error
}
