package card_review

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagelearning/sage-api/internal/domain"
	"github.com/sagelearning/sage-api/internal/domain/srs"
	"github.com/sagelearning/sage-api/internal/store"
)

// fakeCardStore is an in-memory store.CardStore.
type fakeCardStore struct {
	mu    sync.Mutex
	cards map[uuid.UUID]*domain.ScheduledCard
}

func newFakeCardStore() *fakeCardStore {
	return &fakeCardStore{cards: make(map[uuid.UUID]*domain.ScheduledCard)}
}

func (s *fakeCardStore) CreateMultiple(ctx context.Context, cards []*domain.ScheduledCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, card := range cards {
		s.cards[card.ID] = card
	}
	return nil
}

func (s *fakeCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ScheduledCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	copied := *card
	return &copied, nil
}

func (s *fakeCardStore) GetNextDue(ctx context.Context, userID uuid.UUID) (*domain.ScheduledCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next *domain.ScheduledCard
	now := time.Now().UTC()
	for _, card := range s.cards {
		if card.UserID != userID || card.DueAt.After(now) {
			continue
		}
		if next == nil || card.DueAt.Before(next.DueAt) {
			next = card
		}
	}
	if next == nil {
		return nil, store.ErrCardNotFound
	}
	copied := *next
	return &copied, nil
}

func (s *fakeCardStore) UpdateSchedule(ctx context.Context, card *domain.ScheduledCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[card.ID]; !ok {
		return store.ErrCardNotFound
	}
	copied := *card
	s.cards[card.ID] = &copied
	return nil
}

func newTestService(t *testing.T, cardStore store.CardStore) CardReviewService {
	t.Helper()

	service, err := NewService(cardStore, srs.NewDefaultService(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return service
}

func seedCard(t *testing.T, cardStore *fakeCardStore, userID uuid.UUID) *domain.ScheduledCard {
	t.Helper()

	card, err := domain.NewScheduledCard(userID, uuid.New(), domain.Flashcard{
		Question: "What organelle hosts photosynthesis?",
		Answer:   "The chloroplast.",
	})
	require.NoError(t, err)
	require.NoError(t, cardStore.CreateMultiple(context.Background(), []*domain.ScheduledCard{card}))
	return card
}

func TestGetNextCard(t *testing.T) {
	t.Parallel()

	t.Run("returns the due card", func(t *testing.T) {
		t.Parallel()

		cardStore := newFakeCardStore()
		userID := uuid.New()
		seeded := seedCard(t, cardStore, userID)

		service := newTestService(t, cardStore)

		card, err := service.GetNextCard(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, card.ID)
	})

	t.Run("reports no cards due", func(t *testing.T) {
		t.Parallel()

		service := newTestService(t, newFakeCardStore())

		_, err := service.GetNextCard(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrNoCardsDue)
	})
}

func TestSubmitReview(t *testing.T) {
	t.Parallel()

	t.Run("grades and persists the new schedule", func(t *testing.T) {
		t.Parallel()

		cardStore := newFakeCardStore()
		userID := uuid.New()
		seeded := seedCard(t, cardStore, userID)

		service := newTestService(t, cardStore)

		updated, err := service.SubmitReview(
			context.Background(), userID, seeded.ID, domain.ReviewGradeEasy)
		require.NoError(t, err)

		// First graded review: Easy gives two days and raises ease.
		assert.Equal(t, 2, updated.Interval)
		assert.InDelta(t, 2.65, updated.EaseFactor, 0.0001)
		assert.Equal(t, 1, updated.ReviewCount)

		// The store now holds the updated schedule.
		stored, err := cardStore.GetByID(context.Background(), seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.Interval)

		// And the card is no longer due.
		_, err = service.GetNextCard(context.Background(), userID)
		assert.ErrorIs(t, err, ErrNoCardsDue)
	})

	t.Run("rejects an invalid grade", func(t *testing.T) {
		t.Parallel()

		cardStore := newFakeCardStore()
		userID := uuid.New()
		seeded := seedCard(t, cardStore, userID)

		service := newTestService(t, cardStore)

		_, err := service.SubmitReview(
			context.Background(), userID, seeded.ID, domain.ReviewGrade("excellent"))
		assert.ErrorIs(t, err, ErrInvalidGrade)
	})

	t.Run("rejects a card owned by another user", func(t *testing.T) {
		t.Parallel()

		cardStore := newFakeCardStore()
		seeded := seedCard(t, cardStore, uuid.New())

		service := newTestService(t, cardStore)

		_, err := service.SubmitReview(
			context.Background(), uuid.New(), seeded.ID, domain.ReviewGradeGood)
		assert.ErrorIs(t, err, ErrCardNotOwned)
	})

	t.Run("reports a missing card", func(t *testing.T) {
		t.Parallel()

		service := newTestService(t, newFakeCardStore())

		_, err := service.SubmitReview(
			context.Background(), uuid.New(), uuid.New(), domain.ReviewGradeGood)
		assert.ErrorIs(t, err, ErrCardNotFound)
	})
}

func TestPostponeCard(t *testing.T) {
	t.Parallel()

	t.Run("pushes the due date forward", func(t *testing.T) {
		t.Parallel()

		cardStore := newFakeCardStore()
		userID := uuid.New()
		seeded := seedCard(t, cardStore, userID)
		originalDue := seeded.DueAt

		service := newTestService(t, cardStore)

		updated, err := service.PostponeCard(context.Background(), userID, seeded.ID, 3)
		require.NoError(t, err)

		assert.Equal(t, originalDue.AddDate(0, 0, 3), updated.DueAt)
		assert.Equal(t, seeded.Interval, updated.Interval)
		assert.InDelta(t, seeded.EaseFactor, updated.EaseFactor, 0.0001)
	})

	t.Run("rejects non-positive days", func(t *testing.T) {
		t.Parallel()

		cardStore := newFakeCardStore()
		userID := uuid.New()
		seeded := seedCard(t, cardStore, userID)

		service := newTestService(t, cardStore)

		_, err := service.PostponeCard(context.Background(), userID, seeded.ID, 0)
		assert.ErrorIs(t, err, srs.ErrInvalidDays)
	})
}
