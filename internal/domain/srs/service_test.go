package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagelearning/sage-api/internal/domain"
)

func TestServiceReview(t *testing.T) {
	t.Parallel()

	service := NewDefaultService()
	gradedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("nil card is rejected", func(t *testing.T) {
		t.Parallel()

		result, err := service.Review(nil, domain.ReviewGradeGood, gradedAt)
		assert.ErrorIs(t, err, ErrNilCard)
		assert.Nil(t, result)
	})

	t.Run("unknown grade is rejected", func(t *testing.T) {
		t.Parallel()

		card := newTestCard(t, 5, 2.5)
		result, err := service.Review(card, domain.ReviewGrade("perfect"), gradedAt)
		assert.ErrorIs(t, err, ErrInvalidGrade)
		assert.Nil(t, result)
	})

	t.Run("grades card and anchors due date to grading time", func(t *testing.T) {
		t.Parallel()

		card := newTestCard(t, 0, 2.5)

		result, err := service.Review(card, domain.ReviewGradeEasy, gradedAt)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Interval)
		assert.InDelta(t, 2.65, result.EaseFactor, 0.0001)
		assert.Equal(t, gradedAt.AddDate(0, 0, 2), result.DueAt)
		assert.Equal(t, 1, result.ReviewCount)
	})

	t.Run("custom params are honored", func(t *testing.T) {
		t.Parallel()

		params := NewDefaultParams()
		params.FirstReviewIntervals[domain.ReviewGradeEasy] = 4
		service := NewServiceWithParams(params)

		card := newTestCard(t, 0, 2.5)

		result, err := service.Review(card, domain.ReviewGradeEasy, gradedAt)
		require.NoError(t, err)
		assert.Equal(t, 4, result.Interval)
	})
}

func TestServicePostpone(t *testing.T) {
	t.Parallel()

	service := NewDefaultService()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("nil card is rejected", func(t *testing.T) {
		t.Parallel()

		result, err := service.Postpone(nil, 3, now)
		assert.ErrorIs(t, err, ErrNilCard)
		assert.Nil(t, result)
	})

	t.Run("non-positive days are rejected", func(t *testing.T) {
		t.Parallel()

		card := newTestCard(t, 5, 2.5)

		for _, days := range []int{0, -1, -30} {
			result, err := service.Postpone(card, days, now)
			assert.ErrorIs(t, err, ErrInvalidDays)
			assert.Nil(t, result)
		}
	})

	t.Run("shifts due date without touching retention state", func(t *testing.T) {
		t.Parallel()

		card := newTestCard(t, 5, 2.2)
		card.ReviewCount = 4
		originalDue := card.DueAt

		result, err := service.Postpone(card, 3, now)
		require.NoError(t, err)

		assert.Equal(t, originalDue.AddDate(0, 0, 3), result.DueAt)
		assert.Equal(t, 5, result.Interval)
		assert.InDelta(t, 2.2, result.EaseFactor, 0.0001)
		assert.Equal(t, 4, result.ReviewCount)
		assert.Equal(t, now, result.UpdatedAt)

		// The input card is never mutated.
		assert.Equal(t, originalDue, card.DueAt)
	})
}
