package srs

import (
	"math"
	"time"

	"github.com/sagelearning/sage-api/internal/domain"
)

// calculateNewEaseFactor determines the new ease factor based on the
// review grade.
//
// The ease factor represents the card's difficulty: higher values mean
// the card is easier and intervals grow faster. Failed or hard recalls
// shrink it, easy recalls grow it, and the result is always clamped
// between params.MinEaseFactor and params.MaxEaseFactor so the factor
// can neither collapse nor run away.
func calculateNewEaseFactor(
	currentEF float64,
	grade domain.ReviewGrade,
	params *Params,
) float64 {
	newEF := currentEF + params.EaseFactorAdjustment[grade]

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}
	if newEF > params.MaxEaseFactor {
		newEF = params.MaxEaseFactor
	}

	return newEF
}

// calculateNewInterval determines the new interval in days based on the
// review grade and the card's current state.
//
// Grade behavior:
//   - Again resets the interval to the minimum unit (one day).
//   - First graded reviews (interval 0) use fixed initial intervals.
//   - Hard grows the interval sub-linearly (x1.2, at least one day more
//     than the previous interval).
//   - Good multiplies the interval by the card's ease factor.
//   - Easy multiplies by the ease factor and an additional bonus.
//
// Results are clamped so that for the same starting card the intervals
// are monotone: Easy >= Good >= Hard >= Again.
func calculateNewInterval(
	currentInterval int,
	easeFactor float64,
	grade domain.ReviewGrade,
	params *Params,
) int {
	if grade == domain.ReviewGradeAgain {
		return params.MinInterval
	}

	// First review or review after a reset to zero
	if currentInterval == 0 {
		return params.FirstReviewIntervals[grade]
	}

	hard := int(math.Round(float64(currentInterval) * params.HardIntervalModifier))
	if hard <= currentInterval {
		hard = currentInterval + 1
	}

	switch grade {
	case domain.ReviewGradeHard:
		return hard

	case domain.ReviewGradeGood:
		good := int(math.Round(float64(currentInterval) * easeFactor))
		if good < hard {
			good = hard
		}
		return good

	default: // domain.ReviewGradeEasy
		good := int(math.Round(float64(currentInterval) * easeFactor))
		if good < hard {
			good = hard
		}
		easy := int(math.Round(float64(currentInterval) * easeFactor * params.EasyIntervalBonus))
		if easy < good {
			easy = good
		}
		return easy
	}
}

// calculateNextCard creates a new ScheduledCard with updated scheduling
// state based on the review grade.
//
// The grading time is supplied by the caller rather than read from a
// system clock, so the calculation is pure and deterministic given
// identical inputs. The original card is never modified; a complete copy
// is returned with:
//   - the review count incremented and LastReviewedAt set to gradedAt,
//   - the ease factor adjusted and clamped for the grade,
//   - the interval recalculated from the previous interval and the new
//     ease factor,
//   - DueAt set to gradedAt plus the new interval in days.
func calculateNextCard(
	card *domain.ScheduledCard,
	grade domain.ReviewGrade,
	gradedAt time.Time,
	params *Params,
) *domain.ScheduledCard {
	newCard := *card

	newCard.ReviewCount++
	newCard.LastReviewedAt = gradedAt
	newCard.EaseFactor = calculateNewEaseFactor(card.EaseFactor, grade, params)
	newCard.Interval = calculateNewInterval(card.Interval, newCard.EaseFactor, grade, params)
	newCard.DueAt = gradedAt.AddDate(0, 0, newCard.Interval)
	newCard.UpdatedAt = gradedAt

	return &newCard
}
