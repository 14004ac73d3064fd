package srs

import (
	"github.com/sagelearning/sage-api/internal/domain"
)

// Params defines all configurable parameters for the SRS algorithm
type Params struct {
	// Core limits
	MinEaseFactor float64
	MaxEaseFactor float64
	MinInterval   int

	// Ease factor adjustments per review grade
	EaseFactorAdjustment map[domain.ReviewGrade]float64

	// Interval growth multipliers for Hard and Easy grades. Good uses
	// the card's ease factor directly.
	HardIntervalModifier float64
	EasyIntervalBonus    float64

	// Intervals assigned on a card's first graded review
	FirstReviewIntervals map[domain.ReviewGrade]int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor: 1.3,
		MaxEaseFactor: 3.0,
		MinInterval:   1,

		EaseFactorAdjustment: map[domain.ReviewGrade]float64{
			domain.ReviewGradeAgain: -0.20,
			domain.ReviewGradeHard:  -0.15,
			domain.ReviewGradeGood:  0.0,
			domain.ReviewGradeEasy:  0.15,
		},

		HardIntervalModifier: 1.2,
		EasyIntervalBonus:    1.3,

		FirstReviewIntervals: map[domain.ReviewGrade]int{
			domain.ReviewGradeAgain: 1,
			domain.ReviewGradeHard:  1,
			domain.ReviewGradeGood:  1,
			domain.ReviewGradeEasy:  2,
		},
	}
}
