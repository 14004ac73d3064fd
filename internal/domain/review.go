package domain

import "errors"

// ReviewGrade represents the learner's graded recall quality for a card.
type ReviewGrade string

// Possible review grade values
const (
	ReviewGradeAgain ReviewGrade = "again"
	ReviewGradeHard  ReviewGrade = "hard"
	ReviewGradeGood  ReviewGrade = "good"
	ReviewGradeEasy  ReviewGrade = "easy"
)

// ErrInvalidReviewGrade is returned when a grade is outside the closed set.
var ErrInvalidReviewGrade = errors.New("invalid review grade")

// ParseReviewGrade converts a string to a ReviewGrade, returning
// ErrInvalidReviewGrade for anything outside the closed set.
func ParseReviewGrade(s string) (ReviewGrade, error) {
	switch ReviewGrade(s) {
	case ReviewGradeAgain, ReviewGradeHard, ReviewGradeGood, ReviewGradeEasy:
		return ReviewGrade(s), nil
	default:
		return "", ErrInvalidReviewGrade
	}
}

// IsValid reports whether the grade is one of the four defined values.
func (g ReviewGrade) IsValid() bool {
	switch g {
	case ReviewGradeAgain, ReviewGradeHard, ReviewGradeGood, ReviewGradeEasy:
		return true
	default:
		return false
	}
}
