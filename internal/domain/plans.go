package domain

// Tree-shaped structured documents produced by single generation calls.
// Each value is immutable once produced: a new call yields a wholly new
// value, never an in-place edit. Field names mirror the JSON shape the
// generation backend is asked to produce.

// OutlineSection is one body section of an essay outline.
type OutlineSection struct {
	Heading string   `json:"heading"`
	Points  []string `json:"points"`
}

// EssayOutline is a structured outline for an essay on a given topic.
type EssayOutline struct {
	Title        string           `json:"title"`
	Introduction string           `json:"introduction"`
	Body         []OutlineSection `json:"body"`
	Conclusion   string           `json:"conclusion"`
}

// LessonActivity is one timed activity within a lesson plan.
type LessonActivity struct {
	Name        string `json:"name"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// LessonPlan is a structured teaching plan for a single lesson.
type LessonPlan struct {
	Title      string           `json:"title"`
	Objective  string           `json:"objective"`
	Duration   string           `json:"duration"`
	Materials  []string         `json:"materials"`
	Activities []LessonActivity `json:"activities"`
	Assessment string           `json:"assessment"`
}

// StudyDay is one day's worth of topics and tasks in a study plan.
type StudyDay struct {
	Day   int      `json:"day"`
	Topic string   `json:"topic"`
	Tasks []string `json:"tasks"`
}

// StudyPlan is a multi-day schedule for working through a material.
type StudyPlan struct {
	Title        string     `json:"title"`
	DurationDays int        `json:"durationDays"`
	Schedule     []StudyDay `json:"schedule"`
}
