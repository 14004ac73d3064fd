package study

import "github.com/sagelearning/sage-api/internal/generation"

// Output-shape constraints attached to each structured feature call.
// These mirror the JSON result shapes the UI consumes; the backend is
// asked to conform to them at generation time.

func flashcardListShape() *generation.Shape {
	return generation.Array(generation.Object(map[string]*generation.Shape{
		"question": generation.String(),
		"answer":   generation.String(),
	}))
}

func mcqListShape() *generation.Shape {
	return generation.Array(generation.Object(map[string]*generation.Shape{
		"question":      generation.String(),
		"options":       generation.Array(generation.String()),
		"correctAnswer": generation.String(),
		"explanation":   generation.String(),
	}))
}

func searchResultShape() *generation.Shape {
	return generation.Object(map[string]*generation.Shape{
		"snippets": generation.Array(generation.String()),
	})
}

func conceptMapShape() *generation.Shape {
	return generation.Object(map[string]*generation.Shape{
		"nodes": generation.Array(generation.Object(map[string]*generation.Shape{
			"id":    generation.String(),
			"group": generation.Integer(),
		})),
		"links": generation.Array(generation.Object(map[string]*generation.Shape{
			"source": generation.String(),
			"target": generation.String(),
			"value":  generation.Integer(),
		})),
	})
}

func essayOutlineShape() *generation.Shape {
	return generation.Object(map[string]*generation.Shape{
		"title":        generation.String(),
		"introduction": generation.String(),
		"body": generation.Array(generation.Object(map[string]*generation.Shape{
			"heading": generation.String(),
			"points":  generation.Array(generation.String()),
		})),
		"conclusion": generation.String(),
	})
}

func lessonPlanShape() *generation.Shape {
	return generation.Object(map[string]*generation.Shape{
		"title":     generation.String(),
		"objective": generation.String(),
		"duration":  generation.String(),
		"materials": generation.Array(generation.String()),
		"activities": generation.Array(generation.Object(map[string]*generation.Shape{
			"name":        generation.String(),
			"duration":    generation.String(),
			"description": generation.String(),
		})),
		"assessment": generation.String(),
	})
}

func studyPlanShape() *generation.Shape {
	return generation.Object(map[string]*generation.Shape{
		"title":        generation.String(),
		"durationDays": generation.Integer(),
		"schedule": generation.Array(generation.Object(map[string]*generation.Shape{
			"day":   generation.Integer(),
			"topic": generation.String(),
			"tasks": generation.Array(generation.String()),
		})),
	})
}
