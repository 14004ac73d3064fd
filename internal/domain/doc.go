// Package domain contains the core entities of the study assistant:
// ingested materials, flashcards and their review schedules, generated
// quiz/outline/plan documents, tutor conversation messages, and users.
// Entities validate themselves; persistence and generation concerns live
// in other packages.
package domain
