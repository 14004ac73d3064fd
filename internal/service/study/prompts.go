package study

import (
	"fmt"
	"strings"

	"github.com/sagelearning/sage-api/internal/domain"
)

// Instruction builders for each generation feature. Each returns the
// full instruction text sent alongside the shape constraint; the
// material text is embedded verbatim so the backend grounds its output
// in the user's own content.

func summarizePrompt(text string) string {
	return fmt.Sprintf(`Summarize the following study material into a concise overview.
Capture the key concepts and their relationships in plain prose.
Respond with the summary text only.

Material:
%s`, text)
}

func flashcardsPrompt(text string, count int) string {
	return fmt.Sprintf(`Generate exactly %d flashcards from the following study material.
Each flashcard has a "question" testing one concept and a concise "answer".
Questions must be answerable from the material alone.

Material:
%s`, count, text)
}

func mcqsPrompt(text string, count int) string {
	return fmt.Sprintf(`Generate exactly %d multiple-choice questions from the following study material.
Each question has exactly %d options, one "correctAnswer" that matches an
option verbatim, and a short "explanation" of why it is correct.

Material:
%s`, count, domain.MCQOptionCount, text)
}

func semanticSearchPrompt(text, query string) string {
	return fmt.Sprintf(`Find the passages in the following material that are most relevant
to the query %q. Relevance is by meaning, not keyword overlap. Return
the matching passages as "snippets", quoted from the material, most
relevant first. Return an empty list if nothing is relevant.

Material:
%s`, query, text)
}

func conceptMapPrompt(text string) string {
	return fmt.Sprintf(`Extract the key concepts from the following material as a concept map.
Each node has an "id" (the concept name) and a "group" number clustering
related concepts. Each link connects two node ids with a "value" from 1
to 10 expressing how strongly the concepts relate.

Material:
%s`, text)
}

func tutorPrompt(text string) string {
	return fmt.Sprintf(`You are a patient tutor helping a student understand their study
material. Answer only from the material below; if the answer is not in
it, say so. Keep answers short and concrete.

Material:
%s`, text)
}

func essayOutlinePrompt(topic string) string {
	return fmt.Sprintf(`Create an essay outline for the topic %q. Provide a title, a one-
paragraph introduction, body sections each with a heading and bullet
points, and a one-paragraph conclusion.`, topic)
}

func lessonPlanPrompt(topic, level string) string {
	return fmt.Sprintf(`Create a lesson plan teaching %q to %s students. Provide a title,
a learning objective, total duration, required materials, a sequence of
timed activities, and an assessment.`, topic, level)
}

func studyPlanPrompt(goal string, days int) string {
	return fmt.Sprintf(`Create a %d-day study plan for the goal %q. Provide a title, the
duration in days, and a day-by-day schedule where each day has a topic
and a list of concrete tasks.`, days, goal)
}

func transcribePrompt() string {
	return strings.TrimSpace(`
Transcribe the spoken content of this audio recording verbatim.
Respond with the transcript text only, no commentary.`)
}

func extractTextPrompt() string {
	return strings.TrimSpace(`
Extract all readable text from this document, preserving paragraph
structure. Respond with the extracted text only, no commentary.`)
}
