package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/sagelearning/sage-api/internal/api/shared"
	"github.com/sagelearning/sage-api/internal/service/study"
)

// StudyHandler handles generation-feature HTTP requests.
type StudyHandler struct {
	studyService study.Service
	logger       *slog.Logger
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(studyService study.Service, logger *slog.Logger) *StudyHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StudyHandler")
	}

	return &StudyHandler{
		studyService: studyService,
		logger:       logger.With(slog.String("component", "study_handler")),
	}
}

// Summarize handles POST /materials/{id}/summary requests.
func (h *StudyHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	userID, materialID, ok := h.materialScope(w, r)
	if !ok {
		return
	}

	summary, err := h.studyService.Summarize(r.Context(), userID, materialID)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to generate summary")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SummaryResponse{Summary: summary})
}

// GenerateFlashcards handles POST /materials/{id}/flashcards requests.
// Generated cards are persisted and immediately due for review.
func (h *StudyHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	userID, materialID, ok := h.materialScope(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	cards, err := h.studyService.GenerateFlashcards(r.Context(), userID, materialID, req.Count)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to generate flashcards")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, cardsToResponse(cards))
}

// GenerateMCQs handles POST /materials/{id}/quiz requests.
func (h *StudyHandler) GenerateMCQs(w http.ResponseWriter, r *http.Request) {
	userID, materialID, ok := h.materialScope(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	mcqs, err := h.studyService.GenerateMCQs(r.Context(), userID, materialID, req.Count)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to generate quiz")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, mcqs)
}

// SemanticSearch handles POST /materials/{id}/search requests.
func (h *StudyHandler) SemanticSearch(w http.ResponseWriter, r *http.Request) {
	userID, materialID, ok := h.materialScope(w, r)
	if !ok {
		return
	}

	var req SearchRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	snippets, err := h.studyService.SemanticSearch(r.Context(), userID, materialID, req.Query)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to search material")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SearchResponse{Snippets: snippets})
}

// SearchHistory handles GET /search/history requests.
func (h *StudyHandler) SearchHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	queries, err := h.studyService.SearchHistory(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to get search history")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SearchHistoryResponse{Queries: queries})
}

// BuildConceptMap handles POST /materials/{id}/concept-map requests.
func (h *StudyHandler) BuildConceptMap(w http.ResponseWriter, r *http.Request) {
	userID, materialID, ok := h.materialScope(w, r)
	if !ok {
		return
	}

	conceptMap, err := h.studyService.BuildConceptMap(r.Context(), userID, materialID)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to build concept map")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, conceptMap)
}

// TutorReply handles POST /materials/{id}/tutor requests.
func (h *StudyHandler) TutorReply(w http.ResponseWriter, r *http.Request) {
	userID, materialID, ok := h.materialScope(w, r)
	if !ok {
		return
	}

	var req TutorRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	reply, err := h.studyService.TutorReply(r.Context(), userID, materialID, req.Messages)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to get tutor reply")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TutorResponse{Reply: reply})
}

// BuildStudyKit handles POST /materials/{id}/kit requests.
func (h *StudyHandler) BuildStudyKit(w http.ResponseWriter, r *http.Request) {
	userID, materialID, ok := h.materialScope(w, r)
	if !ok {
		return
	}

	kit, err := h.studyService.BuildStudyKit(r.Context(), userID, materialID)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to build study kit")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, kit)
}

// EssayOutline handles POST /tools/essay-outline requests.
func (h *StudyHandler) EssayOutline(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	var req EssayOutlineRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	outline, err := h.studyService.EssayOutline(r.Context(), req.Topic)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to generate essay outline")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, outline)
}

// LessonPlan handles POST /tools/lesson-plan requests.
func (h *StudyHandler) LessonPlan(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	var req LessonPlanRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	plan, err := h.studyService.LessonPlan(r.Context(), req.Topic, req.Level)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to generate lesson plan")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, plan)
}

// StudyPlan handles POST /tools/study-plan requests.
func (h *StudyHandler) StudyPlan(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	var req StudyPlanRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	plan, err := h.studyService.StudyPlan(r.Context(), req.Goal, req.Days)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to generate study plan")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, plan)
}

// RecordAttempt handles POST /attempts requests.
func (h *StudyHandler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AttemptRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	attempt, err := h.studyService.RecordAttempt(
		r.Context(), userID, req.Score, req.Total, req.IncorrectQuestions)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to record attempt")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, attemptToResponse(attempt))
}

// ListAttempts handles GET /attempts requests.
func (h *StudyHandler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	attempts, err := h.studyService.ListAttempts(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to list attempts")
		return
	}

	responses := make([]AttemptResponse, 0, len(attempts))
	for _, attempt := range attempts {
		responses = append(responses, attemptToResponse(attempt))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// materialScope extracts the authenticated user and the material ID
// path parameter common to the per-material feature endpoints.
func (h *StudyHandler) materialScope(
	w http.ResponseWriter,
	r *http.Request,
) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	materialID, ok := getPathUUID(w, r, "id")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	return userID, materialID, true
}

// decodeGenerateRequest parses the optional count body shared by the
// flashcard and quiz endpoints. An empty body means the default count.
func (h *StudyHandler) decodeGenerateRequest(
	w http.ResponseWriter,
	r *http.Request,
) (GenerateRequest, bool) {
	var req GenerateRequest

	if r.ContentLength > 0 {
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return req, false
		}
		if err := shared.ValidateRequest(req); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
			return req, false
		}
	}

	return req, true
}

// respondServiceError maps a service error to a sanitized response,
// substituting a handler-specific message for generic server errors.
func (h *StudyHandler) respondServiceError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	fallbackMessage string,
) {
	statusCode := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)
	if statusCode == http.StatusInternalServerError {
		safeMessage = fallbackMessage
	}
	shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
}
