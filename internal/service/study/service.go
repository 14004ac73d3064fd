// Package study orchestrates the generation features: it turns ingested
// material plus a feature request into an instruction and shape for the
// generation client, decodes the structured response, and persists
// whatever the feature keeps (cards, attempts, search history).
package study

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/sagelearning/sage-api/internal/domain"
	"github.com/sagelearning/sage-api/internal/generation"
	"github.com/sagelearning/sage-api/internal/platform/logger"
	"github.com/sagelearning/sage-api/internal/store"
)

// Feature names used to tag generation errors so a caller can tell
// which operation failed without parsing messages.
const (
	featureSummarize   = "summarize"
	featureFlashcards  = "flashcards"
	featureMCQs        = "mcqs"
	featureSearch      = "semantic_search"
	featureConceptMap  = "concept_map"
	featureTutor       = "tutor"
	featureEssay       = "essay_outline"
	featureLessonPlan  = "lesson_plan"
	featureStudyPlan   = "study_plan"
	featureExtractText = "extract_text"
	featureTranscribe  = "transcribe"
)

// Bounds on requested generation counts.
const (
	DefaultItemCount = 10
	MaxItemCount     = 50
)

// Common study service errors
var (
	// ErrMaterialNotFound indicates the requested material does not exist.
	ErrMaterialNotFound = errors.New("material not found")

	// ErrMaterialNotOwned indicates the material belongs to a different user.
	ErrMaterialNotOwned = errors.New("material not owned by user")

	// ErrEmptyMaterial indicates ingestion produced no usable text.
	ErrEmptyMaterial = errors.New("material text is empty")

	// ErrEmptyQuery indicates a blank search query.
	ErrEmptyQuery = errors.New("search query is empty")

	// ErrEmptyTopic indicates a blank topic or goal for a planning feature.
	ErrEmptyTopic = errors.New("topic is empty")
)

// Service defines the study feature operations.
type Service interface {
	// IngestText stores raw pasted text as a new material.
	IngestText(ctx context.Context, userID uuid.UUID, text string) (*domain.Material, error)

	// IngestFile extracts text from an uploaded document and stores it as
	// a new material. PDF uploads take a local extraction fast path; any
	// other media type is sent to the generation backend for extraction.
	IngestFile(ctx context.Context, userID uuid.UUID, data []byte, mediaType string) (*domain.Material, error)

	// Transcribe turns an audio upload into a transcript material.
	Transcribe(ctx context.Context, userID uuid.UUID, audio []byte, mediaType string) (*domain.Material, error)

	// GetMaterial fetches a material, enforcing ownership.
	GetMaterial(ctx context.Context, userID, materialID uuid.UUID) (*domain.Material, error)

	// Summarize produces a prose summary of a material.
	Summarize(ctx context.Context, userID, materialID uuid.UUID) (string, error)

	// GenerateFlashcards produces count flashcards from a material and
	// persists them as scheduled cards ready for review.
	GenerateFlashcards(ctx context.Context, userID, materialID uuid.UUID, count int) ([]*domain.ScheduledCard, error)

	// GenerateMCQs produces count multiple-choice questions from a
	// material. Nothing is persisted; attempts are recorded separately.
	GenerateMCQs(ctx context.Context, userID, materialID uuid.UUID, count int) ([]domain.MCQ, error)

	// SemanticSearch finds passages in a material relevant to the query
	// by meaning, and records the query in the user's search history.
	SemanticSearch(ctx context.Context, userID, materialID uuid.UUID, query string) ([]string, error)

	// SearchHistory returns the user's recent search queries, most recent
	// first.
	SearchHistory(ctx context.Context, userID uuid.UUID) ([]string, error)

	// BuildConceptMap extracts a node/link concept graph from a material.
	BuildConceptMap(ctx context.Context, userID, materialID uuid.UUID) (*domain.ConceptMap, error)

	// TutorReply answers the latest user turn of a tutoring conversation
	// grounded in a material. The caller supplies the full history; no
	// conversation state is kept server-side.
	TutorReply(ctx context.Context, userID, materialID uuid.UUID, history []domain.ChatMessage) (string, error)

	// EssayOutline produces a structured outline for an essay topic.
	EssayOutline(ctx context.Context, topic string) (*domain.EssayOutline, error)

	// LessonPlan produces a lesson plan for a topic at a student level.
	LessonPlan(ctx context.Context, topic, level string) (*domain.LessonPlan, error)

	// StudyPlan produces a day-by-day plan toward a goal.
	StudyPlan(ctx context.Context, goal string, days int) (*domain.StudyPlan, error)

	// BuildStudyKit generates a summary, flashcards, and MCQs for a
	// material in one operation. Flashcards are persisted as with
	// GenerateFlashcards.
	BuildStudyKit(ctx context.Context, userID, materialID uuid.UUID) (*StudyKit, error)

	// RecordAttempt appends a finished quiz attempt to the user's log.
	RecordAttempt(ctx context.Context, userID uuid.UUID, score, total int, incorrect []string) (*domain.MCQAttempt, error)

	// ListAttempts returns the user's quiz attempts, most recent first.
	ListAttempts(ctx context.Context, userID uuid.UUID) ([]*domain.MCQAttempt, error)
}

// service is the standard implementation of Service.
type service struct {
	client        generation.Client
	materialStore store.MaterialStore
	cardStore     store.CardStore
	attemptStore  store.AttemptStore
	historyStore  store.SearchHistoryStore
	logger        *slog.Logger
}

// NewService creates a new study Service.
func NewService(
	client generation.Client,
	materialStore store.MaterialStore,
	cardStore store.CardStore,
	attemptStore store.AttemptStore,
	historyStore store.SearchHistoryStore,
	log *slog.Logger,
) (Service, error) {
	if client == nil {
		return nil, errors.New("generation client cannot be nil")
	}
	if materialStore == nil {
		return nil, errors.New("material store cannot be nil")
	}
	if cardStore == nil {
		return nil, errors.New("card store cannot be nil")
	}
	if attemptStore == nil {
		return nil, errors.New("attempt store cannot be nil")
	}
	if historyStore == nil {
		return nil, errors.New("search history store cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &service{
		client:        client,
		materialStore: materialStore,
		cardStore:     cardStore,
		attemptStore:  attemptStore,
		historyStore:  historyStore,
		logger:        log.With(slog.String("component", "study_service")),
	}, nil
}

// IngestText implements Service.IngestText
func (s *service) IngestText(
	ctx context.Context,
	userID uuid.UUID,
	text string,
) (*domain.Material, error) {
	return s.saveMaterial(ctx, userID, domain.MaterialSourceText, text)
}

// IngestFile implements Service.IngestFile
func (s *service) IngestFile(
	ctx context.Context,
	userID uuid.UUID,
	data []byte,
	mediaType string,
) (*domain.Material, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(data) == 0 {
		return nil, ErrEmptyMaterial
	}

	var text string
	if mediaType == "application/pdf" {
		extracted, err := extractPDFText(data)
		if err == nil {
			text = extracted
		} else {
			// Scanned or otherwise unparseable PDFs fall through to the
			// backend, which reads the document as an attachment.
			log.Debug("local pdf extraction failed, falling back to backend",
				slog.String("error", err.Error()))
		}
	}

	if strings.TrimSpace(text) == "" {
		extracted, err := s.client.GenerateMultimodal(ctx, "", extractTextPrompt(), data, mediaType)
		if err != nil {
			return nil, generation.NewBackendError(featureExtractText, err)
		}
		text = extracted
	}

	return s.saveMaterial(ctx, userID, domain.MaterialSourceUpload, text)
}

// Transcribe implements Service.Transcribe
func (s *service) Transcribe(
	ctx context.Context,
	userID uuid.UUID,
	audio []byte,
	mediaType string,
) (*domain.Material, error) {
	if len(audio) == 0 {
		return nil, ErrEmptyMaterial
	}

	transcript, err := s.client.GenerateMultimodal(ctx, "", transcribePrompt(), audio, mediaType)
	if err != nil {
		return nil, generation.NewBackendError(featureTranscribe, err)
	}

	return s.saveMaterial(ctx, userID, domain.MaterialSourceTranscript, transcript)
}

// GetMaterial implements Service.GetMaterial
func (s *service) GetMaterial(
	ctx context.Context,
	userID, materialID uuid.UUID,
) (*domain.Material, error) {
	return s.fetchOwnedMaterial(ctx, userID, materialID)
}

// Summarize implements Service.Summarize
func (s *service) Summarize(
	ctx context.Context,
	userID, materialID uuid.UUID,
) (string, error) {
	material, err := s.fetchOwnedMaterial(ctx, userID, materialID)
	if err != nil {
		return "", err
	}

	summary, err := s.client.GenerateText(ctx, "", summarizePrompt(material.Text))
	if err != nil {
		return "", generation.NewBackendError(featureSummarize, err)
	}

	return strings.TrimSpace(summary), nil
}

// GenerateFlashcards implements Service.GenerateFlashcards
func (s *service) GenerateFlashcards(
	ctx context.Context,
	userID, materialID uuid.UUID,
	count int,
) ([]*domain.ScheduledCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	material, err := s.fetchOwnedMaterial(ctx, userID, materialID)
	if err != nil {
		return nil, err
	}

	flashcards, err := s.generateFlashcardContent(ctx, material, clampCount(count))
	if err != nil {
		return nil, err
	}

	cards := make([]*domain.ScheduledCard, 0, len(flashcards))
	for _, fc := range flashcards {
		card, err := domain.NewScheduledCard(userID, materialID, fc)
		if err != nil {
			log.Warn("dropping invalid generated flashcard",
				slog.String("error", err.Error()))
			continue
		}
		cards = append(cards, card)
	}

	if len(cards) > 0 {
		if err := s.cardStore.CreateMultiple(ctx, cards); err != nil {
			return nil, fmt.Errorf("failed to save generated cards: %w", err)
		}
	}

	log.Info("flashcards generated",
		slog.String("material_id", materialID.String()),
		slog.Int("count", len(cards)))

	return cards, nil
}

// GenerateMCQs implements Service.GenerateMCQs
func (s *service) GenerateMCQs(
	ctx context.Context,
	userID, materialID uuid.UUID,
	count int,
) ([]domain.MCQ, error) {
	material, err := s.fetchOwnedMaterial(ctx, userID, materialID)
	if err != nil {
		return nil, err
	}

	return s.generateMCQContent(ctx, material, clampCount(count))
}

// SemanticSearch implements Service.SemanticSearch
func (s *service) SemanticSearch(
	ctx context.Context,
	userID, materialID uuid.UUID,
	query string,
) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	material, err := s.fetchOwnedMaterial(ctx, userID, materialID)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.GenerateStructured(ctx, "",
		semanticSearchPrompt(material.Text, query), searchResultShape())
	if err != nil {
		return nil, generation.NewBackendError(featureSearch, err)
	}

	snippets, err := generation.DecodeList[string](featureSearch, "snippets", raw)
	if err != nil {
		return nil, err
	}

	// History is a convenience list; a failure to persist it must not
	// fail the search itself.
	if err := s.pushSearchHistory(ctx, userID, query); err != nil {
		log.Warn("failed to update search history",
			slog.String("error", err.Error()))
	}

	return snippets, nil
}

// SearchHistory implements Service.SearchHistory
func (s *service) SearchHistory(
	ctx context.Context,
	userID uuid.UUID,
) ([]string, error) {
	history, err := s.historyStore.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get search history: %w", err)
	}
	return history, nil
}

// BuildConceptMap implements Service.BuildConceptMap
func (s *service) BuildConceptMap(
	ctx context.Context,
	userID, materialID uuid.UUID,
) (*domain.ConceptMap, error) {
	material, err := s.fetchOwnedMaterial(ctx, userID, materialID)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.GenerateStructured(ctx, "",
		conceptMapPrompt(material.Text), conceptMapShape())
	if err != nil {
		return nil, generation.NewBackendError(featureConceptMap, err)
	}

	conceptMap, err := generation.DecodeObject[domain.ConceptMap](featureConceptMap, raw)
	if err != nil {
		return nil, err
	}
	if err := conceptMap.Validate(); err != nil {
		return nil, generation.NewMalformedResponseError(featureConceptMap, raw, err)
	}

	return &conceptMap, nil
}

// TutorReply implements Service.TutorReply
func (s *service) TutorReply(
	ctx context.Context,
	userID, materialID uuid.UUID,
	history []domain.ChatMessage,
) (string, error) {
	if err := domain.ValidateChatHistory(history); err != nil {
		return "", err
	}

	material, err := s.fetchOwnedMaterial(ctx, userID, materialID)
	if err != nil {
		return "", err
	}

	// The grounding material rides as a leading user turn so the whole
	// conversation stays a plain stateless history.
	grounded := make([]domain.ChatMessage, 0, len(history)+1)
	grounded = append(grounded, domain.ChatMessage{
		Role:    domain.ChatRoleUser,
		Content: tutorPrompt(material.Text),
	})
	grounded = append(grounded, history...)

	reply, err := s.client.GenerateChat(ctx, "", grounded)
	if err != nil {
		return "", generation.NewBackendError(featureTutor, err)
	}

	return strings.TrimSpace(reply), nil
}

// EssayOutline implements Service.EssayOutline
func (s *service) EssayOutline(
	ctx context.Context,
	topic string,
) (*domain.EssayOutline, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	raw, err := s.client.GenerateStructured(ctx, "",
		essayOutlinePrompt(topic), essayOutlineShape())
	if err != nil {
		return nil, generation.NewBackendError(featureEssay, err)
	}

	outline, err := generation.DecodeObject[domain.EssayOutline](featureEssay, raw)
	if err != nil {
		return nil, err
	}
	return &outline, nil
}

// LessonPlan implements Service.LessonPlan
func (s *service) LessonPlan(
	ctx context.Context,
	topic, level string,
) (*domain.LessonPlan, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	if strings.TrimSpace(level) == "" {
		level = "high school"
	}

	raw, err := s.client.GenerateStructured(ctx, "",
		lessonPlanPrompt(topic, level), lessonPlanShape())
	if err != nil {
		return nil, generation.NewBackendError(featureLessonPlan, err)
	}

	plan, err := generation.DecodeObject[domain.LessonPlan](featureLessonPlan, raw)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// StudyPlan implements Service.StudyPlan
func (s *service) StudyPlan(
	ctx context.Context,
	goal string,
	days int,
) (*domain.StudyPlan, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, ErrEmptyTopic
	}
	if days < 1 {
		days = 7
	}

	raw, err := s.client.GenerateStructured(ctx, "",
		studyPlanPrompt(goal, days), studyPlanShape())
	if err != nil {
		return nil, generation.NewBackendError(featureStudyPlan, err)
	}

	plan, err := generation.DecodeObject[domain.StudyPlan](featureStudyPlan, raw)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// RecordAttempt implements Service.RecordAttempt
func (s *service) RecordAttempt(
	ctx context.Context,
	userID uuid.UUID,
	score, total int,
	incorrect []string,
) (*domain.MCQAttempt, error) {
	attempt, err := domain.NewMCQAttempt(userID, score, total, incorrect)
	if err != nil {
		return nil, err
	}

	if err := s.attemptStore.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to save quiz attempt: %w", err)
	}

	return attempt, nil
}

// ListAttempts implements Service.ListAttempts
func (s *service) ListAttempts(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.MCQAttempt, error) {
	attempts, err := s.attemptStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz attempts: %w", err)
	}
	return attempts, nil
}

// generateFlashcardContent runs the flashcard feature call and decodes
// the response, without persisting anything.
func (s *service) generateFlashcardContent(
	ctx context.Context,
	material *domain.Material,
	count int,
) ([]domain.Flashcard, error) {
	raw, err := s.client.GenerateStructured(ctx, "",
		flashcardsPrompt(material.Text, count), flashcardListShape())
	if err != nil {
		return nil, generation.NewBackendError(featureFlashcards, err)
	}

	return generation.DecodeList[domain.Flashcard](featureFlashcards, "flashcards", raw)
}

// generateMCQContent runs the quiz feature call and decodes the
// response, discarding structurally invalid questions.
func (s *service) generateMCQContent(
	ctx context.Context,
	material *domain.Material,
	count int,
) ([]domain.MCQ, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	raw, err := s.client.GenerateStructured(ctx, "",
		mcqsPrompt(material.Text, count), mcqListShape())
	if err != nil {
		return nil, generation.NewBackendError(featureMCQs, err)
	}

	mcqs, err := generation.DecodeList[domain.MCQ](featureMCQs, "questions", raw)
	if err != nil {
		return nil, err
	}

	valid := mcqs[:0]
	for _, q := range mcqs {
		if err := q.Validate(); err != nil {
			log.Warn("dropping invalid generated question",
				slog.String("error", err.Error()))
			continue
		}
		valid = append(valid, q)
	}

	return valid, nil
}

// fetchOwnedMaterial loads a material and verifies ownership.
func (s *service) fetchOwnedMaterial(
	ctx context.Context,
	userID, materialID uuid.UUID,
) (*domain.Material, error) {
	material, err := s.materialStore.GetByID(ctx, materialID)
	if err != nil {
		if errors.Is(err, store.ErrMaterialNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}

	if material.UserID != userID {
		return nil, ErrMaterialNotOwned
	}

	return material, nil
}

// saveMaterial validates and persists a new material.
func (s *service) saveMaterial(
	ctx context.Context,
	userID uuid.UUID,
	source domain.MaterialSource,
	text string,
) (*domain.Material, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMaterial
	}

	material, err := domain.NewMaterial(userID, source, text)
	if err != nil {
		return nil, err
	}

	if err := s.materialStore.Create(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to save material: %w", err)
	}

	return material, nil
}

// pushSearchHistory records a query in the user's bounded recent-query
// list.
func (s *service) pushSearchHistory(
	ctx context.Context,
	userID uuid.UUID,
	query string,
) error {
	history, err := s.historyStore.Get(ctx, userID)
	if err != nil {
		return err
	}
	return s.historyStore.Put(ctx, userID, domain.PushSearchQuery(history, query))
}

// clampCount bounds a requested item count, substituting the default
// for non-positive requests.
func clampCount(count int) int {
	if count <= 0 {
		return DefaultItemCount
	}
	if count > MaxItemCount {
		return MaxItemCount
	}
	return count
}

// extractPDFText pulls the embedded text layer out of a PDF. Returns an
// error for encrypted or image-only documents, which have no usable
// text layer.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	if strings.TrimSpace(buf.String()) == "" {
		return "", errors.New("pdf has no text layer")
	}

	return buf.String(), nil
}
