package study

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagelearning/sage-api/internal/domain"
	"github.com/sagelearning/sage-api/internal/generation"
	"github.com/sagelearning/sage-api/internal/store"
)

// fakeClient is a scripted generation.Client. Each call records its
// instruction and returns the configured response or error.
type fakeClient struct {
	mu           sync.Mutex
	response     string
	err          error
	calls        int
	instructions []string
	histories    [][]domain.ChatMessage
}

func (c *fakeClient) record(instruction string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.instructions = append(c.instructions, instruction)
}

func (c *fakeClient) GenerateText(ctx context.Context, modelID, instruction string) (string, error) {
	c.record(instruction)
	return c.response, c.err
}

func (c *fakeClient) GenerateStructured(
	ctx context.Context,
	modelID, instruction string,
	shape *generation.Shape,
) (string, error) {
	c.record(instruction)
	return c.response, c.err
}

func (c *fakeClient) GenerateMultimodal(
	ctx context.Context,
	modelID, instruction string,
	attachment []byte,
	mediaType string,
) (string, error) {
	c.record(instruction)
	return c.response, c.err
}

func (c *fakeClient) GenerateChat(
	ctx context.Context,
	modelID string,
	history []domain.ChatMessage,
) (string, error) {
	c.mu.Lock()
	c.histories = append(c.histories, history)
	c.mu.Unlock()
	c.record("")
	return c.response, c.err
}

// In-memory store fakes.

type fakeMaterialStore struct {
	mu        sync.Mutex
	materials map[uuid.UUID]*domain.Material
}

func newFakeMaterialStore() *fakeMaterialStore {
	return &fakeMaterialStore{materials: make(map[uuid.UUID]*domain.Material)}
}

func (s *fakeMaterialStore) Create(ctx context.Context, material *domain.Material) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materials[material.ID] = material
	return nil
}

func (s *fakeMaterialStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	material, ok := s.materials[id]
	if !ok {
		return nil, store.ErrMaterialNotFound
	}
	return material, nil
}

type fakeCardStore struct {
	mu    sync.Mutex
	cards []*domain.ScheduledCard
}

func (s *fakeCardStore) CreateMultiple(ctx context.Context, cards []*domain.ScheduledCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = append(s.cards, cards...)
	return nil
}

func (s *fakeCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ScheduledCard, error) {
	return nil, store.ErrCardNotFound
}

func (s *fakeCardStore) GetNextDue(ctx context.Context, userID uuid.UUID) (*domain.ScheduledCard, error) {
	return nil, store.ErrCardNotFound
}

func (s *fakeCardStore) UpdateSchedule(ctx context.Context, card *domain.ScheduledCard) error {
	return nil
}

type fakeAttemptStore struct {
	mu       sync.Mutex
	attempts []*domain.MCQAttempt
}

func (s *fakeAttemptStore) Create(ctx context.Context, attempt *domain.MCQAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, attempt)
	return nil
}

func (s *fakeAttemptStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.MCQAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts, nil
}

type fakeHistoryStore struct {
	mu      sync.Mutex
	queries map[uuid.UUID][]string
}

func newFakeHistoryStore() *fakeHistoryStore {
	return &fakeHistoryStore{queries: make(map[uuid.UUID][]string)}
}

func (s *fakeHistoryStore) Get(ctx context.Context, userID uuid.UUID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries[userID], nil
}

func (s *fakeHistoryStore) Put(ctx context.Context, userID uuid.UUID, queries []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries[userID] = queries
	return nil
}

// fixture wires a service over fresh fakes with one stored material.
type fixture struct {
	service    Service
	client     *fakeClient
	materials  *fakeMaterialStore
	cards      *fakeCardStore
	attempts   *fakeAttemptStore
	history    *fakeHistoryStore
	userID     uuid.UUID
	materialID uuid.UUID
}

func newFixture(t *testing.T, response string, clientErr error) *fixture {
	t.Helper()

	f := &fixture{
		client:    &fakeClient{response: response, err: clientErr},
		materials: newFakeMaterialStore(),
		cards:     &fakeCardStore{},
		attempts:  &fakeAttemptStore{},
		history:   newFakeHistoryStore(),
		userID:    uuid.New(),
	}

	material, err := domain.NewMaterial(f.userID, domain.MaterialSourceText,
		"Photosynthesis converts light energy into chemical energy stored in glucose.")
	require.NoError(t, err)
	require.NoError(t, f.materials.Create(context.Background(), material))
	f.materialID = material.ID

	service, err := NewService(f.client, f.materials, f.cards, f.attempts, f.history,
		slog.New(slog.NewTextHandler(testWriter{t}, nil)))
	require.NoError(t, err)
	f.service = service

	return f
}

// testWriter routes service logs through the test log.
type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSpace(string(p)))
	return len(p), nil
}

func TestGenerateFlashcards(t *testing.T) {
	t.Parallel()

	t.Run("generates and persists scheduled cards", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t,
			`[{"question":"What does photosynthesis convert?","answer":"Light into chemical energy."}]`,
			nil)

		cards, err := f.service.GenerateFlashcards(context.Background(), f.userID, f.materialID, 1)
		require.NoError(t, err)
		require.Len(t, cards, 1)

		card := cards[0]
		assert.Equal(t, "What does photosynthesis convert?", card.Question)
		assert.Equal(t, "Light into chemical energy.", card.Answer)
		assert.Equal(t, f.userID, card.UserID)
		assert.Equal(t, f.materialID, card.MaterialID)

		// New cards start at the default ease factor, due immediately.
		assert.InDelta(t, domain.DefaultEaseFactor, card.EaseFactor, 0.0001)
		assert.Equal(t, 0, card.Interval)

		// And they were persisted.
		assert.Len(t, f.cards.cards, 1)
	})

	t.Run("wrapper response shape is tolerated", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t,
			`{"flashcards":[{"question":"q","answer":"a"}]}`, nil)

		cards, err := f.service.GenerateFlashcards(context.Background(), f.userID, f.materialID, 1)
		require.NoError(t, err)
		assert.Len(t, cards, 1)
	})

	t.Run("backend failure carries the feature name", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "", errors.New("503 unavailable"))

		_, err := f.service.GenerateFlashcards(context.Background(), f.userID, f.materialID, 5)
		require.Error(t, err)
		assert.ErrorIs(t, err, generation.ErrBackendFailure)
		assert.Contains(t, err.Error(), "flashcards")
		assert.Empty(t, f.cards.cards)
	})

	t.Run("malformed response fails without persisting", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "here are your flashcards!", nil)

		_, err := f.service.GenerateFlashcards(context.Background(), f.userID, f.materialID, 5)
		assert.ErrorIs(t, err, generation.ErrMalformedResponse)
		assert.Empty(t, f.cards.cards)
	})

	t.Run("non-positive count falls back to default", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, `[]`, nil)

		_, err := f.service.GenerateFlashcards(context.Background(), f.userID, f.materialID, 0)
		require.NoError(t, err)

		require.Len(t, f.client.instructions, 1)
		assert.Contains(t, f.client.instructions[0], "exactly 10 flashcards")
	})

	t.Run("foreign material is rejected", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, `[]`, nil)

		_, err := f.service.GenerateFlashcards(context.Background(), uuid.New(), f.materialID, 5)
		assert.ErrorIs(t, err, ErrMaterialNotOwned)
		assert.Zero(t, f.client.calls)
	})
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("returns trimmed summary", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "  Photosynthesis stores light energy as glucose.\n", nil)

		summary, err := f.service.Summarize(context.Background(), f.userID, f.materialID)
		require.NoError(t, err)
		assert.Equal(t, "Photosynthesis stores light energy as glucose.", summary)
	})

	t.Run("every call hits the backend again", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "summary", nil)

		for i := 0; i < 3; i++ {
			_, err := f.service.Summarize(context.Background(), f.userID, f.materialID)
			require.NoError(t, err)
		}

		// No caching or deduplication between identical calls.
		assert.Equal(t, 3, f.client.calls)
	})
}

func TestGenerateMCQs(t *testing.T) {
	t.Parallel()

	t.Run("structurally invalid questions are dropped", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, `{"questions":[
			{"question":"ok?","options":["a","b","c","d"],"correctAnswer":"a","explanation":"x"},
			{"question":"broken?","options":["a","b"],"correctAnswer":"a","explanation":"x"},
			{"question":"mismatch?","options":["a","b","c","d"],"correctAnswer":"z","explanation":"x"}
		]}`, nil)

		mcqs, err := f.service.GenerateMCQs(context.Background(), f.userID, f.materialID, 3)
		require.NoError(t, err)
		require.Len(t, mcqs, 1)
		assert.Equal(t, "ok?", mcqs[0].Question)
	})

	t.Run("absent questions field yields empty result", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, `{"items":[]}`, nil)

		mcqs, err := f.service.GenerateMCQs(context.Background(), f.userID, f.materialID, 3)
		require.NoError(t, err)
		assert.Empty(t, mcqs)
	})
}

func TestSemanticSearch(t *testing.T) {
	t.Parallel()

	t.Run("returns snippets and records the query", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, `{"snippets":["light energy into chemical energy"]}`, nil)

		snippets, err := f.service.SemanticSearch(
			context.Background(), f.userID, f.materialID, "energy conversion")
		require.NoError(t, err)
		assert.Equal(t, []string{"light energy into chemical energy"}, snippets)

		history, err := f.service.SearchHistory(context.Background(), f.userID)
		require.NoError(t, err)
		assert.Equal(t, []string{"energy conversion"}, history)
	})

	t.Run("repeated query is not duplicated in history", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, `{"snippets":[]}`, nil)

		for _, q := range []string{"chlorophyll", "glucose", "Chlorophyll"} {
			_, err := f.service.SemanticSearch(context.Background(), f.userID, f.materialID, q)
			require.NoError(t, err)
		}

		history, err := f.service.SearchHistory(context.Background(), f.userID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Chlorophyll", "glucose"}, history)
	})

	t.Run("blank query is rejected before calling the backend", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, `{"snippets":[]}`, nil)

		_, err := f.service.SemanticSearch(context.Background(), f.userID, f.materialID, "  ")
		assert.ErrorIs(t, err, ErrEmptyQuery)
		assert.Zero(t, f.client.calls)
	})
}

func TestBuildConceptMap(t *testing.T) {
	t.Parallel()

	t.Run("valid graph is returned", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, `{
			"nodes":[{"id":"photosynthesis","group":1},{"id":"glucose","group":2}],
			"links":[{"source":"photosynthesis","target":"glucose","value":9}]
		}`, nil)

		conceptMap, err := f.service.BuildConceptMap(context.Background(), f.userID, f.materialID)
		require.NoError(t, err)
		assert.Len(t, conceptMap.Nodes, 2)
		assert.Len(t, conceptMap.Links, 1)
	})

	t.Run("graph violating invariants is malformed", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, `{
			"nodes":[{"id":"photosynthesis","group":1}],
			"links":[{"source":"photosynthesis","target":"missing","value":5}]
		}`, nil)

		_, err := f.service.BuildConceptMap(context.Background(), f.userID, f.materialID)
		assert.ErrorIs(t, err, generation.ErrMalformedResponse)
	})
}

func TestTutorReply(t *testing.T) {
	t.Parallel()

	t.Run("grounding material leads the conversation", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "It converts light into chemical energy.", nil)

		history := []domain.ChatMessage{
			{Role: domain.ChatRoleUser, Content: "What does photosynthesis do?"},
		}

		reply, err := f.service.TutorReply(context.Background(), f.userID, f.materialID, history)
		require.NoError(t, err)
		assert.Equal(t, "It converts light into chemical energy.", reply)

		require.Len(t, f.client.histories, 1)
		sent := f.client.histories[0]
		require.Len(t, sent, 2)
		assert.Equal(t, domain.ChatRoleUser, sent[0].Role)
		assert.Contains(t, sent[0].Content, "Photosynthesis converts light energy")
		assert.Equal(t, "What does photosynthesis do?", sent[1].Content)
	})

	t.Run("empty history is rejected", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "", nil)

		_, err := f.service.TutorReply(context.Background(), f.userID, f.materialID, nil)
		assert.ErrorIs(t, err, domain.ErrChatHistoryEmpty)
	})
}

func TestIngestText(t *testing.T) {
	t.Parallel()

	t.Run("stores trimmed text", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "", nil)

		material, err := f.service.IngestText(context.Background(), f.userID, "  Cell biology basics.  ")
		require.NoError(t, err)
		assert.Equal(t, "Cell biology basics.", material.Text)
		assert.Equal(t, domain.MaterialSourceText, material.Source)

		fetched, err := f.service.GetMaterial(context.Background(), f.userID, material.ID)
		require.NoError(t, err)
		assert.Equal(t, material.ID, fetched.ID)
	})

	t.Run("blank text is rejected", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "", nil)

		_, err := f.service.IngestText(context.Background(), f.userID, "   ")
		assert.ErrorIs(t, err, ErrEmptyMaterial)
	})
}

func TestIngestFile(t *testing.T) {
	t.Parallel()

	t.Run("non-pdf uploads go through the backend", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "Extracted document text.", nil)

		material, err := f.service.IngestFile(
			context.Background(), f.userID, []byte("fake-docx-bytes"),
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document")
		require.NoError(t, err)
		assert.Equal(t, "Extracted document text.", material.Text)
		assert.Equal(t, domain.MaterialSourceUpload, material.Source)
		assert.Equal(t, 1, f.client.calls)
	})

	t.Run("unparseable pdf falls back to the backend", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "Recovered text.", nil)

		// Not a real PDF, so local extraction fails and the bytes are
		// shipped to the backend instead.
		material, err := f.service.IngestFile(
			context.Background(), f.userID, []byte("%PDF-garbage"), "application/pdf")
		require.NoError(t, err)
		assert.Equal(t, "Recovered text.", material.Text)
		assert.Equal(t, 1, f.client.calls)
	})

	t.Run("empty upload is rejected", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "", nil)

		_, err := f.service.IngestFile(context.Background(), f.userID, nil, "application/pdf")
		assert.ErrorIs(t, err, ErrEmptyMaterial)
	})
}

func TestTranscribe(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "Today we cover the Krebs cycle.", nil)

	material, err := f.service.Transcribe(
		context.Background(), f.userID, []byte("fake-audio"), "audio/mpeg")
	require.NoError(t, err)
	assert.Equal(t, "Today we cover the Krebs cycle.", material.Text)
	assert.Equal(t, domain.MaterialSourceTranscript, material.Source)
}

func TestRecordAndListAttempts(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "", nil)

	attempt, err := f.service.RecordAttempt(
		context.Background(), f.userID, 8, 10, []string{"q2", "q7"})
	require.NoError(t, err)
	assert.Equal(t, 8, attempt.Score)

	attempts, err := f.service.ListAttempts(context.Background(), f.userID)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, []string{"q2", "q7"}, attempts[0].IncorrectQuestions)
}

func TestBuildStudyKit(t *testing.T) {
	t.Parallel()

	t.Run("bundles all three features", func(t *testing.T) {
		t.Parallel()

		// The same scripted response serves all three calls; the
		// flashcard and quiz decoders read their own fields from it.
		f := newFixture(t, `{
			"flashcards":[{"question":"q","answer":"a"}],
			"questions":[{"question":"mc?","options":["a","b","c","d"],"correctAnswer":"a","explanation":"e"}]
		}`, nil)

		kit, err := f.service.BuildStudyKit(context.Background(), f.userID, f.materialID)
		require.NoError(t, err)

		assert.NotEmpty(t, kit.Summary)
		require.Len(t, kit.Flashcards, 1)
		assert.Len(t, kit.MCQs, 1)
		assert.Equal(t, 3, f.client.calls)

		// Cards from the kit are persisted like standalone generation.
		assert.Len(t, f.cards.cards, 1)
	})

	t.Run("backend failure fails the whole kit", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "", errors.New("boom"))

		_, err := f.service.BuildStudyKit(context.Background(), f.userID, f.materialID)
		assert.ErrorIs(t, err, generation.ErrBackendFailure)
		assert.Empty(t, f.cards.cards)
	})
}

func TestPlanningTools(t *testing.T) {
	t.Parallel()

	t.Run("essay outline", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, `{
			"title":"Photosynthesis",
			"introduction":"intro",
			"body":[{"heading":"Light reactions","points":["p1","p2"]}],
			"conclusion":"outro"
		}`, nil)

		outline, err := f.service.EssayOutline(context.Background(), "Photosynthesis")
		require.NoError(t, err)
		assert.Equal(t, "Photosynthesis", outline.Title)
		require.Len(t, outline.Body, 1)
		assert.Len(t, outline.Body[0].Points, 2)
	})

	t.Run("study plan defaults to a week", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, `{"title":"Plan","durationDays":7,"schedule":[]}`, nil)

		_, err := f.service.StudyPlan(context.Background(), "pass the biology final", 0)
		require.NoError(t, err)

		require.Len(t, f.client.instructions, 1)
		assert.Contains(t, f.client.instructions[0], "7-day study plan")
	})

	t.Run("blank topic is rejected", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "", nil)

		_, err := f.service.EssayOutline(context.Background(), " ")
		assert.ErrorIs(t, err, ErrEmptyTopic)

		_, err = f.service.LessonPlan(context.Background(), "", "college")
		assert.ErrorIs(t, err, ErrEmptyTopic)

		_, err = f.service.StudyPlan(context.Background(), "\t", 7)
		assert.ErrorIs(t, err, ErrEmptyTopic)
	})
}
