package study

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sagelearning/sage-api/internal/domain"
	"github.com/sagelearning/sage-api/internal/generation"
)

// StudyKit bundles the outputs of the three core generation features
// for one material.
type StudyKit struct {
	Summary    string                  `json:"summary"`
	Flashcards []*domain.ScheduledCard `json:"flashcards"`
	MCQs       []domain.MCQ            `json:"mcqs"`
}

// BuildStudyKit implements Service.BuildStudyKit. The three feature
// calls are independent, so they run concurrently; the first failure
// cancels the rest and fails the kit as a whole.
func (s *service) BuildStudyKit(
	ctx context.Context,
	userID, materialID uuid.UUID,
) (*StudyKit, error) {
	material, err := s.fetchOwnedMaterial(ctx, userID, materialID)
	if err != nil {
		return nil, err
	}

	kit := &StudyKit{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summary, err := s.client.GenerateText(gctx, "", summarizePrompt(material.Text))
		if err != nil {
			return generation.NewBackendError(featureSummarize, err)
		}
		kit.Summary = strings.TrimSpace(summary)
		return nil
	})

	g.Go(func() error {
		flashcards, err := s.generateFlashcardContent(gctx, material, DefaultItemCount)
		if err != nil {
			return err
		}
		cards := make([]*domain.ScheduledCard, 0, len(flashcards))
		for _, fc := range flashcards {
			card, err := domain.NewScheduledCard(userID, materialID, fc)
			if err != nil {
				continue
			}
			cards = append(cards, card)
		}
		kit.Flashcards = cards
		return nil
	})

	g.Go(func() error {
		mcqs, err := s.generateMCQContent(gctx, material, DefaultItemCount)
		if err != nil {
			return err
		}
		kit.MCQs = mcqs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Persist cards only once every generation succeeded, so a failed
	// kit leaves no partial state behind.
	if len(kit.Flashcards) > 0 {
		if err := s.cardStore.CreateMultiple(ctx, kit.Flashcards); err != nil {
			return nil, err
		}
	}

	return kit, nil
}
