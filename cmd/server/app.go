package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/sagelearning/sage-api/internal/config"
	"github.com/sagelearning/sage-api/internal/domain/srs"
	"github.com/sagelearning/sage-api/internal/generation"
	"github.com/sagelearning/sage-api/internal/platform/gemini"
	"github.com/sagelearning/sage-api/internal/platform/postgres"
	"github.com/sagelearning/sage-api/internal/service/auth"
	"github.com/sagelearning/sage-api/internal/service/card_review"
	"github.com/sagelearning/sage-api/internal/service/study"
	"github.com/sagelearning/sage-api/internal/store"
)

// application holds the fully wired dependency graph of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	materialStore store.MaterialStore
	cardStore     store.CardStore
	attemptStore  store.AttemptStore
	historyStore  store.SearchHistoryStore

	jwtService        auth.JWTService
	passwordHasher    auth.PasswordHasher
	generationClient  generation.Client
	studyService      study.Service
	cardReviewService card_review.CardReviewService
}

// newApplication wires stores, platform clients, and services together.
// Construction is fail-fast: any missing or invalid dependency aborts
// startup rather than surfacing later as a nil panic mid-request.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	db *sql.DB,
	logger *slog.Logger,
) (*application, error) {
	userStore := postgres.NewPostgresUserStore(db, logger)
	materialStore := postgres.NewPostgresMaterialStore(db, logger)
	cardStore := postgres.NewPostgresCardStore(db, logger)
	attemptStore := postgres.NewPostgresAttemptStore(db, logger)
	historyStore := postgres.NewPostgresSearchHistoryStore(db, logger)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	passwordHasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	generationClient, err := gemini.NewGeminiClient(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}

	studyService, err := study.NewService(
		generationClient,
		materialStore,
		cardStore,
		attemptStore,
		historyStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create study service: %w", err)
	}

	cardReviewService, err := card_review.NewService(
		cardStore,
		srs.NewDefaultService(),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create card review service: %w", err)
	}

	return &application{
		config:            cfg,
		logger:            logger,
		db:                db,
		userStore:         userStore,
		materialStore:     materialStore,
		cardStore:         cardStore,
		attemptStore:      attemptStore,
		historyStore:      historyStore,
		jwtService:        jwtService,
		passwordHasher:    passwordHasher,
		generationClient:  generationClient,
		studyService:      studyService,
		cardReviewService: cardReviewService,
	}, nil
}
