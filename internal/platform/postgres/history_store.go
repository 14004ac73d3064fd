package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sagelearning/sage-api/internal/platform/logger"
	"github.com/sagelearning/sage-api/internal/store"
)

// PostgresSearchHistoryStore implements the store.SearchHistoryStore
// interface. Each user has at most one row holding their bounded list of
// recent queries as JSONB; the bounding/dedupe policy itself lives in
// domain.PushSearchQuery.
type PostgresSearchHistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSearchHistoryStore creates a new PostgreSQL implementation
// of the SearchHistoryStore interface.
func NewPostgresSearchHistoryStore(
	db store.DBTX,
	logger *slog.Logger,
) *PostgresSearchHistoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSearchHistoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "search_history_store")),
	}
}

// Ensure PostgresSearchHistoryStore implements store.SearchHistoryStore
var _ store.SearchHistoryStore = (*PostgresSearchHistoryStore)(nil)

// Get implements store.SearchHistoryStore.Get. A user with no history
// yields an empty list, not an error.
func (s *PostgresSearchHistoryStore) Get(
	ctx context.Context,
	userID uuid.UUID,
) ([]string, error) {
	query := `SELECT queries FROM search_history WHERE user_id = $1`

	var raw []byte
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []string{}, nil
		}
		return nil, err
	}

	var queries []string
	if err := json.Unmarshal(raw, &queries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search history: %w", err)
	}

	return queries, nil
}

// Put implements store.SearchHistoryStore.Put, replacing the user's
// history with the given list via an upsert.
func (s *PostgresSearchHistoryStore) Put(
	ctx context.Context,
	userID uuid.UUID,
	queries []string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	raw, err := json.Marshal(queries)
	if err != nil {
		return fmt.Errorf("failed to marshal search history: %w", err)
	}

	query := `
		INSERT INTO search_history (user_id, queries, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET queries = EXCLUDED.queries, updated_at = EXCLUDED.updated_at
	`
	_, err = s.db.ExecContext(ctx, query, userID, raw, time.Now().UTC())
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, userID)
		}
		log.Error("failed to store search history",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	return nil
}
