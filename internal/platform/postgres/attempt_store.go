package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sagelearning/sage-api/internal/domain"
	"github.com/sagelearning/sage-api/internal/platform/logger"
	"github.com/sagelearning/sage-api/internal/store"
)

// PostgresAttemptStore implements the store.AttemptStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAttemptStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAttemptStore creates a new PostgreSQL implementation of the
// AttemptStore interface.
func NewPostgresAttemptStore(db store.DBTX, logger *slog.Logger) *PostgresAttemptStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAttemptStore{
		db:     db,
		logger: logger.With(slog.String("component", "attempt_store")),
	}
}

// Ensure PostgresAttemptStore implements store.AttemptStore interface
var _ store.AttemptStore = (*PostgresAttemptStore)(nil)

// Create implements store.AttemptStore.Create. The attempt log is
// append-only; there are no update or delete operations.
func (s *PostgresAttemptStore) Create(ctx context.Context, attempt *domain.MCQAttempt) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := attempt.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	incorrect, err := json.Marshal(attempt.IncorrectQuestions)
	if err != nil {
		return fmt.Errorf("failed to marshal incorrect questions: %w", err)
	}

	query := `
		INSERT INTO quiz_attempts
			(id, user_id, score, total, incorrect_questions, attempted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		attempt.ID,
		attempt.UserID,
		attempt.Score,
		attempt.Total,
		incorrect,
		attempt.AttemptedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, attempt.UserID)
		}
		log.Error("failed to create quiz attempt",
			slog.String("error", err.Error()),
			slog.String("attempt_id", attempt.ID.String()))
		return err
	}

	log.Info("quiz attempt recorded",
		slog.String("attempt_id", attempt.ID.String()),
		slog.Int("score", attempt.Score),
		slog.Int("total", attempt.Total))
	return nil
}

// ListByUser implements store.AttemptStore.ListByUser
func (s *PostgresAttemptStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.MCQAttempt, error) {
	query := `
		SELECT id, user_id, score, total, incorrect_questions, attempted_at
		FROM quiz_attempts
		WHERE user_id = $1
		ORDER BY attempted_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var attempts []*domain.MCQAttempt
	for rows.Next() {
		var attempt domain.MCQAttempt
		var incorrect []byte

		err := rows.Scan(
			&attempt.ID,
			&attempt.UserID,
			&attempt.Score,
			&attempt.Total,
			&incorrect,
			&attempt.AttemptedAt,
		)
		if err != nil {
			return nil, err
		}

		if len(incorrect) > 0 {
			if err := json.Unmarshal(incorrect, &attempt.IncorrectQuestions); err != nil {
				return nil, fmt.Errorf("failed to unmarshal incorrect questions: %w", err)
			}
		}

		attempts = append(attempts, &attempt)
	}

	return attempts, rows.Err()
}
