package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sagelearning/sage-api/internal/domain"
	"github.com/sagelearning/sage-api/internal/platform/logger"
	"github.com/sagelearning/sage-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

const cardColumns = `id, user_id, material_id, question, answer,
	ease_factor, interval, due_at, last_reviewed_at, review_count,
	created_at, updated_at`

// WithTx returns a copy of the store bound to the given transaction.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) *PostgresCardStore {
	return &PostgresCardStore{db: tx, logger: s.logger}
}

// CreateMultiple implements store.CardStore.CreateMultiple.
// When backed by a plain connection the batch runs inside its own
// transaction so either every card is created or none. When already
// bound to a transaction (see WithTx) the caller controls atomicity.
func (s *PostgresCardStore) CreateMultiple(
	ctx context.Context,
	cards []*domain.ScheduledCard,
) error {
	if db, ok := s.db.(*sql.DB); ok {
		return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return s.WithTx(tx).CreateMultiple(ctx, cards)
		})
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO cards (` + cardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}

		_, err := s.db.ExecContext(
			ctx,
			query,
			card.ID,
			card.UserID,
			card.MaterialID,
			card.Question,
			card.Answer,
			card.EaseFactor,
			card.Interval,
			card.DueAt,
			nullableTime(card.LastReviewedAt),
			card.ReviewCount,
			card.CreatedAt,
			card.UpdatedAt,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: unknown user or material for card %s",
					store.ErrInvalidEntity, card.ID)
			}
			log.Error("failed to create card",
				slog.String("error", err.Error()),
				slog.String("card_id", card.ID.String()))
			return err
		}
	}

	log.Info("cards created successfully", slog.Int("count", len(cards)))
	return nil
}

// GetByID implements store.CardStore.GetByID
func (s *PostgresCardStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.ScheduledCard, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`
	return s.scanCard(s.db.QueryRowContext(ctx, query, id))
}

// GetNextDue implements store.CardStore.GetNextDue.
// It retrieves the user's card with the earliest due date that is not in
// the future, so freshly created cards (due immediately) surface first.
func (s *PostgresCardStore) GetNextDue(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.ScheduledCard, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE user_id = $1 AND due_at <= NOW()
		ORDER BY due_at ASC
		LIMIT 1
	`
	return s.scanCard(s.db.QueryRowContext(ctx, query, userID))
}

// UpdateSchedule implements store.CardStore.UpdateSchedule.
// Only the scheduling fields change on a grading event; the card's
// question/answer content is immutable.
func (s *PostgresCardStore) UpdateSchedule(
	ctx context.Context,
	card *domain.ScheduledCard,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE cards
		SET ease_factor = $1, interval = $2, due_at = $3,
		    last_reviewed_at = $4, review_count = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		card.EaseFactor,
		card.Interval,
		card.DueAt,
		nullableTime(card.LastReviewedAt),
		card.ReviewCount,
		card.UpdatedAt,
		card.ID,
	)
	if err != nil {
		log.Error("failed to update card schedule",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrCardNotFound
	}

	log.Debug("card schedule updated",
		slog.String("card_id", card.ID.String()),
		slog.Int("interval", card.Interval),
		slog.Float64("ease_factor", card.EaseFactor))
	return nil
}

// scanCard scans a single card row, mapping sql.ErrNoRows to
// store.ErrCardNotFound.
func (s *PostgresCardStore) scanCard(row *sql.Row) (*domain.ScheduledCard, error) {
	var card domain.ScheduledCard
	var lastReviewedAt sql.NullTime

	err := row.Scan(
		&card.ID,
		&card.UserID,
		&card.MaterialID,
		&card.Question,
		&card.Answer,
		&card.EaseFactor,
		&card.Interval,
		&card.DueAt,
		&lastReviewedAt,
		&card.ReviewCount,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		return nil, err
	}

	if lastReviewedAt.Valid {
		card.LastReviewedAt = lastReviewedAt.Time
	}

	return &card, nil
}

// nullableTime maps the zero time to a SQL NULL.
func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
