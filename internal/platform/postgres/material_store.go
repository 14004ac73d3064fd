package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sagelearning/sage-api/internal/domain"
	"github.com/sagelearning/sage-api/internal/platform/logger"
	"github.com/sagelearning/sage-api/internal/store"
)

// PostgresMaterialStore implements the store.MaterialStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMaterialStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMaterialStore creates a new PostgreSQL implementation of the
// MaterialStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
func NewPostgresMaterialStore(db store.DBTX, logger *slog.Logger) *PostgresMaterialStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMaterialStore{
		db:     db,
		logger: logger.With(slog.String("component", "material_store")),
	}
}

// Ensure PostgresMaterialStore implements store.MaterialStore interface
var _ store.MaterialStore = (*PostgresMaterialStore)(nil)

// Create implements store.MaterialStore.Create
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresMaterialStore) Create(ctx context.Context, material *domain.Material) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := material.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO materials (id, user_id, source, text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		material.ID,
		material.UserID,
		material.Source,
		material.Text,
		material.CreatedAt,
		material.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, material.UserID)
		}
		log.Error("failed to create material",
			slog.String("error", err.Error()),
			slog.String("material_id", material.ID.String()))
		return err
	}

	log.Info("material created successfully",
		slog.String("material_id", material.ID.String()),
		slog.String("source", string(material.Source)),
		slog.Int("text_length", len(material.Text)))
	return nil
}

// GetByID implements store.MaterialStore.GetByID
func (s *PostgresMaterialStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Material, error) {
	query := `
		SELECT id, user_id, source, text, created_at, updated_at
		FROM materials
		WHERE id = $1
	`

	var material domain.Material
	var source string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&material.ID,
		&material.UserID,
		&source,
		&material.Text,
		&material.CreatedAt,
		&material.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrMaterialNotFound
		}
		return nil, err
	}

	material.Source = domain.MaterialSource(source)
	return &material, nil
}
