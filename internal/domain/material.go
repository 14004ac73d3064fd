package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Material-specific validation errors
var (
	ErrMaterialIDEmpty     = errors.New("material ID cannot be empty")
	ErrMaterialUserIDEmpty = errors.New("material user ID cannot be empty")
	ErrMaterialTextEmpty   = errors.New("material text cannot be empty")
)

// MaterialSource describes how a material's text was ingested.
type MaterialSource string

// Material sources
const (
	MaterialSourceText       MaterialSource = "text"
	MaterialSourceUpload     MaterialSource = "upload"
	MaterialSourceTranscript MaterialSource = "transcript"
)

// Material is a body of ingested study text. It is the shared input of
// every generation feature: set once by ingestion and read by summary,
// flashcard, quiz, search, concept map, tutor, and plan generation.
type Material struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Source    MaterialSource `json:"source"`
	Text      string         `json:"text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewMaterial creates a new Material owned by the given user.
func NewMaterial(userID uuid.UUID, source MaterialSource, text string) (*Material, error) {
	now := time.Now().UTC()
	material := &Material{
		ID:        uuid.New(),
		UserID:    userID,
		Source:    source,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := material.Validate(); err != nil {
		return nil, err
	}

	return material, nil
}

// Validate checks if the Material has valid data.
func (m *Material) Validate() error {
	if m.ID == uuid.Nil {
		return ErrMaterialIDEmpty
	}

	if m.UserID == uuid.Nil {
		return ErrMaterialUserIDEmpty
	}

	if m.Text == "" {
		return ErrMaterialTextEmpty
	}

	return nil
}
