package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User-specific validation errors
var (
	ErrUserIDEmpty           = errors.New("user ID cannot be empty")
	ErrUserEmailInvalid      = errors.New("user email is invalid")
	ErrUserPasswordHashEmpty = errors.New("user password hash cannot be empty")
)

// User is an account that owns materials, scheduled cards, quiz attempts,
// and a search history.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given email and password hash.
// The caller is responsible for hashing the password (see service/auth).
func NewUser(email, hashedPassword string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:             uuid.New(),
		Email:          strings.ToLower(strings.TrimSpace(email)),
		HashedPassword: hashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrUserIDEmpty
	}

	// Cheap structural check; real deliverability is not our problem.
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return ErrUserEmailInvalid
	}

	if u.HashedPassword == "" {
		return ErrUserPasswordHashEmpty
	}

	return nil
}
