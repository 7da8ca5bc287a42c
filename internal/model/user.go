package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByNameAndEmail(ctx context.Context, name, email string) (User, error)
	GetBySessionID(ctx context.Context, sessionID uuid.UUID) (User, error)
	UpdateSessionID(ctx context.Context, id, sessionID uuid.UUID) error
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// User represents a registered user and its current session token.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	SessionID uuid.UUID
	CreatedAt time.Time
}
