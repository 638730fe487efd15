// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"
	"time"

	"github.com/fiscalfit/server/internal/model"
	"github.com/gofrs/uuid/v5"
)

// UserRepository provides persistence for user accounts.
type UserRepository interface {
	// Create inserts a new user. Unique-constraint violations surface as
	// errs.ErrEmailInUse or errs.ErrUsernameTaken.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetByUsername loads a user by username.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// GetByEmailOrUsername loads a user whose email or username equals identifier.
	GetByEmailOrUsername(ctx context.Context, identifier string) (*model.User, error)
	// UpdateLastLogin records a successful login time.
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
