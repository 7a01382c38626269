// Package repository defines the persistence interfaces the domain depends on.
package repository

import (
	"context"

	"easesupply/internal/domain/entity"
	"easesupply/internal/errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when a user does not exist in the store.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the persistence boundary for the user directory.
type UserRepository interface {
	// Create persists a new user. Duplicate account id or email surfaces
	// as a domain conflict error.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by internal id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByAccountID retrieves a user by the external identity provider's id.
	FindByAccountID(ctx context.Context, accountID string) (*entity.User, error)

	// List returns all users, newest first.
	List(ctx context.Context) ([]*entity.User, error)

	// Update persists profile changes to an existing user.
	Update(ctx context.Context, user *entity.User) error

	// SetRoleIfUnset assigns the role only when none is stored yet.
	// Returns false when a role was already present.
	SetRoleIfUnset(ctx context.Context, accountID string, role entity.Role) (bool, error)

	// DeleteByAccountID removes the user for the given external account id.
	DeleteByAccountID(ctx context.Context, accountID string) error
}
