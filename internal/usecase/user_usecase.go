// Package usecase defines the application's use case interfaces and their
// input/output types.
package usecase

import (
	"context"

	"easesupply/internal/domain/entity"
)

// RegisterUserInput carries the fields of an explicit registration call made
// after first sign-in with the identity provider. Role is intentionally
// absent: it is chosen later through the role-selection flow.
type RegisterUserInput struct {
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateUserInput carries optional profile edits. Nil fields are untouched.
type UpdateUserInput struct {
	FirstName *string          `json:"firstName,omitempty"`
	LastName  *string          `json:"lastName,omitempty"`
	Company   *string          `json:"company,omitempty"`
	Phone     *string          `json:"phone,omitempty"`
	Location  *entity.GeoPoint `json:"location,omitempty"`
}

// UserUsecase manages the user directory.
type UserUsecase interface {
	// Register creates a user with role unset. Fails when the account id or
	// email is already registered.
	Register(ctx context.Context, input *RegisterUserInput) (*entity.User, error)

	// GetByAccountID resolves a user by the external identity provider's id.
	GetByAccountID(ctx context.Context, accountID string) (*entity.User, error)

	// List returns all users.
	List(ctx context.Context) ([]*entity.User, error)

	// Update applies profile edits to the user behind accountID.
	Update(ctx context.Context, accountID string, input *UpdateUserInput) (*entity.User, error)

	// SelectRole sets the account's role exactly once. A second attempt
	// fails with a conflict regardless of the requested role.
	SelectRole(ctx context.Context, accountID string, role entity.Role) (*entity.User, error)

	// Delete removes the user for the given account id.
	Delete(ctx context.Context, accountID string) error
}
