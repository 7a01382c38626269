// Package impl provides the concrete implementations of the use case interfaces.
package impl

import (
	"context"
	"strings"

	"easesupply/internal/domain/entity"
	domainerrors "easesupply/internal/domain/errors"
	"easesupply/internal/domain/repository"
	"easesupply/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type userService struct {
	userRepo repository.UserRepository
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
}

// NewUserService creates a new user service instance
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
	}
}

// Register creates a directory entry for an account that just completed its
// first sign-in with the identity provider. The role stays unset until the
// account picks a side.
func (s *userService) Register(ctx context.Context, input *usecase.RegisterUserInput) (*entity.User, error) {
	accountID := strings.TrimSpace(input.AccountID)
	email := strings.TrimSpace(input.Email)
	if accountID == "" || email == "" {
		return nil, domainerrors.ErrInvalidArgument.WithDetails("accountId and email are required")
	}

	user := &entity.User{
		AccountID: accountID,
		Email:     email,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByAccountID resolves a user by the external identity provider's id.
func (s *userService) GetByAccountID(ctx context.Context, accountID string) (*entity.User, error) {
	user, err := s.userRepo.FindByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to get user by account id")
	}

	return user, nil
}

// List returns every account in the directory.
func (s *userService) List(ctx context.Context) ([]*entity.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// Update applies profile edits. AccountID, email and role are not editable
// through this path.
func (s *userService) Update(ctx context.Context, accountID string, input *usecase.UpdateUserInput) (*entity.User, error) {
	user, err := s.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Company != nil {
		user.Company = strings.TrimSpace(*input.Company)
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Location != nil {
		if err := input.Location.Validate(); err != nil {
			return nil, domainerrors.ErrInvalidCoordinates.WithDetails(err.Error())
		}
		user.Location = input.Location
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SelectRole assigns the account's role exactly once. The conditional write
// in the repository makes the "exactly once" hold even under concurrent
// selection attempts.
func (s *userService) SelectRole(ctx context.Context, accountID string, role entity.Role) (*entity.User, error) {
	if !role.IsValid() {
		return nil, domainerrors.ErrInvalidRole
	}

	set, err := s.userRepo.SetRoleIfUnset(ctx, accountID, role)
	if err != nil {
		return nil, err
	}
	if !set {
		// Either the user does not exist or the role is already pinned.
		// One read disambiguates.
		user, findErr := s.userRepo.FindByAccountID(ctx, accountID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return nil, domainerrors.ErrUserNotFound
			}

			return nil, errors.Wrap(findErr, "failed to resolve role conflict")
		}

		if user.Role != nil {
			return nil, domainerrors.ErrRoleAlreadySet.WithDetails("current role: " + user.Role.String())
		}

		return nil, domainerrors.ErrRoleAlreadySet
	}

	user, err := s.userRepo.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload user after role selection")
	}

	return user, nil
}

// Delete removes the user for the given account id.
func (s *userService) Delete(ctx context.Context, accountID string) error {
	err := s.userRepo.DeleteByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return err
	}

	return nil
}
