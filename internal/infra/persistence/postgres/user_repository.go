// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"easesupply/internal/domain/entity"
	domainerrors "easesupply/internal/domain/errors"
	"easesupply/internal/domain/repository"
	"easesupply/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create persists a new user entity to the database.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("account id or email already registered")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidArgument.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the entity with generated values.
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// FindByID retrieves a single user by their internal ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByAccountID retrieves a single user by the identity provider's account id.
func (repo *userRepository) FindByAccountID(ctx context.Context, accountID string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&userM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by account id")
	}

	return toUserDomain(&userM), nil
}

// List retrieves all users, newest first.
func (repo *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	var userModels []*model.UserModel
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&userModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(userModels))
	for _, userM := range userModels {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// Update persists changes to an existing user record.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Save(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// SetRoleIfUnset assigns the role with a conditional update so the
// "role is set exactly once" invariant holds under concurrent attempts.
func (repo *userRepository) SetRoleIfUnset(ctx context.Context, accountID string, role entity.Role) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("account_id = ? AND role IS NULL", accountID).
		Update("role", role.String())

	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to set user role")
	}

	return result.RowsAffected > 0, nil
}

// DeleteByAccountID removes the user for the given external account id.
func (repo *userRepository) DeleteByAccountID(ctx context.Context, accountID string) error {
	result := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&model.UserModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// toUserDomain maps the persistence model back to a pure domain entity.
func toUserDomain(userM *model.UserModel) *entity.User {
	user := &entity.User{
		ID:         userM.ID,
		AccountID:  userM.AccountID,
		Email:      userM.Email,
		FirstName:  userM.FirstName,
		LastName:   userM.LastName,
		Company:    userM.Company,
		Phone:      userM.Phone,
		IsVerified: userM.IsVerified,
		CreatedAt:  userM.CreatedAt,
		UpdatedAt:  userM.UpdatedAt,
	}
	if userM.Role != nil {
		role := entity.Role(*userM.Role)
		user.Role = &role
	}
	if userM.Longitude != nil && userM.Latitude != nil {
		point := entity.NewGeoPoint(*userM.Longitude, *userM.Latitude)
		user.Location = &point
	}

	return user
}

// fromUserDomain maps a domain entity to its persistence model.
func fromUserDomain(user *entity.User) *model.UserModel {
	userM := &model.UserModel{
		ID:         user.ID,
		AccountID:  user.AccountID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Company:    user.Company,
		Phone:      user.Phone,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
	if user.Role != nil {
		role := user.Role.String()
		userM.Role = &role
	}
	if user.Location != nil {
		lng, lat := user.Location.Lng(), user.Location.Lat()
		userM.Longitude = &lng
		userM.Latitude = &lat
	}

	return userM
}
