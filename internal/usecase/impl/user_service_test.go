package impl

import (
	"context"
	"testing"

	"easesupply/internal/domain/entity"
	domainerrors "easesupply/internal/domain/errors"
	"easesupply/internal/domain/repository"
	mockRepo "easesupply/internal/mocks/repository"
	"easesupply/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserServiceFixture(t *testing.T) (*mockRepo.MockUserRepository, usecase.UserUsecase) {
	t.Helper()

	userRepo := mockRepo.NewMockUserRepository(t)
	svc := NewUserService(UserServiceParams{UserRepo: userRepo})

	return userRepo, svc
}

func TestUserService_Register_Success(t *testing.T) {
	userRepo, svc := newUserServiceFixture(t)
	ctx := context.Background()

	userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			user.ID = uuid.New()
		}).
		Return(nil)

	user, err := svc.Register(ctx, &usecase.RegisterUserInput{
		AccountID: "acct-123",
		Email:     "ramesh@example.com",
		FirstName: "Ramesh",
		LastName:  "Patel",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "acct-123", user.AccountID)
	assert.Nil(t, user.Role, "role must stay unset until selected")
}

func TestUserService_Register_MissingFields(t *testing.T) {
	_, svc := newUserServiceFixture(t)

	_, err := svc.Register(context.Background(), &usecase.RegisterUserInput{
		AccountID: "  ",
		Email:     "",
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode())
}

func TestUserService_Register_Duplicate(t *testing.T) {
	userRepo, svc := newUserServiceFixture(t)
	ctx := context.Background()

	userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrUserAlreadyExists)

	_, err := svc.Register(ctx, &usecase.RegisterUserInput{
		AccountID: "acct-123",
		Email:     "ramesh@example.com",
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.HTTPCode())
}

func TestUserService_GetByAccountID_NotFound(t *testing.T) {
	userRepo, svc := newUserServiceFixture(t)
	ctx := context.Background()

	userRepo.EXPECT().
		FindByAccountID(ctx, "missing").
		Return(nil, repository.ErrUserNotFound)

	_, err := svc.GetByAccountID(ctx, "missing")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode())
}

func TestUserService_SelectRole_SetsExactlyOnce(t *testing.T) {
	userRepo, svc := newUserServiceFixture(t)
	ctx := context.Background()

	role := entity.RoleVendor
	updated := &entity.User{ID: uuid.New(), AccountID: "acct-123", Role: &role}

	userRepo.EXPECT().
		SetRoleIfUnset(ctx, "acct-123", entity.RoleVendor).
		Return(true, nil)
	userRepo.EXPECT().
		FindByAccountID(ctx, "acct-123").
		Return(updated, nil)

	user, err := svc.SelectRole(ctx, "acct-123", entity.RoleVendor)
	require.NoError(t, err)
	require.NotNil(t, user.Role)
	assert.Equal(t, entity.RoleVendor, *user.Role)
}

func TestUserService_SelectRole_SecondAttemptConflicts(t *testing.T) {
	userRepo, svc := newUserServiceFixture(t)
	ctx := context.Background()

	role := entity.RoleVendor
	existing := &entity.User{ID: uuid.New(), AccountID: "acct-123", Role: &role}

	userRepo.EXPECT().
		SetRoleIfUnset(ctx, "acct-123", entity.RoleDistributor).
		Return(false, nil)
	userRepo.EXPECT().
		FindByAccountID(ctx, "acct-123").
		Return(existing, nil)

	// Re-selecting must conflict even with a different role.
	_, err := svc.SelectRole(ctx, "acct-123", entity.RoleDistributor)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.HTTPCode())
	assert.Equal(t, "ROLE_ALREADY_SET", appErr.ErrorCode())
}

func TestUserService_SelectRole_InvalidRole(t *testing.T) {
	_, svc := newUserServiceFixture(t)

	_, err := svc.SelectRole(context.Background(), "acct-123", entity.Role("admin"))
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode())
	assert.Equal(t, "INVALID_ROLE", appErr.ErrorCode())
}

func TestUserService_SelectRole_UnknownAccount(t *testing.T) {
	userRepo, svc := newUserServiceFixture(t)
	ctx := context.Background()

	userRepo.EXPECT().
		SetRoleIfUnset(ctx, "ghost", entity.RoleVendor).
		Return(false, nil)
	userRepo.EXPECT().
		FindByAccountID(ctx, "ghost").
		Return(nil, repository.ErrUserNotFound)

	_, err := svc.SelectRole(ctx, "ghost", entity.RoleVendor)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode())
}

func TestUserService_Update_AppliesOnlyProvidedFields(t *testing.T) {
	userRepo, svc := newUserServiceFixture(t)
	ctx := context.Background()

	existing := &entity.User{
		ID:        uuid.New(),
		AccountID: "acct-123",
		Email:     "ramesh@example.com",
		FirstName: "Ramesh",
		LastName:  "Patel",
		Phone:     "+91-9800000000",
	}
	userRepo.EXPECT().FindByAccountID(ctx, "acct-123").Return(existing, nil)
	userRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	company := "Patel Produce"
	location := entity.NewGeoPoint(72.8777, 19.0760)
	user, err := svc.Update(ctx, "acct-123", &usecase.UpdateUserInput{
		Company:  &company,
		Location: &location,
	})
	require.NoError(t, err)
	assert.Equal(t, "Patel Produce", user.Company)
	assert.Equal(t, "Ramesh", user.FirstName, "untouched fields must survive")
	assert.Equal(t, "+91-9800000000", user.Phone)
	require.NotNil(t, user.Location)
	assert.InDelta(t, 19.0760, user.Location.Lat(), 1e-9)
}

func TestUserService_Update_RejectsBadCoordinates(t *testing.T) {
	userRepo, svc := newUserServiceFixture(t)
	ctx := context.Background()

	existing := &entity.User{ID: uuid.New(), AccountID: "acct-123"}
	userRepo.EXPECT().FindByAccountID(ctx, "acct-123").Return(existing, nil)

	bad := entity.NewGeoPoint(200, 95)
	_, err := svc.Update(ctx, "acct-123", &usecase.UpdateUserInput{Location: &bad})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_COORDINATES", appErr.ErrorCode())
}

func TestUserService_Delete_NotFound(t *testing.T) {
	userRepo, svc := newUserServiceFixture(t)
	ctx := context.Background()

	userRepo.EXPECT().DeleteByAccountID(ctx, "ghost").Return(repository.ErrUserNotFound)

	err := svc.Delete(ctx, "ghost")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode())
}
