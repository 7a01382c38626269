package impl

import (
	"context"
	"testing"

	domainerrors "easesupply/internal/domain/errors"
	mockRepo "easesupply/internal/mocks/repository"
	"easesupply/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeviceService_Register_Success(t *testing.T) {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	svc := NewDeviceService(DeviceServiceParams{DeviceRepo: deviceRepo})

	ctx := context.Background()
	userID := uuid.New()

	deviceRepo.EXPECT().
		Upsert(ctx, mock.AnythingOfType("*entity.UserDevice")).
		Return(nil)

	device, err := svc.Register(ctx, userID, &usecase.RegisterDeviceInput{
		FCMToken: "fcm-token-abc",
		DeviceID: "device-123",
		Platform: "Android",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, device.UserID)
	assert.Equal(t, "android", device.Platform, "platform is normalized to lowercase")
	assert.True(t, device.IsActive)
}

func TestDeviceService_Register_MissingToken(t *testing.T) {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	svc := NewDeviceService(DeviceServiceParams{DeviceRepo: deviceRepo})

	_, err := svc.Register(context.Background(), uuid.New(), &usecase.RegisterDeviceInput{
		DeviceID: "device-123",
		Platform: "ios",
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode())
}

func TestDeviceService_Register_UnknownPlatform(t *testing.T) {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	svc := NewDeviceService(DeviceServiceParams{DeviceRepo: deviceRepo})

	_, err := svc.Register(context.Background(), uuid.New(), &usecase.RegisterDeviceInput{
		FCMToken: "fcm-token-abc",
		DeviceID: "device-123",
		Platform: "windows-phone",
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode())
}
