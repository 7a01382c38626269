package impl

import (
	"context"
	"strings"

	"easesupply/internal/domain/entity"
	domainerrors "easesupply/internal/domain/errors"
	"easesupply/internal/domain/repository"
	"easesupply/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type deviceService struct {
	deviceRepo repository.DeviceRepository
}

// DeviceServiceParams holds dependencies for DeviceService, injected by Fx.
type DeviceServiceParams struct {
	fx.In

	DeviceRepo repository.DeviceRepository
}

// NewDeviceService creates a new device service instance
func NewDeviceService(params DeviceServiceParams) usecase.DeviceUsecase {
	return &deviceService{
		deviceRepo: params.DeviceRepo,
	}
}

// Register stores or reactivates a push device for the user.
func (s *deviceService) Register(ctx context.Context, userID uuid.UUID, input *usecase.RegisterDeviceInput) (*entity.UserDevice, error) {
	token := strings.TrimSpace(input.FCMToken)
	deviceID := strings.TrimSpace(input.DeviceID)
	if token == "" || deviceID == "" {
		return nil, domainerrors.ErrInvalidArgument.WithDetails("fcmToken and deviceId are required")
	}

	platform := strings.ToLower(strings.TrimSpace(input.Platform))
	switch platform {
	case "ios", "android":
	default:
		return nil, domainerrors.ErrInvalidArgument.WithDetails("platform must be ios or android")
	}

	device := &entity.UserDevice{
		UserID:   userID,
		FCMToken: token,
		DeviceID: deviceID,
		Platform: platform,
		IsActive: true,
	}

	if err := s.deviceRepo.Upsert(ctx, device); err != nil {
		return nil, err
	}

	return device, nil
}
