package usecase

import (
	"context"

	"easesupply/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterDeviceInput carries a client device's push registration.
type RegisterDeviceInput struct {
	FCMToken string `json:"fcmToken"`
	DeviceID string `json:"deviceId"`
	Platform string `json:"platform"`
}

// DeviceUsecase manages push-notification device registrations.
type DeviceUsecase interface {
	// Register stores or reactivates a device token for the user.
	Register(ctx context.Context, userID uuid.UUID, input *RegisterDeviceInput) (*entity.UserDevice, error)
}
