package repository

import (
	"context"

	"easesupply/internal/domain/entity"

	"github.com/google/uuid"
)

// DeviceRepository is the persistence boundary for push-notification devices.
type DeviceRepository interface {
	// Upsert registers a device token for a user, reactivating it when the
	// same device id is registered again.
	Upsert(ctx context.Context, device *entity.UserDevice) error

	// FindActiveTokensByUser returns the active FCM tokens registered by a user.
	FindActiveTokensByUser(ctx context.Context, userID uuid.UUID) ([]string, error)

	// DeactivateTokens marks the given tokens inactive, typically after the
	// push service reports them invalid.
	DeactivateTokens(ctx context.Context, tokens []string) error
}
