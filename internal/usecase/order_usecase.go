package usecase

import (
	"context"

	"easesupply/internal/domain/entity"
	"easesupply/internal/domain/repository"

	"github.com/google/uuid"
)

// CreateOrderInput identifies the product being bought and the buyer.
type CreateOrderInput struct {
	ProductID uuid.UUID `json:"productId"`
	BuyerID   uuid.UUID `json:"buyerId"`
}

// OrderUsecase enforces the order lifecycle: state machine, authorization
// and event fan-out.
type OrderUsecase interface {
	// Create places an order in the pending state, snapshotting the seller
	// from the product. The actor must be the buyer. Emits order:new to the
	// seller on success.
	Create(ctx context.Context, actor *entity.User, input *CreateOrderInput) (*entity.Order, error)

	// List returns orders matching the filter, enriched with product and
	// buyer/seller summaries.
	List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error)

	// UpdateStatus applies a transition from the table
	// pending->accepted|rejected, accepted->completed. The status literal is
	// validated before any lookup; the actor must be the order's seller.
	// Emits order:status to buyer and seller on success.
	UpdateStatus(ctx context.Context, actor *entity.User, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
}
