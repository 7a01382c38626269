package repository

import (
	"context"

	"easesupply/internal/domain/entity"
	"easesupply/internal/errors"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order does not exist in the store.
var ErrOrderNotFound = errors.New("order not found")

// OrderFilter narrows a ledger listing. Both fields are optional; an empty
// filter returns every order.
type OrderFilter struct {
	BuyerID  *uuid.UUID
	SellerID *uuid.UUID
}

// OrderRepository is the persistence boundary for the order ledger.
type OrderRepository interface {
	// Create persists a new order.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order by id, with product, buyer and seller joined.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// List returns orders matching the filter, newest first, each enriched
	// with the joined product and buyer/seller summaries.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)

	// UpdateStatusIf performs a conditional status write: the update applies
	// only while the stored status still equals from. Returns false when the
	// row was not updated because the precondition no longer held.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) (bool, error)
}
