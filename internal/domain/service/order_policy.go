package service

import (
	"easesupply/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderPolicy is the authorization capability consulted before any
// state-changing order operation. It is checked prior to the transition
// table, so an unauthorized caller never learns whether the transition
// itself would have been legal.
type OrderPolicy interface {
	// CanCreate reports whether actor may create an order on behalf of buyer.
	CanCreate(actor *entity.User, buyerID uuid.UUID) bool

	// CanTransition reports whether actor may move the order to the next status.
	CanTransition(actor *entity.User, order *entity.Order, next entity.OrderStatus) bool
}
