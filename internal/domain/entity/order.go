// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	// OrderPending is the initial state of every order.
	OrderPending OrderStatus = "pending"
	// OrderAccepted means the seller has agreed to fulfill the order.
	OrderAccepted OrderStatus = "accepted"
	// OrderRejected is terminal: the seller declined the order.
	OrderRejected OrderStatus = "rejected"
	// OrderCompleted is terminal: the seller fulfilled the order.
	OrderCompleted OrderStatus = "completed"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is one of the four enumerated literals.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderAccepted, OrderRejected, OrderCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is defined from s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderRejected || s == OrderCompleted
}

// CanTransitionTo consults the transition table:
// pending -> accepted | rejected, accepted -> completed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderPending:
		return next == OrderAccepted || next == OrderRejected
	case OrderAccepted:
		return next == OrderCompleted
	default:
		return false
	}
}

// Order records a buyer's request to purchase one product from its owning
// seller. SellerID is snapshotted from the product at creation time and is
// intentionally never resynced afterwards; it is the provenance of the sale
// even if the product later changes hands.
type Order struct {
	ID        uuid.UUID   `json:"id"`
	ProductID uuid.UUID   `json:"product"`
	BuyerID   uuid.UUID   `json:"buyer"`
	SellerID  uuid.UUID   `json:"seller"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`

	// Joined views, populated on reads. Nil when not loaded.
	Product    *Product     `json:"productInfo,omitempty"`
	BuyerInfo  *UserSummary `json:"buyerInfo,omitempty"`
	SellerInfo *UserSummary `json:"sellerInfo,omitempty"`
}
