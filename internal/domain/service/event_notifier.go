// Package service defines the infrastructure capabilities the domain depends on.
package service

import (
	"easesupply/internal/domain/entity"

	"github.com/google/uuid"
)

// Event type constants carried in every order event payload.
const (
	EventOrderNew    = "order:new"
	EventOrderStatus = "order:status"
)

// OrderEvent is the payload pushed to connected clients and to the external
// event bridge when an order is created or changes status. Delivery is
// at-most-once and advisory only: receivers re-query the ledger for
// authoritative state.
type OrderEvent struct {
	Event     string        `json:"event"`
	Order     *entity.Order `json:"order"`
	SellerID  uuid.UUID     `json:"seller"`
	BuyerID   uuid.UUID     `json:"buyer,omitempty"`
	RequestID string        `json:"requestId,omitempty"`
}

// OrderTopic is the per-account fan-out channel. Scoping topics by account
// keeps clients from seeing events addressed to anyone else.
func OrderTopic(userID uuid.UUID) string {
	return "orders:" + userID.String()
}

// EventNotifier fans an event out to the subscribers of a topic that are
// connected at publish time. Best effort: no persistence, no replay, and a
// failed delivery is dropped silently.
type EventNotifier interface {
	Publish(topic string, event *OrderEvent)
}
