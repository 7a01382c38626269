package impl

import (
	"easesupply/internal/domain/entity"
	"easesupply/internal/domain/service"

	"github.com/google/uuid"
)

// orderPolicy is the authorization table for the order ledger. It is
// consulted before the transition table, so an unauthorized caller gets a
// permission error even for transitions that would be illegal anyway.
type orderPolicy struct{}

// NewOrderPolicy creates the marketplace order authorization policy.
func NewOrderPolicy() service.OrderPolicy {
	return &orderPolicy{}
}

// CanCreate allows a vendor to open orders for themselves only.
func (p *orderPolicy) CanCreate(actor *entity.User, buyerID uuid.UUID) bool {
	if actor == nil || actor.Role == nil {
		return false
	}

	return *actor.Role == entity.RoleVendor && actor.ID == buyerID
}

// CanTransition encodes who may drive the lifecycle: every transition
// belongs to the order's seller; the buyer has no transitions of their own.
// Whether the target status is reachable is the transition table's call,
// not an authorization question.
func (p *orderPolicy) CanTransition(actor *entity.User, order *entity.Order, _ entity.OrderStatus) bool {
	if actor == nil || order == nil {
		return false
	}

	return actor.ID == order.SellerID
}
