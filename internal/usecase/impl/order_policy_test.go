package impl

import (
	"testing"

	"easesupply/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOrderPolicy_CanCreate(t *testing.T) {
	policy := NewOrderPolicy()
	vendor := vendorActor()
	distributor := distributorActor()
	unassigned := &entity.User{ID: uuid.New()}

	assert.True(t, policy.CanCreate(vendor, vendor.ID))
	assert.False(t, policy.CanCreate(vendor, uuid.New()), "cannot buy on someone else's behalf")
	assert.False(t, policy.CanCreate(distributor, distributor.ID), "distributors don't buy")
	assert.False(t, policy.CanCreate(unassigned, unassigned.ID), "role must be chosen first")
	assert.False(t, policy.CanCreate(nil, uuid.New()))
}

func TestOrderPolicy_CanTransition(t *testing.T) {
	policy := NewOrderPolicy()
	seller := distributorActor()
	buyer := vendorActor()

	order := &entity.Order{
		ID:       uuid.New(),
		BuyerID:  buyer.ID,
		SellerID: seller.ID,
		Status:   entity.OrderPending,
	}

	assert.True(t, policy.CanTransition(seller, order, entity.OrderAccepted))
	assert.True(t, policy.CanTransition(seller, order, entity.OrderRejected))
	assert.True(t, policy.CanTransition(seller, order, entity.OrderCompleted))
	assert.False(t, policy.CanTransition(buyer, order, entity.OrderAccepted))
	assert.False(t, policy.CanTransition(nil, order, entity.OrderAccepted))
	assert.False(t, policy.CanTransition(seller, nil, entity.OrderAccepted))
	assert.True(t, policy.CanTransition(seller, order, entity.OrderPending),
		"target legality is the transition table's job, not an authorization question")
}
