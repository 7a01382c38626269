package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderPending.IsValid())
	assert.True(t, OrderAccepted.IsValid())
	assert.True(t, OrderRejected.IsValid())
	assert.True(t, OrderCompleted.IsValid())
	assert.False(t, OrderStatus("shipped").IsValid())
	assert.False(t, OrderStatus("").IsValid())
	assert.False(t, OrderStatus("Pending").IsValid(), "literals are case sensitive")
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		ok   bool
	}{
		{OrderPending, OrderAccepted, true},
		{OrderPending, OrderRejected, true},
		{OrderPending, OrderCompleted, false},
		{OrderPending, OrderPending, false},
		{OrderAccepted, OrderCompleted, true},
		{OrderAccepted, OrderRejected, false},
		{OrderAccepted, OrderPending, false},
		{OrderRejected, OrderAccepted, false},
		{OrderRejected, OrderCompleted, false},
		{OrderCompleted, OrderAccepted, false},
		{OrderCompleted, OrderPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, OrderPending.IsTerminal())
	assert.False(t, OrderAccepted.IsTerminal())
	assert.True(t, OrderRejected.IsTerminal())
	assert.True(t, OrderCompleted.IsTerminal())
}
