package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 正規の遷移表。pending -> shipped -> delivered、pending -> cancelled のみ。
func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusPending, OrderStatusShipped, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusShipped, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusShipped, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestParseOrderStatus(t *testing.T) {
	s, ok := ParseOrderStatus("shipped")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusShipped, s)

	_, ok = ParseOrderStatus("SHIPPED")
	assert.False(t, ok)

	_, ok = ParseOrderStatus("")
	assert.False(t, ok)
}

func TestUserTypeIsSeller(t *testing.T) {
	assert.True(t, UserTypeFarmer.IsSeller())
	assert.True(t, UserTypeSupplier.IsSeller())
	assert.False(t, UserTypeBuyer.IsSeller())
	assert.False(t, UserType("admin").IsSeller())
}
