package event_test

import (
	"testing"
	"time"

	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderCancelled(t *testing.T) {
	orderID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	actor := event.Actor{ID: kernel.NewUUID(), Role: user.Admin}
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("PKT", 5*3600))

	e := event.NewOrderCancelled(orderID, &riderID, 4, actor, "customer away", at)

	assert.Equal(t, event.OrderCancelled, e.Type)
	assert.True(t, e.OrderID.IsEqual(orderID))
	require.NotNil(t, e.RiderID)
	assert.True(t, e.RiderID.IsEqual(riderID))
	require.NotNil(t, e.ActorID)
	assert.True(t, e.ActorID.IsEqual(actor.ID))
	assert.Equal(t, user.Admin, e.ActorRole)
	assert.Equal(t, "customer away", e.Reason)
	assert.Equal(t, time.UTC, e.OccurredAt.Location())
	assert.True(t, e.TotalAmount.IsZero())
}

func TestEvent_WithCustomer(t *testing.T) {
	e := event.NewOrderAssigned(kernel.NewUUID(), kernel.NewUUID(), 2, kernel.MoneyFromInt(200), time.Now())
	customerID := kernel.NewUUID()

	enriched := e.WithCustomer(customerID, "Sara", "House 7")

	assert.Empty(t, e.CustomerName)
	assert.True(t, enriched.CustomerID.IsEqual(customerID))
	assert.Equal(t, "Sara", enriched.CustomerName)
	assert.Equal(t, "House 7", enriched.CustomerAddress)
	assert.True(t, enriched.ID.IsEqual(e.ID))
}

func TestParseType(t *testing.T) {
	for _, typ := range []event.Type{event.OrderAssigned, event.OrderReassigned, event.OrderDelivered, event.OrderCancelled} {
		parsed, err := event.ParseType(typ.String())

		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}

	_, err := event.ParseType("ORDER_LOST")
	assert.Error(t, err)
}
