package services_test

import (
	"testing"
	"time"

	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/user"
	"waterdelivery/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

func admins(t *testing.T) []*user.User {
	t.Helper()
	active, err := user.NewUser(kernel.NewUUID(), "Asha", "", user.Admin)
	require.NoError(t, err)
	inactive, err := user.RestoreUser(kernel.NewUUID(), "Old", "", user.Admin, false)
	require.NoError(t, err)
	return []*user.User{active, inactive}
}

func TestNotificationComposer_Compose(t *testing.T) {
	composer := services.NewNotificationComposer()
	orderID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	customerID := kernel.NewUUID()

	t.Run("should address assigned rider", func(t *testing.T) {
		e := event.NewOrderAssigned(orderID, riderID, 2, kernel.MoneyFromInt(100), at).
			WithCustomer(customerID, "Sara", "House 7")

		got, err := composer.Compose(e, nil, at)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].UserID().IsEqual(riderID))
		assert.True(t, got[0].EventID().IsEqual(e.ID))
		assert.Equal(t, "New delivery assigned", got[0].Title())
		assert.Equal(t, "Deliver 2 bottles to Sara at House 7. Amount due: 100.00.", got[0].Message())
		assert.Equal(t, orderID.String(), got[0].Data()["orderId"])
	})

	t.Run("should address previous rider on reassignment", func(t *testing.T) {
		e := event.NewOrderReassigned(orderID, riderID, 1, at).WithCustomer(customerID, "Sara", "")

		got, err := composer.Compose(e, nil, at)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].UserID().IsEqual(riderID))
		assert.Contains(t, got[0].Message(), "1 bottle for Sara")
	})

	t.Run("should fan out delivery to active admins", func(t *testing.T) {
		list := admins(t)
		e := event.NewOrderDelivered(orderID, &riderID, 2,
			kernel.MoneyFromInt(100), kernel.MoneyFromInt(60), kernel.MoneyFromInt(40), kernel.ZeroMoney(), at).
			WithCustomer(customerID, "Sara", "House 7")

		assert.Equal(t, services.AudienceAdmins, composer.AudienceOf(e))
		got, err := composer.Compose(e, list, at)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].UserID().IsEqual(list[0].ID()))
		assert.Equal(t, "2 bottles delivered to Sara. Paid 60.00 of 100.00. Receivable 40.00, payable 0.00.", got[0].Message())
	})

	t.Run("should tell the rider when an admin cancels", func(t *testing.T) {
		e := event.NewOrderCancelled(orderID, &riderID, 3, event.Actor{ID: kernel.NewUUID(), Role: user.Admin}, "", at)

		got, err := composer.Compose(e, admins(t), at)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].UserID().IsEqual(riderID))
		assert.Equal(t, "Delivery cancelled", got[0].Title())
		assert.Contains(t, got[0].Message(), "Reason: -.")
	})

	t.Run("should tell admins when a rider cancels", func(t *testing.T) {
		list := admins(t)
		e := event.NewOrderCancelled(orderID, &riderID, 3, event.Actor{ID: riderID, Role: user.Rider}, "flat tyre", at)

		got, err := composer.Compose(e, list, at)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].UserID().IsEqual(list[0].ID()))
		assert.Equal(t, "Order cancelled by rider", got[0].Title())
		assert.Contains(t, got[0].Message(), "flat tyre")
	})

	t.Run("should address nobody when an admin cancels an unassigned order", func(t *testing.T) {
		e := event.NewOrderCancelled(orderID, nil, 3, event.Actor{ID: kernel.NewUUID(), Role: user.Admin}, "", at)

		got, err := composer.Compose(e, admins(t), at)

		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, services.AudienceNone, composer.AudienceOf(e))
	})

	t.Run("should reject unknown event types", func(t *testing.T) {
		_, err := composer.Compose(event.Event{}, nil, at)

		assert.Error(t, err)
	})
}
