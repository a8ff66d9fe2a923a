package order_test

import (
	"testing"
	"time"

	"waterdelivery/internal/core/domain/model/billing"
	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/domain/model/user"
	"waterdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func newOrder(t *testing.T, orderType order.Type, rider *kernel.UUID, bottles int, price, balance string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(order.NewOrderParams{
		ID:              kernel.NewUUID(),
		CustomerID:      kernel.NewUUID(),
		RiderID:         rider,
		Type:            orderType,
		Bottles:         bottles,
		UnitPrice:       money(t, price),
		CustomerBalance: money(t, balance),
		CreatedAt:       now,
	})
	require.NoError(t, err)
	return o
}

func assertTotalInvariant(t *testing.T, o *order.Order) {
	t.Helper()
	assert.True(t, o.TotalAmount().Equal(o.CustomerBalance().Add(o.CurrentOrderAmount())),
		"total %s != snapshot %s + current %s", o.TotalAmount(), o.CustomerBalance(), o.CurrentOrderAmount())
}

func assertSettlementInvariant(t *testing.T, o *order.Order) {
	t.Helper()
	assert.False(t, o.Receivable().IsPositive() && o.Payable().IsPositive(), "receivable and payable both set")
	bothZero := o.Receivable().IsZero() && o.Payable().IsZero()
	assert.Equal(t, o.PaidAmount().Equal(o.TotalAmount()), bothZero)
}

func TestNewOrder(t *testing.T) {
	t.Run("should compute amounts for a delivery without rider", func(t *testing.T) {
		o := newOrder(t, order.Delivery, nil, 2, "50", "0")

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.Normal, o.Priority())
		assert.Equal(t, "100.00", o.CurrentOrderAmount().String())
		assert.Equal(t, "100.00", o.TotalAmount().String())
		assert.Equal(t, billing.NotPaid, o.PaymentStatus())
		assert.Equal(t, order.NoPaymentMethod, o.PaymentMethod())
		assert.Nil(t, o.Rider())
		assert.Empty(t, o.Events())
		assertTotalInvariant(t, o)
	})

	t.Run("should carry the existing balance into the total", func(t *testing.T) {
		o := newOrder(t, order.WalkIn, nil, 3, "40", "-30")

		assert.Equal(t, order.Created, o.Status())
		assert.Equal(t, "-30.00", o.CustomerBalance().String())
		assert.Equal(t, "120.00", o.CurrentOrderAmount().String())
		assert.Equal(t, "90.00", o.TotalAmount().String())
		assertTotalInvariant(t, o)
	})

	t.Run("should raise assigned event when created with a rider", func(t *testing.T) {
		riderID := kernel.NewUUID()

		o := newOrder(t, order.EnRoute, &riderID, 1, "60", "0")

		assert.Equal(t, order.InProgress, o.Status())
		require.Len(t, o.Events(), 1)
		e := o.Events()[0]
		assert.Equal(t, event.OrderAssigned, e.Type)
		assert.True(t, e.RiderID.IsEqual(riderID))
		assert.True(t, e.OrderID.IsEqual(o.ID()))
	})

	t.Run("should reject rider on walk-in", func(t *testing.T) {
		riderID := kernel.NewUUID()

		_, err := order.NewOrder(order.NewOrderParams{
			ID: kernel.NewUUID(), CustomerID: kernel.NewUUID(), RiderID: &riderID,
			Type: order.WalkIn, Bottles: 1, UnitPrice: kernel.MoneyFromInt(10), CreatedAt: now,
		})

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require rider on en-route", func(t *testing.T) {
		_, err := order.NewOrder(order.NewOrderParams{
			ID: kernel.NewUUID(), CustomerID: kernel.NewUUID(),
			Type: order.EnRoute, Bottles: 1, UnitPrice: kernel.MoneyFromInt(10), CreatedAt: now,
		})

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should join validation errors", func(t *testing.T) {
		_, err := order.NewOrder(order.NewOrderParams{
			Type: order.Delivery, Bottles: 0, UnitPrice: kernel.MoneyFromInt(-1), CreatedAt: now,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID")
		assert.Contains(t, err.Error(), "customerId")
		assert.Contains(t, err.Error(), "bottles is invalid")
		assert.Contains(t, err.Error(), "unitPrice is invalid")
	})

	t.Run("should refuse clear-bill type", func(t *testing.T) {
		_, err := order.NewOrder(order.NewOrderParams{
			ID: kernel.NewUUID(), CustomerID: kernel.NewUUID(),
			Type: order.ClearBill, Bottles: 1, UnitPrice: kernel.ZeroMoney(), CreatedAt: now,
		})

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should accept free bottles", func(t *testing.T) {
		o := newOrder(t, order.WalkIn, nil, 1, "0", "15")

		assert.Equal(t, "15.00", o.TotalAmount().String())
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})

	t.Run("should fail validation for zero value order", func(t *testing.T) {
		var o order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})
}

func TestOrder_UpdateStatus(t *testing.T) {
	t.Run("should assign first rider", func(t *testing.T) {
		o := newOrder(t, order.Delivery, nil, 2, "50", "0")
		riderID := kernel.NewUUID()

		err := o.UpdateStatus(order.Assigned, &riderID, now)

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
		assert.True(t, o.Rider().IsEqual(riderID))
		require.Len(t, o.Events(), 1)
		assert.Equal(t, event.OrderAssigned, o.Events()[0].Type)
	})

	t.Run("should require a rider to leave pending", func(t *testing.T) {
		o := newOrder(t, order.Delivery, nil, 2, "50", "0")

		err := o.UpdateStatus(order.Assigned, nil, now)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should reassign and notify both riders", func(t *testing.T) {
		first := kernel.NewUUID()
		second := kernel.NewUUID()
		o := newOrder(t, order.Delivery, &first, 2, "50", "0")
		o.ClearEvents()

		err := o.UpdateStatus(order.Assigned, &second, now)

		require.NoError(t, err)
		require.Len(t, o.Events(), 2)
		assert.Equal(t, event.OrderReassigned, o.Events()[0].Type)
		assert.True(t, o.Events()[0].RiderID.IsEqual(first))
		assert.Equal(t, event.OrderAssigned, o.Events()[1].Type)
		assert.True(t, o.Events()[1].RiderID.IsEqual(second))
	})

	t.Run("should start trip without new events", func(t *testing.T) {
		riderID := kernel.NewUUID()
		o := newOrder(t, order.Delivery, &riderID, 2, "50", "0")
		o.ClearEvents()

		err := o.UpdateStatus(order.InProgress, nil, now)

		require.NoError(t, err)
		assert.Equal(t, order.InProgress, o.Status())
		assert.Empty(t, o.Events())
	})

	t.Run("should not go back from in progress to assigned", func(t *testing.T) {
		riderID := kernel.NewUUID()
		o := newOrder(t, order.EnRoute, &riderID, 2, "50", "0")

		err := o.UpdateStatus(order.Assigned, nil, now)

		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("should refuse walk-in orders", func(t *testing.T) {
		o := newOrder(t, order.WalkIn, nil, 2, "50", "0")
		riderID := kernel.NewUUID()

		err := o.UpdateStatus(order.Assigned, &riderID, now)

		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("should refuse other targets", func(t *testing.T) {
		riderID := kernel.NewUUID()
		o := newOrder(t, order.Delivery, &riderID, 2, "50", "0")

		err := o.UpdateStatus(order.Delivered, nil, now)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Deliver(t *testing.T) {
	riderID := kernel.NewUUID()

	cases := []struct {
		name       string
		paid       string
		status     billing.PaymentStatus
		receivable string
		payable    string
	}{
		{"exact payment", "100", billing.Paid, "0.00", "0.00"},
		{"partial payment", "60", billing.Partial, "40.00", "0.00"},
		{"overpayment", "130", billing.Overpaid, "0.00", "30.00"},
		{"no payment", "0", billing.NotPaid, "100.00", "0.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := newOrder(t, order.Delivery, &riderID, 2, "50", "0")
			o.ClearEvents()

			err := o.Deliver(money(t, tc.paid), order.Online, now)

			require.NoError(t, err)
			assert.Equal(t, order.Delivered, o.Status())
			assert.Equal(t, tc.status, o.PaymentStatus())
			assert.Equal(t, tc.receivable, o.Receivable().String())
			assert.Equal(t, tc.payable, o.Payable().String())
			assert.Equal(t, order.Online, o.PaymentMethod())
			require.NotNil(t, o.DeliveredAt())
			assertSettlementInvariant(t, o)
			assertTotalInvariant(t, o)

			require.Len(t, o.Events(), 1)
			assert.Equal(t, event.OrderDelivered, o.Events()[0].Type)
			assert.Equal(t, tc.receivable, o.Events()[0].Receivable.String())
		})
	}

	t.Run("should default payment method to cash", func(t *testing.T) {
		o := newOrder(t, order.Delivery, &riderID, 1, "50", "0")

		require.NoError(t, o.Deliver(kernel.MoneyFromInt(50), order.NoPaymentMethod, now))

		assert.Equal(t, order.Cash, o.PaymentMethod())
	})

	t.Run("should refuse pending order", func(t *testing.T) {
		o := newOrder(t, order.Delivery, nil, 1, "50", "0")

		err := o.Deliver(kernel.MoneyFromInt(50), order.Cash, now)

		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("should refuse second delivery", func(t *testing.T) {
		o := newOrder(t, order.Delivery, &riderID, 1, "50", "0")
		require.NoError(t, o.Deliver(kernel.MoneyFromInt(50), order.Cash, now))

		err := o.Deliver(kernel.MoneyFromInt(50), order.Cash, now)

		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("should refuse walk-in", func(t *testing.T) {
		o := newOrder(t, order.WalkIn, nil, 1, "50", "0")

		err := o.Deliver(kernel.MoneyFromInt(50), order.Cash, now)

		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	})
}

func TestOrder_CompleteWalkIn(t *testing.T) {
	t.Run("should settle at the counter", func(t *testing.T) {
		o := newOrder(t, order.WalkIn, nil, 1, "70", "0")

		err := o.CompleteWalkIn(kernel.MoneyFromInt(70), order.Card, now)

		require.NoError(t, err)
		assert.Equal(t, order.Completed, o.Status())
		assert.Equal(t, billing.Paid, o.PaymentStatus())
		assert.Empty(t, o.Events())
		assertSettlementInvariant(t, o)
	})

	t.Run("should refuse delivery orders", func(t *testing.T) {
		riderID := kernel.NewUUID()
		o := newOrder(t, order.Delivery, &riderID, 1, "70", "0")

		err := o.CompleteWalkIn(kernel.MoneyFromInt(70), order.Card, now)

		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	})
}

func TestOrder_Cancel(t *testing.T) {
	admin := event.Actor{ID: kernel.NewUUID(), Role: user.Admin}

	t.Run("should cancel open order", func(t *testing.T) {
		riderID := kernel.NewUUID()
		o := newOrder(t, order.Delivery, &riderID, 1, "50", "0")
		o.ClearEvents()

		err := o.Cancel(admin, " out of stock ", now)

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, "out of stock", o.CancelReason())
		require.Len(t, o.Events(), 1)
		e := o.Events()[0]
		assert.Equal(t, event.OrderCancelled, e.Type)
		assert.Equal(t, user.Admin, e.ActorRole)
		assert.True(t, e.RiderID.IsEqual(riderID))
	})

	t.Run("should refuse delivered order", func(t *testing.T) {
		riderID := kernel.NewUUID()
		o := newOrder(t, order.Delivery, &riderID, 1, "50", "0")
		require.NoError(t, o.Deliver(kernel.MoneyFromInt(50), order.Cash, now))

		err := o.Cancel(admin, "", now)

		require.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("should refuse cancelling twice", func(t *testing.T) {
		o := newOrder(t, order.WalkIn, nil, 1, "50", "0")
		require.NoError(t, o.Cancel(admin, "", now))

		err := o.Cancel(admin, "", now)

		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("should require a known actor", func(t *testing.T) {
		o := newOrder(t, order.WalkIn, nil, 1, "50", "0")

		err := o.Cancel(event.Actor{ID: kernel.NewUUID()}, "", now)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Created, o.Status())
	})
}

func TestOrder_Amend(t *testing.T) {
	t.Run("should recompute from the snapshot", func(t *testing.T) {
		o := newOrder(t, order.Delivery, nil, 2, "50", "25")
		notes := "ring twice"

		previous, err := o.Amend(order.AmendParams{
			Bottles: 3, UnitPrice: money(t, "45.50"), Notes: &notes, Priority: order.Urgent,
		}, now)

		require.NoError(t, err)
		assert.Equal(t, "100.00", previous.String())
		assert.Equal(t, "25.00", o.CustomerBalance().String())
		assert.Equal(t, "136.50", o.CurrentOrderAmount().String())
		assert.Equal(t, "161.50", o.TotalAmount().String())
		assert.Equal(t, order.Urgent, o.Priority())
		assert.Equal(t, notes, o.Notes())
		assertTotalInvariant(t, o)
	})

	t.Run("should be idempotent with the original inputs", func(t *testing.T) {
		o := newOrder(t, order.Delivery, nil, 2, "50", "10")
		original := o.TotalAmount()

		for range 2 {
			_, err := o.Amend(order.AmendParams{Bottles: 2, UnitPrice: money(t, "50")}, now)
			require.NoError(t, err)
		}

		assert.True(t, original.Equal(o.TotalAmount()))
		assert.Equal(t, order.Normal, o.Priority())
	})

	t.Run("should refuse settled orders", func(t *testing.T) {
		o := newOrder(t, order.WalkIn, nil, 1, "50", "0")

		_, err := o.Amend(order.AmendParams{Bottles: 2, UnitPrice: money(t, "50")}, now)

		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("should refuse zero bottles", func(t *testing.T) {
		o := newOrder(t, order.Delivery, nil, 1, "50", "0")

		_, err := o.Amend(order.AmendParams{Bottles: 0, UnitPrice: money(t, "50")}, now)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, 1, o.Bottles())
	})
}

func TestNewClearBillOrder(t *testing.T) {
	t.Run("should settle a payable balance", func(t *testing.T) {
		o, err := order.NewClearBillOrder(kernel.NewUUID(), kernel.NewUUID(), money(t, "-30"), money(t, "30"), order.Cash, "", now)

		require.NoError(t, err)
		assert.Equal(t, order.ClearBill, o.Type())
		assert.Equal(t, order.Completed, o.Status())
		assert.Equal(t, billing.Paid, o.PaymentStatus())
		assert.Equal(t, "-30.00", o.PaidAmount().String())
		assert.Equal(t, "-30.00", o.TotalAmount().String())
		assert.True(t, o.CurrentOrderAmount().IsZero())
		assert.Equal(t, 0, o.Bottles())
		assertTotalInvariant(t, o)
		assertSettlementInvariant(t, o)
	})

	t.Run("should settle part of a receivable balance", func(t *testing.T) {
		o, err := order.NewClearBillOrder(kernel.NewUUID(), kernel.NewUUID(), money(t, "500"), money(t, "200"), order.Online, "", now)

		require.NoError(t, err)
		assert.Equal(t, billing.Partial, o.PaymentStatus())
		assert.Equal(t, "200.00", o.PaidAmount().String())
		assert.Equal(t, "300.00", o.Receivable().String())
	})

	t.Run("should refuse zero balance", func(t *testing.T) {
		_, err := order.NewClearBillOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.ZeroMoney(), money(t, "10"), order.Cash, "", now)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreOrder(t *testing.T) {
	riderID := kernel.NewUUID()
	src := newOrder(t, order.Delivery, &riderID, 2, "50", "0")

	restored, err := order.RestoreOrder(order.RestoreParams{
		ID:                 src.ID(),
		CustomerID:         src.CustomerID(),
		RiderID:            src.Rider(),
		Type:               src.Type(),
		Status:             src.Status(),
		Priority:           src.Priority(),
		Bottles:            src.Bottles(),
		UnitPrice:          src.UnitPrice(),
		CustomerBalance:    src.CustomerBalance(),
		CurrentOrderAmount: src.CurrentOrderAmount(),
		TotalAmount:        src.TotalAmount(),
		PaidAmount:         src.PaidAmount(),
		PaymentStatus:      src.PaymentStatus(),
		Receivable:         src.Receivable(),
		Payable:            src.Payable(),
		CreatedAt:          src.CreatedAt(),
		UpdatedAt:          src.UpdatedAt(),
	})

	require.NoError(t, err)
	require.NoError(t, restored.Validate())
	assert.True(t, restored.IsEqual(src))
	assert.Equal(t, order.Assigned, restored.Status())
	assert.Empty(t, restored.Events())

	_, err = order.RestoreOrder(order.RestoreParams{ID: src.ID(), CustomerID: src.CustomerID()})
	assert.Error(t, err)
}
