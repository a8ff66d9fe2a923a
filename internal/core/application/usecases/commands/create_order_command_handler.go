package commands

import (
	"context"

	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/core/domain/model/order"
)

// CreateOrderCommandHandler creates an order and charges its amount to the
// customer.
//
// The customer's live balance becomes the order's snapshot, the order amount
// is posted as a Charge, and an order created with a rider raises
// OrderAssigned for that rider.
type CreateOrderCommandHandler struct {
	transitioner LedgerTransitioner
}

func NewCreateOrderCommandHandler(transitioner LedgerTransitioner) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		transitioner: transitioner,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.transitioner.Apply(ctx, cmd.target(), func(ctx context.Context, tx *Transition) error {
		c := tx.Customer()
		if err := c.EnsureCanOrder(); err != nil {
			return err
		}

		if cmd.RiderID() != nil {
			if _, err := tx.Users().GetActiveRider(ctx, *cmd.RiderID()); err != nil {
				return err
			}
		}

		o, err := order.NewOrder(order.NewOrderParams{
			ID:              cmd.OrderID(),
			CustomerID:      c.ID(),
			RiderID:         cmd.RiderID(),
			Type:            cmd.Type(),
			Priority:        cmd.Priority(),
			Bottles:         cmd.Bottles(),
			UnitPrice:       cmd.UnitPrice(),
			CustomerBalance: c.Balance(),
			Notes:           cmd.Notes(),
			CreatedAt:       tx.Now(),
		})
		if err != nil {
			return err
		}

		if err = tx.Create(o); err != nil {
			return err
		}

		return tx.Post(ledger.Charge, o.CurrentOrderAmount())
	})
	return err
}
