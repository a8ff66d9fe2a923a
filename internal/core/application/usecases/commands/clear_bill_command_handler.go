package commands

import (
	"context"

	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/core/domain/model/order"
)

// ClearBillCommandHandler records a clear-bill order against the balance
// read under lock. A zero balance is rejected.
type ClearBillCommandHandler struct {
	transitioner LedgerTransitioner
}

func NewClearBillCommandHandler(transitioner LedgerTransitioner) ClearBillCommandHandler {
	return ClearBillCommandHandler{
		transitioner: transitioner,
	}
}

func (h ClearBillCommandHandler) Handle(ctx context.Context, cmd ClearBillCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.transitioner.Apply(ctx, ForCustomer(cmd.CustomerID()), func(_ context.Context, tx *Transition) error {
		c := tx.Customer()
		o, err := order.NewClearBillOrder(
			cmd.OrderID(), c.ID(),
			c.Balance(), cmd.PaidAmount(),
			cmd.PaymentMethod(), cmd.Notes(),
			tx.Now(),
		)
		if err != nil {
			return err
		}

		if err = tx.Create(o); err != nil {
			return err
		}

		return tx.Post(ledger.Payment, o.PaidAmount().Neg())
	})
	return err
}
