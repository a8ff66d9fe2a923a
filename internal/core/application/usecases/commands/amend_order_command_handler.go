package commands

import (
	"context"

	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/core/domain/model/order"
)

// AmendOrderCommandHandler reprices an open order. The previous charge is
// reversed and the new amount charged, so the customer balance ends up as
// snapshot + new amount no matter how often the order is amended.
type AmendOrderCommandHandler struct {
	transitioner LedgerTransitioner
}

func NewAmendOrderCommandHandler(transitioner LedgerTransitioner) AmendOrderCommandHandler {
	return AmendOrderCommandHandler{
		transitioner: transitioner,
	}
}

func (h AmendOrderCommandHandler) Handle(ctx context.Context, cmd AmendOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.transitioner.Apply(ctx, ForOrder(cmd.OrderID()), func(_ context.Context, tx *Transition) error {
		o := tx.Order()
		previous, err := o.Amend(order.AmendParams{
			Bottles:   cmd.Bottles(),
			UnitPrice: cmd.UnitPrice(),
			Notes:     cmd.Notes(),
			Priority:  cmd.Priority(),
		}, tx.Now())
		if err != nil {
			return err
		}

		if previous.Equal(o.CurrentOrderAmount()) {
			return nil
		}

		if err = tx.Post(ledger.Reversal, previous.Neg()); err != nil {
			return err
		}
		return tx.Post(ledger.Charge, o.CurrentOrderAmount())
	})
	return err
}
