package commands

import (
	"context"
)

// UpdateOrderStatusCommandHandler moves a rider order between Pending,
// Assigned and InProgress. It never touches the balance but runs through the
// ledger transition so that the resulting events land in the outbox
// atomically with the status change.
type UpdateOrderStatusCommandHandler struct {
	transitioner LedgerTransitioner
}

func NewUpdateOrderStatusCommandHandler(transitioner LedgerTransitioner) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		transitioner: transitioner,
	}
}

func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.transitioner.Apply(ctx, ForOrder(cmd.OrderID()), func(ctx context.Context, tx *Transition) error {
		if cmd.RiderID() != nil {
			if _, err := tx.Users().GetActiveRider(ctx, *cmd.RiderID()); err != nil {
				return err
			}
		}
		return tx.Order().UpdateStatus(cmd.Target(), cmd.RiderID(), tx.Now())
	})
	return err
}
