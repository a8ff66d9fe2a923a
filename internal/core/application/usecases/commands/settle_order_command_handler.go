package commands

import (
	"context"

	"waterdelivery/internal/core/domain/model/ledger"
)

// DeliverOrderCommandHandler settles a rider order: the order records the
// payment against its total and the customer balance drops by the amount
// paid. Raises OrderDelivered for the admins.
type DeliverOrderCommandHandler struct {
	transitioner LedgerTransitioner
}

func NewDeliverOrderCommandHandler(transitioner LedgerTransitioner) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		transitioner: transitioner,
	}
}

func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.transitioner.Apply(ctx, ForOrder(cmd.OrderID()), func(_ context.Context, tx *Transition) error {
		if err := tx.Order().Deliver(cmd.PaidAmount(), cmd.PaymentMethod(), tx.Now()); err != nil {
			return err
		}
		return tx.Post(ledger.Payment, cmd.PaidAmount().Neg())
	})
	return err
}

// CompleteWalkInOrderCommandHandler settles a walk-in order at the counter
// with the same arithmetic as a delivery.
type CompleteWalkInOrderCommandHandler struct {
	transitioner LedgerTransitioner
}

func NewCompleteWalkInOrderCommandHandler(transitioner LedgerTransitioner) CompleteWalkInOrderCommandHandler {
	return CompleteWalkInOrderCommandHandler{
		transitioner: transitioner,
	}
}

func (h CompleteWalkInOrderCommandHandler) Handle(ctx context.Context, cmd CompleteWalkInOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.transitioner.Apply(ctx, ForOrder(cmd.OrderID()), func(_ context.Context, tx *Transition) error {
		if err := tx.Order().CompleteWalkIn(cmd.PaidAmount(), cmd.PaymentMethod(), tx.Now()); err != nil {
			return err
		}
		return tx.Post(ledger.Payment, cmd.PaidAmount().Neg())
	})
	return err
}
