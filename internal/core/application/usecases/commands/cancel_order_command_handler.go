package commands

import (
	"context"
	"fmt"

	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels an order and reverses everything it did
// to the customer's balance.
//
// The reversal is the negated sum of the order's ledger entries, so it is
// exact whether or not later orders of the same customer exist. For an order
// that is the customer's latest this equals resetting the balance to the
// order's snapshot.
type CancelOrderCommandHandler struct {
	transitioner LedgerTransitioner
}

func NewCancelOrderCommandHandler(transitioner LedgerTransitioner) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		transitioner: transitioner,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.transitioner.Apply(ctx, ForOrder(cmd.OrderID()), func(ctx context.Context, tx *Transition) error {
		actor := cmd.Actor()
		u, err := tx.Users().Get(ctx, actor.ID)
		if err != nil {
			return err
		}
		if !u.IsActive() {
			return errs.NewObjectNotFoundError("actor", actor.ID)
		}
		if u.Role() != actor.Role {
			return errs.NewValueIsInvalidErrorWithCause("actor",
				fmt.Errorf("user %s is %s, not %s", actor.ID, u.Role(), actor.Role))
		}

		net, err := tx.OrderNet(ctx)
		if err != nil {
			return err
		}

		if err = tx.Order().Cancel(actor, cmd.Reason(), tx.Now()); err != nil {
			return err
		}

		return tx.Post(ledger.Reversal, net.Neg())
	})
	return err
}
