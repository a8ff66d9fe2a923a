package ledger

import (
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is one immutable movement of a customer's balance caused by an order.
// Entries are only ever appended; corrections are new Reversal entries.
type Entry struct {
	id         kernel.UUID
	customerID kernel.UUID
	orderID    kernel.UUID
	kind       Kind
	delta      kernel.Money
	createdAt  time.Time

	guard guard.ConstructorGuard
}

func NewEntry(customerID, orderID kernel.UUID, kind Kind, delta kernel.Money, createdAt time.Time) (*Entry, error) {
	return RestoreEntry(kernel.NewUUID(), customerID, orderID, kind, delta, createdAt)
}

// RestoreEntry rebuilds an entry from persistence.
func RestoreEntry(
	id, customerID, orderID kernel.UUID,
	kind Kind,
	delta kernel.Money,
	createdAt time.Time,
) (*Entry, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		orderID.Validate(),
		kind.Validate(),
	); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Entry{
		id:         id,
		customerID: customerID,
		orderID:    orderID,
		kind:       kind,
		delta:      delta,
		createdAt:  createdAt.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

func (e *Entry) ID() kernel.UUID {
	return e.id
}

func (e *Entry) CustomerID() kernel.UUID {
	return e.customerID
}

func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

func (e *Entry) Kind() Kind {
	return e.kind
}

// Delta is the signed balance movement: positive raises what the customer owes.
func (e *Entry) Delta() kernel.Money {
	return e.delta
}

func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

// Fold sums the deltas of entries. Folding every entry of a customer yields
// the customer's balance.
func Fold(entries []*Entry) kernel.Money {
	total := kernel.ZeroMoney()
	for _, e := range entries {
		total = total.Add(e.delta)
	}
	return total
}

// FoldOrder sums the deltas that belong to orderID.
func FoldOrder(entries []*Entry, orderID kernel.UUID) kernel.Money {
	total := kernel.ZeroMoney()
	for _, e := range entries {
		if e.orderID.IsEqual(orderID) {
			total = total.Add(e.delta)
		}
	}
	return total
}
