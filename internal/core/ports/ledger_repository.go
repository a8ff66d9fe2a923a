package ports

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"
)

// LedgerRepository appends and reads balance movements. Entries are never
// updated or deleted.
type LedgerRepository interface {
	Append(ctx context.Context, entries ...*ledger.Entry) error

	// ListByCustomer returns the customer's entries oldest first.
	ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*ledger.Entry, error)

	SumByCustomer(ctx context.Context, customerID kernel.UUID) (kernel.Money, error)

	// SumByOrder returns the net contribution of an order to its customer's balance.
	SumByOrder(ctx context.Context, orderID kernel.UUID) (kernel.Money, error)
}
