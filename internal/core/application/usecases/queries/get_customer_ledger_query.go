package queries

import (
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/pkg/guard"
)

var ErrGetCustomerLedgerQueryIsNotConstructed = errors.New(
	"GetCustomerLedgerQuery must be created via NewGetCustomerLedgerQuery constructor",
)

// GetCustomerLedgerQuery retrieves a customer's balance and the ledger
// entries it folds from, oldest first.
type GetCustomerLedgerQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCustomerLedgerQuery(customerID kernel.UUID) (GetCustomerLedgerQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCustomerLedgerQuery{}, err
	}
	return GetCustomerLedgerQuery{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCustomerLedgerQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerLedgerQueryIsNotConstructed)
}

func (q GetCustomerLedgerQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// GetCustomerLedgerQueryResponse is the statement of a customer's account.
// Balance is positive when the customer owes the business.
type GetCustomerLedgerQueryResponse struct {
	ID       kernel.UUID
	Name     string
	Phone    string
	Address  string
	IsActive bool
	IsWalkIn bool
	Balance  kernel.Money
	Entries  []LedgerEntryView
}

type LedgerEntryView struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	Kind      ledger.Kind
	Delta     kernel.Money
	CreatedAt time.Time
}
