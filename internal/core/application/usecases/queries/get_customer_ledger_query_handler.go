package queries

import (
	"context"
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"
	"waterdelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCustomerLedgerQueryHandler reads the customer row and its ledger in one
// read-only transaction so that the entries always add up to the balance.
type GetCustomerLedgerQueryHandler struct {
	db *gorm.DB
}

func NewGetCustomerLedgerQueryHandler(db *gorm.DB) GetCustomerLedgerQueryHandler {
	return GetCustomerLedgerQueryHandler{db: db}
}

func (h GetCustomerLedgerQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerLedgerQuery,
) (GetCustomerLedgerQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCustomerLedgerQueryResponse{}, err
	}

	var resp GetCustomerLedgerQueryResponse
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET TRANSACTION ISOLATION LEVEL REPEATABLE READ READ ONLY").Error; err != nil {
			return err
		}

		var err error
		if resp, err = readCustomer(tx, query.CustomerID()); err != nil {
			return err
		}
		resp.Entries, err = readEntries(tx, query.CustomerID())
		return err
	})
	if err != nil {
		return GetCustomerLedgerQueryResponse{}, err
	}

	return resp, nil
}

func readCustomer(tx *gorm.DB, customerID kernel.UUID) (GetCustomerLedgerQueryResponse, error) {
	rows, err := tx.Raw(`
		SELECT
			id,
			name,
			phone,
			address,
			is_active,
			is_walk_in,
			balance
		FROM customers
		WHERE id = ?
	`, customerID.Bytes()).Rows()
	if err != nil {
		return GetCustomerLedgerQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetCustomerLedgerQueryResponse{}, err
		}
		return GetCustomerLedgerQueryResponse{}, errs.NewObjectNotFoundError("customer", customerID.String())
	}

	var resp GetCustomerLedgerQueryResponse
	var id uuid.UUID
	var balance decimal.Decimal
	if err = rows.Scan(&id, &resp.Name, &resp.Phone, &resp.Address, &resp.IsActive, &resp.IsWalkIn, &balance); err != nil {
		return GetCustomerLedgerQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetCustomerLedgerQueryResponse{}, err
	}
	resp.Balance = kernel.NewMoney(balance)

	return resp, rows.Err()
}

func readEntries(tx *gorm.DB, customerID kernel.UUID) ([]LedgerEntryView, error) {
	rows, err := tx.Raw(`
		SELECT
			id,
			order_id,
			kind,
			delta,
			created_at
		FROM ledger_entries
		WHERE customer_id = ?
		ORDER BY seq
	`, customerID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]LedgerEntryView, 0)
	for rows.Next() {
		var view LedgerEntryView
		var id, orderID uuid.UUID
		var kind string
		var delta decimal.Decimal

		if err = rows.Scan(&id, &orderID, &kind, &delta, &view.CreatedAt); err != nil {
			return nil, err
		}

		var idErr, orderErr, kindErr error
		view.ID, idErr = kernel.UUIDFromBytes(id[:])
		view.OrderID, orderErr = kernel.UUIDFromBytes(orderID[:])
		view.Kind, kindErr = ledger.ParseKind(kind)
		if err = errors.Join(idErr, orderErr, kindErr); err != nil {
			return nil, err
		}
		view.Delta = kernel.NewMoney(delta)
		view.CreatedAt = view.CreatedAt.UTC()

		entries = append(entries, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
