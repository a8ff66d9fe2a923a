package queries

import (
	"context"
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/billing"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order straight from the orders table.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns an ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.customer_id,
			COALESCE(c.name, ''),
			o.rider_id,
			o.order_type,
			o.status,
			o.priority,
			o.number_of_bottles,
			o.unit_price,
			o.customer_balance,
			o.current_order_amount,
			o.total_amount,
			o.paid_amount,
			o.payment_status,
			o.receivable,
			o.payable,
			o.payment_method,
			o.notes,
			o.cancel_reason,
			o.delivered_at,
			o.created_at,
			o.updated_at
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	var (
		resp                                               GetOrderQueryResponse
		id, customerID                                     uuid.UUID
		riderID                                            uuid.NullUUID
		orderType, status, priority, paymentStatus, method string
		unitPrice, balance, current, total, paid           decimal.Decimal
		receivable, payable                                decimal.Decimal
		deliveredAt                                        *time.Time
	)

	err = rows.Scan(
		&id,
		&customerID,
		&resp.CustomerName,
		&riderID,
		&orderType,
		&status,
		&priority,
		&resp.Bottles,
		&unitPrice,
		&balance,
		&current,
		&total,
		&paid,
		&paymentStatus,
		&receivable,
		&payable,
		&method,
		&resp.Notes,
		&resp.CancelReason,
		&deliveredAt,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	var idErr, customerErr, riderErr, typeErr, statusErr, priorityErr, paymentErr, methodErr error
	resp.ID, idErr = kernel.UUIDFromBytes(id[:])
	resp.CustomerID, customerErr = kernel.UUIDFromBytes(customerID[:])
	if riderID.Valid {
		var rider kernel.UUID
		rider, riderErr = kernel.UUIDFromBytes(riderID.UUID[:])
		resp.RiderID = &rider
	}
	resp.Type, typeErr = order.ParseType(orderType)
	resp.Status, statusErr = order.ParseStatus(status)
	resp.Priority, priorityErr = order.ParsePriority(priority)
	resp.PaymentStatus, paymentErr = billing.ParsePaymentStatus(paymentStatus)
	resp.PaymentMethod, methodErr = order.ParsePaymentMethod(method)
	if err = errors.Join(idErr, customerErr, riderErr, typeErr, statusErr, priorityErr, paymentErr, methodErr); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.UnitPrice = kernel.NewMoney(unitPrice)
	resp.CustomerBalance = kernel.NewMoney(balance)
	resp.CurrentOrderAmount = kernel.NewMoney(current)
	resp.TotalAmount = kernel.NewMoney(total)
	resp.PaidAmount = kernel.NewMoney(paid)
	resp.Receivable = kernel.NewMoney(receivable)
	resp.Payable = kernel.NewMoney(payable)
	if deliveredAt != nil {
		at := deliveredAt.UTC()
		resp.DeliveredAt = &at
	}
	resp.CreatedAt = resp.CreatedAt.UTC()
	resp.UpdatedAt = resp.UpdatedAt.UTC()

	return resp, rows.Err()
}
