package http

import (
	"time"

	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type CreateUserRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type ClearBillRequest struct {
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes"`
}

// CreateOrderRequest takes a customer UUID or "walk-in" in CustomerID.
type CreateOrderRequest struct {
	CustomerID string          `json:"customerId"`
	Type       string          `json:"type"`
	Bottles    int             `json:"bottles"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	RiderID    *string         `json:"riderId"`
	Priority   string          `json:"priority"`
	Notes      string          `json:"notes"`
}

// AmendOrderRequest leaves notes untouched when Notes is absent.
type AmendOrderRequest struct {
	Bottles   int             `json:"bottles"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Notes     *string         `json:"notes"`
	Priority  string          `json:"priority"`
}

type UpdateOrderStatusRequest struct {
	Status  string  `json:"status"`
	RiderID *string `json:"riderId"`
}

type SettleOrderRequest struct {
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	PaymentMethod string          `json:"paymentMethod"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type OrderResponse struct {
	ID                 string     `json:"id"`
	CustomerID         string     `json:"customerId"`
	CustomerName       string     `json:"customerName"`
	RiderID            *string    `json:"riderId"`
	Type               string     `json:"type"`
	Status             string     `json:"status"`
	Priority           string     `json:"priority"`
	Bottles            int        `json:"bottles"`
	UnitPrice          string     `json:"unitPrice"`
	CustomerBalance    string     `json:"customerBalance"`
	CurrentOrderAmount string     `json:"currentOrderAmount"`
	TotalAmount        string     `json:"totalAmount"`
	PaidAmount         string     `json:"paidAmount"`
	PaymentStatus      string     `json:"paymentStatus"`
	Receivable         string     `json:"receivable"`
	Payable            string     `json:"payable"`
	PaymentMethod      string     `json:"paymentMethod,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	CancelReason       string     `json:"cancelReason,omitempty"`
	DeliveredAt        *time.Time `json:"deliveredAt"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func newOrderResponse(o queries.GetOrderQueryResponse) OrderResponse {
	return OrderResponse{
		ID:                 o.ID.String(),
		CustomerID:         o.CustomerID.String(),
		CustomerName:       o.CustomerName,
		RiderID:            optionalString(o.RiderID),
		Type:               o.Type.String(),
		Status:             o.Status.String(),
		Priority:           o.Priority.String(),
		Bottles:            o.Bottles,
		UnitPrice:          o.UnitPrice.String(),
		CustomerBalance:    o.CustomerBalance.String(),
		CurrentOrderAmount: o.CurrentOrderAmount.String(),
		TotalAmount:        o.TotalAmount.String(),
		PaidAmount:         o.PaidAmount.String(),
		PaymentStatus:      o.PaymentStatus.String(),
		Receivable:         o.Receivable.String(),
		Payable:            o.Payable.String(),
		PaymentMethod:      o.PaymentMethod.String(),
		Notes:              o.Notes,
		CancelReason:       o.CancelReason,
		DeliveredAt:        o.DeliveredAt,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

type LedgerEntryResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	Kind      string    `json:"kind"`
	Delta     string    `json:"delta"`
	CreatedAt time.Time `json:"createdAt"`
}

type CustomerResponse struct {
	ID       string                `json:"id"`
	Name     string                `json:"name"`
	Phone    string                `json:"phone"`
	Address  string                `json:"address"`
	IsActive bool                  `json:"isActive"`
	IsWalkIn bool                  `json:"isWalkIn"`
	Balance  string                `json:"balance"`
	Entries  []LedgerEntryResponse `json:"entries"`
}

func newCustomerResponse(c queries.GetCustomerLedgerQueryResponse) CustomerResponse {
	entries := make([]LedgerEntryResponse, 0, len(c.Entries))
	for _, e := range c.Entries {
		entries = append(entries, LedgerEntryResponse{
			ID:        e.ID.String(),
			OrderID:   e.OrderID.String(),
			Kind:      e.Kind.String(),
			Delta:     e.Delta.String(),
			CreatedAt: e.CreatedAt,
		})
	}

	return CustomerResponse{
		ID:       c.ID.String(),
		Name:     c.Name,
		Phone:    c.Phone,
		Address:  c.Address,
		IsActive: c.IsActive,
		IsWalkIn: c.IsWalkIn,
		Balance:  c.Balance.String(),
		Entries:  entries,
	}
}

type SettledOrderResponse struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customerId"`
	RiderID       *string   `json:"riderId"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	Bottles       int       `json:"bottles"`
	OrderAmount   string    `json:"orderAmount"`
	TotalAmount   string    `json:"totalAmount"`
	PaidAmount    string    `json:"paidAmount"`
	PaymentStatus string    `json:"paymentStatus"`
	PaymentMethod string    `json:"paymentMethod"`
	Receivable    string    `json:"receivable"`
	Payable       string    `json:"payable"`
	SettledAt     time.Time `json:"settledAt"`
}

type SettledOrdersResponse struct {
	From       time.Time              `json:"from"`
	To         time.Time              `json:"to"`
	Orders     []SettledOrderResponse `json:"orders"`
	Collected  string                 `json:"collected"`
	Receivable string                 `json:"receivable"`
	Payable    string                 `json:"payable"`
}

func newSettledOrdersResponse(q queries.GetSettledOrdersQuery, r queries.GetSettledOrdersQueryResponse) SettledOrdersResponse {
	lines := make([]SettledOrderResponse, 0, len(r.Orders))
	for _, o := range r.Orders {
		lines = append(lines, SettledOrderResponse{
			ID:            o.ID.String(),
			CustomerID:    o.CustomerID.String(),
			RiderID:       optionalString(o.RiderID),
			Type:          o.Type.String(),
			Status:        o.Status.String(),
			Bottles:       o.Bottles,
			OrderAmount:   o.OrderAmount.String(),
			TotalAmount:   o.TotalAmount.String(),
			PaidAmount:    o.PaidAmount.String(),
			PaymentStatus: o.PaymentStatus.String(),
			PaymentMethod: o.PaymentMethod.String(),
			Receivable:    o.Receivable.String(),
			Payable:       o.Payable.String(),
			SettledAt:     o.SettledAt,
		})
	}

	return SettledOrdersResponse{
		From:       q.From(),
		To:         q.To(),
		Orders:     lines,
		Collected:  r.Collected.String(),
		Receivable: r.Receivable.String(),
		Payable:    r.Payable.String(),
	}
}

func optionalString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
