package queries

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/ports"
)

// GetSettledOrdersQueryHandler builds the report from OrderRepository so the
// feed sees orders exactly as the aggregate restores them.
type GetSettledOrdersQueryHandler struct {
	orders ports.OrderRepository
}

func NewGetSettledOrdersQueryHandler(orders ports.OrderRepository) GetSettledOrdersQueryHandler {
	return GetSettledOrdersQueryHandler{orders: orders}
}

func (h GetSettledOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetSettledOrdersQuery,
) (GetSettledOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSettledOrdersQueryResponse{}, err
	}

	settled, err := h.orders.GetSettledBetween(ctx, query.From(), query.To())
	if err != nil {
		return GetSettledOrdersQueryResponse{}, err
	}

	resp := GetSettledOrdersQueryResponse{
		Orders:     make([]SettledOrderView, 0, len(settled)),
		Collected:  kernel.ZeroMoney(),
		Receivable: kernel.ZeroMoney(),
		Payable:    kernel.ZeroMoney(),
	}

	for _, o := range settled {
		view := SettledOrderView{
			ID:            o.ID(),
			CustomerID:    o.CustomerID(),
			RiderID:       o.Rider(),
			Type:          o.Type(),
			Status:        o.Status(),
			Bottles:       o.Bottles(),
			OrderAmount:   o.CurrentOrderAmount(),
			TotalAmount:   o.TotalAmount(),
			PaidAmount:    o.PaidAmount(),
			PaymentStatus: o.PaymentStatus(),
			PaymentMethod: o.PaymentMethod(),
			Receivable:    o.Receivable(),
			Payable:       o.Payable(),
		}
		if at := o.DeliveredAt(); at != nil {
			view.SettledAt = *at
		}

		resp.Orders = append(resp.Orders, view)
		resp.Collected = resp.Collected.Add(o.PaidAmount())
		resp.Receivable = resp.Receivable.Add(o.Receivable())
		resp.Payable = resp.Payable.Add(o.Payable())
	}

	return resp, nil
}
