package http

import (
	"net/http"
	"strings"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	orderType, err := order.ParseType(strings.ToUpper(req.Type))
	if err != nil {
		return s.fail(c, err)
	}
	priority, err := order.ParsePriority(strings.ToUpper(req.Priority))
	if err != nil {
		return s.fail(c, err)
	}
	riderID, err := parseOptionalID("riderId", req.RiderID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(commands.CreateOrderInput{
		OrderID:     kernel.NewUUID(),
		CustomerRef: strings.TrimSpace(req.CustomerID),
		Type:        orderType,
		Bottles:     req.Bottles,
		UnitPrice:   kernel.NewMoney(req.UnitPrice),
		RiderID:     riderID,
		Priority:    priority,
		Notes:       req.Notes,
	})
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, http.StatusCreated, cmd.OrderID())
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondOrder(c, http.StatusOK, id)
}

// AmendOrder handles PUT /api/v1/orders/:id.
func (s *Server) AmendOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req AmendOrderRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	priority := order.UnknownPriority
	if req.Priority != "" {
		if priority, err = order.ParsePriority(strings.ToUpper(req.Priority)); err != nil {
			return s.fail(c, err)
		}
	}

	cmd, err := commands.NewAmendOrderCommand(id, req.Bottles, kernel.NewMoney(req.UnitPrice), req.Notes, priority)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.AmendOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, http.StatusOK, id)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status for rider
// assignment, reassignment and starting the trip.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req UpdateOrderStatusRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	target, err := order.ParseStatus(strings.ToUpper(req.Status))
	if err != nil {
		return s.fail(c, err)
	}
	riderID, err := parseOptionalID("riderId", req.RiderID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(id, target, riderID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.UpdateOrderStatus.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, http.StatusOK, id)
}

// DeliverOrder handles POST /api/v1/orders/:id/deliver.
func (s *Server) DeliverOrder(c echo.Context) error {
	id, paid, method, err := s.settlement(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewDeliverOrderCommand(id, paid, method)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.DeliverOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, http.StatusOK, id)
}

// CompleteWalkInOrder handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteWalkInOrder(c echo.Context) error {
	id, paid, method, err := s.settlement(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCompleteWalkInOrderCommand(id, paid, method)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CompleteWalkIn.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, http.StatusOK, id)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel. The actor comes from
// the X-User-ID and X-User-Role headers.
func (s *Server) CancelOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}

	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req CancelOrderRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCancelOrderCommand(id, actor, req.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, http.StatusOK, id)
}

func (s *Server) settlement(c echo.Context) (kernel.UUID, kernel.Money, order.PaymentMethod, error) {
	id, err := pathID(c)
	if err != nil {
		return kernel.UUID{}, kernel.Money{}, order.NoPaymentMethod, err
	}

	var req SettleOrderRequest
	if err = s.bind(c, &req); err != nil {
		return kernel.UUID{}, kernel.Money{}, order.NoPaymentMethod, err
	}

	method, err := order.ParsePaymentMethod(strings.ToUpper(req.PaymentMethod))
	if err != nil {
		return kernel.UUID{}, kernel.Money{}, order.NoPaymentMethod, err
	}

	return id, kernel.NewMoney(req.PaidAmount), method, nil
}

func (s *Server) respondOrder(c echo.Context, status int, id kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(status, newOrderResponse(view))
}
