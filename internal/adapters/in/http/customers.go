package http

import (
	"net/http"
	"strings"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

// CreateUser handles POST /api/v1/users.
func (s *Server) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	role, err := user.ParseRole(strings.ToUpper(req.Role))
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateUserCommand(kernel.NewUUID(), req.Name, req.Phone, role)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CreateUser.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: cmd.UserID().String()})
}

// CreateCustomer handles POST /api/v1/customers.
func (s *Server) CreateCustomer(c echo.Context) error {
	var req CreateCustomerRequest
	if err := s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateCustomerCommand(kernel.NewUUID(), req.Name, req.Phone, req.Address)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CreateCustomer.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondCustomer(c, http.StatusCreated, cmd.CustomerID())
}

// GetCustomer handles GET /api/v1/customers/:id with the balance and ledger.
func (s *Server) GetCustomer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondCustomer(c, http.StatusOK, id)
}

// ClearBill handles POST /api/v1/customers/:id/clear-bill.
func (s *Server) ClearBill(c echo.Context) error {
	customerID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req ClearBillRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	method, err := order.ParsePaymentMethod(strings.ToUpper(req.PaymentMethod))
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewClearBillCommand(kernel.NewUUID(), customerID, kernel.NewMoney(req.PaidAmount), method, req.Notes)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.ClearBill.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, http.StatusCreated, cmd.OrderID())
}

func (s *Server) respondCustomer(c echo.Context, status int, id kernel.UUID) error {
	query, err := queries.NewGetCustomerLedgerQuery(id)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.GetCustomerLedger.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(status, newCustomerResponse(view))
}
