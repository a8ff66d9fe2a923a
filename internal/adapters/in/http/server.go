// Package http is the inbound REST adapter: it maps requests onto commands
// and queries and errors onto status codes.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// CommandHandler is satisfied by every command handler in the application layer.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler is satisfied by every query handler in the application layer.
type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateCustomer    CommandHandler[commands.CreateCustomerCommand]
	CreateUser        CommandHandler[commands.CreateUserCommand]
	ClearBill         CommandHandler[commands.ClearBillCommand]
	CreateOrder       CommandHandler[commands.CreateOrderCommand]
	AmendOrder        CommandHandler[commands.AmendOrderCommand]
	UpdateOrderStatus CommandHandler[commands.UpdateOrderStatusCommand]
	DeliverOrder      CommandHandler[commands.DeliverOrderCommand]
	CompleteWalkIn    CommandHandler[commands.CompleteWalkInOrderCommand]
	CancelOrder       CommandHandler[commands.CancelOrderCommand]

	GetOrder          QueryHandler[queries.GetOrderQuery, queries.GetOrderQueryResponse]
	GetCustomerLedger QueryHandler[queries.GetCustomerLedgerQuery, queries.GetCustomerLedgerQueryResponse]
	GetSettledOrders  QueryHandler[queries.GetSettledOrdersQuery, queries.GetSettledOrdersQueryResponse]
}

// Server translates HTTP requests into commands and queries. Every write
// answers with the resulting read model so clients never read stale state.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      handlers,
		logger: logger.With("component", "http"),
	}
}

// Register mounts all routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")

	v1.POST("/users", s.CreateUser)

	v1.POST("/customers", s.CreateCustomer)
	v1.GET("/customers/:id", s.GetCustomer)
	v1.POST("/customers/:id/clear-bill", s.ClearBill)

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:id", s.GetOrder)
	v1.PUT("/orders/:id", s.AmendOrder)
	v1.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	v1.POST("/orders/:id/deliver", s.DeliverOrder)
	v1.POST("/orders/:id/complete", s.CompleteWalkInOrder)
	v1.POST("/orders/:id/cancel", s.CancelOrder)

	v1.GET("/reports/settled-orders", s.GetSettledOrders)
}

// NewEcho builds an echo instance with recovery, request logging and the
// server's routes.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				s.logger.WarnContext(c.Request().Context(), "request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			s.logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}))

	s.Register(e)
	return e
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}
