package http

import (
	"net/http"

	"waterdelivery/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetSettledOrders handles GET /api/v1/reports/settled-orders?from=&to=.
// Both bounds are RFC 3339 timestamps; the window is half-open.
func (s *Server) GetSettledOrders(c echo.Context) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return s.fail(c, err)
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetSettledOrdersQuery(from, to)
	if err != nil {
		return s.fail(c, err)
	}

	report, err := s.h.GetSettledOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newSettledOrdersResponse(query, report))
}
