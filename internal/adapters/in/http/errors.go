package http

import (
	"net/http"

	"waterdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    int       `json:"code"`
	Kind    errs.Kind `json:"kind"`
	Message string    `json:"message"`
}

var statusByKind = map[errs.Kind]int{
	errs.KindNotFound:   http.StatusNotFound,
	errs.KindValidation: http.StatusUnprocessableEntity,
	errs.KindConflict:   http.StatusConflict,
	errs.KindInternal:   http.StatusInternalServerError,
}

// fail writes err as an ErrorResponse. Internal errors are logged and their
// text is not sent to the client.
func (s *Server) fail(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	status := statusByKind[kind]

	message := err.Error()
	if kind == errs.KindInternal {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		message = http.StatusText(status)
	}

	return c.JSON(status, ErrorResponse{
		Code:    status,
		Kind:    kind,
		Message: message,
	})
}

func (s *Server) bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}
