package http

import (
	"strings"
	"time"

	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/user"
	"waterdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

func pathID(c echo.Context) (kernel.UUID, error) {
	return parseID("id", c.Param("id"))
}

func parseID(name, raw string) (kernel.UUID, error) {
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(name)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func parseOptionalID(name string, raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := parseID(name, *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// actorFrom reads the acting user from the identity headers set by the
// upstream gateway.
func actorFrom(c echo.Context) (event.Actor, error) {
	id, err := parseID(HeaderUserID, c.Request().Header.Get(HeaderUserID))
	if err != nil {
		return event.Actor{}, err
	}

	rawRole := strings.ToUpper(strings.TrimSpace(c.Request().Header.Get(HeaderUserRole)))
	if rawRole == "" {
		return event.Actor{}, errs.NewValueIsRequiredError(HeaderUserRole)
	}
	role, err := user.ParseRole(rawRole)
	if err != nil {
		return event.Actor{}, err
	}

	return event.Actor{ID: id, Role: role}, nil
}

func queryTime(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, errs.NewValueIsRequiredError(name)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return t, nil
}
