// Package handler contains the HTTP handlers for the application.
package handler

import (
	"easesupply/internal/delivery/http/middleware"
	"easesupply/internal/domain/entity"
	domainerrors "easesupply/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// accountIDFrom extracts the authenticated account id set by the auth
// middleware. The returned error is a real sentinel so callers stop and the
// central error handler writes the 401.
func accountIDFrom(c echo.Context) (string, error) {
	accountID, ok := c.Get(middleware.ContextKeyAccountID).(string)
	if !ok || accountID == "" {
		return "", domainerrors.ErrUnauthorized.WrapMessage("account id missing from context")
	}

	return accountID, nil
}

// actorFrom extracts the acting user resolved by the auth middleware.
func actorFrom(c echo.Context) (*entity.User, error) {
	actor, ok := c.Get(middleware.ContextKeyActor).(*entity.User)
	if !ok || actor == nil {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("acting user missing from context")
	}

	return actor, nil
}
