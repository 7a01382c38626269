package handler

import (
	"log/slog"
	"net/http"

	"easesupply/internal/delivery/http/response"
	"easesupply/internal/domain/entity"
	"easesupply/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler holds dependencies for user-directory handlers.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// Register handles the directory registration made after first sign-in with
// the identity provider. The account id always comes from the verified
// token, never from the request body.
func (h *UserHandler) Register(c echo.Context) error {
	accountID, err := accountIDFrom(c)
	if err != nil {
		return err
	}

	var input usecase.RegisterUserInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "invalid registration input")
	}
	input.AccountID = accountID

	user, err := h.userUC.Register(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

// SelectRoleRequest is the body of the one-time role selection call.
type SelectRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// SelectRole sets the account's marketplace role exactly once.
func (h *UserHandler) SelectRole(c echo.Context) error {
	accountID, err := accountIDFrom(c)
	if err != nil {
		return err
	}

	var req SelectRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid role input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.userUC.SelectRole(c.Request().Context(), accountID, entity.Role(req.Role))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// Me resolves the authenticated account's own directory entry.
func (h *UserHandler) Me(c echo.Context) error {
	accountID, err := accountIDFrom(c)
	if err != nil {
		return err
	}

	user, err := h.userUC.GetByAccountID(c.Request().Context(), accountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// List returns all users in the directory.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userUC.List(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusOK, users)
}

// Get returns the directory entry for the account id in the path.
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userUC.GetByAccountID(c.Request().Context(), c.Param("accountId"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// Update applies profile edits. Accounts can only edit themselves.
func (h *UserHandler) Update(c echo.Context) error {
	accountID, err := accountIDFrom(c)
	if err != nil {
		return err
	}
	if c.Param("accountId") != accountID {
		return response.Forbidden(c, "cannot edit another account's profile")
	}

	var input usecase.UpdateUserInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "invalid profile input")
	}

	user, err := h.userUC.Update(c.Request().Context(), accountID, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// Delete removes the account's own directory entry.
func (h *UserHandler) Delete(c echo.Context) error {
	accountID, err := accountIDFrom(c)
	if err != nil {
		return err
	}
	if c.Param("accountId") != accountID {
		return response.Forbidden(c, "cannot delete another account")
	}

	if err := h.userUC.Delete(c.Request().Context(), accountID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
