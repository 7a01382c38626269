package handler

import (
	"log/slog"
	"net/http"

	"easesupply/internal/delivery/http/response"
	"easesupply/internal/domain/entity"
	"easesupply/internal/domain/repository"
	"easesupply/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler holds dependencies for order-ledger handlers.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// Create places a pending order for the acting buyer.
func (h *OrderHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var input usecase.CreateOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "invalid order input")
	}

	order, err := h.orderUC.Create(c.Request().Context(), actor, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusCreated, order)
}

// List returns orders matching the buyer/seller query filters.
func (h *OrderHandler) List(c echo.Context) error {
	var filter repository.OrderFilter

	if raw := c.QueryParam("buyer"); raw != "" {
		buyerID, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "invalid buyer id")
		}
		filter.BuyerID = &buyerID
	}
	if raw := c.QueryParam("seller"); raw != "" {
		sellerID, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "invalid seller id")
		}
		filter.SellerID = &sellerID
	}

	orders, err := h.orderUC.List(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusOK, orders)
}

// UpdateStatusRequest is the body of an order transition call.
type UpdateStatusRequest struct {
	OrderID uuid.UUID `json:"orderId" validate:"required"`
	Status  string    `json:"status" validate:"required"`
}

// UpdateStatus applies a lifecycle transition driven by the order's seller.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	order, err := h.orderUC.UpdateStatus(c.Request().Context(), actor, req.OrderID, entity.OrderStatus(req.Status))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}
