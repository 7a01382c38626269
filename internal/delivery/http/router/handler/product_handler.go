package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"easesupply/internal/delivery/http/response"
	"easesupply/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	Logger    *slog.Logger
}

// ProductHandler holds dependencies for catalog handlers.
type ProductHandler struct {
	productUC usecase.ProductUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler.
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC: params.ProductUC,
		logger:    params.Logger,
	}
}

// Create adds a catalog item owned by the acting seller.
func (h *ProductHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var input usecase.CreateProductInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "invalid product input")
	}

	product, err := h.productUC.Create(c.Request().Context(), actor, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusCreated, product)
}

// List returns a seller's products, newest first. Without an explicit
// seller query the acting user's own catalog is listed.
func (h *ProductHandler) List(c echo.Context) error {
	sellerID := uuid.Nil
	if raw := c.QueryParam("seller"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "invalid seller id")
		}
		sellerID = parsed
	} else {
		actor, err := actorFrom(c)
		if err != nil {
			return err
		}
		sellerID = actor.ID
	}

	products, err := h.productUC.ListBySeller(c.Request().Context(), sellerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusOK, products)
}

// Nearby returns products within maxDistance meters of (lat, lng), nearest
// first, each joined with seller identity and its distance.
func (h *ProductHandler) Nearby(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return response.BadRequest(c, "lat must be a number")
	}
	lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err != nil {
		return response.BadRequest(c, "lng must be a number")
	}

	// An absent or non-numeric maxDistance falls back to the configured
	// default radius.
	var maxDistance float64
	if raw := c.QueryParam("maxDistance"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			maxDistance = parsed
		}
	}

	products, err := h.productUC.FindNearby(c.Request().Context(), lat, lng, maxDistance)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusOK, products)
}

// Update applies edits to a product owned by the acting seller.
func (h *ProductHandler) Update(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "invalid product id")
	}

	var input usecase.UpdateProductInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "invalid product input")
	}

	product, err := h.productUC.Update(c.Request().Context(), actor, productID, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusOK, product)
}

// Delete removes a product owned by the acting seller.
func (h *ProductHandler) Delete(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "invalid product id")
	}

	if err := h.productUC.Delete(c.Request().Context(), actor, productID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted"})
}

// QRCode renders the product's "scan to order" PNG. Public: the code ends
// up printed on crates and stalls.
func (h *ProductHandler) QRCode(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "invalid product id")
	}

	png, err := h.productUC.QRCode(c.Request().Context(), productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
