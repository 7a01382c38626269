package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"easesupply/internal/delivery/http/middleware"
	"easesupply/internal/delivery/http/validator"
	"easesupply/internal/domain/entity"
	domainerrors "easesupply/internal/domain/errors"
	"easesupply/internal/domain/repository"
	mockusecase "easesupply/internal/mocks/usecase"
	"easesupply/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderContext(t *testing.T, method, body string, actor *entity.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()
	req := httptest.NewRequest(method, "/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(middleware.ContextKeyActor, actor)
	}

	return c, rec
}

func testVendor() *entity.User {
	role := entity.RoleVendor
	return &entity.User{ID: uuid.New(), AccountID: "acct-vendor", Role: &role}
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body["error"]
}

func TestOrderHandler_Create_Created(t *testing.T) {
	orderUC := mockusecase.NewMockOrderUsecase(t)
	h := NewOrderHandler(OrderHandlerParams{OrderUC: orderUC, Logger: slog.Default()})

	actor := testVendor()
	productID := uuid.New()
	order := &entity.Order{ID: uuid.New(), ProductID: productID, BuyerID: actor.ID, Status: entity.OrderPending}

	orderUC.EXPECT().
		Create(mock.Anything, actor, &usecase.CreateOrderInput{ProductID: productID, BuyerID: actor.ID}).
		Return(order, nil)

	body := `{"productId":"` + productID.String() + `","buyerId":"` + actor.ID.String() + `"}`
	c, rec := newOrderContext(t, http.MethodPost, body, actor)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), order.ID.String())
}

func TestOrderHandler_Create_MissingActor(t *testing.T) {
	// No expectations on the mock: failed actor extraction must stop the
	// handler before the usecase is ever reached.
	orderUC := mockusecase.NewMockOrderUsecase(t)
	h := NewOrderHandler(OrderHandlerParams{OrderUC: orderUC, Logger: slog.Default()})

	c, _ := newOrderContext(t, http.MethodPost, `{}`, nil)

	err := h.Create(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
}

func TestOrderHandler_UpdateStatus_StatusCodes(t *testing.T) {
	orderID := uuid.New()

	tests := []struct {
		name     string
		ucErr    error
		wantCode int
	}{
		{name: "invalid transition", ucErr: domainerrors.ErrInvalidTransition, wantCode: http.StatusBadRequest},
		{name: "invalid status literal", ucErr: domainerrors.ErrInvalidStatus, wantCode: http.StatusBadRequest},
		{name: "not the seller", ucErr: domainerrors.ErrPermissionDenied, wantCode: http.StatusForbidden},
		{name: "order missing", ucErr: domainerrors.ErrOrderNotFound, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderUC := mockusecase.NewMockOrderUsecase(t)
			h := NewOrderHandler(OrderHandlerParams{OrderUC: orderUC, Logger: slog.Default()})

			actor := testVendor()
			orderUC.EXPECT().
				UpdateStatus(mock.Anything, actor, orderID, entity.OrderAccepted).
				Return(nil, tt.ucErr)

			body := `{"orderId":"` + orderID.String() + `","status":"accepted"}`
			c, rec := newOrderContext(t, http.MethodPatch, body, actor)

			require.NoError(t, h.UpdateStatus(c))
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.NotEmpty(t, errorBody(t, rec))
		})
	}
}

func TestOrderHandler_UpdateStatus_Success(t *testing.T) {
	orderUC := mockusecase.NewMockOrderUsecase(t)
	h := NewOrderHandler(OrderHandlerParams{OrderUC: orderUC, Logger: slog.Default()})

	actor := testVendor()
	orderID := uuid.New()
	order := &entity.Order{ID: orderID, Status: entity.OrderAccepted}

	orderUC.EXPECT().
		UpdateStatus(mock.Anything, actor, orderID, entity.OrderAccepted).
		Return(order, nil)

	body := `{"orderId":"` + orderID.String() + `","status":"accepted"}`
	c, rec := newOrderContext(t, http.MethodPatch, body, actor)

	require.NoError(t, h.UpdateStatus(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"accepted"`)
}

func TestOrderHandler_UpdateStatus_MissingOrderID(t *testing.T) {
	orderUC := mockusecase.NewMockOrderUsecase(t)
	h := NewOrderHandler(OrderHandlerParams{OrderUC: orderUC, Logger: slog.Default()})

	c, rec := newOrderContext(t, http.MethodPatch, `{"status":"accepted"}`, testVendor())

	require.NoError(t, h.UpdateStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec), "OrderID")
}

func TestOrderHandler_List_ParsesFilters(t *testing.T) {
	orderUC := mockusecase.NewMockOrderUsecase(t)
	h := NewOrderHandler(OrderHandlerParams{OrderUC: orderUC, Logger: slog.Default()})

	actor := testVendor()
	buyerID := uuid.New()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/orders?buyer="+buyerID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyActor, actor)

	orderUC.EXPECT().
		List(mock.Anything, mock.MatchedBy(func(filter repository.OrderFilter) bool {
			return filter.BuyerID != nil && *filter.BuyerID == buyerID && filter.SellerID == nil
		})).
		Return([]*entity.Order{}, nil)

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
