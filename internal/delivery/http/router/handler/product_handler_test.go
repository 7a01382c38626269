package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"easesupply/internal/delivery/http/middleware"
	"easesupply/internal/domain/entity"
	domainerrors "easesupply/internal/domain/errors"
	mockusecase "easesupply/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testDistributor() *entity.User {
	role := entity.RoleDistributor
	return &entity.User{ID: uuid.New(), AccountID: "acct-distributor", Role: &role}
}

func newProductContext(t *testing.T, target string, actor *entity.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(middleware.ContextKeyActor, actor)
	}

	return c, rec
}

func TestProductHandler_Nearby_NonNumericMaxDistanceFallsBack(t *testing.T) {
	productUC := mockusecase.NewMockProductUsecase(t)
	h := NewProductHandler(ProductHandlerParams{ProductUC: productUC, Logger: slog.Default()})

	// maxDistance noise is ignored; zero reaches the usecase, which applies
	// the configured default radius.
	productUC.EXPECT().
		FindNearby(mock.Anything, 19.0760, 72.8777, 0.0).
		Return([]*entity.NearbyProduct{}, nil)

	c, rec := newProductContext(t, "/products/nearby?lat=19.0760&lng=72.8777&maxDistance=bogus", nil)

	require.NoError(t, h.Nearby(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductHandler_Nearby_RejectsBadCoordinates(t *testing.T) {
	productUC := mockusecase.NewMockProductUsecase(t)
	h := NewProductHandler(ProductHandlerParams{ProductUC: productUC, Logger: slog.Default()})

	c, rec := newProductContext(t, "/products/nearby?lat=north&lng=72.8777", nil)

	require.NoError(t, h.Nearby(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_List_MissingActor(t *testing.T) {
	// Listing without an explicit seller falls back to the acting user, so
	// failed actor extraction must surface as an error before the usecase
	// is reached.
	productUC := mockusecase.NewMockProductUsecase(t)
	h := NewProductHandler(ProductHandlerParams{ProductUC: productUC, Logger: slog.Default()})

	c, _ := newProductContext(t, "/products", nil)

	err := h.List(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
}

func TestProductHandler_Delete_ReturnsMessageBody(t *testing.T) {
	productUC := mockusecase.NewMockProductUsecase(t)
	h := NewProductHandler(ProductHandlerParams{ProductUC: productUC, Logger: slog.Default()})

	actor := testDistributor()
	productID := uuid.New()

	productUC.EXPECT().
		Delete(mock.Anything, actor, productID).
		Return(nil)

	c, rec := newProductContext(t, "/products/"+productID.String(), actor)
	c.SetParamNames("id")
	c.SetParamValues(productID.String())

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Product deleted"}`, rec.Body.String())
}
