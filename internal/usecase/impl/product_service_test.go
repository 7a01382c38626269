package impl

import (
	"context"
	"testing"

	"easesupply/config"
	"easesupply/internal/domain/entity"
	domainerrors "easesupply/internal/domain/errors"
	"easesupply/internal/domain/repository"
	mockRepo "easesupply/internal/mocks/repository"
	mockSvc "easesupply/internal/mocks/service"
	"easesupply/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type productServiceFixture struct {
	productRepo *mockRepo.MockProductRepository
	qrService   *mockSvc.MockQRCodeService
	service     usecase.ProductUsecase
}

func newProductServiceFixture(t *testing.T) *productServiceFixture {
	t.Helper()

	cfg := &config.Config{
		Marketplace: &config.MarketplaceConfig{
			DefaultRadiusMeters: 5000,
			MaxRadiusMeters:     50000,
			MaxImageBytes:       1 << 20,
		},
	}

	fx := &productServiceFixture{
		productRepo: mockRepo.NewMockProductRepository(t),
		qrService:   mockSvc.NewMockQRCodeService(t),
	}
	fx.service = NewProductService(ProductServiceParams{
		ProductRepo:   fx.productRepo,
		QRCodeService: fx.qrService,
		Config:        cfg,
	})

	return fx
}

func TestProductService_Create_Success(t *testing.T) {
	fx := newProductServiceFixture(t)
	ctx := context.Background()
	seller := distributorActor()

	fx.productRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Product")).
		Run(func(_ context.Context, product *entity.Product) {
			product.ID = uuid.New()
		}).
		Return(nil)

	product, err := fx.service.Create(ctx, seller, &usecase.CreateProductInput{
		Name:     "Onions 25kg",
		Price:    18.00,
		Location: entity.NewGeoPoint(72.8777, 19.0760),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, seller.ID, product.SellerID, "seller is always the actor")
}

func TestProductService_Create_VendorForbidden(t *testing.T) {
	fx := newProductServiceFixture(t)

	_, err := fx.service.Create(context.Background(), vendorActor(), &usecase.CreateProductInput{
		Name:     "Onions 25kg",
		Price:    18.00,
		Location: entity.NewGeoPoint(72.8777, 19.0760),
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.HTTPCode())
}

func TestProductService_Create_InvalidInput(t *testing.T) {
	fx := newProductServiceFixture(t)
	seller := distributorActor()

	tests := []struct {
		name  string
		input usecase.CreateProductInput
	}{
		{"empty name", usecase.CreateProductInput{Price: 10, Location: entity.NewGeoPoint(72, 19)}},
		{"zero price", usecase.CreateProductInput{Name: "Potatoes", Price: 0, Location: entity.NewGeoPoint(72, 19)}},
		{"negative price", usecase.CreateProductInput{Name: "Potatoes", Price: -5, Location: entity.NewGeoPoint(72, 19)}},
		{"longitude out of range", usecase.CreateProductInput{Name: "Potatoes", Price: 10, Location: entity.NewGeoPoint(181, 19)}},
		{"latitude out of range", usecase.CreateProductInput{Name: "Potatoes", Price: 10, Location: entity.NewGeoPoint(72, -91)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.service.Create(context.Background(), seller, &tt.input)
			require.Error(t, err)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, 400, appErr.HTTPCode())
		})
	}
}

func TestProductService_FindNearby_DefaultRadius(t *testing.T) {
	fx := newProductServiceFixture(t)
	ctx := context.Background()

	fx.productRepo.EXPECT().
		FindNearby(ctx, 19.0760, 72.8777, 5000.0).
		Return([]*entity.NearbyProduct{}, nil)

	results, err := fx.service.FindNearby(ctx, 19.0760, 72.8777, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestProductService_FindNearby_RadiusClampedToMax(t *testing.T) {
	fx := newProductServiceFixture(t)
	ctx := context.Background()

	fx.productRepo.EXPECT().
		FindNearby(ctx, 19.0760, 72.8777, 50000.0).
		Return([]*entity.NearbyProduct{}, nil)

	_, err := fx.service.FindNearby(ctx, 19.0760, 72.8777, 900000)
	require.NoError(t, err)
}

func TestProductService_FindNearby_InvalidCoordinates(t *testing.T) {
	fx := newProductServiceFixture(t)

	_, err := fx.service.FindNearby(context.Background(), 95, 72.8777, 1000)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_COORDINATES", appErr.ErrorCode())
}

func TestProductService_FindNearby_ResultsCarryDistanceAndSeller(t *testing.T) {
	fx := newProductServiceFixture(t)
	ctx := context.Background()
	sellerID := uuid.New()

	nearby := []*entity.NearbyProduct{
		{
			Product: entity.Product{
				ID:       uuid.New(),
				Name:     "Tomatoes 10kg",
				Price:    12.50,
				SellerID: sellerID,
				Location: entity.NewGeoPoint(72.8800, 19.0800),
			},
			Distance:   734.2,
			SellerInfo: &entity.UserSummary{ID: sellerID, FirstName: "Ramesh", LastName: "Patel"},
		},
	}
	fx.productRepo.EXPECT().FindNearby(ctx, 19.0760, 72.8777, 2000.0).Return(nearby, nil)

	results, err := fx.service.FindNearby(ctx, 19.0760, 72.8777, 2000)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 734.2, results[0].Distance, 1e-9)
	require.NotNil(t, results[0].SellerInfo)
	assert.Equal(t, sellerID, results[0].SellerInfo.ID)
}

func TestProductService_Update_OnlyOwnerCanEdit(t *testing.T) {
	fx := newProductServiceFixture(t)
	ctx := context.Background()
	owner := distributorActor()
	intruder := distributorActor()
	productID := uuid.New()

	product := &entity.Product{
		ID:       productID,
		Name:     "Tomatoes 10kg",
		Price:    12.50,
		SellerID: owner.ID,
		Location: entity.NewGeoPoint(72.8777, 19.0760),
	}
	fx.productRepo.EXPECT().FindByID(ctx, productID).Return(product, nil)

	newPrice := 99.0
	_, err := fx.service.Update(ctx, intruder, productID, &usecase.UpdateProductInput{Price: &newPrice})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.HTTPCode())
}

func TestProductService_Delete_NotFound(t *testing.T) {
	fx := newProductServiceFixture(t)
	ctx := context.Background()
	productID := uuid.New()

	fx.productRepo.EXPECT().FindByID(ctx, productID).Return(nil, repository.ErrProductNotFound)

	err := fx.service.Delete(ctx, distributorActor(), productID)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode())
}

func TestProductService_QRCode_Success(t *testing.T) {
	fx := newProductServiceFixture(t)
	ctx := context.Background()
	productID := uuid.New()

	product := &entity.Product{
		ID:       productID,
		Name:     "Tomatoes 10kg",
		Price:    12.50,
		SellerID: uuid.New(),
		Location: entity.NewGeoPoint(72.8777, 19.0760),
	}
	png := []byte{0x89, 0x50, 0x4E, 0x47}

	fx.productRepo.EXPECT().FindByID(ctx, productID).Return(product, nil)
	fx.qrService.EXPECT().GenerateProductQRCode(productID.String()).Return(png, nil)

	got, err := fx.service.QRCode(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, png, got)
}

func TestProductService_QRCode_ProductNotFound(t *testing.T) {
	fx := newProductServiceFixture(t)
	ctx := context.Background()
	productID := uuid.New()

	fx.productRepo.EXPECT().FindByID(ctx, productID).Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.QRCode(ctx, productID)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode())
}
