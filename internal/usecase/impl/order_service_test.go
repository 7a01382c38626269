package impl

import (
	"context"
	"log/slog"
	"testing"

	"easesupply/internal/domain/entity"
	domainerrors "easesupply/internal/domain/errors"
	"easesupply/internal/domain/repository"
	"easesupply/internal/domain/service"
	mockRepo "easesupply/internal/mocks/repository"
	mockSvc "easesupply/internal/mocks/service"
	"easesupply/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderServiceFixture struct {
	orderRepo  *mockRepo.MockOrderRepository
	txManager  *mockRepo.MockTransactionManager
	deviceRepo *mockRepo.MockDeviceRepository
	notifier   *mockSvc.MockEventNotifier
	publisher  *mockSvc.MockEventPublisher
	service    usecase.OrderUsecase
}

func newOrderServiceFixture(t *testing.T) *orderServiceFixture {
	t.Helper()

	fx := &orderServiceFixture{
		orderRepo:  mockRepo.NewMockOrderRepository(t),
		txManager:  mockRepo.NewMockTransactionManager(t),
		deviceRepo: mockRepo.NewMockDeviceRepository(t),
		notifier:   mockSvc.NewMockEventNotifier(t),
		publisher:  mockSvc.NewMockEventPublisher(t),
	}
	fx.service = NewOrderService(OrderServiceParams{
		OrderRepo:  fx.orderRepo,
		TxManager:  fx.txManager,
		DeviceRepo: fx.deviceRepo,
		Policy:     NewOrderPolicy(),
		Notifier:   fx.notifier,
		Publisher:  fx.publisher,
		Logger:     slog.Default(),
	})

	return fx
}

func vendorActor() *entity.User {
	role := entity.RoleVendor
	return &entity.User{ID: uuid.New(), AccountID: "vendor-acct", Role: &role}
}

func distributorActor() *entity.User {
	role := entity.RoleDistributor
	return &entity.User{ID: uuid.New(), AccountID: "distributor-acct", Role: &role}
}

// allowAsyncFanOut tolerates the background publish that follows a
// successful ledger write.
func (fx *orderServiceFixture) allowAsyncFanOut() {
	fx.publisher.EXPECT().
		PublishOrderEvent(mock.Anything, mock.Anything).
		Return(nil).
		Maybe()
}

func TestOrderService_Create_Success(t *testing.T) {
	fx := newOrderServiceFixture(t)
	ctx := context.Background()
	actor := vendorActor()
	seller := distributorActor()

	productID := uuid.New()
	orderID := uuid.New()
	product := &entity.Product{
		ID:       productID,
		Name:     "Tomatoes 10kg",
		Price:    12.50,
		SellerID: seller.ID,
		Location: entity.NewGeoPoint(72.8777, 19.0760),
	}

	txProductRepo := mockRepo.NewMockProductRepository(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().NewProductRepository().Return(txProductRepo)
	factory.EXPECT().NewOrderRepository().Return(txOrderRepo)

	txProductRepo.EXPECT().FindByID(ctx, productID).Return(product, nil)
	txOrderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(_ context.Context, order *entity.Order) {
			order.ID = orderID
		}).
		Return(nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})

	enriched := &entity.Order{
		ID:        orderID,
		ProductID: productID,
		BuyerID:   actor.ID,
		SellerID:  seller.ID,
		Status:    entity.OrderPending,
		Product:   product,
	}
	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(enriched, nil)

	fx.notifier.EXPECT().Publish(service.OrderTopic(seller.ID), mock.AnythingOfType("*service.OrderEvent"))
	fx.allowAsyncFanOut()

	order, err := fx.service.Create(ctx, actor, &usecase.CreateOrderInput{ProductID: productID})
	require.NoError(t, err)
	assert.Equal(t, orderID, order.ID)
	assert.Equal(t, entity.OrderPending, order.Status)
	assert.Equal(t, actor.ID, order.BuyerID)
	assert.Equal(t, seller.ID, order.SellerID, "seller must be snapshotted from the product")
}

func TestOrderService_Create_DistributorCannotBuy(t *testing.T) {
	fx := newOrderServiceFixture(t)
	actor := distributorActor()

	_, err := fx.service.Create(context.Background(), actor, &usecase.CreateOrderInput{ProductID: uuid.New()})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.HTTPCode())
}

func TestOrderService_Create_CannotBuyForSomeoneElse(t *testing.T) {
	fx := newOrderServiceFixture(t)
	actor := vendorActor()

	_, err := fx.service.Create(context.Background(), actor, &usecase.CreateOrderInput{
		ProductID: uuid.New(),
		BuyerID:   uuid.New(), // not the actor
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.HTTPCode())
}

func TestOrderService_Create_ProductNotFound(t *testing.T) {
	fx := newOrderServiceFixture(t)
	ctx := context.Background()
	actor := vendorActor()
	productID := uuid.New()

	txProductRepo := mockRepo.NewMockProductRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().NewProductRepository().Return(txProductRepo)
	txProductRepo.EXPECT().FindByID(ctx, productID).Return(nil, repository.ErrProductNotFound)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})

	_, err := fx.service.Create(ctx, actor, &usecase.CreateOrderInput{ProductID: productID})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode())
}

func TestOrderService_UpdateStatus_SellerAccepts(t *testing.T) {
	fx := newOrderServiceFixture(t)
	ctx := context.Background()
	seller := distributorActor()
	orderID := uuid.New()

	pending := &entity.Order{
		ID:       orderID,
		BuyerID:  uuid.New(),
		SellerID: seller.ID,
		Status:   entity.OrderPending,
	}
	accepted := &entity.Order{
		ID:       orderID,
		BuyerID:  pending.BuyerID,
		SellerID: seller.ID,
		Status:   entity.OrderAccepted,
	}

	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(pending, nil).Once()
	fx.orderRepo.EXPECT().
		UpdateStatusIf(ctx, orderID, entity.OrderPending, entity.OrderAccepted).
		Return(true, nil)
	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(accepted, nil).Once()

	fx.notifier.EXPECT().Publish(service.OrderTopic(seller.ID), mock.AnythingOfType("*service.OrderEvent"))
	fx.notifier.EXPECT().Publish(service.OrderTopic(pending.BuyerID), mock.AnythingOfType("*service.OrderEvent"))
	fx.allowAsyncFanOut()

	order, err := fx.service.UpdateStatus(ctx, seller, orderID, entity.OrderAccepted)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderAccepted, order.Status)
}

func TestOrderService_UpdateStatus_InvalidLiteralRejectedBeforeLookup(t *testing.T) {
	fx := newOrderServiceFixture(t)

	// No repository expectations: a bad literal must fail before any lookup.
	_, err := fx.service.UpdateStatus(context.Background(), distributorActor(), uuid.New(), entity.OrderStatus("shipped"))
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode())
	assert.Equal(t, "INVALID_STATUS", appErr.ErrorCode())
}

func TestOrderService_UpdateStatus_BuyerCannotTransition(t *testing.T) {
	fx := newOrderServiceFixture(t)
	ctx := context.Background()
	buyer := vendorActor()
	orderID := uuid.New()

	order := &entity.Order{
		ID:       orderID,
		BuyerID:  buyer.ID,
		SellerID: uuid.New(),
		Status:   entity.OrderPending,
	}
	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(order, nil)

	_, err := fx.service.UpdateStatus(ctx, buyer, orderID, entity.OrderAccepted)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.HTTPCode())
}

func TestOrderService_UpdateStatus_PermissionCheckedBeforeTransitionTable(t *testing.T) {
	fx := newOrderServiceFixture(t)
	ctx := context.Background()
	stranger := distributorActor()
	orderID := uuid.New()

	// Completed is terminal, but a non-seller must still get 403, not 400.
	order := &entity.Order{
		ID:       orderID,
		BuyerID:  uuid.New(),
		SellerID: uuid.New(),
		Status:   entity.OrderCompleted,
	}
	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(order, nil)

	_, err := fx.service.UpdateStatus(ctx, stranger, orderID, entity.OrderAccepted)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.HTTPCode())
}

func TestOrderService_UpdateStatus_TransitionTable(t *testing.T) {
	tests := []struct {
		name string
		from entity.OrderStatus
		to   entity.OrderStatus
		ok   bool
	}{
		{"pending to accepted", entity.OrderPending, entity.OrderAccepted, true},
		{"pending to rejected", entity.OrderPending, entity.OrderRejected, true},
		{"pending to completed", entity.OrderPending, entity.OrderCompleted, false},
		{"accepted to completed", entity.OrderAccepted, entity.OrderCompleted, true},
		{"accepted to rejected", entity.OrderAccepted, entity.OrderRejected, false},
		{"rejected is terminal", entity.OrderRejected, entity.OrderAccepted, false},
		{"completed is terminal", entity.OrderCompleted, entity.OrderPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newOrderServiceFixture(t)
			ctx := context.Background()
			seller := distributorActor()
			orderID := uuid.New()

			order := &entity.Order{
				ID:       orderID,
				BuyerID:  uuid.New(),
				SellerID: seller.ID,
				Status:   tt.from,
			}
			fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(order, nil).Once()

			if tt.ok {
				updated := &entity.Order{
					ID:       orderID,
					BuyerID:  order.BuyerID,
					SellerID: seller.ID,
					Status:   tt.to,
				}
				fx.orderRepo.EXPECT().UpdateStatusIf(ctx, orderID, tt.from, tt.to).Return(true, nil)
				fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(updated, nil).Once()
				fx.notifier.EXPECT().Publish(mock.AnythingOfType("string"), mock.AnythingOfType("*service.OrderEvent")).Times(2)
				fx.allowAsyncFanOut()
			}

			result, err := fx.service.UpdateStatus(ctx, seller, orderID, tt.to)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, result.Status)
			} else {
				require.Error(t, err)

				var appErr domainerrors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, "INVALID_TRANSITION", appErr.ErrorCode())
			}
		})
	}
}

func TestOrderService_UpdateStatus_ConcurrentTransitionLosesCleanly(t *testing.T) {
	fx := newOrderServiceFixture(t)
	ctx := context.Background()
	seller := distributorActor()
	orderID := uuid.New()

	order := &entity.Order{
		ID:       orderID,
		BuyerID:  uuid.New(),
		SellerID: seller.ID,
		Status:   entity.OrderPending,
	}
	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(order, nil)
	fx.orderRepo.EXPECT().
		UpdateStatusIf(ctx, orderID, entity.OrderPending, entity.OrderAccepted).
		Return(false, nil)

	_, err := fx.service.UpdateStatus(ctx, seller, orderID, entity.OrderAccepted)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_TRANSITION", appErr.ErrorCode())
}

func TestOrderService_UpdateStatus_OrderNotFound(t *testing.T) {
	fx := newOrderServiceFixture(t)
	ctx := context.Background()
	orderID := uuid.New()

	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(nil, repository.ErrOrderNotFound)

	_, err := fx.service.UpdateStatus(ctx, distributorActor(), orderID, entity.OrderAccepted)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode())
}

func TestOrderService_List_FiltersPassThrough(t *testing.T) {
	fx := newOrderServiceFixture(t)
	ctx := context.Background()
	buyerID := uuid.New()

	filter := repository.OrderFilter{BuyerID: &buyerID}
	expected := []*entity.Order{{ID: uuid.New(), BuyerID: buyerID, Status: entity.OrderPending}}
	fx.orderRepo.EXPECT().List(ctx, filter).Return(expected, nil)

	orders, err := fx.service.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, expected, orders)
}
