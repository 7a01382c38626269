package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "easesupply/internal/delivery/context"
	"easesupply/internal/domain/entity"
	domainerrors "easesupply/internal/domain/errors"
	"easesupply/internal/domain/repository"
	"easesupply/internal/domain/service"
	"easesupply/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// notifyTimeout bounds the fire-and-forget fan-out after a ledger write.
const notifyTimeout = 10 * time.Second

type orderService struct {
	orderRepo  repository.OrderRepository
	txManager  repository.TransactionManager
	deviceRepo repository.DeviceRepository
	policy     service.OrderPolicy
	notifier   service.EventNotifier
	publisher  service.EventPublisher
	push       service.PushService
	logger     *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	OrderRepo  repository.OrderRepository
	TxManager  repository.TransactionManager
	DeviceRepo repository.DeviceRepository
	Policy     service.OrderPolicy
	Notifier   service.EventNotifier
	Publisher  service.EventPublisher
	Push       service.PushService `optional:"true"`
	Logger     *slog.Logger
}

// NewOrderService creates a new order service instance
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		orderRepo:  params.OrderRepo,
		txManager:  params.TxManager,
		deviceRepo: params.DeviceRepo,
		policy:     params.Policy,
		notifier:   params.Notifier,
		publisher:  params.Publisher,
		push:       params.Push,
		logger:     params.Logger,
	}
}

// Create places an order in the pending state. The product lookup and the
// ledger insert share one transaction so the seller snapshot cannot read a
// product that vanishes before the write.
func (s *orderService) Create(ctx context.Context, actor *entity.User, input *usecase.CreateOrderInput) (*entity.Order, error) {
	buyerID := input.BuyerID
	if buyerID == uuid.Nil && actor != nil {
		buyerID = actor.ID
	}

	if !s.policy.CanCreate(actor, buyerID) {
		return nil, domainerrors.ErrPermissionDenied.WithDetails("only vendors can place their own orders")
	}
	if input.ProductID == uuid.Nil {
		return nil, domainerrors.ErrInvalidArgument.WithDetails("productId is required")
	}

	var order *entity.Order
	err := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		product, err := repos.NewProductRepository().FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to load product for order")
		}

		// Seller is snapshotted here and never resynced; the order keeps
		// recording who sold it even if the product changes hands later.
		order = &entity.Order{
			ProductID: product.ID,
			BuyerID:   buyerID,
			SellerID:  product.SellerID,
			Status:    entity.OrderPending,
		}

		return repos.NewOrderRepository().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.orderRepo.FindByID(ctx, order.ID)
	if err != nil {
		// The write succeeded; fall back to the lean view.
		s.logger.Warn("failed to reload order after create", slog.Any("error", err))
		created = order
	}

	s.fanOut(ctx, service.EventOrderNew, created)

	return created, nil
}

// List returns orders matching the filter, newest first.
func (s *orderService) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// UpdateStatus drives the order through its lifecycle. The status literal is
// rejected before any lookup, authorization comes before the transition
// table, and the write itself is conditional so two racing transitions
// cannot both win.
func (s *orderService) UpdateStatus(ctx context.Context, actor *entity.User, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrInvalidStatus.WithDetails(fmt.Sprintf("unknown status: %s", status))
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to load order")
	}

	if !s.policy.CanTransition(actor, order, status) {
		return nil, domainerrors.ErrPermissionDenied.WithDetails("only the order's seller can change its status")
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, domainerrors.ErrInvalidTransition.WithDetails(
			fmt.Sprintf("cannot move order from %s to %s", order.Status, status))
	}

	applied, err := s.orderRepo.UpdateStatusIf(ctx, orderID, order.Status, status)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Someone else moved the order between our read and write.
		return nil, domainerrors.ErrInvalidTransition.WithDetails("order status changed concurrently")
	}

	updated, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		s.logger.Warn("failed to reload order after status update", slog.Any("error", err))
		order.Status = status
		updated = order
	}

	s.fanOut(ctx, service.EventOrderStatus, updated)

	return updated, nil
}

// fanOut emits the event to connected clients, push devices and the external
// bridge. Strictly best effort: the ledger write already happened and a
// delivery failure is only logged.
func (s *orderService) fanOut(ctx context.Context, eventType string, order *entity.Order) {
	event := &service.OrderEvent{
		Event:     eventType,
		Order:     order,
		SellerID:  order.SellerID,
		BuyerID:   order.BuyerID,
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
	}

	s.notifier.Publish(service.OrderTopic(order.SellerID), event)
	if eventType == service.EventOrderStatus {
		s.notifier.Publish(service.OrderTopic(order.BuyerID), event)
	}

	// Push and external publishing leave the request's lifetime.
	bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	go func() {
		defer cancel()

		if err := s.publisher.PublishOrderEvent(bgCtx, event); err != nil {
			s.logger.Warn("failed to publish order event",
				slog.String("event", eventType),
				slog.Any("error", err),
			)
		}

		s.sendPush(bgCtx, eventType, order)
	}()
}

// sendPush notifies the interested party's registered devices.
func (s *orderService) sendPush(ctx context.Context, eventType string, order *entity.Order) {
	if s.push == nil {
		return
	}

	// New orders wake the seller; status changes wake the buyer.
	recipientID := order.SellerID
	title := "New order received"
	body := "A vendor placed a new order."
	if eventType == service.EventOrderStatus {
		recipientID = order.BuyerID
		title = "Order update"
		body = fmt.Sprintf("Your order is now %s.", order.Status)
	}

	tokens, err := s.deviceRepo.FindActiveTokensByUser(ctx, recipientID)
	if err != nil {
		s.logger.Warn("failed to load push tokens", slog.Any("error", err))

		return
	}
	if len(tokens) == 0 {
		return
	}

	data := map[string]string{
		"event":    eventType,
		"order_id": order.ID.String(),
		"status":   order.Status.String(),
	}

	_, _, invalidTokens, err := s.push.SendBatchNotification(ctx, tokens, title, body, data)
	if err != nil {
		s.logger.Warn("failed to send push notifications", slog.Any("error", err))

		return
	}

	if len(invalidTokens) > 0 {
		if err := s.deviceRepo.DeactivateTokens(ctx, invalidTokens); err != nil {
			s.logger.Warn("failed to deactivate invalid push tokens", slog.Any("error", err))
		}
	}
}
