package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"easesupply/config"
	"easesupply/internal/delivery"
	"easesupply/internal/delivery/http"
	httpmiddleware "easesupply/internal/delivery/http/middleware"
	"easesupply/internal/delivery/http/router/handler"
	"easesupply/internal/domain/service"
	"easesupply/internal/infra/auth"
	logs "easesupply/internal/infra/log"
	"easesupply/internal/infra/notification"
	"easesupply/internal/infra/persistence/postgres"
	"easesupply/internal/infra/pubsub"
	"easesupply/internal/infra/qrcode"
	"easesupply/internal/infra/realtime"
	"easesupply/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		pubsub.Module,
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewProductRepository,
			postgres.NewOrderRepository,
			postgres.NewDeviceRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			impl.NewOrderPolicy,
			newFirebaseService,
			newQRCodeService,
			newRealtimeHub,
			func(hub *realtime.Hub) service.EventNotifier { return hub },
		),
	)
}

// newRealtimeHub ties the hub's fan-out loop to the application lifecycle.
func newRealtimeHub(lc fx.Lifecycle, ctx context.Context, cfg *config.Config, logger *slog.Logger) *realtime.Hub {
	hub := realtime.NewHub(cfg, logger)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go hub.Run(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			hub.Close()
			return nil
		},
	})

	return hub
}

// newFirebaseService creates the FCM push service. Firebase is optional;
// without credentials order events are realtime-only.
func newFirebaseService(ctx context.Context, cfg *config.Config) (service.PushService, error) {
	if cfg.Firebase == nil {
		return nil, nil
	}

	svc, err := notification.NewFirebaseService(ctx, cfg.Firebase.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firebase service: %w", err)
	}

	return svc, nil
}

// newQRCodeService creates the "scan to order" QR renderer.
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return qrcode.NewQRCodeService(256, "M", "")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewProductService,
			impl.NewOrderService,
			impl.NewDeviceService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			httpmiddleware.NewAuthMiddleware,
			httpmiddleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewProductHandler,
			handler.NewOrderHandler,
			handler.NewDeviceHandler,
			handler.NewEventsHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
