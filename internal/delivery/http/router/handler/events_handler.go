package handler

import (
	"log/slog"
	"net/http"

	"easesupply/internal/domain/service"
	"easesupply/internal/infra/realtime"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// EventsHandlerParams holds dependencies for EventsHandler, injected by Fx.
type EventsHandlerParams struct {
	fx.In

	Hub    *realtime.Hub
	Logger *slog.Logger
}

// EventsHandler upgrades authenticated requests to WebSocket subscriptions
// on the account's own order topic.
type EventsHandler struct {
	hub      *realtime.Hub
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewEventsHandler is the constructor for EventsHandler.
func NewEventsHandler(params EventsHandlerParams) *EventsHandler {
	return &EventsHandler{
		hub:    params.Hub,
		logger: params.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Clients are mobile apps and stall tablets, not browsers.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Subscribe upgrades the connection and attaches it to the acting user's
// order topic. The subscription lives until the client disconnects.
func (h *EventsHandler) Subscribe(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the failure response.
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return nil
	}

	h.hub.Subscribe(conn, []string{service.OrderTopic(actor.ID)})

	return nil
}
