// Package realtime fans order events out to connected WebSocket clients.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"easesupply/config"
	"easesupply/internal/domain/service"

	"github.com/gorilla/websocket"
)

const (
	// writeWait is the deadline for a single write to a client.
	writeWait = 10 * time.Second

	// pongWait is how long a client may stay silent before being dropped.
	pongWait = 60 * time.Second

	// pingPeriod must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10

	defaultClientBuffer  = 16
	defaultPublishBuffer = 256
)

// publication is one serialized event addressed to a topic.
type publication struct {
	topic   string
	payload []byte
}

// Hub routes published events to the clients subscribed to each topic.
// Delivery is at-most-once: clients connected at publish time receive the
// event, everyone else misses it, and a slow client's event is dropped
// rather than blocking the hub.
type Hub struct {
	logger *slog.Logger

	clientBuffer int

	register   chan *Client
	unregister chan *Client
	publish    chan publication
	done       chan struct{}

	// topics is owned by the run loop; no lock needed.
	topics map[string]map[*Client]struct{}
}

// NewHub is the constructor for Hub. Run must be started before any
// subscription or publish is useful.
func NewHub(cfg *config.Config, logger *slog.Logger) *Hub {
	clientBuffer := defaultClientBuffer
	publishBuffer := defaultPublishBuffer
	if cfg.Realtime != nil {
		if cfg.Realtime.ClientBuffer > 0 {
			clientBuffer = cfg.Realtime.ClientBuffer
		}
		if cfg.Realtime.PublishBuffer > 0 {
			publishBuffer = cfg.Realtime.PublishBuffer
		}
	}

	return &Hub{
		logger:       logger,
		clientBuffer: clientBuffer,
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		publish:      make(chan publication, publishBuffer),
		done:         make(chan struct{}),
		topics:       make(map[string]map[*Client]struct{}),
	}
}

// Run owns the topic table and serializes all membership changes and
// deliveries. It returns when ctx is cancelled or Close is called.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			for _, topic := range client.topics {
				subscribers, ok := h.topics[topic]
				if !ok {
					subscribers = make(map[*Client]struct{})
					h.topics[topic] = subscribers
				}
				subscribers[client] = struct{}{}
			}

		case client := <-h.unregister:
			h.removeClient(client)

		case pub := <-h.publish:
			for client := range h.topics[pub.topic] {
				select {
				case client.send <- pub.payload:
				default:
					// Client can't keep up; best effort means we drop
					// the event instead of stalling everyone else.
					h.logger.Warn("dropping event for slow client", slog.String("topic", pub.topic))
				}
			}

		case <-ctx.Done():
			h.shutdown()

			return
		case <-h.done:
			h.shutdown()

			return
		}
	}
}

// Close stops the run loop and disconnects every client.
func (h *Hub) Close() {
	select {
	case <-h.done:
	default:
		close(h.done)
	}
}

// Publish implements service.EventNotifier. The event is serialized once and
// handed to the run loop; a full publish queue drops the event.
func (h *Hub) Publish(topic string, event *service.OrderEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to serialize event", slog.Any("error", err))

		return
	}

	select {
	case h.publish <- publication{topic: topic, payload: payload}:
	case <-h.done:
	default:
		h.logger.Warn("publish queue full, dropping event", slog.String("topic", topic))
	}
}

// Subscribe attaches an upgraded connection to the given topics and starts
// its read and write pumps. It returns immediately.
func (h *Hub) Subscribe(conn *websocket.Conn, topics []string) {
	client := &Client{
		hub:    h,
		conn:   conn,
		topics: topics,
		send:   make(chan []byte, h.clientBuffer),
	}

	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.Close()

		return
	}

	go client.writePump()
	go client.readPump()
}

// removeClient drops the client from every topic it joined and closes its
// send queue. Must only be called from the run loop.
func (h *Hub) removeClient(client *Client) {
	for _, topic := range client.topics {
		subscribers, ok := h.topics[topic]
		if !ok {
			continue
		}
		if _, ok := subscribers[client]; !ok {
			continue
		}
		delete(subscribers, client)
		if len(subscribers) == 0 {
			delete(h.topics, topic)
		}
	}
	client.closeSendOnce()
}

// shutdown disconnects all clients. Must only be called from the run loop.
func (h *Hub) shutdown() {
	for _, subscribers := range h.topics {
		for client := range subscribers {
			client.closeSendOnce()
		}
	}
	h.topics = make(map[string]map[*Client]struct{})
}

// Client is one WebSocket connection with its outbound queue.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	topics []string

	send       chan []byte
	sendClosed bool
}

// closeSendOnce closes the outbound queue exactly once. Only the run loop
// touches sendClosed, so no lock is needed.
func (c *Client) closeSendOnce() {
	if c.sendClosed {
		return
	}
	c.sendClosed = true
	close(c.send)
}

// readPump discards inbound frames and watches for disconnects. The protocol
// is server-push only; a client that sends anything other than control
// frames is simply ignored.
func (c *Client) readPump() {
	defer func() {
		c.detach()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump drains the outbound queue and keeps the connection alive with
// periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})

				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// detach asks the run loop to forget this client.
func (c *Client) detach() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
}
