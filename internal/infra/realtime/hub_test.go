package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"easesupply/config"
	"easesupply/internal/domain/entity"
	"easesupply/internal/domain/service"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()

	cfg := &config.Config{
		Realtime: &config.RealtimeConfig{ClientBuffer: 4, PublishBuffer: 16},
	}
	hub := NewHub(cfg, slog.New(slog.NewTextHandler(testWriter{t}, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	return hub, cancel
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSpace(string(p)))

	return len(p), nil
}

func dialTestHub(t *testing.T, hub *Hub, topics []string) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Subscribe(conn, topics)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestHub_DeliversToSubscribedTopic(t *testing.T) {
	hub, cancel := newTestHub(t)
	defer cancel()

	sellerID := uuid.New()
	topic := service.OrderTopic(sellerID)

	conn := dialTestHub(t, hub, []string{topic})

	// Subscription is asynchronous; give the run loop a moment.
	time.Sleep(50 * time.Millisecond)

	event := &service.OrderEvent{
		Event: service.EventOrderNew,
		Order: &entity.Order{
			ID:       uuid.New(),
			SellerID: sellerID,
			Status:   entity.OrderPending,
		},
		SellerID: sellerID,
	}
	hub.Publish(topic, event)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var received service.OrderEvent
	require.NoError(t, json.Unmarshal(payload, &received))
	assert.Equal(t, service.EventOrderNew, received.Event)
	assert.Equal(t, sellerID, received.SellerID)
	assert.Equal(t, event.Order.ID, received.Order.ID)
}

func TestHub_DoesNotLeakAcrossTopics(t *testing.T) {
	hub, cancel := newTestHub(t)
	defer cancel()

	mine := service.OrderTopic(uuid.New())
	theirs := service.OrderTopic(uuid.New())

	conn := dialTestHub(t, hub, []string{mine})
	time.Sleep(50 * time.Millisecond)

	hub.Publish(theirs, &service.OrderEvent{Event: service.EventOrderStatus})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "expected read timeout, event must not cross topics")
}

func TestHub_PublishWithNoSubscribersIsSilent(t *testing.T) {
	hub, cancel := newTestHub(t)
	defer cancel()

	// Nothing subscribed; this must simply be dropped.
	hub.Publish(service.OrderTopic(uuid.New()), &service.OrderEvent{Event: service.EventOrderNew})
}

func TestHub_SubscriberGoneAfterDisconnect(t *testing.T) {
	hub, cancel := newTestHub(t)
	defer cancel()

	topic := service.OrderTopic(uuid.New())
	conn := dialTestHub(t, hub, []string{topic})
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, conn.Close())
	time.Sleep(50 * time.Millisecond)

	// Publishing after disconnect must not panic or block.
	hub.Publish(topic, &service.OrderEvent{Event: service.EventOrderStatus})
}
