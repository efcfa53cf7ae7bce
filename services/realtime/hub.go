package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"barberqueue/monitoring"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	hubWriteTimeout = 5 * time.Second
	hubSendBuffer   = 16
)

// Hub delivers events to websocket clients subscribed to a provider channel.
// A slow client whose buffer is full misses the event instead of stalling
// the publisher.
type Hub struct {
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu   sync.RWMutex
	subs map[string]map[*hubClient]struct{}
}

type hubClient struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Mobile clients send no Origin; browser origins are filtered by CORS upstream.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		subs: make(map[string]map[*hubClient]struct{}),
	}
}

func (h *Hub) Publish(_ context.Context, channel, event string, payload any) error {
	data, err := json.Marshal(Envelope{Channel: channel, Event: event, Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event, err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.subs[channel] {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("Dropping event for slow websocket client", zap.String("channel", channel))
		}
	}
	return nil
}

// Subscribers returns the number of open connections on channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[channel])
}

// ServeWS upgrades the request and streams channel events until the client
// disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, channel string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", zap.String("channel", channel), zap.Error(err))
		return
	}

	c := &hubClient{conn: conn, send: make(chan []byte, hubSendBuffer)}
	h.register(channel, c)
	defer h.unregister(channel, c)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(hubWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (h *Hub) register(channel string, c *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[channel] == nil {
		h.subs[channel] = make(map[*hubClient]struct{})
	}
	h.subs[channel][c] = struct{}{}
	monitoring.SetSubscribers(h.countLocked())
}

func (h *Hub) unregister(channel string, c *hubClient) {
	h.mu.Lock()
	if _, ok := h.subs[channel][c]; ok {
		delete(h.subs[channel], c)
		if len(h.subs[channel]) == 0 {
			delete(h.subs, channel)
		}
	}
	monitoring.SetSubscribers(h.countLocked())
	h.mu.Unlock()

	_ = c.conn.Close()
}

func (h *Hub) countLocked() int {
	n := 0
	for _, set := range h.subs {
		n += len(set)
	}
	return n
}
