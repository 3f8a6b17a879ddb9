// Package feed streams freshly decoded arcade events to WebSocket clients.
package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"monadArcade/internal/model"
	"monadArcade/internal/observability"
)

// HubConfig configures subscriber buffering and connection keepalive.
type HubConfig struct {
	// Buffer is the number of pending messages a subscriber may hold before it is dropped.
	Buffer       int
	PingInterval time.Duration
	WriteTimeout time.Duration
	ReadTimeout  time.Duration
}

// DefaultHubConfig returns default hub configuration.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		Buffer:       64,
		PingInterval: 30 * time.Second,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  60 * time.Second,
	}
}

// Subscription receives encoded events until it is closed or dropped.
type Subscription struct {
	C    <-chan []byte
	ch   chan []byte
	once sync.Once
}

func (s *Subscription) close() {
	s.once.Do(func() { close(s.ch) })
}

// Hub fans events out to subscribers. A subscriber whose buffer is full is
// dropped instead of blocking the broadcast.
type Hub struct {
	cfg      HubConfig
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewHub(cfg HubConfig, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultHubConfig().Buffer
	}
	return &Hub{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		subs: make(map[*Subscription]struct{}),
	}
}

// Subscribe registers a new subscriber.
func (h *Hub) Subscribe() *Subscription {
	ch := make(chan []byte, h.cfg.Buffer)
	sub := &Subscription{C: ch, ch: ch}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	count := len(h.subs)
	h.mu.Unlock()

	observability.FeedSubscribers.Set(float64(count))
	return sub
}

// Unsubscribe removes sub and closes its channel. It is safe to call twice.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	delete(h.subs, sub)
	count := len(h.subs)
	h.mu.Unlock()

	sub.close()
	observability.FeedSubscribers.Set(float64(count))
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Publish encodes event once and offers it to every subscriber.
func (h *Hub) Publish(ctx context.Context, event model.TypedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	var dropped []*Subscription
	h.mu.Lock()
	for sub := range h.subs {
		select {
		case sub.ch <- payload:
		default:
			dropped = append(dropped, sub)
			delete(h.subs, sub)
		}
	}
	count := len(h.subs)
	h.mu.Unlock()

	for _, sub := range dropped {
		sub.close()
		observability.FeedDropped.Inc()
	}
	if len(dropped) > 0 {
		h.logger.Warn("dropped slow feed subscribers", zap.Int("dropped", len(dropped)))
	}
	observability.FeedSubscribers.Set(float64(count))
	observability.FeedEvents.WithLabelValues(event.EventName).Inc()
	return nil
}

// ServeHTTP upgrades the request to a WebSocket and streams events to it.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("feed upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sub := h.Subscribe()
	defer h.Unsubscribe(sub)

	// Reads only detect the client going away and keep pongs flowing.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(h.readTimeout()))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(h.readTimeout()))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(h.pingInterval())
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case payload, ok := <-sub.C:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(h.writeTimeout()))
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "subscriber too slow"))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(h.writeTimeout()))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(h.writeTimeout()))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) pingInterval() time.Duration {
	if h.cfg.PingInterval > 0 {
		return h.cfg.PingInterval
	}
	return DefaultHubConfig().PingInterval
}

func (h *Hub) writeTimeout() time.Duration {
	if h.cfg.WriteTimeout > 0 {
		return h.cfg.WriteTimeout
	}
	return DefaultHubConfig().WriteTimeout
}

func (h *Hub) readTimeout() time.Duration {
	if h.cfg.ReadTimeout > 0 {
		return h.cfg.ReadTimeout
	}
	return DefaultHubConfig().ReadTimeout
}
