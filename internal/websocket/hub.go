// Package websocket is the client transport: one read and one write pump per
// connection, and a hub that routes outbound messages by connection id.
package websocket

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Hub tracks the live connections. It implements the orchestrator's Sender.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		logger:  logger.Named("hub"),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	h.logger.Debug("client registered", zap.String("conn", c.id), zap.Int("clients", len(h.clients)))
}

// unregister drops c and closes its send channel, which stops its write pump.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.id] != c {
		return
	}
	delete(h.clients, c.id)
	close(c.send)
	h.logger.Debug("client unregistered", zap.String("conn", c.id), zap.Int("clients", len(h.clients)))
}

// Send queues v, JSON encoded, for connId. It never blocks: messages for
// unknown connections are dropped, as are messages that do not fit in a
// client's buffer.
func (h *Hub) Send(connId string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("encoding message", zap.String("conn", connId), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	c, ok := h.clients[connId]
	if !ok {
		return
	}
	select {
	case c.send <- data:
	default:
		h.logger.Warn("send buffer full, dropping message", zap.String("conn", connId))
	}
}

// Len returns the number of live connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
