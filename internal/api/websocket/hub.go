package websocket

import (
	"encoding/json"
	"sync"

	"github.com/KevinKickass/OpenFleetCore/internal/types"
	"go.uber.org/zap"
)

// Hub maintains active WebSocket clients and broadcasts messages
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Inbound messages to broadcast
	broadcast chan Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	mu     sync.RWMutex
	logger *zap.Logger

	done     chan struct{}
	stopOnce sync.Once
}

// NewHub creates a new Hub instance
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main event loop. It returns after Stop.
func (h *Hub) Run() {
	h.logger.Info("WebSocket hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("WebSocket client registered",
				zap.String("remote_addr", client.remoteAddr()),
				zap.Int("total_clients", total))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Info("WebSocket client unregistered",
					zap.String("remote_addr", client.remoteAddr()),
					zap.Int("total_clients", len(h.clients)))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				h.logger.Error("Failed to marshal broadcast message", zap.Error(err))
				continue
			}

			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Slow or dead client
					close(client.send)
					delete(h.clients, client)
					h.logger.Warn("Client send buffer full, unregistering",
						zap.String("remote_addr", client.remoteAddr()))
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("WebSocket hub stopped")
			return
		}
	}
}

// Stop disconnects every client and ends Run. Safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
}

// Publish forwards a fleet event to all clients.
func (h *Hub) Publish(event types.Event) {
	h.Broadcast(NewEventMessage(event))
}

// Broadcast sends a message to all connected clients
func (h *Hub) Broadcast(msg Message) {
	select {
	case <-h.done:
		return
	default:
	}

	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("Hub broadcast channel full, message dropped",
			zap.String("message_type", string(msg.Type)))
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) removeClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
