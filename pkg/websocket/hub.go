package websocket

import (
	"sync"

	"kaamsaathi-backend/pkg/logger"

	"go.uber.org/zap"
)

// Client represents a WebSocket client connection belonging to a partner
// watching one worker profile's bookings
type Client struct {
	ID       string
	WorkerID string
	UserID   string
	Send     chan []byte
	Hub      *Hub
	Conn     *Connection
}

// Hub maintains active clients and broadcasts booking events
type Hub struct {
	// Registered clients by worker id
	clients map[string]map[*Client]bool

	broadcast  chan *BroadcastMessage
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

// BroadcastMessage represents a message to broadcast to one worker's clients
type BroadcastMessage struct {
	WorkerID string      `json:"-"` // routing only, not part of the wire message
	Type     string      `json:"type"`
	Payload  interface{} `json:"payload"`
}

// Global Hub instance
var GlobalHub *Hub

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *BroadcastMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the Hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.WorkerID] == nil {
				h.clients[client.WorkerID] = make(map[*Client]bool)
			}
			h.clients[client.WorkerID][client] = true
			total := len(h.clients[client.WorkerID])
			h.mu.Unlock()
			logger.Info("🔌 WebSocket client registered",
				zap.String("worker_id", client.WorkerID),
				zap.Int("total", total),
			)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.WorkerID]; ok {
				if _, ok := h.clients[client.WorkerID][client]; ok {
					delete(h.clients[client.WorkerID], client)
					close(client.Send)
					if len(h.clients[client.WorkerID]) == 0 {
						delete(h.clients, client.WorkerID)
					}
				}
			}
			h.mu.Unlock()
			logger.Info("🔌 WebSocket client unregistered",
				zap.String("worker_id", client.WorkerID),
			)

		case message := <-h.broadcast:
			h.mu.RLock()
			clients := h.clients[message.WorkerID]
			h.mu.RUnlock()

			if clients != nil {
				for client := range clients {
					select {
					case client.Send <- message.ToJSON():
					default:
						h.mu.Lock()
						close(client.Send)
						delete(h.clients[message.WorkerID], client)
						h.mu.Unlock()
					}
				}
				logger.Debug("📡 WebSocket broadcast",
					zap.String("type", message.Type),
					zap.String("worker_id", message.WorkerID),
					zap.Int("clients", len(clients)),
				)
			}
		}
	}
}

// BroadcastToWorker sends a message to all clients watching a worker
func (h *Hub) BroadcastToWorker(workerID string, messageType string, payload interface{}) {
	msg := &BroadcastMessage{
		WorkerID: workerID,
		Type:     messageType,
		Payload:  payload,
	}
	h.broadcast <- msg
}

// GetClientCount returns the number of connected clients for a worker
func (h *Hub) GetClientCount(workerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[workerID])
}

// InitGlobalHub initializes the global hub instance
func InitGlobalHub() {
	GlobalHub = NewHub()
	go GlobalHub.Run()
	logger.Info("✅ WebSocket Hub initialized")
}
