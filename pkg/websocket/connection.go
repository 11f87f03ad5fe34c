package websocket

import (
	"encoding/json"
	"time"

	"kaamsaathi-backend/pkg/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

// Connection wraps the WebSocket connection
type Connection struct {
	ws     *websocket.Conn
	client *Client
}

// NewConnection creates a new Connection
func NewConnection(ws *websocket.Conn, client *Client) *Connection {
	return &Connection{
		ws:     ws,
		client: client,
	}
}

// ReadPump pumps messages from the WebSocket connection to the hub
func (c *Connection) ReadPump() {
	defer func() {
		c.client.Hub.unregister <- c.client
		c.ws.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, _, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error", zap.Error(err))
			}
			break
		}
		// Clients only listen on this channel; inbound messages are ignored
	}
}

// WritePump pumps messages from the hub to the WebSocket connection
func (c *Connection) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.client.Send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.ws.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Drain queued messages into the same frame
			n := len(c.client.Send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.client.Send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ToJSON converts BroadcastMessage to JSON bytes
func (m *BroadcastMessage) ToJSON() []byte {
	data, err := json.Marshal(m)
	if err != nil {
		logger.Error("WebSocket message marshal error", zap.Error(err))
		return []byte("{}")
	}
	return data
}

// WebSocket message types
const (
	MessageTypeNewBooking    = "new_booking"
	MessageTypeBookingUpdate = "booking_update"
)

// NewBookingPayload - payload for new booking notifications
type NewBookingPayload struct {
	BookingID   string  `json:"booking_id"`
	WorkerID    string  `json:"worker_id"`
	Category    string  `json:"category"`
	StartDate   string  `json:"start_date"`
	Address     string  `json:"address"`
	TotalDays   int     `json:"total_days"`
	TotalAmount float64 `json:"total_amount"`
	CreatedAt   string  `json:"created_at"`
}

// BookingUpdatePayload - payload for booking status updates
type BookingUpdatePayload struct {
	BookingID string `json:"booking_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}
