package websocket

import (
	"database/sql"
	"net/http"
	"strings"

	"kaamsaathi-backend/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for now (restrict in production)
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var jwtSecret string

// SetJWTSecret sets the JWT secret for authentication
func SetJWTSecret(secret string) {
	jwtSecret = secret
}

// HandleWebSocket upgrades a partner connection for real-time booking events.
// The caller must present a valid JWT and own the worker profile it asks for.
func HandleWebSocket(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Token from query params or Authorization header
		tokenStr := r.URL.Query().Get("token")
		if tokenStr == "" {
			authHeader := r.Header.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if tokenStr == "" {
			http.Error(w, "Unauthorized: No token provided", http.StatusUnauthorized)
			return
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})

		if err != nil || !token.Valid {
			logger.Warn("WebSocket: invalid token", zap.Error(err))
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			http.Error(w, "Unauthorized: Invalid token claims", http.StatusUnauthorized)
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			http.Error(w, "Unauthorized: No user_id", http.StatusUnauthorized)
			return
		}

		workerID := r.URL.Query().Get("worker_id")
		if workerID == "" {
			http.Error(w, "Bad Request: worker_id required", http.StatusBadRequest)
			return
		}

		// The connecting user must own this worker profile
		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM workers WHERE id = $1 AND user_id = $2", workerID, userID).Scan(&count)
		if err != nil || count == 0 {
			logger.Warn("WebSocket: worker ownership check failed",
				zap.String("user_id", userID),
				zap.String("worker_id", workerID),
			)
			http.Error(w, "Forbidden: Not your worker profile", http.StatusForbidden)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error", zap.Error(err))
			return
		}

		client := &Client{
			ID:       uuid.New().String(),
			WorkerID: workerID,
			UserID:   userID,
			Send:     make(chan []byte, 256),
			Hub:      GlobalHub,
		}

		wsConn := NewConnection(conn, client)
		client.Conn = wsConn

		GlobalHub.register <- client

		welcomeMsg := &BroadcastMessage{
			WorkerID: workerID,
			Type:     "connected",
			Payload: map[string]interface{}{
				"message":   "Connected. New bookings will arrive in real time.",
				"client_id": client.ID,
				"worker_id": workerID,
			},
		}

		client.Send <- welcomeMsg.ToJSON()

		logger.Info("✅ WebSocket client connected",
			zap.String("client_id", client.ID),
			zap.String("worker_id", workerID),
			zap.String("user_id", userID),
		)

		go wsConn.WritePump()
		go wsConn.ReadPump()
	}
}

// BroadcastNewBooking notifies a worker's clients about a new booking
func BroadcastNewBooking(workerID string, payload NewBookingPayload) {
	if GlobalHub != nil {
		GlobalHub.BroadcastToWorker(workerID, MessageTypeNewBooking, payload)
	}
}

// BroadcastBookingUpdate notifies a worker's clients about a status change
func BroadcastBookingUpdate(workerID string, payload BookingUpdatePayload) {
	if GlobalHub != nil {
		GlobalHub.BroadcastToWorker(workerID, MessageTypeBookingUpdate, payload)
	}
}
