// internal/handlers/websocket_handlers.go
package handlers

import (
	"log"
	"net/http"

	"kisan-ai/internal/middleware"
	"kisan-ai/internal/websocket"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: check against Config.AllowedOrigins
		return true
	},
}

// HandleWebSocket upgrades the connection and subscribes it to feed events.
// Browsers cannot set an Authorization header on the upgrade request, so the
// token rides a query parameter.
func (s *Server) HandleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.URL.Query().Get("token")
		if tokenString == "" {
			http.Error(w, "Missing authentication token", http.StatusUnauthorized)
			return
		}

		claims, err := middleware.ValidateToken(tokenString)
		if err != nil {
			log.Printf("WebSocket connection failed: invalid token: %v", err)
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		farmerID := claims.FarmerID
		if farmerID == uuid.Nil {
			http.Error(w, "Invalid farmer ID in token", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for farmer %s: %v", farmerID, err)
			return
		}

		client := &websocket.Client{
			Hub:      s.Hub,
			FarmerID: farmerID,
			Conn:     conn,
			Send:     make(chan []byte, 256),
		}
		client.Hub.Register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}
