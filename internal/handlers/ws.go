package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Hub tracks the connected activity-feed clients. Award and delete
// endpoints broadcast a refresh so open dashboards reload their data.
type Hub struct {
	mu             sync.RWMutex
	clients        map[*websocket.Conn]bool
	allowedOrigins []string
}

func NewHub(allowedOrigins []string) *Hub {
	return &Hub{
		clients:        make(map[*websocket.Conn]bool),
		allowedOrigins: allowedOrigins,
	}
}

func (hub *Hub) BroadcastRefresh(event string) {
	hub.mu.RLock()
	if len(hub.clients) == 0 {
		hub.mu.RUnlock()
		return
	}

	clientsCopy := make([]*websocket.Conn, 0, len(hub.clients))
	for conn := range hub.clients {
		clientsCopy = append(clientsCopy, conn)
	}
	hub.mu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":  "refresh",
			"event": event,
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to client: %v", err)
			hub.remove(conn)
			conn.Close()
		}
	}
}

func (hub *Hub) add(conn *websocket.Conn) {
	hub.mu.Lock()
	hub.clients[conn] = true
	hub.mu.Unlock()
}

func (hub *Hub) remove(conn *websocket.Conn) {
	hub.mu.Lock()
	delete(hub.clients, conn)
	hub.mu.Unlock()
}

func (hub *Hub) Serve(ctx *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range hub.allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	hub.add(conn)

	defer func() {
		hub.remove(conn)
		conn.Close()
		log.Printf("WebSocket connection closed")
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":    "connected",
		"message": "Activity feed connected",
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline for ping: %v", err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed: %v", err)
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline: %v", err)
			break
		}

		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		if messageType == websocket.TextMessage {
			log.Printf("Received message from activity-feed client: %s", string(message))
		}
	}
}
