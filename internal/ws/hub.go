package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"carehub/internal/auth"
	"carehub/internal/model"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for dev simplicity
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event is pushed to connected dashboards whenever a care record is
// created or moves through its review workflow.
type Event struct {
	Entity    string    `json:"entity"`
	EntityID  uuid.UUID `json:"entityId"`
	PatientID uuid.UUID `json:"patientId"`
	Status    string    `json:"status"`
	Actor     string    `json:"actor"`
	At        time.Time `json:"at"`
}

// Client represents a single connected WebSocket client.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
}

// Hub maintains the set of active clients and broadcasts care-record
// events to all of them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run starts the dispatch loop. Call it once in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Debug().Msg("websocket client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Debug().Msg("websocket client disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish serializes an event and hands it to the broadcast loop.
// Failures only cost the notification, never the request.
func (h *Hub) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Warn().Err(err).Str("entity", event.Entity).Msg("failed to encode websocket event")
		return
	}
	select {
	case h.broadcast <- payload:
	default:
	}
}

// writePump drains the client's send channel onto the connection.
func (c *Client) writePump() {
	defer func() {
		_ = c.Conn.Close()
	}()
	for message := range c.Send {
		w, err := c.Conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		_, _ = w.Write(message)

		// Fast track writing queued messages
		n := len(c.Send)
		for i := 0; i < n; i++ {
			_, _ = w.Write([]byte{'\n'})
			_, _ = w.Write(<-c.Send)
		}

		if err := w.Close(); err != nil {
			return
		}
	}
	_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump keeps the connection alive and detects disconnects.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		_ = c.Conn.Close()
	}()
	for {
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Msg("websocket read error")
			}
			break
		}
	}
}

// ServeWs authenticates the peer via a token query parameter and, on
// success, upgrades the connection and registers it with the hub.
func ServeWs(hub *Hub, c *gin.Context, codec *auth.Codec) {
	tokenString := c.Query("token")
	if tokenString == "" {
		log.Debug().Msg("websocket rejected: missing token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, err := codec.Parse(tokenString)
	if err != nil {
		log.Debug().Err(err).Msg("websocket rejected: invalid token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	switch claims.Role {
	case model.RoleCareGiver, model.RoleManager, model.RoleSuperuser:
	default:
		log.Debug().Str("role", claims.Role).Msg("websocket rejected: inadequate permissions")
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	client := &Client{Hub: hub, Conn: conn, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}
