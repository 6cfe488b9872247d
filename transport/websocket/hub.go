package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Message is the wire envelope for one game event.
type Message struct {
	SessionID string      `json:"session_id"`
	Event     string      `json:"event"`
	Data      interface{} `json:"data,omitempty"`
}

// Client is one connected viewer of a game session.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub tracks the viewers of each game session and fans game events out to
// them. All map access happens on the Run loop.
type Hub struct {
	// Connected viewers keyed by game session ID
	watchers map[string]map[*Client]bool

	// Inbound game events to fan out
	broadcast chan *Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Game session IDs whose viewers should be disconnected
	closeGame chan string
}

// NewHub creates a hub with no viewers.
func NewHub() *Hub {
	return &Hub{
		watchers:   make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		closeGame:  make(chan string),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case sessionID := <-h.closeGame:
			h.disconnectWatchers(sessionID)
		}
	}
}

// ServeWS upgrades an HTTP request and registers the connection as a viewer
// of the given game session.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, 256),
		sessionID: sessionID,
	}

	client.hub.register <- client

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// BroadcastEvent sends a game event to all viewers of a session. Safe to
// call from any goroutine; fan-out happens on the hub loop.
func (h *Hub) BroadcastEvent(sessionID string, event string, data interface{}) {
	h.broadcast <- &Message{
		SessionID: sessionID,
		Event:     event,
		Data:      data,
	}
}

// CloseGame disconnects every viewer of a game session. Called when the game
// is deleted so viewers do not linger on a dead stream. Safe to call from
// any goroutine.
func (h *Hub) CloseGame(sessionID string) {
	h.closeGame <- sessionID
}

// registerClient adds a viewer to a game session
func (h *Hub) registerClient(client *Client) {
	if h.watchers[client.sessionID] == nil {
		h.watchers[client.sessionID] = make(map[*Client]bool)
	}
	h.watchers[client.sessionID][client] = true

	log.Printf("Viewer joined game %s (total viewers: %d)",
		client.sessionID, len(h.watchers[client.sessionID]))
}

// unregisterClient removes a viewer from a game session
func (h *Hub) unregisterClient(client *Client) {
	if clients, ok := h.watchers[client.sessionID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			// Drop games nobody is watching
			if len(clients) == 0 {
				delete(h.watchers, client.sessionID)
			}

			log.Printf("Viewer left game %s (remaining viewers: %d)",
				client.sessionID, len(clients))
		}
	}
}

// disconnectWatchers closes every viewer connection of a game session.
func (h *Hub) disconnectWatchers(sessionID string) {
	clients, ok := h.watchers[sessionID]
	if !ok {
		return
	}
	for client := range clients {
		delete(clients, client)
		close(client.send)
	}
	delete(h.watchers, sessionID)
	log.Printf("Disconnected viewers of ended game %s", sessionID)
}

// broadcastMessage sends a game event to all viewers of its session
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal broadcast message: %v", err)
		return
	}

	if clients, ok := h.watchers[message.SessionID]; ok {
		for client := range clients {
			select {
			case client.send <- data:
			default:
				// Viewer's send channel is full, drop the connection
				h.unregisterClient(client)
			}
		}
	}
}

// readPump pumps messages from the WebSocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Viewers are read-only; turns and answers arrive over the REST API.
		// Just keep the connection alive.
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
