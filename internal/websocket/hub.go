package sessionws

import (
	"encoding/json"
	"log"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
)

// Hub fans collection-change events out to every connected client, so a
// dashboard open on another device refreshes without polling. All client
// bookkeeping happens on the Run loop.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Event
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Event describes one mutation of the session collection.
type Event struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`
	Total     int    `json:"total"`
	Timestamp string `json:"timestamp"`
}

const (
	EventCreated       = "session_created"
	EventUpdated       = "session_updated"
	EventStatusChanged = "session_status_changed"
	EventDeleted       = "session_deleted"
)

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Event, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
		case client := <-h.unregister:
			if _, exists := h.clients[client]; exists {
				delete(h.clients, client)
				close(client.send)
			}
		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Notify queues a change event for delivery. It never blocks the caller;
// if the hub is saturated the event is dropped, clients resync on the next
// event or fetch.
func (h *Hub) Notify(eventType, sessionID string, total int) {
	event := &Event{
		Type:      eventType,
		SessionID: sessionID,
		Total:     total,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	select {
	case h.broadcast <- event:
	default:
		log.Printf("session hub: dropping %s event, broadcast queue full", eventType)
	}
}

func (h *Hub) deliver(event *Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("session hub encode event: %v", err)
		return
	}

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// ReadPump drains the connection until the client goes away. The feed is
// one-way; inbound frames are ignored.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
