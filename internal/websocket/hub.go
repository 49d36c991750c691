package websocket

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client is one open delivery connection. UserID is the optional
// identity hint supplied at connect time; uuid.Nil means anonymous.
type Client struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *Hub
}

// Hub owns the set of open connections and fans every accepted payload
// out to all of them. Registry mutation and broadcast iteration are
// mutually exclusive, so a connection is never written mid-removal.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Connections per user id, for presence queries. A user may hold
	// several connections at once.
	userClients map[uuid.UUID]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan []byte, 64),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run processes registrations, removals and broadcasts until Stop is
// called. Meant to run in its own goroutine.
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case payload := <-h.broadcast:
			h.broadcastAll(payload)

		case <-ticker.C:
			h.pingAll()
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
		delete(h.clients, id)
	}
	h.userClients = make(map[uuid.UUID]map[uuid.UUID]*Client)
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
	}
}

// Unregister returns immediately once the hub has stopped, so a pump's
// deferred cleanup never blocks on a dead run loop.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// Broadcast queues a payload for delivery to every open connection,
// including the one it arrived on.
func (h *Hub) Broadcast(payload []byte) {
	select {
	case h.broadcast <- payload:
	case <-h.ctx.Done():
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	if client.UserID != uuid.Nil {
		if _, ok := h.userClients[client.UserID]; !ok {
			h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
		}
		h.userClients[client.UserID][client.ID] = client
	}

	log.Printf("connection open: %s (user: %s)", client.ID, client.UserID)
}

// unregisterClient is safe to call for a connection that was already
// removed.
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	delete(h.clients, client.ID)
	if clients, ok := h.userClients[client.UserID]; ok {
		delete(clients, client.ID)
		if len(clients) == 0 {
			delete(h.userClients, client.UserID)
		}
	}
	close(client.Send)

	log.Printf("connection closed: %s (user: %s)", client.ID, client.UserID)
}

// broadcastAll delivers best-effort: a peer whose send buffer is full is
// skipped, never allowed to stall the cycle.
func (h *Hub) broadcastAll(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		select {
		case client.Send <- payload:
		default:
			log.Printf("client %s send buffer full, dropping payload", client.ID)
		}
	}
}

func (h *Hub) pingAll() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		select {
		case client.Send <- []byte(`{"type":"ping"}`):
		default:
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// OnlineUsers returns the ids of users with at least one open
// connection that supplied an identity hint.
func (h *Hub) OnlineUsers() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]uuid.UUID, 0, len(h.userClients))
	for userID := range h.userClients {
		users = append(users, userID)
	}
	return users
}
