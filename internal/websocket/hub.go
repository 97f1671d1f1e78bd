package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/pkg/logger"
)

const (
	maxMessagesPerSecond = 10

	sendBufferSize = 256
)

// Client message types.
const (
	TypeSubscribe   = "subscribe"
	TypeUnsubscribe = "unsubscribe"
)

// Server message types.
const (
	TypeMessage      = "message"
	TypeSubscribed   = "subscribed"
	TypeUnsubscribed = "unsubscribed"
	TypeError        = "error"
)

// ClientMessage is what a connected view sends to the hub.
type ClientMessage struct {
	Type      string `json:"type"`
	RequestID uint   `json:"request_id"`
}

// ServerMessage is what the hub pushes to a view.
type ServerMessage struct {
	Type      string             `json:"type"`
	RequestID uint               `json:"request_id,omitempty"`
	Message   *model.ChatMessage `json:"message,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// Authorizer decides whether a viewer may follow a request thread.
type Authorizer interface {
	Authorize(requestID uint, viewerEmail string) (model.SenderRole, error)
}

// Client is one websocket session.
type Client struct {
	hub   *Hub
	conn  *Conn
	Email string
	send  chan []byte

	mu       sync.RWMutex
	requests map[uint]bool

	rateMu        sync.Mutex
	messageCount  int
	lastResetTime time.Time
}

func NewClient(hub *Hub, conn *Conn, email string) *Client {
	return &Client{
		hub:           hub,
		conn:          conn,
		Email:         email,
		send:          make(chan []byte, sendBufferSize),
		requests:      make(map[uint]bool),
		lastResetTime: time.Now(),
	}
}

// Subscribed reports whether the client follows the request thread.
func (c *Client) Subscribed(requestID uint) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.requests[requestID]
}

type broadcastMessage struct {
	requestID uint
	data      []byte
}

// Hub fans chat inserts out to the sessions subscribed to each request.
type Hub struct {
	clients map[*Client]bool

	// request id -> subscribed sessions
	rooms map[uint]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *broadcastMessage

	authorizer Authorizer

	// closed once Run has returned
	done     chan struct{}
	doneOnce sync.Once

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[uint]map[*Client]bool),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan *broadcastMessage, 1024),
		done:       make(chan struct{}),
	}
}

// SetAuthorizer must be called before Run.
func (h *Hub) SetAuthorizer(a Authorizer) {
	h.authorizer = a
}

// Run owns registration and delivery until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			h.doneOnce.Do(func() { close(h.done) })
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"email":          client.Email,
				"total_sessions": total,
			})

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			h.deliver(message)
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.clients[client] {
		return
	}
	delete(h.clients, client)

	client.mu.RLock()
	for requestID := range client.requests {
		h.leave(client, requestID)
	}
	client.mu.RUnlock()

	close(client.send)
	logger.Info("WebSocket client unregistered", map[string]interface{}{
		"email":          client.Email,
		"total_sessions": len(h.clients),
	})
}

// leave requires h.mu held.
func (h *Hub) leave(client *Client, requestID uint) {
	if subs, ok := h.rooms[requestID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.rooms, requestID)
		}
	}
}

func (h *Hub) deliver(message *broadcastMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[message.requestID] {
		select {
		case client.send <- message.data:
		default:
			go h.Unregister(client)
			logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
				"email":      client.Email,
				"request_id": message.requestID,
			})
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
	}
	h.clients = make(map[*Client]bool)
	h.rooms = make(map[uint]map[*Client]bool)
}

// Register hands the session to Run. Once the hub has stopped the session's
// send channel is closed instead, which ends its WritePump.
func (h *Hub) Register(client *Client) {
	select {
	case <-h.done:
		close(client.send)
		return
	default:
	}
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister never blocks past hub shutdown; closeAll has already released
// every registered session by then.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Done is closed when Run returns.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// PublishChatMessage delivers an insert to the sessions on this instance.
func (h *Hub) PublishChatMessage(msg *model.ChatMessage) {
	data, err := json.Marshal(ServerMessage{Type: TypeMessage, RequestID: msg.RequestID, Message: msg})
	if err != nil {
		logger.Error("Failed to marshal chat message", err)
		return
	}

	select {
	case h.broadcast <- &broadcastMessage{requestID: msg.RequestID, data: data}:
	default:
		logger.Warn("Broadcast channel full, message dropped", map[string]interface{}{
			"request_id": msg.RequestID,
		})
	}
}

// Subscribers returns the number of sessions following a request.
func (h *Hub) Subscribers(requestID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[requestID])
}

func (h *Hub) subscribe(client *Client, requestID uint) error {
	if h.authorizer == nil {
		return errNoAuthorizer
	}
	if _, err := h.authorizer.Authorize(requestID, client.Email); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[client] {
		return errClientGone
	}
	if _, ok := h.rooms[requestID]; !ok {
		h.rooms[requestID] = make(map[*Client]bool)
	}
	h.rooms[requestID][client] = true

	client.mu.Lock()
	client.requests[requestID] = true
	client.mu.Unlock()
	return nil
}

func (h *Hub) unsubscribe(client *Client, requestID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leave(client, requestID)

	client.mu.Lock()
	delete(client.requests, requestID)
	client.mu.Unlock()
}

// Sessions returns the number of registered sessions.
func (h *Hub) Sessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleClientMessage processes one frame read from a session.
func (h *Hub) HandleClientMessage(client *Client, message []byte) {
	client.rateMu.Lock()
	now := time.Now()
	if now.Sub(client.lastResetTime) >= time.Second {
		client.messageCount = 0
		client.lastResetTime = now
	}
	client.messageCount++
	count := client.messageCount
	client.rateMu.Unlock()

	if count > maxMessagesPerSecond {
		logger.Warn("Rate limit exceeded", map[string]interface{}{
			"email": client.Email,
			"count": count,
		})
		return
	}

	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		h.reply(client, ServerMessage{Type: TypeError, Error: "malformed message"})
		return
	}

	switch msg.Type {
	case TypeSubscribe:
		if err := h.subscribe(client, msg.RequestID); err != nil {
			logger.Warn("Subscription refused", map[string]interface{}{
				"email":      client.Email,
				"request_id": msg.RequestID,
				"error":      err.Error(),
			})
			h.reply(client, ServerMessage{Type: TypeError, RequestID: msg.RequestID, Error: err.Error()})
			return
		}
		h.reply(client, ServerMessage{Type: TypeSubscribed, RequestID: msg.RequestID})

	case TypeUnsubscribe:
		h.unsubscribe(client, msg.RequestID)
		h.reply(client, ServerMessage{Type: TypeUnsubscribed, RequestID: msg.RequestID})

	default:
		h.reply(client, ServerMessage{Type: TypeError, Error: "unknown message type"})
	}
}

// reply drops the frame when the session is gone or not keeping up.
func (h *Hub) reply(client *Client, msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.clients[client] {
		return
	}
	select {
	case client.send <- data:
	default:
	}
}
