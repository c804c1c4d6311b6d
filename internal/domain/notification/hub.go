package notification

import (
	"context"
	"encoding/json"
	"expvar"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// EventType for WebSocket events
type EventType string

const (
	EventGigClaimed         EventType = "gig_claimed"
	EventMetricsUpdated     EventType = "metrics_updated"
	EventSubmissionApproved EventType = "submission_approved"
	EventCreditAwarded      EventType = "credit_awarded"
)

var (
	wsConnectionsGauge   = expvar.NewInt("websocket_connections")
	wsEventsSentTotal    = expvar.NewInt("websocket_events_sent_total")
	wsEventsDroppedTotal = expvar.NewInt("websocket_events_dropped_total")
)

// Event represents a WebSocket event pushed to dashboard clients
type Event struct {
	Type         EventType   `json:"type"`
	GigID        uuid.UUID   `json:"gig_id,omitempty"`
	SubmissionID uuid.UUID   `json:"submission_id,omitempty"`
	Data         interface{} `json:"data,omitempty"`
}

// Connection represents a WebSocket connection
type Connection struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
}

// Hub manages WebSocket connections per user
type Hub struct {
	connections map[uuid.UUID]map[*Connection]bool
	mu          sync.RWMutex

	register   chan *Connection
	unregister chan *Connection

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		connections: make(map[uuid.UUID]map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run starts the hub (call in goroutine)
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.connections[conn.UserID] == nil {
				h.connections[conn.UserID] = make(map[*Connection]bool)
			}
			h.connections[conn.UserID][conn] = true
			h.mu.Unlock()
			wsConnectionsGauge.Add(1)
			log.Debug().Str("user_id", conn.UserID.String()).Msg("User connected to WebSocket")

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.connections[conn.UserID]; ok {
				if _, exists := conns[conn]; exists {
					delete(conns, conn)
					close(conn.Send)
					wsConnectionsGauge.Add(-1)
				}
				if len(conns) == 0 {
					delete(h.connections, conn.UserID)
				}
			}
			h.mu.Unlock()
			log.Debug().Str("user_id", conn.UserID.String()).Msg("User disconnected from WebSocket")
		}
	}
}

// Register adds a connection to the hub
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection from the hub
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// SendToUser pushes an event to all of a user's connections. Slow clients
// are dropped rather than blocking the sender.
func (h *Hub) SendToUser(userID uuid.UUID, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal WebSocket event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.connections[userID] {
		select {
		case conn.Send <- data:
			wsEventsSentTotal.Add(1)
		default:
			wsEventsDroppedTotal.Add(1)
		}
	}
}

// Shutdown stops the hub and closes all connections
func (h *Hub) Shutdown() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conns := range h.connections {
		for conn := range conns {
			conn.Conn.Close()
		}
	}
	h.connections = make(map[uuid.UUID]map[*Connection]bool)
}
