package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"ai-receptionist/internal/domain/dto"
	"ai-receptionist/internal/domain/entities"
	"ai-receptionist/internal/infra/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// DashboardClient is one connected dashboard WebSocket client.
type DashboardClient struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

func NewDashboardClient(conn *websocket.Conn) *DashboardClient {
	return &DashboardClient{
		ID:   uuid.NewString(),
		Conn: conn,
		Send: make(chan []byte, 64),
	}
}

// WritePump drains the send channel to the connection. Run as a
// goroutine per client.
func (c *DashboardClient) WritePump() {
	defer c.Conn.Close()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// DashboardHub fans call events out to connected dashboard clients. It
// implements Iservices.ICallObserver; every notification is
// fire-and-forget and a slow client is dropped rather than allowed to
// stall a call turn.
type DashboardHub struct {
	Register   chan *DashboardClient
	Unregister chan *DashboardClient

	mu      sync.RWMutex
	clients map[*DashboardClient]bool
	logger  *logger.Logger
}

func NewDashboardHub(log *logger.Logger) *DashboardHub {
	return &DashboardHub{
		Register:   make(chan *DashboardClient),
		Unregister: make(chan *DashboardClient),
		clients:    make(map[*DashboardClient]bool),
		logger:     log,
	}
}

// Run processes client registrations. Run as a goroutine.
func (h *DashboardHub) Run() {
	for {
		select {
		case c := <-h.Register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
			h.logger.Debug(fmt.Sprintf("Dashboard client %s connected", c.ID))
		case c := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()
			h.logger.Debug(fmt.Sprintf("Dashboard client %s disconnected", c.ID))
		}
	}
}

// CallStarted notifies the dashboard of a new inbound call.
func (h *DashboardHub) CallStarted(callSID, fromNumber string, at time.Time) {
	h.broadcast(dto.CallStartedEvent{
		Type:       dto.EventCallStarted,
		CallSID:    callSID,
		FromNumber: fromNumber,
		Timestamp:  at,
	})
}

// TurnLogged pushes one transcript turn to the dashboard.
func (h *DashboardHub) TurnLogged(callSID string, turn entities.Turn) {
	h.broadcast(dto.CallUpdatedEvent{
		Type:      dto.EventCallUpdated,
		CallSID:   callSID,
		Speaker:   string(turn.Speaker),
		Message:   turn.Message,
		Timestamp: turn.Timestamp,
	})
}

// CallEnded notifies the dashboard that a call finished.
func (h *DashboardHub) CallEnded(callSID string) {
	h.broadcast(dto.CallEndedEvent{Type: dto.EventCallEnded, CallSID: callSID})
}

func (h *DashboardHub) broadcast(event any) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error(fmt.Sprintf("Error marshaling dashboard event: %v", err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.Send <- data:
		default:
			// Buffer full: the client is too slow, skip this event.
			h.logger.Warn(fmt.Sprintf("Dropping dashboard event for slow client %s", c.ID))
		}
	}
}
