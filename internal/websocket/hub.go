package websocket

import (
	"encoding/json"
	"sync"

	"github.com/jalvarez/washpoint-backend/internal/app/model"
	"github.com/jalvarez/washpoint-backend/pkg/logger"
)

// Event types pushed to board subscribers.
const (
	EventAssignmentCreated   = "assignment_created"
	EventAssignmentCompleted = "assignment_completed"
)

// BoardEvent is one live update on a business's wash board.
type BoardEvent struct {
	Type       string            `json:"type"`
	Assignment *model.Assignment `json:"assignment"`
	Car        *model.Car        `json:"car,omitempty"`
}

type broadcastMessage struct {
	businessID uint
	payload    []byte
}

// Hub fans assignment events out to connected dashboards. Clients are
// grouped into rooms by business; an event never crosses tenants.
type Hub struct {
	rooms map[uint]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *broadcastMessage

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uint]map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan *broadcastMessage, 256),
	}
}

// Run owns the room map. Call it once, in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.BusinessID] == nil {
				h.rooms[client.BusinessID] = make(map[*Client]bool)
			}
			h.rooms[client.BusinessID][client] = true
			h.mu.Unlock()
			logger.Info("Board client connected", map[string]interface{}{
				"business_id": client.BusinessID,
				"clients":     h.roomSize(client.BusinessID),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.BusinessID]; ok {
				if _, ok := room[client]; ok {
					delete(room, client)
					close(client.Send)
					if len(room) == 0 {
						delete(h.rooms, client.BusinessID)
					}
				}
			}
			h.mu.Unlock()
			logger.Info("Board client disconnected", map[string]interface{}{
				"business_id": client.BusinessID,
			})

		case msg := <-h.broadcast:
			h.mu.RLock()
			for client := range h.rooms[msg.businessID] {
				select {
				case client.Send <- msg.payload:
				default:
					// Slow consumer; drop the event rather than block
					// the hub.
					logger.Warn("Board client send buffer full, dropping event", map[string]interface{}{
						"business_id": msg.businessID,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) roomSize(businessID uint) int {
	if room, ok := h.rooms[businessID]; ok {
		return len(room)
	}
	return 0
}

func (h *Hub) publish(businessID uint, event *BoardEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal board event", err, map[string]interface{}{
			"business_id": businessID,
			"type":        event.Type,
		})
		return
	}
	h.broadcast <- &broadcastMessage{businessID: businessID, payload: payload}
}

// AssignmentCreated pushes a new wash to the business's board.
func (h *Hub) AssignmentCreated(businessID uint, assignment *model.Assignment) {
	h.publish(businessID, &BoardEvent{
		Type:       EventAssignmentCreated,
		Assignment: assignment,
	})
}

// AssignmentCompleted pushes a finished wash, with the car's new balance.
func (h *Hub) AssignmentCompleted(businessID uint, assignment *model.Assignment, car *model.Car) {
	h.publish(businessID, &BoardEvent{
		Type:       EventAssignmentCompleted,
		Assignment: assignment,
		Car:        car,
	})
}
