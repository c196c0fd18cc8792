package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Event is a dashboard notification: a new email landed, a task moved.
// Dashboards use it only as an invalidation hint and refetch over REST;
// the event carries no authoritative state.
type Event struct {
	Type    string      `json:"type"` // e.g. "email.created", "task.transitioned"
	Payload interface{} `json:"payload,omitempty"`
}

// Hub maintains the set of connected dashboard sessions and fans
// events out to all of them.
type Hub struct {
	sessions map[string]*Session

	register   chan *Session
	unregister chan *Session
	events     chan []byte

	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]*Session),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		events:     make(chan []byte, 64),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case session := <-h.register:
			h.mu.Lock()
			h.sessions[session.ID] = session
			h.mu.Unlock()
			log.Printf("🖥️ Dashboard connected: %s", session.ID)

		case session := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.sessions[session.ID]; ok {
				delete(h.sessions, session.ID)
				close(session.send)
				log.Printf("🖥️ Dashboard disconnected: %s", session.ID)
			}
			h.mu.Unlock()

		case msg := <-h.events:
			h.mu.RLock()
			for _, session := range h.sessions {
				select {
				case session.send <- msg:
				default:
					// Session buffer full; it will catch up on refetch
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast queues an event for every connected session
func (h *Hub) Broadcast(event Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling event: %v", err)
		return
	}
	select {
	case h.events <- msg:
	default:
		log.Println("⚠️ Event queue full, dropping broadcast")
	}
}
