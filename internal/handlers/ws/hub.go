package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/parlorgames/mafia/internal/services/game"
)

// envelope is the wire format in both directions: a type tag and a
// type-specific payload.
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Hub tracks connected clients and their session membership. It
// implements game.Notifier, so the game service pushes events through it
// without knowing about websockets.
type Hub struct {
	mu sync.RWMutex

	// clients maps participant identity to its connection
	clients map[string]*Client

	// sessions maps session ID to the set of member clients
	sessions map[string]map[string]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		sessions: make(map[string]map[string]*Client),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.participantID] = c
}

// unregister drops a client from the registry and its session group, and
// closes its send channel exactly once.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c.participantID]; !ok {
		return
	}
	delete(h.clients, c.participantID)

	if c.sessionID != "" {
		if members, ok := h.sessions[c.sessionID]; ok {
			delete(members, c.participantID)
			if len(members) == 0 {
				delete(h.sessions, c.sessionID)
			}
		}
	}
	close(c.send)
}

// bind attaches a client to a session group so broadcasts reach it.
func (h *Hub) bind(c *Client, sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.sessionID != "" && c.sessionID != sessionID {
		if members, ok := h.sessions[c.sessionID]; ok {
			delete(members, c.participantID)
		}
	}
	c.sessionID = sessionID

	members, ok := h.sessions[sessionID]
	if !ok {
		members = make(map[string]*Client)
		h.sessions[sessionID] = members
	}
	members[c.participantID] = c
}

// unbind detaches a client from its session group without dropping the
// connection, for explicit leaves that keep the socket open.
func (h *Hub) unbind(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.sessionID == "" {
		return
	}
	if members, ok := h.sessions[c.sessionID]; ok {
		delete(members, c.participantID)
		if len(members) == 0 {
			delete(h.sessions, c.sessionID)
		}
	}
	c.sessionID = ""
}

// BroadcastToSession sends an event to every member of a session.
func (h *Hub) BroadcastToSession(sessionID string, event *game.Event) {
	data, err := marshalEvent(event)
	if err != nil {
		log.Printf("ws: failed to marshal %s event: %v", event.Name, err)
		return
	}

	h.mu.RLock()
	members := make([]*Client, 0, len(h.sessions[sessionID]))
	for _, c := range h.sessions[sessionID] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	for _, c := range members {
		c.enqueue(data)
	}
}

// SendToParticipant sends an event to one connected participant. Unknown
// or disconnected participants are ignored.
func (h *Hub) SendToParticipant(participantID string, event *game.Event) {
	data, err := marshalEvent(event)
	if err != nil {
		log.Printf("ws: failed to marshal %s event: %v", event.Name, err)
		return
	}

	h.mu.RLock()
	c := h.clients[participantID]
	h.mu.RUnlock()

	if c != nil {
		c.enqueue(data)
	}
}

func marshalEvent(event *game.Event) ([]byte, error) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{
		Type: event.Name,
		Data: data,
	})
}
