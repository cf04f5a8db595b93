package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/parlorgames/mafia/internal/common/uuid"
	"github.com/parlorgames/mafia/internal/models"
	"github.com/parlorgames/mafia/internal/services/game"
)

// Inbound request types
const (
	requestCreateSession     = "createSession"
	requestJoinSession       = "joinSession"
	requestStartSession      = "startSession"
	requestLeaveSession      = "leaveSession"
	requestSubmitVote        = "submitVote"
	requestSubmitNightAction = "submitNightAction"
	requestSendChat          = "sendChat"
)

// Outbound types emitted by the transport itself; everything else comes
// from the game service through the hub.
const (
	eventSessionCreated  = "sessionCreated"
	eventJoinAccepted    = "joinAccepted"
	eventRequestRejected = "requestRejected"
)

// Config holds configuration for the websocket handler
type Config struct {
	GameService game.Service
	Hub         *Hub
	UUID        uuid.UUID
}

// Handler upgrades HTTP requests to websocket connections and translates
// inbound envelopes into game service calls.
type Handler struct {
	service game.Service
	hub     *Hub
	uuider  uuid.UUID

	upgrader websocket.Upgrader
}

// New creates a new websocket handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}
	if cfg.Hub == nil {
		return nil, errors.New("hub cannot be nil")
	}

	uuider := cfg.UUID
	if uuider == nil {
		uuider = uuid.New()
	}

	return &Handler{
		service: cfg.GameService,
		hub:     cfg.Hub,
		uuider:  uuider,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}, nil
}

// ServeHTTP upgrades the connection and mints a participant identity for
// its lifetime.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}

	c := newClient(h.hub, h, conn, h.uuider.NewUUID())
	h.hub.register(c)

	go c.writePump()
	go c.readPump()
}

type createSessionRequest struct {
	Name string `json:"name"`
}

type joinSessionRequest struct {
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`
}

type submitVoteRequest struct {
	TargetID string `json:"targetId"`
}

type submitNightActionRequest struct {
	TargetID   string `json:"targetId"`
	Capability string `json:"capability"`
}

type sendChatRequest struct {
	Content string `json:"content"`
}

type sessionCreatedPayload struct {
	SessionID string             `json:"sessionId"`
	HostID    string             `json:"hostId"`
	Roster    []game.RosterEntry `json:"roster"`
}

type joinAcceptedPayload struct {
	SessionID string                `json:"sessionId"`
	Phase     models.Phase          `json:"phase"`
	DayCount  int                   `json:"dayCount"`
	Roster    []game.RosterEntry    `json:"roster"`
	History   []*models.ChatMessage `json:"history"`
}

type requestRejectedPayload struct {
	Request string `json:"request"`
	Reason  string `json:"reason"`
}

// dispatch routes one inbound envelope. Lobby-management failures and
// store outages are reported back to the requester; other in-game action
// failures are dropped silently since they are benign races with phase
// changes.
func (h *Handler) dispatch(c *Client, raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("ws: participant %s sent a malformed envelope: %v", c.participantID, err)
		return
	}

	ctx := context.Background()

	switch env.Type {
	case requestCreateSession:
		var req createSessionRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			h.reject(c, env.Type, err)
			return
		}
		out, err := h.service.CreateSession(ctx, &game.CreateSessionInput{
			Identity: c.participantID,
			Name:     req.Name,
		})
		if err != nil {
			h.reject(c, env.Type, err)
			return
		}
		h.hub.bind(c, out.SessionID)
		h.hub.SendToParticipant(c.participantID, &game.Event{
			Name: eventSessionCreated,
			Data: sessionCreatedPayload{
				SessionID: out.SessionID,
				HostID:    out.Session.HostID,
				Roster:    publicRoster(out.Session),
			},
		})

	case requestJoinSession:
		var req joinSessionRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			h.reject(c, env.Type, err)
			return
		}
		out, err := h.service.JoinSession(ctx, &game.JoinSessionInput{
			SessionID: req.SessionID,
			Identity:  c.participantID,
			Name:      req.Name,
		})
		if err != nil {
			h.reject(c, env.Type, err)
			return
		}
		h.hub.bind(c, req.SessionID)
		h.hub.SendToParticipant(c.participantID, &game.Event{
			Name: eventJoinAccepted,
			Data: joinAcceptedPayload{
				SessionID: req.SessionID,
				Phase:     out.Session.Phase,
				DayCount:  out.Session.DayCount,
				Roster:    publicRoster(out.Session),
				History:   out.History,
			},
		})

	case requestStartSession:
		if c.sessionID == "" {
			return
		}
		_, err := h.service.StartSession(ctx, &game.StartSessionInput{
			SessionID: c.sessionID,
			Requester: c.participantID,
		})
		if err != nil {
			h.reject(c, env.Type, err)
		}

	case requestLeaveSession:
		h.leave(ctx, c)

	case requestSubmitVote:
		if c.sessionID == "" {
			return
		}
		var req submitVoteRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			return
		}
		if _, err := h.service.SubmitVote(ctx, &game.SubmitVoteInput{
			SessionID: c.sessionID,
			Voter:     c.participantID,
			Target:    req.TargetID,
		}); err != nil {
			if errors.Is(err, game.ErrStoreUnavailable) {
				h.reject(c, env.Type, err)
				return
			}
			log.Printf("ws: vote from %s dropped: %v", c.participantID, err)
		}

	case requestSubmitNightAction:
		if c.sessionID == "" {
			return
		}
		var req submitNightActionRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			return
		}
		if _, err := h.service.SubmitNightAction(ctx, &game.SubmitNightActionInput{
			SessionID:  c.sessionID,
			Actor:      c.participantID,
			Target:     req.TargetID,
			Capability: models.Capability(req.Capability),
		}); err != nil {
			if errors.Is(err, game.ErrStoreUnavailable) {
				h.reject(c, env.Type, err)
				return
			}
			log.Printf("ws: night action from %s dropped: %v", c.participantID, err)
		}

	case requestSendChat:
		if c.sessionID == "" {
			return
		}
		var req sendChatRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			return
		}
		if _, err := h.service.SendChat(ctx, &game.SendChatInput{
			SessionID: c.sessionID,
			Sender:    c.participantID,
			Content:   req.Content,
		}); err != nil {
			if errors.Is(err, game.ErrStoreUnavailable) {
				h.reject(c, env.Type, err)
				return
			}
			log.Printf("ws: chat from %s dropped: %v", c.participantID, err)
		}

	default:
		log.Printf("ws: participant %s sent unknown request type %q", c.participantID, env.Type)
	}
}

// disconnect runs when a connection drops for any reason. A participant
// still in a session leaves it, which also handles host reassignment and
// teardown.
func (h *Handler) disconnect(c *Client) {
	h.leave(context.Background(), c)
}

func (h *Handler) leave(ctx context.Context, c *Client) {
	if c.sessionID == "" {
		return
	}
	sessionID := c.sessionID
	h.hub.unbind(c)

	if _, err := h.service.LeaveSession(ctx, &game.LeaveSessionInput{
		SessionID: sessionID,
		Identity:  c.participantID,
	}); err != nil {
		log.Printf("ws: leave for %s failed: %v", c.participantID, err)
	}
}

func (h *Handler) reject(c *Client, request string, err error) {
	h.hub.SendToParticipant(c.participantID, &game.Event{
		Name: eventRequestRejected,
		Data: requestRejectedPayload{
			Request: request,
			Reason:  err.Error(),
		},
	})
}

func publicRoster(sess *models.Session) []game.RosterEntry {
	roster := make([]game.RosterEntry, 0, len(sess.Participants))
	for _, p := range sess.Participants {
		roster = append(roster, game.RosterEntry{
			ID:    p.ID,
			Name:  p.Name,
			Alive: p.Alive,
		})
	}
	return roster
}
