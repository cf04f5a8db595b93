package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/parlorgames/mafia/internal/common/clock"
	"github.com/parlorgames/mafia/internal/common/token"
	"github.com/parlorgames/mafia/internal/common/uuid"
	"github.com/parlorgames/mafia/internal/models"
	messageRepo "github.com/parlorgames/mafia/internal/repositories/message"
	sessionRepo "github.com/parlorgames/mafia/internal/repositories/session"
)

// service implements the Service interface
type service struct {
	config      *Config
	sessionRepo sessionRepo.Repository
	messageRepo messageRepo.Repository
	notifier    Notifier
	clock       clock.Clock
	uuider      uuid.UUID

	mu       sync.RWMutex
	runtimes map[string]*runtime
}

// NewService creates a new game service
func NewService(cfg *Config, sessionRepository sessionRepo.Repository, messageRepository messageRepo.Repository, notifier Notifier, clk clock.Clock, uuider uuid.UUID) (*service, error) {
	// Set default values if not provided
	if cfg == nil {
		cfg = &Config{
			MinParticipants: 4,
			TickInterval:    time.Second,
		}
	}
	if cfg.MinParticipants <= 0 {
		cfg.MinParticipants = 4
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}

	if sessionRepository == nil {
		return nil, ErrNilSessionRepo
	}
	if messageRepository == nil {
		return nil, ErrNilMessageRepo
	}
	if notifier == nil {
		return nil, ErrNilNotifier
	}
	if clk == nil {
		return nil, ErrNilClock
	}
	if uuider == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		config:      cfg,
		sessionRepo: sessionRepository,
		messageRepo: messageRepository,
		notifier:    notifier,
		clock:       clk,
		uuider:      uuider,
		runtimes:    make(map[string]*runtime),
	}, nil
}

// loadSession fetches a session, mapping repository failures onto the
// service error taxonomy.
func (s *service) loadSession(ctx context.Context, sessionID string) (*models.Session, error) {
	sess, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: sessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return sess, nil
}

func (s *service) saveSession(ctx context.Context, sess *models.Session) error {
	err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: sess,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// CreateSession allocates a session in the lobby phase with the creator
// as sole participant and host. Codes are retried on the unlikely
// collision with an existing session.
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil || input.Identity == "" {
		return nil, errors.New("input and identity cannot be empty")
	}

	var code string
	for attempt := 0; attempt < 5 && code == ""; attempt++ {
		candidate, err := token.NewSessionCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate session code: %w", err)
		}

		_, err = s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
			SessionID: candidate,
		})
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			code = candidate
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		// Code already in use, draw again
	}
	if code == "" {
		return nil, errors.New("failed to allocate an unused session code")
	}

	now := s.clock.Now()
	sess := &models.Session{
		ID:     code,
		HostID: input.Identity,
		Phase:  models.PhaseLobby,
		Participants: []*models.Participant{
			{
				ID:       input.Identity,
				Name:     input.Name,
				Alive:    true,
				JoinedAt: now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}

	// Register the runtime so scratch state and timers have a home
	s.runtimeFor(code)

	return &CreateSessionOutput{
		SessionID: code,
		Session:   sess,
	}, nil
}

// JoinSession appends a participant to a session still in its lobby,
// preserving join order. The public chat history is returned for replay.
func (s *service) JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error) {
	if input == nil || input.SessionID == "" || input.Identity == "" {
		return nil, errors.New("input, session ID and identity cannot be empty")
	}

	rt := s.runtimeFor(input.SessionID)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	sess, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			s.dropRuntime(input.SessionID)
		}
		return nil, err
	}

	if sess.Started {
		return nil, ErrSessionAlreadyStarted
	}

	// Rejoining the lobby is a no-op append
	if sess.Participant(input.Identity) == nil {
		sess.Participants = append(sess.Participants, &models.Participant{
			ID:       input.Identity,
			Name:     input.Name,
			Alive:    true,
			JoinedAt: s.clock.Now(),
		})
		sess.UpdatedAt = s.clock.Now()

		if err := s.saveSession(ctx, sess); err != nil {
			return nil, err
		}

		s.notifier.BroadcastToSession(sess.ID, &Event{
			Name: EventParticipantJoined,
			Data: ParticipantJoinedPayload{
				Roster: rosterView(sess),
				NewParticipant: RosterEntry{
					ID:    input.Identity,
					Name:  input.Name,
					Alive: true,
				},
			},
		})
	}

	history, err := s.publicHistory(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	return &JoinSessionOutput{
		Session: sess,
		History: history,
	}, nil
}

func (s *service) publicHistory(ctx context.Context, sessionID string) ([]*models.ChatMessage, error) {
	out, err := s.messageRepo.GetMessages(ctx, &messageRepo.GetMessagesInput{
		SessionID: sessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	history := make([]*models.ChatMessage, 0, len(out.Messages))
	for _, msg := range out.Messages {
		if msg.Visibility == models.MessageVisibilityPublic {
			history = append(history, msg)
		}
	}
	return history, nil
}

// StartSession deals roles and moves the session out of the lobby. Only
// the host may start, and only with a large enough roster.
func (s *service) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	rt := s.runtimeFor(input.SessionID)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	sess, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if sess.Started {
		return nil, ErrSessionAlreadyStarted
	}
	if sess.HostID != input.Requester {
		return nil, ErrNotAuthorized
	}
	if len(sess.Participants) < s.config.MinParticipants {
		return nil, ErrInsufficientPlayers
	}

	assignRoles(sess.Participants)
	sess.Started = true
	sess.UpdatedAt = s.clock.Now()

	// Persist the deal before any role is revealed: a failed save must
	// not leak roles for a game the store never recorded as started
	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}

	// Each participant learns only their own role; the roster view stays
	// role-free until the game ends
	for _, p := range sess.Participants {
		s.notifier.SendToParticipant(p.ID, &Event{
			Name: EventGameStarted,
			Data: GameStartedPayload{
				Role:   rolePayload(p.Role),
				Roster: rosterView(sess),
			},
		})
	}

	if err := s.enterPhaseLocked(ctx, rt, sess, models.PhaseNight, nil); err != nil {
		return nil, err
	}

	return &StartSessionOutput{
		Session: sess,
	}, nil
}

// LeaveSession removes a participant. The earliest-joined remaining
// participant inherits the host seat; an emptied roster tears the session
// down; a mid-game departure re-runs the win check since team sizes
// shrink.
func (s *service) LeaveSession(ctx context.Context, input *LeaveSessionInput) (*LeaveSessionOutput, error) {
	if input == nil || input.SessionID == "" || input.Identity == "" {
		return nil, errors.New("input, session ID and identity cannot be empty")
	}

	rt := s.runtimeFor(input.SessionID)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	sess, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			s.dropRuntime(input.SessionID)
			return &LeaveSessionOutput{}, nil
		}
		return nil, err
	}

	remaining := make([]*models.Participant, 0, len(sess.Participants))
	found := false
	for _, p := range sess.Participants {
		if p.ID == input.Identity {
			found = true
			continue
		}
		remaining = append(remaining, p)
	}
	if !found {
		return &LeaveSessionOutput{}, nil
	}
	sess.Participants = remaining

	// Last one out tears the whole session down
	if len(sess.Participants) == 0 {
		rt.stopTimerLocked()
		if err := s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{
			SessionID: sess.ID,
		}); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if err := s.messageRepo.DeleteMessages(ctx, &messageRepo.DeleteMessagesInput{
			SessionID: sess.ID,
		}); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		s.dropRuntime(sess.ID)
		return &LeaveSessionOutput{TornDown: true}, nil
	}

	newHostID := ""
	if sess.HostID == input.Identity {
		sess.HostID = sess.Participants[0].ID
		newHostID = sess.HostID
	}
	sess.UpdatedAt = s.clock.Now()

	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}

	s.notifier.BroadcastToSession(sess.ID, &Event{
		Name: EventParticipantLeft,
		Data: ParticipantLeftPayload{
			ParticipantID: input.Identity,
			Roster:        rosterView(sess),
			NewHostID:     sess.HostID,
		},
	})

	// A departure does not kill anyone, but it shrinks a team
	if sess.Started && sess.Phase != models.PhaseEnded {
		if winner := winnerOf(sess); winner != "" {
			sess.Winner = winner
			if err := s.enterPhaseLocked(ctx, rt, sess, models.PhaseEnded, nil); err != nil {
				return nil, err
			}
		}
	}

	return &LeaveSessionOutput{
		NewHostID: newHostID,
	}, nil
}

// GetSession retrieves a session by ID
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sess, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetSessionOutput{
		Session: sess,
	}, nil
}
