package game

import (
	"time"

	"github.com/parlorgames/mafia/internal/models"
)

// Config holds configuration for the game service
type Config struct {
	// MinParticipants is the smallest roster allowed to start a game
	MinParticipants int

	// TickInterval is how often phase countdowns tick. Production uses
	// one second; tests shrink it.
	TickInterval time.Duration
}

type CreateSessionInput struct {
	Identity string
	Name     string
}

type CreateSessionOutput struct {
	SessionID string
	Session   *models.Session
}

type JoinSessionInput struct {
	SessionID string
	Identity  string
	Name      string
}

type JoinSessionOutput struct {
	Session *models.Session

	// History holds the public chat messages sent so far, for replay to
	// the joining participant
	History []*models.ChatMessage
}

type StartSessionInput struct {
	SessionID string

	// Requester must be the session host
	Requester string
}

type StartSessionOutput struct {
	Session *models.Session
}

type LeaveSessionInput struct {
	SessionID string
	Identity  string
}

type LeaveSessionOutput struct {
	// TornDown indicates the roster emptied and the session was destroyed
	TornDown bool

	// NewHostID is the reassigned host, when the leaver was the host
	NewHostID string
}

type SubmitVoteInput struct {
	SessionID string
	Voter     string
	Target    string
}

type SubmitVoteOutput struct {
}

type SubmitNightActionInput struct {
	SessionID  string
	Actor      string
	Target     string
	Capability models.Capability
}

type SubmitNightActionOutput struct {
}

type SendChatInput struct {
	SessionID string
	Sender    string
	Content   string
}

type SendChatOutput struct {
	// Delivered is false when the phase/alignment rules define no channel
	// for the sender
	Delivered bool

	// Channel is the channel the message went out on when delivered
	Channel string
}

type GetSessionInput struct {
	SessionID string
}

type GetSessionOutput struct {
	Session *models.Session
}
