package game

import "context"

// Service defines the interface for game session operations
type Service interface {
	// CreateSession allocates a new session with the creator as sole
	// participant and host
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// JoinSession adds a participant to a session that has not started
	JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error)

	// StartSession deals roles and moves the session from lobby to night
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// LeaveSession removes a participant, reassigning the host or tearing
	// the session down as needed
	LeaveSession(ctx context.Context, input *LeaveSessionInput) (*LeaveSessionOutput, error)

	// SubmitVote records a day vote against a living target
	SubmitVote(ctx context.Context, input *SubmitVoteInput) (*SubmitVoteOutput, error)

	// SubmitNightAction records a role-gated night action
	SubmitNightAction(ctx context.Context, input *SubmitNightActionInput) (*SubmitNightActionOutput, error)

	// SendChat routes a chat message according to phase and alignment
	SendChat(ctx context.Context, input *SendChatInput) (*SendChatOutput, error)

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)
}

// Notifier delivers named events to connected participants. The transport
// layer implements it; the service never talks to connections directly.
type Notifier interface {
	// BroadcastToSession delivers an event to every connection in the
	// session's broadcast group
	BroadcastToSession(sessionID string, event *Event)

	// SendToParticipant delivers an event to a single participant's
	// connection
	SendToParticipant(participantID string, event *Event)
}
