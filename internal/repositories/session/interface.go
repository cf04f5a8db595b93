package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/parlorgames/mafia/internal/repositories/session Repository

import (
	"context"

	"github.com/parlorgames/mafia/internal/models"
)

// Repository defines the interface for session data persistence
type Repository interface {
	// SaveSession persists a session
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// DeleteSession removes a session
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error

	// GetActiveSessions retrieves all sessions with a game in progress
	GetActiveSessions(ctx context.Context, input *GetActiveSessionsInput) (*GetActiveSessionsOutput, error)
}
