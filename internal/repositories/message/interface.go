package message

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/parlorgames/mafia/internal/repositories/message Repository

import (
	"context"
)

// Repository defines the interface for chat message persistence.
// Messages are append-only; they are never mutated and only removed
// together with their whole session.
type Repository interface {
	// AppendMessage persists a chat message
	AppendMessage(ctx context.Context, input *AppendMessageInput) error

	// GetMessages retrieves all messages for a session in send order
	GetMessages(ctx context.Context, input *GetMessagesInput) (*GetMessagesOutput, error)

	// DeleteMessages removes all messages for a session
	DeleteMessages(ctx context.Context, input *DeleteMessagesInput) error
}
