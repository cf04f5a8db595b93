package message

import "github.com/parlorgames/mafia/internal/models"

type AppendMessageInput struct {
	Message *models.ChatMessage
}

type GetMessagesInput struct {
	SessionID string
}

type GetMessagesOutput struct {
	Messages []*models.ChatMessage
}

type DeleteMessagesInput struct {
	SessionID string
}
