package session

import "github.com/parlorgames/mafia/internal/models"

type SaveSessionInput struct {
	Session *models.Session
}

type GetSessionInput struct {
	SessionID string
}

type DeleteSessionInput struct {
	SessionID string
}

type GetActiveSessionsInput struct {
}

type GetActiveSessionsOutput struct {
	Sessions []*models.Session
}
