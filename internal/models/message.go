package models

import (
	"time"
)

// MessageVisibility describes who a chat message was routed to
type MessageVisibility string

const (
	// MessageVisibilityPublic means the whole roster received the message
	MessageVisibilityPublic MessageVisibility = "public"

	// MessageVisibilityAligned means only the sender's living teammates
	// received the message
	MessageVisibilityAligned MessageVisibility = "aligned"
)

// ChatMessage is an append-only record of a delivered chat message
type ChatMessage struct {
	// ID is the unique identifier for the message
	ID string

	// SessionID is the session the message was sent in
	SessionID string

	// SenderID is the identity of the sender
	SenderID string

	// SenderName is the display name of the sender at send time
	SenderName string

	// Content is the message body
	Content string

	// Visibility records which channel the message was delivered on
	Visibility MessageVisibility

	// Phase is the session phase at send time
	Phase Phase

	// DayCount is the session day count at send time
	DayCount int

	// SentAt is when the message was sent
	SentAt time.Time
}
