package models

import (
	"time"
)

// Participant represents a player's membership in a specific session
type Participant struct {
	// ID is the connection-scoped identity of the player
	ID string

	// Name is the display name of the player
	Name string

	// Alive indicates whether the player is still in the game.
	// It transitions true to false exactly once and never reverts.
	Alive bool

	// Role is the player's dealt role; nil until roles are assigned
	Role *Role

	// JoinedAt is when the player joined the session
	JoinedAt time.Time
}

// IsMafia reports whether the participant holds a mafia-aligned role.
func (p *Participant) IsMafia() bool {
	return p.Role != nil && p.Role.Alignment == AlignmentMafia
}
