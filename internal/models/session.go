package models

import (
	"time"
)

// Session represents one game instance with its own roster, phase, and timer
type Session struct {
	// ID is the short shareable code identifying the session
	ID string

	// HostID is the identity of the current host. While the roster is
	// non-empty it always references a member of Participants.
	HostID string

	// Phase is the current stage of the session
	Phase Phase

	// DayCount is the number of day phases reached so far
	DayCount int

	// Participants holds the roster in join order
	Participants []*Participant

	// Winner is the winning alignment once the game is decided
	Winner Alignment

	// Started indicates roles have been dealt and the lobby is closed
	Started bool

	// CreatedAt is when the session was created
	CreatedAt time.Time

	// UpdatedAt is when the session was last updated
	UpdatedAt time.Time
}

// Participant returns the roster entry with the given identity.
func (s *Session) Participant(id string) *Participant {
	for _, p := range s.Participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AliveCounts recomputes the living mafia and town counts from the
// current roster. Callers must not cache the result across mutations.
func (s *Session) AliveCounts() (mafia, town int) {
	for _, p := range s.Participants {
		if !p.Alive {
			continue
		}
		if p.IsMafia() {
			mafia++
		} else {
			town++
		}
	}
	return mafia, town
}

// AliveMafia returns the living mafia-aligned participants.
func (s *Session) AliveMafia() []*Participant {
	var out []*Participant
	for _, p := range s.Participants {
		if p.Alive && p.IsMafia() {
			out = append(out, p)
		}
	}
	return out
}
