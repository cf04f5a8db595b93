package game

import (
	"github.com/parlorgames/mafia/internal/models"
)

// Event is a named structured notification pushed to participants
type Event struct {
	Name string
	Data any
}

// Outbound event names
const (
	EventParticipantJoined       = "participantJoined"
	EventParticipantLeft         = "participantLeft"
	EventGameStarted             = "gameStarted"
	EventPhaseChanged            = "phaseChanged"
	EventTimeRemaining           = "timeRemaining"
	EventChatDelivered           = "chatDelivered"
	EventVoteCast                = "voteCast"
	EventNightActionAcknowledged = "nightActionAcknowledged"
	EventMafiaTeammateAction     = "mafiaTeammateAction"
	EventInspectionResult        = "inspectionResult"
	EventParticipantEliminated   = "participantEliminated"
	EventEliminated              = "eliminated"
	EventGameEnded               = "gameEnded"
)

// Chat channels
const (
	ChannelPublic = "public"
	ChannelMafia  = "mafia"
)

// RosterEntry is the public view of a participant. Roles are omitted
// until the game ends.
type RosterEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Alive bool   `json:"alive"`
}

// RevealedRosterEntry is the end-of-game view with roles shown
type RevealedRosterEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Alive bool   `json:"alive"`
	Role  string `json:"role"`
	Team  string `json:"team"`
}

type ParticipantJoinedPayload struct {
	Roster         []RosterEntry `json:"roster"`
	NewParticipant RosterEntry   `json:"newParticipant"`
}

type ParticipantLeftPayload struct {
	ParticipantID string        `json:"participantId"`
	Roster        []RosterEntry `json:"roster"`
	NewHostID     string        `json:"newHostId"`
}

type GameStartedPayload struct {
	Role   RolePayload   `json:"role"`
	Roster []RosterEntry `json:"roster"`
}

type RolePayload struct {
	Name        string `json:"name"`
	Team        string `json:"team"`
	Capability  string `json:"capability"`
	Description string `json:"description"`
}

type PhaseChangedPayload struct {
	Phase           models.Phase `json:"phase"`
	DayCount        int          `json:"dayCount"`
	DurationSeconds int          `json:"durationSeconds"`
	LastEliminated  *RosterEntry `json:"lastEliminated,omitempty"`
	GameOver        bool         `json:"gameOver"`
	Winner          string       `json:"winner,omitempty"`
}

type TimeRemainingPayload struct {
	SecondsLeft int          `json:"secondsLeft"`
	Phase       models.Phase `json:"phase"`
}

type ChatDeliveredPayload struct {
	SenderName string `json:"senderName"`
	Content    string `json:"content"`
	SenderID   string `json:"senderId"`
	Channel    string `json:"channel"`
}

type VoteCastPayload struct {
	VoterID    string `json:"voterId"`
	VoterName  string `json:"voterName"`
	TargetID   string `json:"targetId"`
	TargetName string `json:"targetName"`
}

type NightActionAcknowledgedPayload struct {
	Capability models.Capability `json:"capability"`
	TargetName string            `json:"targetName"`
}

type MafiaTeammateActionPayload struct {
	ActorName  string `json:"actorName"`
	TargetName string `json:"targetName"`
}

type InspectionResultPayload struct {
	TargetName string `json:"targetName"`
	IsMafia    bool   `json:"isMafia"`
}

type ParticipantEliminatedPayload struct {
	ParticipantID string        `json:"participantId"`
	Name          string        `json:"name"`
	Roster        []RosterEntry `json:"roster"`
}

type EliminatedPayload struct {
	ParticipantID string `json:"participantId"`
	Message       string `json:"message"`
}

type GameEndedPayload struct {
	Winner      string                `json:"winner"`
	FinalRoster []RevealedRosterEntry `json:"finalRoster"`
}

// rosterView builds the public roster view in join order.
func rosterView(sess *models.Session) []RosterEntry {
	roster := make([]RosterEntry, 0, len(sess.Participants))
	for _, p := range sess.Participants {
		roster = append(roster, RosterEntry{
			ID:    p.ID,
			Name:  p.Name,
			Alive: p.Alive,
		})
	}
	return roster
}

// revealedRosterView builds the end-of-game roster view with roles shown.
func revealedRosterView(sess *models.Session) []RevealedRosterEntry {
	roster := make([]RevealedRosterEntry, 0, len(sess.Participants))
	for _, p := range sess.Participants {
		entry := RevealedRosterEntry{
			ID:    p.ID,
			Name:  p.Name,
			Alive: p.Alive,
		}
		if p.Role != nil {
			entry.Role = p.Role.Name
			entry.Team = string(p.Role.Alignment)
		}
		roster = append(roster, entry)
	}
	return roster
}

func rolePayload(r *models.Role) RolePayload {
	if r == nil {
		return RolePayload{}
	}
	return RolePayload{
		Name:        r.Name,
		Team:        string(r.Alignment),
		Capability:  string(r.Capability),
		Description: r.Description,
	}
}
