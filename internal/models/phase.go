package models

// Phase is the stage a session is in
type Phase string

const (
	// PhaseLobby is the pre-game gathering stage
	PhaseLobby Phase = "lobby"

	// PhaseNight is when night actions are collected
	PhaseNight Phase = "night"

	// PhaseDay is the open discussion stage
	PhaseDay Phase = "day"

	// PhaseVoting is when elimination ballots are collected
	PhaseVoting Phase = "voting"

	// PhaseResults is the short reveal stage after voting
	PhaseResults Phase = "results"

	// PhaseEnded is terminal
	PhaseEnded Phase = "ended"
)

// Duration returns the phase's countdown length in seconds. Phases with
// a zero duration never auto-advance.
func (p Phase) Duration() int {
	switch p {
	case PhaseNight:
		return 30
	case PhaseDay:
		return 120
	case PhaseVoting:
		return 30
	case PhaseResults:
		return 10
	default:
		return 0
	}
}

// Valid reports whether p is one of the known phases.
func (p Phase) Valid() bool {
	switch p {
	case PhaseLobby, PhaseNight, PhaseDay, PhaseVoting, PhaseResults, PhaseEnded:
		return true
	default:
		return false
	}
}
