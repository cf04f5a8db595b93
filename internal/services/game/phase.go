package game

import (
	"context"
	"log"

	"github.com/parlorgames/mafia/internal/models"
)

// nextPhase computes the successor phase per the transition table. Ended
// is terminal; the win check gates only the transitions out of voting and
// results.
func nextPhase(sess *models.Session) models.Phase {
	switch sess.Phase {
	case models.PhaseLobby:
		return models.PhaseNight
	case models.PhaseNight:
		return models.PhaseDay
	case models.PhaseDay:
		return models.PhaseVoting
	case models.PhaseVoting, models.PhaseResults:
		if winnerOf(sess) != "" {
			return models.PhaseEnded
		}
		return models.PhaseNight
	default:
		return sess.Phase
	}
}

// advancePhaseLocked resolves the current phase and enters the next one.
// Callers must hold rt.mu. A store failure leaves the session in its
// current phase; the transition is logged and not retried, so a corrupt
// read can never drive a phase change.
func (s *service) advancePhaseLocked(ctx context.Context, rt *runtime) {
	sess, err := s.loadSession(ctx, rt.sessionID)
	if err != nil {
		log.Printf("session %s: phase advance halted: %v", rt.sessionID, err)
		return
	}

	if sess.Phase == models.PhaseEnded {
		return
	}

	var lastEliminated *models.Participant

	switch sess.Phase {
	case models.PhaseNight:
		lastEliminated = resolveNight(sess, &rt.night)
		// Scratch never outlives the night it was collected in
		rt.night = newNightState()

	case models.PhaseVoting:
		lastEliminated = resolveVotes(sess, rt.votes)
		// Tally is cleared unconditionally after resolution
		rt.votes = make(map[string]string)
	}

	next := nextPhase(sess)
	if err := s.enterPhaseLocked(ctx, rt, sess, next, lastEliminated); err != nil {
		log.Printf("session %s: phase advance halted: %v", rt.sessionID, err)
	}
}

// enterPhaseLocked moves the session into the given phase: cancels the
// previous timer, resets the incoming phase's scratch state, persists the
// session, broadcasts the change, and arms the next timer. Callers must
// hold rt.mu.
func (s *service) enterPhaseLocked(ctx context.Context, rt *runtime, sess *models.Session, next models.Phase, lastEliminated *models.Participant) error {
	// Cancel before arming: an orphaned timer must never fire after the
	// phase changes
	rt.stopTimerLocked()

	switch next {
	case models.PhaseDay:
		sess.DayCount++
	case models.PhaseNight:
		rt.night = newNightState()
	case models.PhaseVoting:
		rt.votes = make(map[string]string)
	case models.PhaseEnded:
		if sess.Winner == "" {
			sess.Winner = winnerOf(sess)
		}
	}

	sess.Phase = next
	sess.UpdatedAt = s.clock.Now()

	if err := s.saveSession(ctx, sess); err != nil {
		return err
	}

	payload := PhaseChangedPayload{
		Phase:           next,
		DayCount:        sess.DayCount,
		DurationSeconds: next.Duration(),
		GameOver:        next == models.PhaseEnded,
		Winner:          string(sess.Winner),
	}
	if lastEliminated != nil {
		payload.LastEliminated = &RosterEntry{
			ID:    lastEliminated.ID,
			Name:  lastEliminated.Name,
			Alive: false,
		}
	}
	s.notifier.BroadcastToSession(sess.ID, &Event{
		Name: EventPhaseChanged,
		Data: payload,
	})

	if lastEliminated != nil {
		s.notifier.SendToParticipant(lastEliminated.ID, &Event{
			Name: EventEliminated,
			Data: EliminatedPayload{
				ParticipantID: lastEliminated.ID,
				Message:       "You have died and the game is over for you.",
			},
		})
		s.notifier.BroadcastToSession(sess.ID, &Event{
			Name: EventParticipantEliminated,
			Data: ParticipantEliminatedPayload{
				ParticipantID: lastEliminated.ID,
				Name:          lastEliminated.Name,
				Roster:        rosterView(sess),
			},
		})
	}

	if next == models.PhaseEnded {
		s.notifier.BroadcastToSession(sess.ID, &Event{
			Name: EventGameEnded,
			Data: GameEndedPayload{
				Winner:      string(sess.Winner),
				FinalRoster: revealedRosterView(sess),
			},
		})
		return nil
	}

	s.startTimerLocked(rt, next)
	return nil
}
