package game

import (
	"context"
	"errors"

	"github.com/parlorgames/mafia/internal/models"
)

// SubmitVote records a day vote. Vote choices are not secret: every
// recorded vote is broadcast to the whole session. Validation failures
// are returned as typed errors; the transport drops the benign ones
// silently rather than punishing normal game-flow races.
func (s *service) SubmitVote(ctx context.Context, input *SubmitVoteInput) (*SubmitVoteOutput, error) {
	if input == nil || input.SessionID == "" || input.Voter == "" {
		return nil, errors.New("input, session ID and voter cannot be empty")
	}

	rt := s.runtimeFor(input.SessionID)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	sess, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if sess.Phase != models.PhaseVoting {
		return nil, ErrInvalidPhaseForAction
	}

	voter := sess.Participant(input.Voter)
	target := sess.Participant(input.Target)
	if target == nil {
		return nil, ErrUnknownTarget
	}
	if voter == nil || !voter.Alive || !target.Alive {
		return nil, ErrDeadActorOrTarget
	}

	rt.votes[input.Voter] = input.Target

	s.notifier.BroadcastToSession(sess.ID, &Event{
		Name: EventVoteCast,
		Data: VoteCastPayload{
			VoterID:    voter.ID,
			VoterName:  voter.Name,
			TargetID:   target.ID,
			TargetName: target.Name,
		},
	})

	return &SubmitVoteOutput{}, nil
}

// SubmitNightAction records a role-gated night action. Eliminate and
// protect overwrite any earlier submission for the night; inspect also
// answers the actor immediately.
func (s *service) SubmitNightAction(ctx context.Context, input *SubmitNightActionInput) (*SubmitNightActionOutput, error) {
	if input == nil || input.SessionID == "" || input.Actor == "" {
		return nil, errors.New("input, session ID and actor cannot be empty")
	}

	rt := s.runtimeFor(input.SessionID)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	sess, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if sess.Phase != models.PhaseNight {
		return nil, ErrInvalidPhaseForAction
	}

	actor := sess.Participant(input.Actor)
	target := sess.Participant(input.Target)
	if target == nil {
		return nil, ErrUnknownTarget
	}
	if actor == nil || !actor.Alive || !target.Alive {
		return nil, ErrDeadActorOrTarget
	}
	if actor.Role == nil || actor.Role.Capability != input.Capability {
		return nil, ErrCapabilityMismatch
	}

	switch input.Capability {
	case models.CapabilityEliminate:
		rt.night.killTarget = input.Target
		rt.night.submitted[input.Actor] = true

		// Teammates see the chosen mark so they can coordinate
		for _, teammate := range sess.AliveMafia() {
			if teammate.ID == actor.ID {
				continue
			}
			s.notifier.SendToParticipant(teammate.ID, &Event{
				Name: EventMafiaTeammateAction,
				Data: MafiaTeammateActionPayload{
					ActorName:  actor.Name,
					TargetName: target.Name,
				},
			})
		}

	case models.CapabilityProtect:
		rt.night.protectTarget = input.Target
		rt.night.submitted[input.Actor] = true

	case models.CapabilityInspect:
		rt.night.inspectTarget = input.Target
		rt.night.submitted[input.Actor] = true

		s.notifier.SendToParticipant(actor.ID, &Event{
			Name: EventInspectionResult,
			Data: InspectionResultPayload{
				TargetName: target.Name,
				IsMafia:    target.IsMafia(),
			},
		})

	default:
		return nil, ErrCapabilityMismatch
	}

	s.notifier.SendToParticipant(actor.ID, &Event{
		Name: EventNightActionAcknowledged,
		Data: NightActionAcknowledgedPayload{
			Capability: input.Capability,
			TargetName: target.Name,
		},
	})

	return &SubmitNightActionOutput{}, nil
}
