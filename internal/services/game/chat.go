package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/parlorgames/mafia/internal/models"
	messageRepo "github.com/parlorgames/mafia/internal/repositories/message"
)

// SendChat routes a chat submission by phase and sender alignment.
// Lobby and day messages go to the whole roster. Night messages from
// mafia-aligned senders go only to living mafia; everyone else has no
// channel at night. Voting, results and ended define no channel at all.
// Delivered messages are appended to the session's message log.
func (s *service) SendChat(ctx context.Context, input *SendChatInput) (*SendChatOutput, error) {
	if input == nil || input.SessionID == "" || input.Sender == "" {
		return nil, errors.New("input, session ID and sender cannot be empty")
	}
	if input.Content == "" {
		return &SendChatOutput{}, nil
	}

	rt := s.runtimeFor(input.SessionID)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	sess, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	sender := sess.Participant(input.Sender)
	if sender == nil {
		return nil, ErrDeadActorOrTarget
	}

	switch sess.Phase {
	case models.PhaseLobby, models.PhaseDay:
		if err := s.appendMessage(ctx, sess, sender, input.Content, models.MessageVisibilityPublic); err != nil {
			return nil, err
		}

		s.notifier.BroadcastToSession(sess.ID, &Event{
			Name: EventChatDelivered,
			Data: ChatDeliveredPayload{
				SenderName: sender.Name,
				Content:    input.Content,
				SenderID:   sender.ID,
				Channel:    ChannelPublic,
			},
		})
		return &SendChatOutput{Delivered: true, Channel: ChannelPublic}, nil

	case models.PhaseNight:
		if !sender.IsMafia() {
			// No channel exists for town at night
			return &SendChatOutput{}, nil
		}

		if err := s.appendMessage(ctx, sess, sender, input.Content, models.MessageVisibilityAligned); err != nil {
			return nil, err
		}

		event := &Event{
			Name: EventChatDelivered,
			Data: ChatDeliveredPayload{
				SenderName: fmt.Sprintf("%s (Mafia)", sender.Name),
				Content:    input.Content,
				SenderID:   sender.ID,
				Channel:    ChannelMafia,
			},
		}
		for _, teammate := range sess.AliveMafia() {
			s.notifier.SendToParticipant(teammate.ID, event)
		}
		return &SendChatOutput{Delivered: true, Channel: ChannelMafia}, nil

	default:
		// voting, results, ended: no chat channel exists
		return &SendChatOutput{}, nil
	}
}

func (s *service) appendMessage(ctx context.Context, sess *models.Session, sender *models.Participant, content string, visibility models.MessageVisibility) error {
	msg := &models.ChatMessage{
		ID:         s.uuider.NewUUID(),
		SessionID:  sess.ID,
		SenderID:   sender.ID,
		SenderName: sender.Name,
		Content:    content,
		Visibility: visibility,
		Phase:      sess.Phase,
		DayCount:   sess.DayCount,
		SentAt:     s.clock.Now(),
	}

	err := s.messageRepo.AppendMessage(ctx, &messageRepo.AppendMessageInput{
		Message: msg,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
