package game

import (
	"context"
	"sync"
	"time"

	"github.com/parlorgames/mafia/internal/models"
)

// phaseTimer is a cancellable countdown for one phase of one session.
// It ticks once per interval, pushing a time-remaining notification, and
// drives the phase transition when the countdown reaches zero.
type phaseTimer struct {
	stopCh   chan struct{}
	stopOnce sync.Once
}

func (t *phaseTimer) stop() {
	t.stopOnce.Do(func() {
		close(t.stopCh)
	})
}

// startTimerLocked arms a countdown for the session's current phase.
// Callers must hold rt.mu; any previous timer must already be stopped.
// Phases with a zero duration never auto-advance, so no timer is armed.
func (s *service) startTimerLocked(rt *runtime, phase models.Phase) {
	duration := phase.Duration()
	if duration <= 0 {
		rt.timer = nil
		return
	}

	rt.timerGen++
	gen := rt.timerGen

	t := &phaseTimer{
		stopCh: make(chan struct{}),
	}
	rt.timer = t

	go s.runTimer(t, rt.sessionID, phase, gen, duration)
}

func (s *service) runTimer(t *phaseTimer, sessionID string, phase models.Phase, gen uint64, duration int) {
	remaining := duration
	ticker := time.NewTicker(s.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopCh:
			return

		case <-ticker.C:
			remaining--

			s.notifier.BroadcastToSession(sessionID, &Event{
				Name: EventTimeRemaining,
				Data: TimeRemainingPayload{
					SecondsLeft: remaining,
					Phase:       phase,
				},
			})

			if remaining <= 0 {
				s.expireTimer(sessionID, gen)
				return
			}
		}
	}
}

// expireTimer drives the unattended phase transition when a countdown
// runs out. A stale generation means an explicit action already advanced
// the phase and this timer lost the race; the expiry is discarded.
func (s *service) expireTimer(sessionID string, gen uint64) {
	// A plain lookup: an expiry racing session teardown must not
	// resurrect a runtime entry for a session that no longer exists
	s.mu.RLock()
	rt := s.runtimes[sessionID]
	s.mu.RUnlock()
	if rt == nil {
		return
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.timerGen != gen {
		return
	}
	rt.timer = nil

	s.advancePhaseLocked(context.Background(), rt)
}
