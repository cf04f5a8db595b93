package game

import (
	"sync"
)

// nightState is the per-night scratch data. It is reset when a night
// begins and cleared when the night resolves; it is never persisted.
type nightState struct {
	killTarget    string
	protectTarget string
	inspectTarget string
	submitted     map[string]bool
}

func newNightState() nightState {
	return nightState{
		submitted: make(map[string]bool),
	}
}

// runtime holds the transient per-session state the store must never own:
// night scratch, the vote tally, and the active phase timer. The mutex
// serializes every handler for the session, including its store awaits,
// so no two mutations for the same session ever interleave.
type runtime struct {
	mu sync.Mutex

	sessionID string

	night nightState

	// votes maps voter identity to chosen target for the current voting
	// phase only
	votes map[string]string

	// timer is the active phase countdown, nil outside timed phases
	timer *phaseTimer

	// timerGen increments every time a timer is armed. An expiry carrying
	// a stale generation is discarded, so a timer that lost a race with an
	// explicit phase change can never advance the phase twice.
	timerGen uint64
}

func newRuntime(sessionID string) *runtime {
	return &runtime{
		sessionID: sessionID,
		night:     newNightState(),
		votes:     make(map[string]string),
	}
}

// stopTimerLocked cancels the active timer, if any. Callers must hold
// rt.mu; cancellation completes before a new timer may be armed.
func (rt *runtime) stopTimerLocked() {
	if rt.timer != nil {
		rt.timer.stop()
		rt.timer = nil
	}
}

// runtimeFor returns the runtime for a session, creating one if needed.
// Scratch state does not survive a process restart; the durable
// store owns roster and phase, the runtime owns only per-cycle data.
func (s *service) runtimeFor(sessionID string) *runtime {
	s.mu.RLock()
	rt := s.runtimes[sessionID]
	s.mu.RUnlock()
	if rt != nil {
		return rt
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if rt = s.runtimes[sessionID]; rt == nil {
		rt = newRuntime(sessionID)
		s.runtimes[sessionID] = rt
	}
	return rt
}

// dropRuntime removes a session's runtime after teardown.
func (s *service) dropRuntime(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runtimes, sessionID)
}
