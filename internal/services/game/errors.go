package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound       GameError = "session not found"
	ErrSessionAlreadyStarted GameError = "session already started"
	ErrNotAuthorized         GameError = "only the host may perform this action"
	ErrInsufficientPlayers   GameError = "need at least 4 players to start"
	ErrInvalidPhaseForAction GameError = "action not valid in current phase"
	ErrUnknownTarget         GameError = "target is not in this session"
	ErrDeadActorOrTarget     GameError = "actor or target is not alive"
	ErrCapabilityMismatch    GameError = "role does not have this capability"
	ErrStoreUnavailable      GameError = "session store unavailable"
	ErrNilConfig             GameError = "config cannot be nil"
	ErrNilSessionRepo        GameError = "session repository cannot be nil"
	ErrNilMessageRepo        GameError = "message repository cannot be nil"
	ErrNilNotifier           GameError = "notifier cannot be nil"
	ErrNilClock              GameError = "clock cannot be nil"
	ErrNilUUIDGenerator      GameError = "UUID generator cannot be nil"
)
