package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/parlorgames/mafia/internal/models"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix  = "session:"
	activeSessionsKey = "active_sessions"
)

// ErrSessionNotFound is returned when a session is not found
var ErrSessionNotFound = errors.New("session not found")

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveSession persists a session to Redis
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	// Marshal the session to JSON
	sessionJSON, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Create a Redis transaction
	pipe := r.client.Pipeline()

	// Save the session
	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, input.Session.ID)
	pipe.Set(ctx, sessionKey, sessionJSON, 0)

	// Track started sessions in the active set until they end
	if input.Session.Started && input.Session.Phase != models.PhaseEnded {
		pipe.SAdd(ctx, activeSessionsKey, input.Session.ID)
	} else {
		pipe.SRem(ctx, activeSessionsKey, input.Session.ID)
	}

	// Execute the transaction
	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by ID from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	// Get the session from Redis
	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, input.SessionID)
	sessionJSON, err := r.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	// Unmarshal the session from JSON
	var sess models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &sess, nil
}

// DeleteSession removes a session from Redis
func (r *redisRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	// Create a Redis transaction
	pipe := r.client.Pipeline()

	// Delete the session
	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, input.SessionID)
	pipe.Del(ctx, sessionKey)

	// Remove the session from the active set
	pipe.SRem(ctx, activeSessionsKey, input.SessionID)

	// Execute the transaction
	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// GetActiveSessions retrieves all active sessions from Redis
func (r *redisRepository) GetActiveSessions(ctx context.Context, input *GetActiveSessionsInput) (*GetActiveSessionsOutput, error) {
	// Get all active session IDs from the set
	sessionIDs, err := r.client.SMembers(ctx, activeSessionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get active session IDs: %w", err)
	}

	// If there are no active sessions, return an empty slice
	if len(sessionIDs) == 0 {
		return &GetActiveSessionsOutput{
			Sessions: []*models.Session{},
		}, nil
	}

	// Get all sessions in parallel using a pipeline
	pipe := r.client.Pipeline()
	sessionCommands := make(map[string]*redis.StringCmd)

	for _, sessionID := range sessionIDs {
		sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, sessionID)
		sessionCommands[sessionID] = pipe.Get(ctx, sessionKey)
	}

	// Execute the pipeline
	_, err = pipe.Exec(ctx)
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get active sessions: %w", err)
	}

	// Process the results
	sessions := make([]*models.Session, 0, len(sessionIDs))
	for sessionID, cmd := range sessionCommands {
		sessionJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Session was deleted between getting the IDs and fetching it
				continue
			}
			return nil, fmt.Errorf("failed to get session %s: %w", sessionID, err)
		}

		var sess models.Session
		if err := json.Unmarshal([]byte(sessionJSON), &sess); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session %s: %w", sessionID, err)
		}

		sessions = append(sessions, &sess)
	}

	return &GetActiveSessionsOutput{
		Sessions: sessions,
	}, nil
}
