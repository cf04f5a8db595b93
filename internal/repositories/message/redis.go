package message

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/parlorgames/mafia/internal/models"
)

const (
	// Key prefix for per-session message logs
	messagesKeyPrefix = "messages:"
)

// Config holds configuration for the Redis message repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed message repository
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

// AppendMessage persists a chat message to the session's log. The log is a
// sorted set scored by send time so reads come back in order.
func (r *redisRepository) AppendMessage(ctx context.Context, input *AppendMessageInput) error {
	if input == nil || input.Message == nil {
		return errors.New("input and message cannot be nil")
	}

	if input.Message.SessionID == "" {
		return errors.New("message session ID cannot be empty")
	}

	// Marshal the message to JSON
	messageJSON, err := json.Marshal(input.Message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	messagesKey := fmt.Sprintf("%s%s", messagesKeyPrefix, input.Message.SessionID)
	err = r.client.ZAdd(ctx, messagesKey, redis.Z{
		Score:  float64(input.Message.SentAt.UnixNano()),
		Member: messageJSON,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}

	return nil
}

// GetMessages retrieves all messages for a session in send order
func (r *redisRepository) GetMessages(ctx context.Context, input *GetMessagesInput) (*GetMessagesOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	messagesKey := fmt.Sprintf("%s%s", messagesKeyPrefix, input.SessionID)
	raw, err := r.client.ZRange(ctx, messagesKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	messages := make([]*models.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg models.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message: %w", err)
		}
		messages = append(messages, &msg)
	}

	return &GetMessagesOutput{
		Messages: messages,
	}, nil
}

// DeleteMessages removes all messages for a session
func (r *redisRepository) DeleteMessages(ctx context.Context, input *DeleteMessagesInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	messagesKey := fmt.Sprintf("%s%s", messagesKeyPrefix, input.SessionID)
	if err := r.client.Del(ctx, messagesKey).Err(); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}

	return nil
}
