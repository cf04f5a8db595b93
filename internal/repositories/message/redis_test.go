package message

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/parlorgames/mafia/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	// Set up test time
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newTestMessage(id string, sentAt time.Time) *models.ChatMessage {
	return &models.ChatMessage{
		ID:         id,
		SessionID:  "ABC123",
		SenderID:   "sender-identity",
		SenderName: "Sender",
		Content:    fmt.Sprintf("message %s", id),
		Visibility: models.MessageVisibilityPublic,
		Phase:      models.PhaseDay,
		DayCount:   1,
		SentAt:     sentAt,
	}
}

func (s *RedisRepositoryTestSuite) TestAppendAndGetMessages() {
	msg := s.newTestMessage("msg-1", s.testNow)

	err := s.repo.AppendMessage(context.Background(), &AppendMessageInput{
		Message: msg,
	})
	s.Require().NoError(err)

	out, err := s.repo.GetMessages(context.Background(), &GetMessagesInput{
		SessionID: "ABC123",
	})
	s.Require().NoError(err)
	s.Require().Len(out.Messages, 1)

	retrieved := out.Messages[0]
	s.Equal("msg-1", retrieved.ID)
	s.Equal("ABC123", retrieved.SessionID)
	s.Equal("sender-identity", retrieved.SenderID)
	s.Equal("Sender", retrieved.SenderName)
	s.Equal(models.MessageVisibilityPublic, retrieved.Visibility)
	s.Equal(models.PhaseDay, retrieved.Phase)
	s.Equal(1, retrieved.DayCount)
}

func (s *RedisRepositoryTestSuite) TestGetMessagesReturnsSendOrder() {
	// Append out of order; reads should come back by send time
	second := s.newTestMessage("msg-2", s.testNow.Add(time.Second))
	first := s.newTestMessage("msg-1", s.testNow)
	third := s.newTestMessage("msg-3", s.testNow.Add(2*time.Second))

	for _, msg := range []*models.ChatMessage{second, first, third} {
		err := s.repo.AppendMessage(context.Background(), &AppendMessageInput{
			Message: msg,
		})
		s.Require().NoError(err)
	}

	out, err := s.repo.GetMessages(context.Background(), &GetMessagesInput{
		SessionID: "ABC123",
	})
	s.Require().NoError(err)
	s.Require().Len(out.Messages, 3)
	s.Equal("msg-1", out.Messages[0].ID)
	s.Equal("msg-2", out.Messages[1].ID)
	s.Equal("msg-3", out.Messages[2].ID)
}

func (s *RedisRepositoryTestSuite) TestGetMessagesEmptySession() {
	out, err := s.repo.GetMessages(context.Background(), &GetMessagesInput{
		SessionID: "NOSUCH",
	})
	s.Require().NoError(err)
	s.Empty(out.Messages)
}

func (s *RedisRepositoryTestSuite) TestDeleteMessages() {
	err := s.repo.AppendMessage(context.Background(), &AppendMessageInput{
		Message: s.newTestMessage("msg-1", s.testNow),
	})
	s.Require().NoError(err)

	err = s.repo.DeleteMessages(context.Background(), &DeleteMessagesInput{
		SessionID: "ABC123",
	})
	s.Require().NoError(err)

	out, err := s.repo.GetMessages(context.Background(), &GetMessagesInput{
		SessionID: "ABC123",
	})
	s.Require().NoError(err)
	s.Empty(out.Messages)
}
