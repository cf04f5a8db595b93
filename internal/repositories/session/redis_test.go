package session

import (
	"context"
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

func (s *RedisRepositoryTestSuite) newTestSession() *models.Session {
	return &models.Session{
		ID:     "ABC123",
		HostID: "host-identity",
		Phase:  models.PhaseLobby,
		Participants: []*models.Participant{
			{
				ID:       "host-identity",
				Name:     "Host",
				Alive:    true,
				JoinedAt: s.testNow,
			},
		},
		CreatedAt: s.testNow,
		UpdatedAt: s.testNow,
	}
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetSession() {
	sess := s.newTestSession()

	err := s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: sess,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "ABC123",
	})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)

	s.Equal("ABC123", retrieved.ID)
	s.Equal("host-identity", retrieved.HostID)
	s.Equal(models.PhaseLobby, retrieved.Phase)
	s.False(retrieved.Started)
	s.Len(retrieved.Participants, 1)
	s.Equal("host-identity", retrieved.Participants[0].ID)
	s.Equal("Host", retrieved.Participants[0].Name)
	s.True(retrieved.Participants[0].Alive)
	s.Equal(s.testNow.Unix(), retrieved.CreatedAt.Unix())
}

func (s *RedisRepositoryTestSuite) TestSaveSessionKeepsAssignedRoles() {
	sess := s.newTestSession()
	sess.Started = true
	sess.Phase = models.PhaseNight
	sess.Participants[0].Role = &models.RoleSheriff

	err := s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: sess,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "ABC123",
	})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved.Participants[0].Role)
	s.Equal("Sheriff", retrieved.Participants[0].Role.Name)
	s.Equal(models.AlignmentTown, retrieved.Participants[0].Role.Alignment)
	s.Equal(models.CapabilityInspect, retrieved.Participants[0].Role.Capability)
}

func (s *RedisRepositoryTestSuite) TestGetSessionNotFound() {
	_, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "NOSUCH",
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestDeleteSession() {
	sess := s.newTestSession()

	err := s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: sess,
	})
	s.Require().NoError(err)

	err = s.repo.DeleteSession(context.Background(), &DeleteSessionInput{
		SessionID: "ABC123",
	})
	s.Require().NoError(err)

	_, err = s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "ABC123",
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestGetActiveSessions() {
	// A lobby session should not show up as active
	waiting := s.newTestSession()
	err := s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: waiting,
	})
	s.Require().NoError(err)

	// A started session should
	started := s.newTestSession()
	started.ID = "DEF456"
	started.Started = true
	started.Phase = models.PhaseNight
	err = s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: started,
	})
	s.Require().NoError(err)

	out, err := s.repo.GetActiveSessions(context.Background(), &GetActiveSessionsInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Sessions, 1)
	s.Equal("DEF456", out.Sessions[0].ID)
}

func (s *RedisRepositoryTestSuite) TestEndedSessionLeavesActiveSet() {
	sess := s.newTestSession()
	sess.Started = true
	sess.Phase = models.PhaseNight

	err := s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: sess,
	})
	s.Require().NoError(err)

	sess.Phase = models.PhaseEnded
	sess.Winner = models.AlignmentMafia
	err = s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: sess,
	})
	s.Require().NoError(err)

	out, err := s.repo.GetActiveSessions(context.Background(), &GetActiveSessionsInput{})
	s.Require().NoError(err)
	s.Empty(out.Sessions)
}
