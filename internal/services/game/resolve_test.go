package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlorgames/mafia/internal/models"
)

func newStartedSession(roles ...*models.Role) *models.Session {
	sess := &models.Session{
		ID:      "ABC123",
		Phase:   models.PhaseNight,
		Started: true,
	}
	for i, role := range roles {
		sess.Participants = append(sess.Participants, &models.Participant{
			ID:    string(rune('a' + i)),
			Name:  string(rune('A' + i)),
			Alive: true,
			Role:  role,
		})
	}
	if len(sess.Participants) > 0 {
		sess.HostID = sess.Participants[0].ID
	}
	return sess
}

func TestResolveNightKill(t *testing.T) {
	sess := newStartedSession(&models.RoleMafia, &models.RoleDoctor, &models.RoleSheriff, &models.RoleCivilian)
	night := newNightState()
	night.killTarget = "d"

	eliminated := resolveNight(sess, &night)

	require.NotNil(t, eliminated)
	assert.Equal(t, "d", eliminated.ID)
	assert.False(t, sess.Participant("d").Alive)
}

func TestResolveNightProtectCancelsKill(t *testing.T) {
	sess := newStartedSession(&models.RoleMafia, &models.RoleDoctor, &models.RoleSheriff, &models.RoleCivilian)
	night := newNightState()
	night.killTarget = "d"
	night.protectTarget = "d"

	eliminated := resolveNight(sess, &night)

	assert.Nil(t, eliminated)
	assert.True(t, sess.Participant("d").Alive)
}

func TestResolveNightNoKillTarget(t *testing.T) {
	sess := newStartedSession(&models.RoleMafia, &models.RoleDoctor, &models.RoleSheriff, &models.RoleCivilian)
	night := newNightState()
	night.protectTarget = "b"

	assert.Nil(t, resolveNight(sess, &night))
}

func TestResolveNightTargetAlreadyGone(t *testing.T) {
	sess := newStartedSession(&models.RoleMafia, &models.RoleDoctor, &models.RoleSheriff, &models.RoleCivilian)
	night := newNightState()
	night.killTarget = "zz"

	assert.Nil(t, resolveNight(sess, &night))
}

func TestResolveVotesMajorityEliminates(t *testing.T) {
	sess := newStartedSession(&models.RoleMafia, &models.RoleDoctor, &models.RoleSheriff, &models.RoleCivilian)
	votes := map[string]string{
		"a": "d",
		"b": "d",
		"c": "a",
	}

	eliminated := resolveVotes(sess, votes)

	require.NotNil(t, eliminated)
	assert.Equal(t, "d", eliminated.ID)
	assert.False(t, sess.Participant("d").Alive)
}

func TestResolveVotesTieEliminatesNoOne(t *testing.T) {
	sess := newStartedSession(&models.RoleMafia, &models.RoleDoctor, &models.RoleSheriff, &models.RoleCivilian)
	votes := map[string]string{
		"a": "d",
		"b": "a",
	}

	assert.Nil(t, resolveVotes(sess, votes))
	assert.True(t, sess.Participant("d").Alive)
	assert.True(t, sess.Participant("a").Alive)
}

func TestResolveVotesNoVotes(t *testing.T) {
	sess := newStartedSession(&models.RoleMafia, &models.RoleDoctor, &models.RoleSheriff, &models.RoleCivilian)

	assert.Nil(t, resolveVotes(sess, map[string]string{}))
}

func TestResolveVotesCountsVotesFromDepartedVoters(t *testing.T) {
	// Votes are recorded at submission; a voter leaving before
	// resolution does not retract their vote
	sess := newStartedSession(&models.RoleMafia, &models.RoleDoctor, &models.RoleSheriff, &models.RoleCivilian)
	votes := map[string]string{
		"a": "d",
		"gone-voter": "d",
		"b":          "a",
	}

	eliminated := resolveVotes(sess, votes)

	require.NotNil(t, eliminated)
	assert.Equal(t, "d", eliminated.ID)
}

func TestWinnerOf(t *testing.T) {
	tests := []struct {
		name      string
		aliveByID map[string]bool
		want      models.Alignment
	}{
		{
			name: "game continues",
			aliveByID: map[string]bool{
				"a": true, "b": true, "c": true, "d": true,
			},
			want: "",
		},
		{
			name: "mafia eliminated town wins",
			aliveByID: map[string]bool{
				"a": false, "b": true, "c": true, "d": true,
			},
			want: models.AlignmentTown,
		},
		{
			name: "mafia parity is a mafia win",
			aliveByID: map[string]bool{
				"a": true, "b": true, "c": false, "d": false,
			},
			want: models.AlignmentMafia,
		},
		{
			name: "one on one is a mafia win",
			aliveByID: map[string]bool{
				"a": true, "b": false, "c": false, "d": true,
			},
			want: models.AlignmentMafia,
		},
		{
			name: "mafia outnumbers town",
			aliveByID: map[string]bool{
				"a": true, "b": false, "c": false, "d": false,
			},
			want: models.AlignmentMafia,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// a is mafia; b, c, d are town
			sess := newStartedSession(&models.RoleMafia, &models.RoleDoctor, &models.RoleSheriff, &models.RoleCivilian)
			for id, alive := range tc.aliveByID {
				sess.Participant(id).Alive = alive
			}
			assert.Equal(t, tc.want, winnerOf(sess))
		})
	}
}

func TestWinnerOfChecksParityBeforeTownWin(t *testing.T) {
	// Two mafia against two town: parity must win for mafia even though
	// a later elimination could zero the mafia out
	sess := newStartedSession(&models.RoleMafia, &models.RoleMafia, &models.RoleDoctor, &models.RoleSheriff)
	assert.Equal(t, models.AlignmentMafia, winnerOf(sess))
}

func TestNextPhase(t *testing.T) {
	fullRoster := func() *models.Session {
		return newStartedSession(&models.RoleMafia, &models.RoleDoctor, &models.RoleSheriff, &models.RoleCivilian)
	}

	t.Run("lobby to night", func(t *testing.T) {
		sess := fullRoster()
		sess.Phase = models.PhaseLobby
		assert.Equal(t, models.PhaseNight, nextPhase(sess))
	})

	t.Run("night to day", func(t *testing.T) {
		sess := fullRoster()
		sess.Phase = models.PhaseNight
		assert.Equal(t, models.PhaseDay, nextPhase(sess))
	})

	t.Run("day to voting", func(t *testing.T) {
		sess := fullRoster()
		sess.Phase = models.PhaseDay
		assert.Equal(t, models.PhaseVoting, nextPhase(sess))
	})

	t.Run("voting back to night while game is open", func(t *testing.T) {
		sess := fullRoster()
		sess.Phase = models.PhaseVoting
		assert.Equal(t, models.PhaseNight, nextPhase(sess))
	})

	t.Run("voting to ended on win", func(t *testing.T) {
		sess := fullRoster()
		sess.Phase = models.PhaseVoting
		sess.Participant("b").Alive = false
		sess.Participant("c").Alive = false
		assert.Equal(t, models.PhaseEnded, nextPhase(sess))
	})

	t.Run("results to ended on win", func(t *testing.T) {
		sess := fullRoster()
		sess.Phase = models.PhaseResults
		sess.Participant("a").Alive = false
		assert.Equal(t, models.PhaseEnded, nextPhase(sess))
	})

	t.Run("results back to night while game is open", func(t *testing.T) {
		sess := fullRoster()
		sess.Phase = models.PhaseResults
		assert.Equal(t, models.PhaseNight, nextPhase(sess))
	})

	t.Run("ended is terminal", func(t *testing.T) {
		sess := fullRoster()
		sess.Phase = models.PhaseEnded
		assert.Equal(t, models.PhaseEnded, nextPhase(sess))
	})
}
