package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlorgames/mafia/internal/models"
)

func TestRoleCounts(t *testing.T) {
	tests := []struct {
		n        int
		mafia    int
		doctor   int
		sheriff  int
		civilian int
	}{
		{n: 4, mafia: 1, doctor: 1, sheriff: 1, civilian: 1},
		{n: 5, mafia: 1, doctor: 1, sheriff: 1, civilian: 2},
		{n: 6, mafia: 1, doctor: 1, sheriff: 1, civilian: 3},
		{n: 7, mafia: 1, doctor: 1, sheriff: 1, civilian: 4},
		{n: 8, mafia: 2, doctor: 1, sheriff: 1, civilian: 4},
		{n: 12, mafia: 3, doctor: 1, sheriff: 1, civilian: 7},
		{n: 16, mafia: 4, doctor: 1, sheriff: 1, civilian: 10},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("n=%d", tc.n), func(t *testing.T) {
			mafia, doctor, sheriff, civilian := roleCounts(tc.n)
			assert.Equal(t, tc.mafia, mafia)
			assert.Equal(t, tc.doctor, doctor)
			assert.Equal(t, tc.sheriff, sheriff)
			assert.Equal(t, tc.civilian, civilian)
			assert.GreaterOrEqual(t, civilian, 0)
			assert.Equal(t, tc.n, mafia+doctor+sheriff+civilian)
		})
	}
}

func newTestRoster(n int) []*models.Participant {
	roster := make([]*models.Participant, 0, n)
	for i := 0; i < n; i++ {
		roster = append(roster, &models.Participant{
			ID:    fmt.Sprintf("player-%d", i),
			Name:  fmt.Sprintf("Player %d", i),
			Alive: true,
		})
	}
	return roster
}

func TestAssignRolesDistribution(t *testing.T) {
	for _, n := range []int{4, 5, 8, 11} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			roster := newTestRoster(n)
			assignRoles(roster)

			counts := make(map[string]int)
			for _, p := range roster {
				require.NotNil(t, p.Role, "every participant receives exactly one role")
				counts[p.Role.Name]++
			}

			wantMafia, wantDoctor, wantSheriff, wantCivilian := roleCounts(n)
			assert.Equal(t, wantMafia, counts[models.RoleMafia.Name])
			assert.Equal(t, wantDoctor, counts[models.RoleDoctor.Name])
			assert.Equal(t, wantSheriff, counts[models.RoleSheriff.Name])
			assert.Equal(t, wantCivilian, counts[models.RoleCivilian.Name])
		})
	}
}

func TestAssignRolesCoversWholeRoster(t *testing.T) {
	// Repeated deals over the same roster must always assign everyone,
	// regardless of how the shuffle lands
	for i := 0; i < 50; i++ {
		roster := newTestRoster(4)
		assignRoles(roster)
		for _, p := range roster {
			require.NotNil(t, p.Role)
		}
	}
}
