package game

import (
	"math/rand"

	"github.com/parlorgames/mafia/internal/models"
)

// roleCounts returns the fixed carve-out for a roster of size n:
// mafia = max(n/4, 1), one doctor, one sheriff, civilians take the rest.
// The minimum-roster check at start time guarantees the civilian count is
// never negative.
func roleCounts(n int) (mafia, doctor, sheriff, civilian int) {
	mafia = n / 4
	if mafia < 1 {
		mafia = 1
	}
	doctor = 1
	sheriff = 1
	civilian = n - mafia - doctor - sheriff
	return mafia, doctor, sheriff, civilian
}

// assignRoles deals one role to every participant: a uniform shuffle of
// the roster, then a front-to-back carve-out of mafia, doctor, sheriff,
// and civilian groups. math/rand's global generator is seeded from the
// OS, so the deal is not reproducible by a player.
func assignRoles(participants []*models.Participant) {
	shuffled := make([]*models.Participant, len(participants))
	copy(shuffled, participants)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	mafia, doctor, sheriff, _ := roleCounts(len(shuffled))

	idx := 0
	for i := 0; i < mafia; i++ {
		shuffled[idx].Role = &models.RoleMafia
		idx++
	}
	for i := 0; i < doctor; i++ {
		shuffled[idx].Role = &models.RoleDoctor
		idx++
	}
	for i := 0; i < sheriff; i++ {
		shuffled[idx].Role = &models.RoleSheriff
		idx++
	}
	for ; idx < len(shuffled); idx++ {
		shuffled[idx].Role = &models.RoleCivilian
	}
}
