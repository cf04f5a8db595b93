package game

import (
	"github.com/parlorgames/mafia/internal/models"
)

// resolveNight converts the night's scratch state into at most one
// elimination. A kill target that matches the protect target survives.
// Inspection has no resolution step; its result was delivered at
// submission time.
func resolveNight(sess *models.Session, night *nightState) *models.Participant {
	if night.killTarget == "" || night.killTarget == night.protectTarget {
		return nil
	}

	target := sess.Participant(night.killTarget)
	if target == nil || !target.Alive {
		return nil
	}

	target.Alive = false
	return target
}

// resolveVotes tallies the recorded votes into at most one elimination.
// No votes, or a tie for the maximum, eliminates no one. Votes were
// validated at submission and count even if the voter has since left.
func resolveVotes(sess *models.Session, votes map[string]string) *models.Participant {
	counts := make(map[string]int)
	for _, targetID := range votes {
		counts[targetID]++
	}

	maxVotes := 0
	topTarget := ""
	tied := false
	for targetID, n := range counts {
		switch {
		case n > maxVotes:
			maxVotes = n
			topTarget = targetID
			tied = false
		case n == maxVotes:
			tied = true
		}
	}

	if maxVotes == 0 || tied {
		return nil
	}

	target := sess.Participant(topTarget)
	if target == nil || !target.Alive {
		return nil
	}

	target.Alive = false
	return target
}

// winnerOf recomputes alive counts and reports the winning alignment, or
// empty if the game continues. Mafia reaching parity with the town is a
// mafia win; the equal-or-greater comparison is checked first.
func winnerOf(sess *models.Session) models.Alignment {
	mafia, town := sess.AliveCounts()

	if mafia > 0 && mafia >= town {
		return models.AlignmentMafia
	}
	if mafia == 0 {
		return models.AlignmentTown
	}
	return ""
}
