/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package draw

import (
	"math"
	"sort"
)

const (
	partnerSkillBase  = 5.0
	partnerSkillSlope = 2.0
	freshPartnerBonus = 3.0
	sameGenderBonus   = 2.0
	neverWithPenalty  = 1000.0
)

// BuildTeams turns the players in a round into teams of two. Locked pairs
// among the pool become locked teams. The remaining singles are sorted by
// skill and the lowest rated one is repeatedly partnered with its best
// scoring remaining neighbour, which favors close skill, then someone not
// partnered before, then a partner of the same gender so male and female
// pairs form, and avoids NeverWith entries. An odd single out is
// returned as leftover.
func BuildTeams(pool []*Player, bias *BiasState) ([]Team, *Player) {
	pairs, singles := Resolve(pool)

	teams := make([]Team, 0, len(pool)/2)
	for _, lp := range pairs {
		teams = append(teams, Team{Players: [2]*Player{lp[0], lp[1]},
			Locked: true})
	}

	remaining := append([]*Player(nil), singles...)
	sort.SliceStable(remaining, func(i, j int) bool {
		return remaining[i].skill() < remaining[j].skill()
	})
	for len(remaining) >= 2 {
		head := remaining[0]
		best, bestScore := 1, partnerScore(head, remaining[1], bias)
		for i := 2; i < len(remaining); i++ {
			if s := partnerScore(head, remaining[i], bias); s > bestScore {
				best, bestScore = i, s
			}
		}
		teams = append(teams, Team{Players: [2]*Player{head, remaining[best]}})
		remaining = removeIndex(remaining, best)
		remaining = remaining[1:]
	}

	var leftover *Player
	if len(remaining) == 1 {
		leftover = remaining[0]
	}

	return teams, leftover
}

func partnerScore(a, b *Player, bias *BiasState) float64 {
	diff := math.Abs(a.skill() - b.skill())
	score := math.Max(0, partnerSkillBase-diff*partnerSkillSlope)
	if !bias.hasPartnered(a.ID, b.ID) {
		score += freshPartnerBonus
	}
	if a.Gender != GenderUnset && a.Gender == b.Gender {
		score += sameGenderBonus
	}
	if a.avoids(b) || b.avoids(a) {
		score -= neverWithPenalty
	}

	return score
}
