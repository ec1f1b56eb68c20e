/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package draw

import (
	"math"

	"github.com/google/uuid"
)

// Shuffler randomizes team order before matching. *rand.Rand satisfies it;
// tests supply a seeded or fixed implementation.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

const (
	skillBalanceBase      = 10.0
	skillBalanceSlope     = 2.0
	sameCategoryBonus     = 30.0
	crossCategoryPenalty  = 1000.0
	freshOpponentBonus    = 40.0
	repeatOpponentPenalty = 50.0
)

// ScheduleMatches shuffles the teams and pairs them greedily into at most
// courts matches, numbered from startCourt. At each step the team with the
// fewest clean opponents left (no one faced before, no male-pair vs
// female-pair) is matched first, against the best scoring remaining team.
// Equal candidates keep their shuffled order. Players of teams that could not
// be placed on a court are returned so the caller can put them on bye.
func ScheduleMatches(teams []Team, courts, startCourt int, shuffler Shuffler,
	bias *BiasState) ([]Match, []*Player) {

	pool := append([]Team(nil), teams...)
	if shuffler != nil {
		shuffler.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
	}

	var matches []Match
	for len(pool) >= 2 && len(matches) < courts {
		a := mostConstrained(pool, bias)
		anchor := pool[a]
		pool = removeIndex(pool, a)

		b := bestOpponent(anchor, pool, bias)
		opponent := pool[b]
		pool = removeIndex(pool, b)

		matches = append(matches, Match{
			ID:    uuid.NewString(),
			Court: startCourt + len(matches),
			Team1: anchor.values(),
			Team2: opponent.values(),
		})
	}

	var unscheduled []*Player
	for _, t := range pool {
		unscheduled = append(unscheduled, t.Players[0], t.Players[1])
	}

	return matches, unscheduled
}

// mostConstrained picks the next court's anchor: the team with the fewest
// clean opponents left in pool, earliest on ties.
func mostConstrained(pool []Team, bias *BiasState) int {
	best, bestClean := 0, math.MaxInt
	for i := range pool {
		clean := 0
		for j := range pool {
			if i != j && isClean(pool[i], pool[j], bias) {
				clean++
			}
		}
		if clean < bestClean {
			best, bestClean = i, clean
		}
	}

	return best
}

func bestOpponent(t Team, pool []Team, bias *BiasState) int {
	best, bestScore := 0, math.Inf(-1)
	for i := range pool {
		if s := matchScore(t, pool[i], bias); s > bestScore {
			best, bestScore = i, s
		}
	}

	return best
}

func isClean(t1, t2 Team, bias *BiasState) bool {
	return !crossCategory(t1.Category(), t2.Category()) &&
		!havePlayed(t1, t2, bias)
}

// matchScore rates t1 against t2; higher is better.
func matchScore(t1, t2 Team, bias *BiasState) float64 {
	diff := math.Abs(t1.avgSkill() - t2.avgSkill())
	score := math.Max(0, skillBalanceBase-diff*skillBalanceSlope)

	c1, c2 := t1.Category(), t2.Category()
	if c1 == c2 {
		score += sameCategoryBonus
	}
	if crossCategory(c1, c2) {
		score -= crossCategoryPenalty
	}

	if havePlayed(t1, t2, bias) {
		score -= repeatOpponentPenalty
	} else {
		score += freshOpponentBonus
	}

	return score
}

func crossCategory(c1, c2 Category) bool {
	return (c1 == CategoryMalePair && c2 == CategoryFemalePair) ||
		(c1 == CategoryFemalePair && c2 == CategoryMalePair)
}

func havePlayed(t1, t2 Team, bias *BiasState) bool {
	for _, x := range t1.Players {
		for _, y := range t2.Players {
			if bias.hasFaced(x.ID, y.ID) {
				return true
			}
		}
	}
	return false
}
