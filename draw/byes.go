/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package draw

import (
	"sort"
)

// SelectByes picks need players to sit out a round. Candidates are walked by
// bye tier (cumulative bye count) starting at zero. Within a tier singles go
// first by ascending skill, then locked pairs whose worse-off member is at
// that tier by ascending average skill. Pairs sit out together; when only one
// slot is left and a pair is next, any remaining single from any tier takes
// the slot, and only when no single is left is the pair split.
//
// SelectByes does not modify byes; the caller commits the result. If need
// exceeds the number of candidates every candidate is returned.
func SelectByes(need int, pairs []LockedPair, singles []*Player,
	byes map[PlayerID]int) []*Player {

	if need <= 0 {
		return nil
	}

	count := func(p *Player) int { return byes[p.ID] }
	tierOf := func(lp LockedPair) int { return max(count(lp[0]), count(lp[1])) }

	orderedSingles := append([]*Player(nil), singles...)
	sort.SliceStable(orderedSingles, func(i, j int) bool {
		ci, cj := count(orderedSingles[i]), count(orderedSingles[j])
		if ci != cj {
			return ci < cj
		}
		return orderedSingles[i].skill() < orderedSingles[j].skill()
	})
	orderedPairs := append([]LockedPair(nil), pairs...)
	sort.SliceStable(orderedPairs, func(i, j int) bool {
		ti, tj := tierOf(orderedPairs[i]), tierOf(orderedPairs[j])
		if ti != tj {
			return ti < tj
		}
		return orderedPairs[i].avgSkill() < orderedPairs[j].avgSkill()
	})

	selected := make([]*Player, 0, need)
	taken := make(map[PlayerID]bool)
	take := func(p *Player) {
		selected = append(selected, p)
		taken[p.ID] = true
	}
	anySingle := func() *Player {
		for _, s := range orderedSingles {
			if !taken[s.ID] {
				return s
			}
		}
		return nil
	}

	si, pi := 0, 0
	for len(selected) < need &&
		(si < len(orderedSingles) || pi < len(orderedPairs)) {

		tier := -1
		if si < len(orderedSingles) {
			tier = count(orderedSingles[si])
		}
		if pi < len(orderedPairs) {
			if t := tierOf(orderedPairs[pi]); tier < 0 || t < tier {
				tier = t
			}
		}

		for ; si < len(orderedSingles) && len(selected) < need; si++ {
			s := orderedSingles[si]
			if count(s) > tier {
				break
			}
			if !taken[s.ID] {
				take(s)
			}
		}
		for ; pi < len(orderedPairs) && len(selected) < need; pi++ {
			lp := orderedPairs[pi]
			if tierOf(lp) > tier {
				break
			}
			if need-len(selected) >= 2 {
				take(lp[0])
				take(lp[1])
			} else if s := anySingle(); s != nil {
				take(s)
			} else {
				take(splitPair(lp, count))
			}
		}
	}

	return selected
}

// splitPair chooses which partner sits out when a pair has to be split for a
// single bye slot: the one with fewer byes, then the lower rated one.
func splitPair(lp LockedPair, count func(*Player) int) *Player {
	a, b := lp[0], lp[1]
	if count(a) != count(b) {
		if count(a) < count(b) {
			return a
		}
		return b
	}
	if b.skill() < a.skill() {
		return b
	}
	return a
}
