/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package draw

import (
	"fmt"
	"math/rand"
	"testing"
)

// inOrder leaves teams in the order they were built.
type inOrder struct{}

func (inOrder) Shuffle(n int, swap func(i, j int)) {}

func seeded(seed int64) Shuffler {
	return rand.New(rand.NewSource(seed))
}

func pid(i int) PlayerID {
	return PlayerID(fmt.Sprintf("p%02d", i))
}

func single(i int) Player {
	return Player{ID: pid(i), Name: fmt.Sprintf("Player %d", i), Skill: 3.0}
}

func lockedPair(a, b int, g Gender) (Player, Player) {
	pa, pb := single(a), single(b)
	pa.PartnerID, pb.PartnerID = pb.ID, pa.ID
	pa.Gender, pb.Gender = g, g
	return pa, pb
}

func singles(from, to int) []Player {
	var ret []Player
	for i := from; i <= to; i++ {
		ret = append(ret, single(i))
	}
	return ret
}

func ptrs(players []Player) []*Player {
	ret := make([]*Player, len(players))
	for i := range players {
		ret[i] = &players[i]
	}
	return ret
}

func ids(players []*Player) []PlayerID {
	ret := make([]PlayerID, len(players))
	for i, p := range players {
		ret[i] = p.ID
	}
	return ret
}

// checkRoundCoverage fails unless every roster player appears exactly once
// across the round's matches and byes.
func checkRoundCoverage(t *testing.T, roster []Player, r Round) {
	t.Helper()
	seen := make(map[PlayerID]int)
	for _, m := range r.Matches {
		for _, p := range m.Players() {
			seen[p.ID]++
		}
	}
	for _, p := range r.Byes {
		seen[p.ID]++
	}
	for _, p := range roster {
		if seen[p.ID] != 1 {
			t.Errorf("round %d: player %v seen %d times; want 1", r.Number,
				p.ID, seen[p.ID])
		}
	}
	if len(seen) != len(roster) {
		t.Errorf("round %d: %d distinct players; want %d", r.Number, len(seen),
			len(roster))
	}
}
