/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package draw

import (
	"sort"
)

// BiasState is the cross-round fairness state owned by one engine: bye counts
// plus counted opponent and partner relations. Relations are counted rather
// than kept as sets so that a round's contribution can be subtracted exactly
// when the round is regenerated or undone.
type BiasState struct {
	byes      map[PlayerID]int
	opponents map[PlayerID]map[PlayerID]int
	partners  map[PlayerID]map[PlayerID]int
}

func newBiasState(players []*Player) *BiasState {
	b := &BiasState{
		byes:      make(map[PlayerID]int),
		opponents: make(map[PlayerID]map[PlayerID]int),
		partners:  make(map[PlayerID]map[PlayerID]int),
	}
	for _, p := range players {
		if p.ByeCount > 0 {
			b.byes[p.ID] = p.ByeCount
		}
	}

	return b
}

// Byes returns the cumulative bye count for a player.
func (b *BiasState) Byes(id PlayerID) int {
	if b == nil {
		return 0
	}
	return b.byes[id]
}

func (b *BiasState) hasFaced(x, y PlayerID) bool {
	if b == nil {
		return false
	}
	return b.opponents[x][y] > 0
}

func (b *BiasState) hasPartnered(x, y PlayerID) bool {
	if b == nil {
		return false
	}
	return b.partners[x][y] > 0
}

// apply adds (sign=1) or removes (sign=-1) a round's contribution.
func (b *BiasState) apply(r *Round, sign int) {
	for _, p := range r.Byes {
		n := b.byes[p.ID] + sign
		if n <= 0 {
			delete(b.byes, p.ID)
		} else {
			b.byes[p.ID] = n
		}
	}
	for _, m := range r.Matches {
		for _, team := range [][2]Player{m.Team1, m.Team2} {
			addRelation(b.partners, team[0].ID, team[1].ID, sign)
			addRelation(b.partners, team[1].ID, team[0].ID, sign)
		}
		for _, x := range m.Team1 {
			for _, y := range m.Team2 {
				addRelation(b.opponents, x.ID, y.ID, sign)
				addRelation(b.opponents, y.ID, x.ID, sign)
			}
		}
	}
}

func addRelation(rel map[PlayerID]map[PlayerID]int, x, y PlayerID, delta int) {
	inner, ok := rel[x]
	if !ok {
		if delta <= 0 {
			return
		}
		inner = make(map[PlayerID]int)
		rel[x] = inner
	}
	n := inner[y] + delta
	if n <= 0 {
		delete(inner, y)
		if len(inner) == 0 {
			delete(rel, x)
		}
		return
	}
	inner[y] = n
}

func relationIDs(rel map[PlayerID]map[PlayerID]int, x PlayerID) []PlayerID {
	ids := make([]PlayerID, 0, len(rel[x]))
	for id := range rel[x] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}
