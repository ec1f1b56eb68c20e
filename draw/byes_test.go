/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package draw

import (
	"reflect"
	"testing"
)

func TestSelectByes(t *testing.T) {
	mk := func(id PlayerID, skill float64, partner PlayerID) Player {
		return Player{ID: id, Skill: skill, PartnerID: partner}
	}
	cases := []struct {
		name   string
		need   int
		pool   []Player
		counts map[PlayerID]int
		want   []PlayerID
	}{
		{
			name: "singles first by skill",
			need: 2,
			pool: []Player{mk("a", 3.5, "b"), mk("b", 3.5, "a"),
				mk("s1", 4.0, ""), mk("s2", 2.5, ""), mk("s3", 3.0, "")},
			want: []PlayerID{"s2", "s3"},
		},
		{
			name: "lower tier single beats lower skill single",
			need: 1,
			pool: []Player{mk("s1", 2.0, ""), mk("s2", 4.0, "")},
			counts: map[PlayerID]int{"s1": 1},
			want:   []PlayerID{"s2"},
		},
		{
			name: "pair taken whole when two slots remain",
			need: 3,
			pool: []Player{mk("a", 3.0, "b"), mk("b", 3.0, "a"),
				mk("c", 2.0, "d"), mk("d", 2.0, "c"), mk("s1", 5.0, "")},
			want: []PlayerID{"s1", "c", "d"},
		},
		{
			name: "pair at tier waits for singles at same tier",
			need: 2,
			pool: []Player{mk("a", 3.0, "b"), mk("b", 3.0, "a"),
				mk("s1", 3.0, ""), mk("s2", 3.0, "")},
			counts: map[PlayerID]int{"s1": 1, "s2": 1},
			want:   []PlayerID{"a", "b"},
		},
		{
			name: "worse-off member sets the pair's tier",
			need: 2,
			pool: []Player{mk("a", 3.0, "b"), mk("b", 3.0, "a"),
				mk("c", 4.0, "d"), mk("d", 4.0, "c")},
			counts: map[PlayerID]int{"a": 1},
			want:   []PlayerID{"c", "d"},
		},
		{
			name: "single from a higher tier fills the last slot",
			need: 1,
			pool: []Player{mk("a", 3.0, "b"), mk("b", 3.0, "a"),
				mk("s1", 3.0, "")},
			counts: map[PlayerID]int{"s1": 3},
			want:   []PlayerID{"s1"},
		},
		{
			name: "split gives the bye to the partner with fewer byes",
			need: 1,
			pool: []Player{mk("a", 3.0, "b"), mk("b", 3.0, "a")},
			counts: map[PlayerID]int{"a": 1},
			want:   []PlayerID{"b"},
		},
		{
			name: "split tie goes to the lower rated partner",
			need: 1,
			pool: []Player{mk("a", 3.5, "b"), mk("b", 3.0, "a")},
			want: []PlayerID{"b"},
		},
		{
			name: "need larger than pool",
			need: 10,
			pool: []Player{mk("a", 3.0, "b"), mk("b", 3.0, "a"),
				mk("s1", 3.0, "")},
			want: []PlayerID{"s1", "a", "b"},
		},
		{
			name: "nothing needed",
			need: 0,
			pool: []Player{mk("s1", 3.0, "")},
			want: nil,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			counts := c.counts
			if counts == nil {
				counts = map[PlayerID]int{}
			}
			pairs, singles := Resolve(ptrs(c.pool))
			got := SelectByes(c.need, pairs, singles, counts)
			var gotIDs []PlayerID
			if got != nil {
				gotIDs = ids(got)
			}
			if !reflect.DeepEqual(gotIDs, c.want) {
				t.Errorf("SelectByes = %v; want %v", gotIDs, c.want)
			}
		})
	}
}

func TestSelectByesDoesNotCommit(t *testing.T) {
	pool := ptrs(singles(1, 4))
	counts := map[PlayerID]int{}
	_, s := Resolve(pool)
	SelectByes(2, nil, s, counts)
	if len(counts) != 0 {
		t.Errorf("counts modified: %v", counts)
	}
}
