/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package draw

import (
	"reflect"
	"testing"
)

func TestGenerateDrawCoverage(t *testing.T) {
	for n := 0; n <= 30; n++ {
		for seed := int64(1); seed <= 3; seed++ {
			roster := singles(1, n)
			if n >= 6 {
				roster[0].PartnerID, roster[5].PartnerID = roster[5].ID, roster[0].ID
			}
			cfg := Config{Courts: 4, StartCourt: 2, Rounds: 4,
				Shuffler: seeded(seed)}
			e := New(roster, cfg)
			summary := e.GenerateDraw()
			if summary.TotalRounds != 4 {
				t.Fatalf("%v players: TotalRounds = %d; want 4", n,
					summary.TotalRounds)
			}
			for _, r := range summary.Draws {
				checkRoundCoverage(t, roster, r)
				if len(r.Matches) > 4 {
					t.Errorf("%v players: round %v has %d matches", n, r.Number,
						len(r.Matches))
				}
				for i, m := range r.Matches {
					if m.Court != 2+i {
						t.Errorf("%v players: round %v court %d; want %d", n,
							r.Number, m.Court, 2+i)
					}
				}
			}
		}
	}
}

func TestCapacity(t *testing.T) {
	e := New(singles(1, 42), Config{Courts: 11, Rounds: 3,
		Shuffler: seeded(7)})
	summary := e.GenerateDraw()
	for _, r := range summary.Draws {
		if len(r.Matches) != 10 {
			t.Errorf("round %v: %d matches; want 10", r.Number, len(r.Matches))
		}
		if len(r.Byes) != 2 {
			t.Errorf("round %v: %d byes; want 2", r.Number, len(r.Byes))
		}
	}
}

func TestCourtSequence(t *testing.T) {
	e := New(singles(1, 20), Config{Courts: 5, StartCourt: 3, Rounds: 1,
		Shuffler: seeded(1)})
	r := e.GenerateRound(1)
	var courts []int
	for _, m := range r.Matches {
		courts = append(courts, m.Court)
	}
	want := []int{3, 4, 5, 6, 7}
	if !reflect.DeepEqual(courts, want) {
		t.Errorf("courts = %v; want %v", courts, want)
	}
}

func TestByeRotation(t *testing.T) {
	var roster []Player
	for i := 1; i <= 5; i += 2 {
		a, b := lockedPair(i, i+1, GenderUnset)
		roster = append(roster, a, b)
	}
	roster = append(roster, singles(7, 10)...)

	e := New(roster, Config{Courts: 2, Rounds: 4, Shuffler: seeded(3)})
	summary := e.GenerateDraw()

	want := [][]PlayerID{
		{pid(7), pid(8)},
		{pid(9), pid(10)},
		{pid(1), pid(2)},
		{pid(3), pid(4)},
	}
	for i, r := range summary.Draws {
		if len(r.Matches) != 2 {
			t.Errorf("round %v: %d matches; want 2", r.Number, len(r.Matches))
		}
		var got []PlayerID
		for _, p := range r.Byes {
			got = append(got, p.ID)
		}
		if !reflect.DeepEqual(got, want[i]) {
			t.Errorf("round %v byes = %v; want %v", r.Number, got, want[i])
		}
	}

	lo, hi := 100, -1
	for _, p := range roster {
		c := e.ByeCount(p.ID)
		lo, hi = min(lo, c), max(hi, c)
	}
	if hi-lo > 1 {
		t.Errorf("bye counts range %v..%v; want spread <= 1", lo, hi)
	}
}

func TestPriorByesHonored(t *testing.T) {
	roster := singles(1, 5)
	for i := range roster {
		roster[i].ByeCount = 1
	}
	roster[3].ByeCount = 0

	e := New(roster, Config{Courts: 1, Rounds: 1, Shuffler: seeded(1)})
	r := e.GenerateRound(1)
	if len(r.Byes) != 1 || r.Byes[0].ID != pid(4) {
		t.Errorf("byes = %v; want [%v]", r.Byes, pid(4))
	}
	if got := e.ByeCount(pid(4)); got != 1 {
		t.Errorf("ByeCount(%v) = %d; want 1", pid(4), got)
	}
}

func TestLockedPairsStayTogether(t *testing.T) {
	a, b := lockedPair(1, 2, GenderUnset)
	c, d := lockedPair(3, 4, GenderUnset)
	roster := append([]Player{a, b, c, d}, singles(5, 10)...)

	for seed := int64(1); seed <= 10; seed++ {
		e := New(roster, Config{Courts: 2, Rounds: 6, Shuffler: seeded(seed)})
		summary := e.GenerateDraw()
		for _, r := range summary.Draws {
			for _, m := range r.Matches {
				for _, team := range [][2]Player{m.Team1, m.Team2} {
					for k, p := range team {
						partner := team[1-k]
						if p.PartnerID != "" && partner.ID != p.PartnerID {
							t.Errorf("seed %v round %v: %v partnered with %v; want %v",
								seed, r.Number, p.ID, partner.ID, p.PartnerID)
						}
					}
				}
			}
		}
	}
}

func TestNoMalePairAgainstFemalePair(t *testing.T) {
	var roster []Player
	for i := 1; i <= 8; i += 2 {
		g := GenderMale
		if i > 4 {
			g = GenderFemale
		}
		a, b := lockedPair(i, i+1, g)
		roster = append(roster, a, b)
	}

	for seed := int64(1); seed <= 20; seed++ {
		e := New(roster, Config{Courts: 2, Rounds: 3, Shuffler: seeded(seed)})
		for _, r := range e.GenerateDraw().Draws {
			if len(r.Matches) != 2 {
				t.Errorf("seed %v round %v: %d matches; want 2", seed, r.Number,
					len(r.Matches))
			}
			for _, m := range r.Matches {
				if m.Team1[0].Gender != m.Team2[0].Gender {
					t.Errorf("seed %v round %v: %v pair vs %v pair", seed,
						r.Number, m.Team1[0].Gender, m.Team2[0].Gender)
				}
			}
		}
	}
}

func TestOpponentDiversity(t *testing.T) {
	roster := singles(1, 24)
	e := New(roster, Config{Courts: 6, Rounds: 3, Shuffler: inOrder{}})
	e.GenerateDraw()
	for _, p := range roster {
		if got := len(e.Opponents(p.ID)); got < 6 {
			t.Errorf("%v faced %d distinct opponents; want >= 6", p.ID, got)
		}
		if got := len(e.Partners(p.ID)); got != 3 {
			t.Errorf("%v had %d distinct partners; want 3", p.ID, got)
		}
	}
}

func TestRegenerateUndoRoundTrip(t *testing.T) {
	roster := singles(1, 26)
	e := New(roster, Config{Courts: 6, Rounds: 3, Shuffler: seeded(11)})
	before := e.GenerateDraw()

	byes := make(map[PlayerID]int)
	opponents := make(map[PlayerID][]PlayerID)
	for _, p := range roster {
		byes[p.ID] = e.ByeCount(p.ID)
		opponents[p.ID] = e.Opponents(p.ID)
	}

	if r := e.RegenerateRound(2); r == nil || r.Number != 2 {
		t.Fatalf("RegenerateRound(2) = %v; want round 2", r)
	}
	if e.Summary().Draws[1].Matches[0].ID == before.Draws[1].Matches[0].ID {
		t.Errorf("regenerated round kept match id %v",
			before.Draws[1].Matches[0].ID)
	}
	if !e.UndoLastRegeneration() {
		t.Fatalf("UndoLastRegeneration() = false; want true")
	}

	after := e.Summary()
	if !reflect.DeepEqual(after.Draws, before.Draws) {
		t.Errorf("draws differ after undo")
	}
	for _, p := range roster {
		if got := e.ByeCount(p.ID); got != byes[p.ID] {
			t.Errorf("ByeCount(%v) = %d; want %d", p.ID, got, byes[p.ID])
		}
		if got := e.Opponents(p.ID); !reflect.DeepEqual(got, opponents[p.ID]) {
			t.Errorf("Opponents(%v) = %v; want %v", p.ID, got, opponents[p.ID])
		}
	}
}

func TestUndoUnwindsGeneration(t *testing.T) {
	roster := singles(1, 10)
	e := New(roster, Config{Courts: 2, Rounds: 3, Shuffler: seeded(5)})
	if e.Summary().CanUndo {
		t.Errorf("CanUndo = true before any generation")
	}
	e.GenerateDraw()

	undone := 0
	for e.UndoLastRegeneration() {
		undone++
	}
	if undone != 3 {
		t.Errorf("undone %d generations; want 3", undone)
	}
	summary := e.Summary()
	if summary.TotalRounds != 0 || summary.CanUndo {
		t.Errorf("TotalRounds = %d, CanUndo = %v; want 0, false",
			summary.TotalRounds, summary.CanUndo)
	}
	for _, p := range roster {
		if e.ByeCount(p.ID) != 0 || len(e.Opponents(p.ID)) != 0 ||
			len(e.Partners(p.ID)) != 0 {
			t.Errorf("%v still has bias state after full undo", p.ID)
		}
	}
}

func TestRoundIndexBounds(t *testing.T) {
	e := New(singles(1, 8), Config{Courts: 2, Rounds: 2, Shuffler: seeded(1)})
	e.GenerateDraw()
	if r := e.GenerateRound(4); r != nil {
		t.Errorf("GenerateRound(4) = %v; want nil", r)
	}
	if r := e.GenerateRound(0); r != nil {
		t.Errorf("GenerateRound(0) = %v; want nil", r)
	}
	if r := e.RegenerateRound(0); r != nil {
		t.Errorf("RegenerateRound(0) = %v; want nil", r)
	}
	if r := e.RegenerateRound(3); r != nil {
		t.Errorf("RegenerateRound(3) = %v; want nil", r)
	}
	if r := e.GenerateRound(3); r == nil || r.Number != 3 {
		t.Errorf("GenerateRound(3) = %v; want round 3", r)
	}
	if got := e.Summary().TotalRounds; got != 3 {
		t.Errorf("TotalRounds = %d; want 3", got)
	}
}

func TestRoundCount(t *testing.T) {
	cases := []struct {
		players, courts, rounds int
		want                    int
	}{
		{24, 6, 0, 7},
		{24, 6, 5, 5},
		{10, 0, 0, 1},
		{3, 4, 0, 1},
		{100, 25, 0, MaxDefaultRounds},
		{13, 8, 0, 3},
	}
	for _, c := range cases {
		e := New(singles(1, c.players), Config{Courts: c.courts,
			Rounds: c.rounds})
		if got := e.RoundCount(); got != c.want {
			t.Errorf("RoundCount(%d players, %d courts, %d rounds) = %d; want %d",
				c.players, c.courts, c.rounds, got, c.want)
		}
	}
}

func TestNoCourts(t *testing.T) {
	roster := singles(1, 6)
	e := New(roster, Config{Courts: 0, Rounds: 1, Shuffler: seeded(1)})
	r := e.GenerateRound(1)
	if len(r.Matches) != 0 || len(r.Byes) != 6 {
		t.Errorf("matches = %d, byes = %d; want 0, 6", len(r.Matches),
			len(r.Byes))
	}
}

func TestDefaults(t *testing.T) {
	e := New(singles(1, 8), Config{Courts: 2})
	summary := e.Summary()
	if summary.StartCourt != DefaultStartCourt || summary.ToScore != DefaultToScore {
		t.Errorf("StartCourt, ToScore = %d, %d; want %d, %d",
			summary.StartCourt, summary.ToScore, DefaultStartCourt,
			DefaultToScore)
	}
	r := e.GenerateRound(1)
	for _, m := range r.Matches {
		if m.ToScore != DefaultToScore {
			t.Errorf("court %v ToScore = %d; want %d", m.Court, m.ToScore,
				DefaultToScore)
		}
	}
}

func TestEngineCopiesRoster(t *testing.T) {
	roster := singles(1, 8)
	roster[0].NeverWith = []PlayerID{pid(2)}
	e := New(roster, Config{Courts: 2, Rounds: 1, Shuffler: seeded(1)})
	roster[0].NeverWith[0] = pid(3)
	roster[1].Name = "changed"

	for _, m := range e.GenerateRound(1).Matches {
		for _, p := range m.Players() {
			if p.Name == "changed" {
				t.Errorf("engine saw roster change to %v", p.ID)
			}
			if p.ID == pid(1) && p.NeverWith[0] != pid(2) {
				t.Errorf("engine saw NeverWith change: %v", p.NeverWith)
			}
		}
	}
}
