/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package roster turns registration exports (pasted CSV/TSV, JSON records,
// HTML registration tables) into draw players.
package roster

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/FlippedOut/pb-draw/draw"
	"github.com/FlippedOut/pb-draw/internal"
)

// Suggestion is a partnership guessed from a registrant's partner field. It
// has no effect until confirmed.
type Suggestion struct {
	A, B         draw.PlayerID
	AName, BName string
}

func (s Suggestion) String() string {
	return fmt.Sprintf("%v & %v", s.AName, s.BName)
}

type Roster struct {
	Players     []draw.Player
	Suggestions []Suggestion

	// Divisions maps a player to the division (skill bracket) they
	// registered for. Players without one are absent.
	Divisions map[draw.PlayerID]string

	// Registered maps a player to their registration time when the export
	// carries one.
	Registered map[draw.PlayerID]time.Time
}

func newRoster() Roster {
	return Roster{
		Divisions:  make(map[draw.PlayerID]string),
		Registered: make(map[draw.PlayerID]time.Time),
	}
}

func (r Roster) clone() Roster {
	ret := newRoster()
	ret.Players = make([]draw.Player, len(r.Players))
	for i, p := range r.Players {
		p.NeverWith = append([]draw.PlayerID(nil), p.NeverWith...)
		ret.Players[i] = p
	}
	ret.Suggestions = append([]Suggestion(nil), r.Suggestions...)
	for id, d := range r.Divisions {
		ret.Divisions[id] = d
	}
	for id, t := range r.Registered {
		ret.Registered[id] = t
	}

	return ret
}

func (r Roster) Player(id draw.PlayerID) (draw.Player, bool) {
	for _, p := range r.Players {
		if p.ID == id {
			return p, true
		}
	}
	return draw.Player{}, false
}

func (r Roster) Division(id draw.PlayerID) string {
	return r.Divisions[id]
}

// Confirm locks each suggested partnership whose players are both on the
// roster and not already partnered, and drops suggestions that no longer
// apply. The receiver is not modified.
func (r Roster) Confirm(suggestions []Suggestion) Roster {
	ret := r.clone()
	idx := make(map[draw.PlayerID]int, len(ret.Players))
	for i, p := range ret.Players {
		idx[p.ID] = i
	}

	for _, s := range suggestions {
		a, okA := idx[s.A]
		b, okB := idx[s.B]
		if !okA || !okB || a == b {
			continue
		}
		pa, pb := &ret.Players[a], &ret.Players[b]
		if pa.PartnerID != "" || pb.PartnerID != "" {
			continue
		}
		pa.PartnerID, pb.PartnerID = pb.ID, pa.ID
	}

	// whatever is still suggested must involve two unpartnered players
	var pending []Suggestion
	for _, s := range ret.Suggestions {
		a, okA := idx[s.A]
		b, okB := idx[s.B]
		if okA && okB && ret.Players[a].PartnerID == "" &&
			ret.Players[b].PartnerID == "" {
			pending = append(pending, s)
		}
	}
	ret.Suggestions = pending

	return ret
}

func (r Roster) ConfirmAll() Roster {
	return r.Confirm(r.Suggestions)
}

// WithoutPartners drops every partnership so all players enter as singles.
func (r Roster) WithoutPartners() Roster {
	ret := r.clone()
	for i := range ret.Players {
		ret.Players[i].PartnerID = ""
	}
	ret.Suggestions = nil

	return ret
}

// RegisteredBefore drops players who registered at or after cutoff. Players
// without a registration time are kept.
func (r Roster) RegisteredBefore(cutoff time.Time) Roster {
	ret := newRoster()
	kept := make(map[draw.PlayerID]bool)
	for _, p := range r.Players {
		if t, ok := r.Registered[p.ID]; ok && !t.Before(cutoff) {
			continue
		}
		p.NeverWith = append([]draw.PlayerID(nil), p.NeverWith...)
		ret.Players = append(ret.Players, p)
		kept[p.ID] = true
		if d, ok := r.Divisions[p.ID]; ok {
			ret.Divisions[p.ID] = d
		}
		if t, ok := r.Registered[p.ID]; ok {
			ret.Registered[p.ID] = t
		}
	}
	for _, s := range r.Suggestions {
		if kept[s.A] && kept[s.B] {
			ret.Suggestions = append(ret.Suggestions, s)
		}
	}

	return ret
}

// ParseNames builds a roster of unrated singles from a comma or newline
// separated list of names.
func ParseNames(list string) Roster {
	ret := newRoster()
	fields := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})
	for _, f := range fields {
		name := strings.TrimSpace(f)
		if name == "" {
			continue
		}
		ret.Players = append(ret.Players, draw.Player{
			ID:    playerID(len(ret.Players) + 1),
			Name:  name,
			Skill: draw.DefaultSkill,
		})
	}

	return ret
}

func playerID(n int) draw.PlayerID {
	return draw.PlayerID(fmt.Sprintf("p%d", n))
}

var ratingRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// SkillFromBracket reads a rating from registration bracket text such as
// "3.0-3.49" or "Intermediate (3.5)"; the first number wins. Text without a
// number rates draw.DefaultSkill.
func SkillFromBracket(bracket string) float64 {
	m := ratingRe.FindString(bracket)
	if m == "" {
		return draw.DefaultSkill
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || v <= 0 {
		return draw.DefaultSkill
	}
	return v
}

// suggest pairs registrants with the first name listed in their partner
// field. Matching is by normalized name and the first claim on a player wins.
func suggest(players []draw.Player, partnerText map[draw.PlayerID]string) []Suggestion {
	byName := make(map[string]draw.Player, len(players))
	for _, p := range players {
		key := internal.NormalizeName(p.Name)
		if _, dup := byName[key]; !dup {
			byName[key] = p
		}
	}

	var ret []Suggestion
	taken := make(map[draw.PlayerID]bool)
	for _, p := range players {
		name := firstPartnerName(partnerText[p.ID])
		if name == "" {
			continue
		}
		q, ok := byName[internal.NormalizeName(name)]
		if !ok || q.ID == p.ID || taken[p.ID] || taken[q.ID] {
			continue
		}
		taken[p.ID], taken[q.ID] = true, true
		ret = append(ret, Suggestion{A: p.ID, B: q.ID, AName: p.Name,
			BName: q.Name})
	}

	return ret
}

var partnerSepRe = regexp.MustCompile(`(?i)[;&/]| and `)

func firstPartnerName(field string) string {
	return strings.TrimSpace(partnerSepRe.Split(field, 2)[0])
}
