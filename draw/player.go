/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package draw

import (
	"strings"
)

type PlayerID string

type Gender int

const (
	GenderUnset Gender = iota
	GenderMale
	GenderFemale
)

func (g Gender) String() string {
	if g == GenderMale {
		return "male"
	} else if g == GenderFemale {
		return "female"
	} else {
		return "unset"
	}
}

// ParseGender accepts the usual registration spellings ("M", "male", "man",
// "F", "female", "woman", ...). Anything else is GenderUnset.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male", "man", "men", "mens", "boy":
		return GenderMale
	case "f", "w", "female", "woman", "women", "womens", "girl":
		return GenderFemale
	}

	return GenderUnset
}

// DefaultSkill is the rating assumed for players without one.
const DefaultSkill = 3.0

// Player is a roster entry as supplied by the intake layer. The engine copies
// players at construction and never mutates them.
type Player struct {
	ID     PlayerID
	Name   string
	Skill  float64
	Gender Gender

	// PartnerID is the canonical locked-partnership marker. A partnership
	// only takes effect when both players reference each other.
	PartnerID PlayerID

	// NeverWith lists players this player must not be partnered with when
	// singles are paired into teams.
	NeverWith []PlayerID

	// ByeCount is the number of byes already served before this draw.
	ByeCount int
}

func (p *Player) skill() float64 {
	if p.Skill <= 0 {
		return DefaultSkill
	}
	return p.Skill
}

func (p *Player) avoids(other *Player) bool {
	for _, id := range p.NeverWith {
		if id == other.ID {
			return true
		}
	}
	return false
}

// LockedPair is an accepted, symmetric partnership for one round.
type LockedPair [2]*Player

func (lp LockedPair) avgSkill() float64 {
	return (lp[0].skill() + lp[1].skill()) / 2
}

type Category int

const (
	CategoryMixed Category = iota
	CategoryMalePair
	CategoryFemalePair
)

func (c Category) String() string {
	switch c {
	case CategoryMalePair:
		return "male-pair"
	case CategoryFemalePair:
		return "female-pair"
	}
	return "mixed"
}

// Team is two players who share a side of the net for one match.
type Team struct {
	Players [2]*Player
	Locked  bool
}

// Category classifies a team for opponent selection. A team with an unset
// gender is treated as mixed.
func (t Team) Category() Category {
	g0, g1 := t.Players[0].Gender, t.Players[1].Gender
	if g0 != g1 || g0 == GenderUnset {
		return CategoryMixed
	}
	if g0 == GenderFemale {
		return CategoryFemalePair
	}
	return CategoryMalePair
}

func (t Team) avgSkill() float64 {
	return (t.Players[0].skill() + t.Players[1].skill()) / 2
}

func (t Team) values() [2]Player {
	return [2]Player{*t.Players[0], *t.Players[1]}
}

type Match struct {
	ID      string
	Court   int
	Team1   [2]Player
	Team2   [2]Player
	ToScore int
}

// Players returns the four players of the match, team1 first.
func (m Match) Players() []Player {
	return []Player{m.Team1[0], m.Team1[1], m.Team2[0], m.Team2[1]}
}

type Round struct {
	Number  int
	Matches []Match
	Byes    []Player
}

// DrawSummary is a read-only projection of an engine's round history.
type DrawSummary struct {
	TotalPlayers int
	TotalRounds  int
	Courts       int
	StartCourt   int
	ToScore      int
	Draws        []Round
	CanUndo      bool
}

func removeIndex[T any](s []T, i int) []T {
	return append(s[:i], s[i+1:]...)
}
