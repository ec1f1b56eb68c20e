/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package draw generates multi-round doubles draws: byes, teams, matches and
// courts, round after round, keeping bye rotation fair and steering away from
// repeat partners and opponents.
package draw

import (
	"log"
	"math/rand"
	"time"
)

const (
	DefaultCourts     = 8
	DefaultStartCourt = 1
	DefaultToScore    = 11
	MaxDefaultRounds  = 8
)

type Config struct {
	// Courts is the number of simultaneous matches per round. Zero or less
	// puts every player on bye.
	Courts     int
	StartCourt int
	// ToScore is carried into each match for display only.
	ToScore int
	// Rounds fixes the number of rounds GenerateDraw produces; zero or less
	// derives it from the roster size and court capacity.
	Rounds   int
	Shuffler Shuffler
}

func DefaultConfig() Config {
	return Config{
		Courts:     DefaultCourts,
		StartCourt: DefaultStartCourt,
		ToScore:    DefaultToScore,
	}
}

type undoEntry struct {
	index    int
	previous *Round // nil when the round was appended
}

// Engine owns the round history and fairness state for one roster. It is not
// safe for concurrent use; independent engines share nothing.
type Engine struct {
	players  []*Player
	cfg      Config
	shuffler Shuffler
	bias     *BiasState
	rounds   []Round
	undo     []undoEntry
}

// New copies players and returns an engine ready to generate rounds. A roster
// change requires a new engine.
func New(players []Player, cfg Config) *Engine {
	if cfg.Courts < 0 {
		cfg.Courts = 0
	}
	if cfg.StartCourt <= 0 {
		cfg.StartCourt = DefaultStartCourt
	}
	if cfg.ToScore <= 0 {
		cfg.ToScore = DefaultToScore
	}

	e := &Engine{
		players:  make([]*Player, len(players)),
		cfg:      cfg,
		shuffler: cfg.Shuffler,
	}
	for i := range players {
		p := players[i]
		p.NeverWith = append([]PlayerID(nil), p.NeverWith...)
		e.players[i] = &p
	}
	if e.shuffler == nil {
		e.shuffler = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.bias = newBiasState(e.players)

	return e
}

// GenerateDraw discards any existing rounds and generates a full draw.
func (e *Engine) GenerateDraw() DrawSummary {
	e.bias = newBiasState(e.players)
	e.rounds = nil
	e.undo = nil

	total := e.RoundCount()
	for n := 1; n <= total; n++ {
		e.GenerateRound(n)
	}

	return e.Summary()
}

// GenerateRound generates round n, which may be an existing round (it is
// regenerated after its bias contribution is rolled back) or the next new
// round. Any other n returns nil and changes nothing.
func (e *Engine) GenerateRound(n int) *Round {
	if n < 1 || n > len(e.rounds)+1 {
		return nil
	}

	var previous *Round
	if n <= len(e.rounds) {
		prev := e.rounds[n-1]
		previous = &prev
		e.bias.apply(previous, -1)
	}

	round := e.buildRound(n)
	e.bias.apply(&round, 1)
	if previous != nil {
		e.rounds[n-1] = round
	} else {
		e.rounds = append(e.rounds, round)
	}
	e.undo = append(e.undo, undoEntry{index: n - 1, previous: previous})

	return &round
}

// RegenerateRound replaces existing round n. It returns nil when round n has
// not been generated.
func (e *Engine) RegenerateRound(n int) *Round {
	if n < 1 || n > len(e.rounds) {
		return nil
	}
	return e.GenerateRound(n)
}

// UndoLastRegeneration reverts the most recent round generation: a
// regenerated round gets its previous version back and an appended round is
// removed. It returns false when there is nothing to undo.
func (e *Engine) UndoLastRegeneration() bool {
	if len(e.undo) == 0 {
		return false
	}
	entry := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]

	current := e.rounds[entry.index]
	e.bias.apply(&current, -1)
	if entry.previous == nil {
		e.rounds = e.rounds[:entry.index]
	} else {
		e.bias.apply(entry.previous, 1)
		e.rounds[entry.index] = *entry.previous
	}

	return true
}

func (e *Engine) Summary() DrawSummary {
	return DrawSummary{
		TotalPlayers: len(e.players),
		TotalRounds:  len(e.rounds),
		Courts:       e.cfg.Courts,
		StartCourt:   e.cfg.StartCourt,
		ToScore:      e.cfg.ToScore,
		Draws:        append([]Round(nil), e.rounds...),
		CanUndo:      len(e.undo) > 0,
	}
}

// RoundCount is the number of rounds GenerateDraw produces: the configured
// count, or enough rounds for each player to meet roughly three new faces
// (one partner, two opponents) per round among those playing, capped at
// MaxDefaultRounds.
func (e *Engine) RoundCount() int {
	if e.cfg.Rounds > 0 {
		return e.cfg.Rounds
	}
	rounds := (e.playingSlots() - 1) / 3
	if rounds < 1 {
		return 1
	} else if rounds > MaxDefaultRounds {
		return MaxDefaultRounds
	}
	return rounds
}

func (e *Engine) ByeCount(id PlayerID) int {
	return e.bias.Byes(id)
}

// Opponents lists everyone a player has faced so far, sorted by id.
func (e *Engine) Opponents(id PlayerID) []PlayerID {
	return relationIDs(e.bias.opponents, id)
}

// Partners lists everyone a player has partnered so far, sorted by id.
func (e *Engine) Partners(id PlayerID) []PlayerID {
	return relationIDs(e.bias.partners, id)
}

// playingSlots is the number of players who can be on court in one round:
// the court capacity, or the roster rounded down to a multiple of four.
func (e *Engine) playingSlots() int {
	slots := 4 * e.cfg.Courts
	if n := len(e.players); slots > n {
		slots = n - n%4
	}
	return slots
}

func (e *Engine) buildRound(n int) Round {
	need := len(e.players) - e.playingSlots()
	pairs, singles := Resolve(e.players)
	byes := SelectByes(need, pairs, singles, e.bias.byes)

	onBye := make(map[PlayerID]bool, len(byes))
	for _, p := range byes {
		onBye[p.ID] = true
	}
	playing := make([]*Player, 0, len(e.players)-len(byes))
	for _, p := range e.players {
		if !onBye[p.ID] {
			playing = append(playing, p)
		}
	}

	teams, leftover := BuildTeams(playing, e.bias)
	if leftover != nil {
		log.Printf("draw.round: round %v: %v has no partner; moving to byes",
			n, leftover.Name)
		byes = append(byes, leftover)
	}

	matches, unscheduled := ScheduleMatches(teams, e.cfg.Courts,
		e.cfg.StartCourt, e.shuffler, e.bias)
	if len(unscheduled) > 0 {
		log.Printf("draw.round: round %v: %v players did not fit on %v courts; moving to byes",
			n, len(unscheduled), e.cfg.Courts)
		byes = append(byes, unscheduled...)
	}
	for i := range matches {
		matches[i].ToScore = e.cfg.ToScore
	}

	round := Round{
		Number:  n,
		Matches: matches,
		Byes:    make([]Player, 0, len(byes)),
	}
	for _, p := range byes {
		round.Byes = append(round.Byes, *p)
	}

	return round
}
