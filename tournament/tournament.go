/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package tournament runs a draw for a whole event: one engine per division,
// each on its own block of courts.
package tournament

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/FlippedOut/pb-draw/draw"
	"github.com/FlippedOut/pb-draw/roster"
)

// AllPlayers names the single division used when divisions are combined.
const AllPlayers = "All Players"

type Division struct {
	Name    string
	Players []draw.Player
	Summary draw.DrawSummary

	engine *draw.Engine
}

type Result struct {
	Settings  Settings
	Divisions []*Division
}

// Run filters the roster by the registration cutoff, groups it by division
// and generates each division's draw concurrently. Divisions get consecutive
// court blocks in DivisionSorter order starting at Settings.StartCourt.
func Run(ctx context.Context, r roster.Roster, s Settings) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("tournament: %w", err)
	}
	cutoff, _ := s.Cutoff()
	if !cutoff.IsZero() {
		before := len(r.Players)
		r = r.RegisteredBefore(cutoff)
		if dropped := before - len(r.Players); dropped > 0 {
			log.Printf("tournament.run: %v late registrations dropped (cutoff %v)",
				dropped, cutoff.Format(time.RFC3339))
		}
	}
	if len(r.Players) == 0 {
		return nil, fmt.Errorf("tournament: roster has no players")
	}

	var names []string
	var groups map[string][]draw.Player
	if s.CombineDivisions {
		names = []string{AllPlayers}
		groups = map[string][]draw.Player{AllPlayers: r.Players}
	} else {
		names, groups = GroupByDivision(r)
	}

	result := &Result{Settings: s}
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	court := s.StartCourt
	if court <= 0 {
		court = draw.DefaultStartCourt
	}
	for i, name := range names {
		if s.division(name).Skip {
			log.Printf("tournament.run: skipping division %v", name)
			continue
		}
		cfg := s.config(name)
		cfg.StartCourt = court
		cfg.Shuffler = rand.New(rand.NewSource(seed + int64(i)))
		court += max(cfg.Courts, 0)

		result.Divisions = append(result.Divisions, &Division{
			Name:    name,
			Players: groups[name],
			engine:  draw.New(groups[name], cfg),
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, d := range result.Divisions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d.Summary = d.engine.GenerateDraw()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("tournament: draw canceled: %w", err)
	}

	return result, nil
}

// Regenerate replaces round n in every division that has it.
func (r *Result) Regenerate(n int) error {
	regenerated := 0
	for _, d := range r.Divisions {
		if d.engine.RegenerateRound(n) != nil {
			regenerated++
		}
		d.Summary = d.engine.Summary()
	}
	if regenerated == 0 {
		return fmt.Errorf("tournament: no division has a round %v", n)
	}

	return nil
}

// AddRound appends one more round to every division.
func (r *Result) AddRound() {
	for _, d := range r.Divisions {
		d.engine.GenerateRound(d.engine.Summary().TotalRounds + 1)
		d.Summary = d.engine.Summary()
	}
}

// Undo reverts the most recent round generation in every division and
// reports whether any division changed.
func (r *Result) Undo() bool {
	undone := false
	for _, d := range r.Divisions {
		if d.engine.UndoLastRegeneration() {
			undone = true
		}
		d.Summary = d.engine.Summary()
	}
	return undone
}

func (r *Result) TotalPlayers() int {
	n := 0
	for _, d := range r.Divisions {
		n += d.Summary.TotalPlayers
	}
	return n
}
