/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"fmt"
	"strings"

	"github.com/FlippedOut/pb-draw/draw"
)

// BuildDrawOutput formats every division's rounds into aligned court tables.
func BuildDrawOutput(r *Result) string {
	var sb strings.Builder
	if r == nil || len(r.Divisions) == 0 {
		sb.WriteString("No draw generated\n")
		return sb.String()
	}

	for _, d := range r.Divisions {
		if len(r.Divisions) > 1 {
			sb.WriteString(fmt.Sprintf("%s Division\n", d.Name))
		}
		sb.WriteString(BuildSummaryLine(d.Summary))
		sb.WriteString("\n\n")
		for _, round := range d.Summary.Draws {
			sb.WriteString(BuildRoundOutput(round))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// BuildSummaryLine describes a division's draw in one line.
func BuildSummaryLine(s draw.DrawSummary) string {
	courts := fmt.Sprintf("court %d", s.StartCourt)
	if s.Courts > 1 {
		courts = fmt.Sprintf("courts %d-%d", s.StartCourt,
			s.StartCourt+s.Courts-1)
	} else if s.Courts <= 0 {
		courts = "no courts"
	}

	return fmt.Sprintf("%d players, %d rounds, %s, games to %d",
		s.TotalPlayers, s.TotalRounds, courts, s.ToScore)
}

// BuildRoundOutput formats one round as a court table followed by its byes.
func BuildRoundOutput(round draw.Round) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Round %d\n", round.Number))

	type row struct{ court, team1, team2 string }
	var rows []row
	for _, m := range round.Matches {
		rows = append(rows, row{
			court: fmt.Sprintf("%d.", m.Court),
			team1: teamName(m.Team1),
			team2: teamName(m.Team2),
		})
	}

	maxC, maxT1 := len("Court"), len("Team 1")
	for _, r := range rows {
		if l := len(r.court); l > maxC {
			maxC = l
		}
		if l := len(r.team1); l > maxT1 {
			maxT1 = l
		}
	}

	if len(rows) > 0 {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %s\n", maxC, "Court", maxT1,
			"Team 1", "Team 2"))
		for _, r := range rows {
			sb.WriteString(fmt.Sprintf("%-*s  %-*s  %s\n", maxC, r.court,
				maxT1, r.team1, r.team2))
		}
	} else {
		sb.WriteString("No matches\n")
	}

	if len(round.Byes) > 0 {
		var byes []string
		for _, p := range round.Byes {
			byes = append(byes, p.Name)
		}
		sb.WriteString(fmt.Sprintf("Byes: %s\n", strings.Join(byes, ", ")))
	}

	return sb.String()
}

// BuildDivisionsOutput lists divisions in play order with their players.
func BuildDivisionsOutput(names []string, groups map[string][]draw.Player) string {
	var sb strings.Builder
	if len(names) == 0 {
		sb.WriteString("No divisions\n")
		return sb.String()
	}

	maxN := 0
	for _, n := range names {
		maxN = max(maxN, len(n))
	}
	for _, n := range names {
		var players []string
		for _, p := range groups[n] {
			players = append(players, p.Name)
		}
		sb.WriteString(fmt.Sprintf("%-*s  %3d  %s\n", maxN, n, len(players),
			strings.Join(players, ", ")))
	}

	return sb.String()
}

func teamName(team [2]draw.Player) string {
	return fmt.Sprintf("%s / %s", playerName(team[0]), playerName(team[1]))
}

func playerName(p draw.Player) string {
	if p.Skill <= 0 {
		return p.Name
	}
	return fmt.Sprintf("%s(%.1f)", p.Name, p.Skill)
}
