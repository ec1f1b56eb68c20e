/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"fmt"
	"strings"
)

// BuildRosterOutput formats a roster into an aligned table followed by any
// unconfirmed partner suggestions.
func BuildRosterOutput(r Roster) string {
	var sb strings.Builder
	if len(r.Players) == 0 {
		sb.WriteString("No players found\n")
		return sb.String()
	}

	type row struct{ id, name, skill, gender, division, partner string }
	var rows []row
	for _, p := range r.Players {
		partner := ""
		if p.PartnerID != "" {
			if q, ok := r.Player(p.PartnerID); ok && q.PartnerID == p.ID {
				partner = q.Name
			} else {
				partner = fmt.Sprintf("%v (unmatched)", p.PartnerID)
			}
		}
		rows = append(rows, row{
			id:       string(p.ID),
			name:     p.Name,
			skill:    fmt.Sprintf("%.2f", p.Skill),
			gender:   p.Gender.String(),
			division: r.Division(p.ID),
			partner:  partner,
		})
	}

	maxID, maxN, maxS := len("ID"), len("Name"), len("Skill")
	maxG, maxD := len("Gender"), len("Division")
	for _, rw := range rows {
		maxID = max(maxID, len(rw.id))
		maxN = max(maxN, len(rw.name))
		maxS = max(maxS, len(rw.skill))
		maxG = max(maxG, len(rw.gender))
		maxD = max(maxD, len(rw.division))
	}

	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %-*s  %s\n", maxID, "ID",
		maxN, "Name", maxS, "Skill", maxG, "Gender", maxD, "Division",
		"Partner"))
	for _, rw := range rows {
		line := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %-*s  %s", maxID, rw.id,
			maxN, rw.name, maxS, rw.skill, maxG, rw.gender, maxD, rw.division,
			rw.partner)
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("\n%d players\n", len(r.Players)))

	if len(r.Suggestions) > 0 {
		sb.WriteString("\nSuggested partners (confirm with -confirm):\n")
		for _, s := range r.Suggestions {
			sb.WriteString(fmt.Sprintf("  - %v\n", s))
		}
	}

	return sb.String()
}
