/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"fmt"
	"log"
	"strings"

	"github.com/FlippedOut/pb-draw/draw"
	"github.com/FlippedOut/pb-draw/internal"
)

// columns locates the fields we understand in a registration export header.
// Missing columns are -1.
type columns struct {
	first, last, name int
	partner           int
	bracket           int
	gender            int
	division          int
	registered        int
}

func findColumn(header []string, include []string, exclude ...string) int {
	for _, label := range include {
	next:
		for i, h := range header {
			if !strings.Contains(h, label) {
				continue
			}
			for _, x := range exclude {
				if strings.Contains(h, x) {
					continue next
				}
			}
			return i
		}
	}
	return -1
}

func newColumns(rawHeader []string) columns {
	header := make([]string, len(rawHeader))
	for i, h := range rawHeader {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	c := columns{
		first:    findColumn(header, []string{"attendee first name", "first name"}),
		last:     findColumn(header, []string{"attendee last name", "last name"}),
		name:     findColumn(header, []string{"full name", "name", "player"}, "partner", "first", "last"),
		partner:  findColumn(header, []string{"partner"}),
		bracket:  findColumn(header, []string{"i am registered", "skill", "level", "rating"}),
		gender:   findColumn(header, []string{"gender", "sex"}),
		division: findColumn(header, []string{"division", "bracket", "event"}),
	}
	c.registered = findColumn(header, []string{"registration date",
		"registration time", "registered at", "registered on", "timestamp",
		"submitted"})

	return c
}

func (c columns) named() bool {
	return (c.first >= 0 && c.last >= 0) || c.name >= 0
}

func (c columns) recognized() bool {
	return c.named() || c.partner >= 0 || c.bracket >= 0 || c.gender >= 0 ||
		c.division >= 0 || c.registered >= 0
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// fromRecords builds a roster from a header row and data rows. Rows without
// a name are skipped; player ids follow row order.
func fromRecords(header []string, rows [][]string) (Roster, error) {
	c := newColumns(header)
	if !c.recognized() && len(header) > 1 {
		return Roster{}, fmt.Errorf("roster: no recognizable columns in header %q",
			strings.Join(header, ","))
	}
	if !c.named() {
		// unlabeled name column; assume it comes first
		c.name = 0
	}

	ret := newRoster()
	partnerText := make(map[draw.PlayerID]string)
	for n, row := range rows {
		name := cell(row, c.name)
		if c.first >= 0 && c.last >= 0 {
			name = strings.TrimSpace(cell(row, c.first) + " " + cell(row, c.last))
		}
		if name == "" {
			continue
		}

		bracket := cell(row, c.bracket)
		p := draw.Player{
			ID:     playerID(len(ret.Players) + 1),
			Name:   name,
			Skill:  SkillFromBracket(bracket),
			Gender: draw.ParseGender(cell(row, c.gender)),
		}
		ret.Players = append(ret.Players, p)
		partnerText[p.ID] = cell(row, c.partner)

		division := cell(row, c.division)
		if division == "" {
			division = bracket
		}
		if division != "" {
			ret.Divisions[p.ID] = division
		}

		if raw := cell(row, c.registered); raw != "" {
			t, err := internal.ParseDateOrZero(raw)
			if err != nil {
				log.Printf("roster.parse: row %v: ignoring registration time %q: %v",
					n+1, raw, err)
			} else if !t.IsZero() {
				ret.Registered[p.ID] = t
			}
		}
	}
	ret.Suggestions = suggest(ret.Players, partnerText)

	return ret, nil
}
