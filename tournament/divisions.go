/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"sort"
	"strconv"
	"strings"

	"github.com/FlippedOut/pb-draw/draw"
	"github.com/FlippedOut/pb-draw/roster"
)

// Unassigned names the division of players who registered without one.
const Unassigned = "Unassigned"

// DivisionSorter implements sort.Interface for custom division ordering.
// Order: "Open" first, then skill brackets descending by their leading
// rating ("4.0+" before "3.5-3.99"), then others lexicographically, with
// Unassigned last.
type DivisionSorter []string

func (s DivisionSorter) Len() int { return len(s) }

func (s DivisionSorter) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s DivisionSorter) Less(i, j int) bool {
	a, b := s[i], s[j]
	if strings.EqualFold(a, "Open") != strings.EqualFold(b, "Open") {
		return strings.EqualFold(a, "Open")
	}
	if (a == Unassigned) != (b == Unassigned) {
		return b == Unassigned
	}
	ra, okA := leadingRating(a)
	rb, okB := leadingRating(b)
	if okA && okB && ra != rb {
		return ra > rb
	}
	// rated brackets before named divisions
	if okA != okB {
		return okA
	}
	return a < b
}

func leadingRating(name string) (float64, bool) {
	end := 0
	for end < len(name) && (name[end] == '.' || (name[end] >= '0' &&
		name[end] <= '9')) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(name[:end], 64)
	return v, err == nil
}

// GroupByDivision splits a roster's players by division, preserving roster
// order within each division, and returns the division names in
// DivisionSorter order.
func GroupByDivision(r roster.Roster) ([]string, map[string][]draw.Player) {
	groups := make(map[string][]draw.Player)
	for _, p := range r.Players {
		d := strings.TrimSpace(r.Division(p.ID))
		if d == "" {
			d = Unassigned
		}
		groups[d] = append(groups[d], p)
	}

	names := make([]string, 0, len(groups))
	for d := range groups {
		names = append(names, d)
	}
	sort.Sort(DivisionSorter(names))

	return names, groups
}
