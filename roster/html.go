/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML reads the registration table from a registration page: the
// table with id "members" if present, otherwise the first table whose header
// row mentions a name.
func ParseHTML(rdr io.Reader) (Roster, error) {
	doc, err := goquery.NewDocumentFromReader(rdr)
	if err != nil {
		return Roster{}, fmt.Errorf("roster: failed to parse html: %w", err)
	}

	table := findRegistrationTable(doc)
	if table == nil {
		return Roster{}, fmt.Errorf("roster: no registration table found")
	}

	var header []string
	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(_ int, c *goquery.Selection) {
			cells = append(cells, cellText(c))
		})
		if len(cells) == 0 {
			return
		}
		if header == nil {
			header = cells
			return
		}
		rows = append(rows, cells)
	})
	if header == nil {
		return Roster{}, fmt.Errorf("roster: registration table is empty")
	}

	return fromRecords(header, rows)
}

func findRegistrationTable(doc *goquery.Document) *goquery.Selection {
	if t := doc.Find("table#members").First(); t.Length() > 0 {
		return t
	}

	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		first := t.Find("tr").First()
		headerText := strings.ToLower(first.Text())
		if strings.Contains(headerText, "name") {
			found = t
			return false
		}
		return true
	})

	return found
}

// cellText collapses the whitespace html layout leaves inside a cell.
func cellText(c *goquery.Selection) string {
	return strings.Join(strings.Fields(c.Text()), " ")
}
