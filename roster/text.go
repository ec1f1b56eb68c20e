/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseText parses a pasted CSV or TSV registration export. The first line is
// the header; tab separated input is detected from it. Recognized columns are
// attendee first/last name (or a single name column), partner, the "I am
// registered to play at this level" skill bracket, gender, division and
// registration time.
func ParseText(text string) (Roster, error) {
	text = strings.TrimSpace(strings.TrimPrefix(text, "\ufeff"))
	if text == "" {
		return newRoster(), nil
	}

	rdr := csv.NewReader(strings.NewReader(text))
	firstLine, _, _ := strings.Cut(text, "\n")
	if strings.Contains(firstLine, "\t") {
		rdr.Comma = '\t'
	}
	rdr.FieldsPerRecord = -1
	rdr.LazyQuotes = true
	rdr.TrimLeadingSpace = true

	header, err := rdr.Read()
	if err != nil {
		return Roster{}, fmt.Errorf("roster: failed to read header: %w", err)
	}
	var rows [][]string
	for {
		row, err := rdr.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return Roster{}, fmt.Errorf("roster: failed to read row: %w", err)
		}
		rows = append(rows, row)
	}

	return fromRecords(header, rows)
}
