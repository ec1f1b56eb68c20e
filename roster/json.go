/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/FlippedOut/pb-draw/draw"
	"github.com/FlippedOut/pb-draw/internal"
)

// record is one player as exported by earlier versions of the draw tool.
// Partnerships were written under several redundant keys; they are collapsed
// to a single partner id on the way in.
type record struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Gender       string   `json:"gender"`
	SkillRating  float64  `json:"skillRating"`
	SkillBracket string   `json:"skillBracket"`
	Division     string   `json:"division"`
	ByeCount     int      `json:"byeCount"`
	NeverWith    []string `json:"neverWith"`
	RegisteredAt string   `json:"registeredAt"`

	LockedPartner  string `json:"lockedPartner"`
	FixedPartnerID string `json:"fixedPartnerId"`
	PartnerID      string `json:"partnerId"`
	PairKey        string `json:"pairKey"`
	Locked         bool   `json:"locked"`
}

// partner resolves the legacy markers in precedence order: lockedPartner,
// fixedPartnerId, partnerId, then the other half of a "a|b" pairKey. A bare
// locked flag names no partner and is ignored.
func (r record) partner() string {
	for _, id := range []string{r.LockedPartner, r.FixedPartnerID,
		r.PartnerID} {

		if id = strings.TrimSpace(id); id != "" {
			return id
		}
	}
	if a, b, ok := strings.Cut(r.PairKey, "|"); ok {
		if a == r.ID {
			return b
		} else if b == r.ID {
			return a
		}
	}
	return ""
}

// ParseJSON reads player records from either a bare JSON array or an object
// with a "players" array.
func ParseJSON(rdr io.Reader) (Roster, error) {
	data, err := io.ReadAll(rdr)
	if err != nil {
		return Roster{}, fmt.Errorf("roster: failed to read json: %w", err)
	}

	var records []record
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapper struct {
			Players []record `json:"players"`
		}
		err = json.Unmarshal(trimmed, &wrapper)
		records = wrapper.Players
	} else {
		err = json.Unmarshal(trimmed, &records)
	}
	if err != nil {
		return Roster{}, fmt.Errorf("roster: failed to parse json: %w", err)
	}

	// explicit ids are claimed first so a made-up id never collides with one
	taken := make(map[draw.PlayerID]bool)
	for _, rec := range records {
		if strings.TrimSpace(rec.Name) == "" {
			continue
		}
		id := draw.PlayerID(strings.TrimSpace(rec.ID))
		if id == "" {
			continue
		}
		if taken[id] {
			return Roster{}, fmt.Errorf("roster: duplicate player id %v", id)
		}
		taken[id] = true
	}

	ret := newRoster()
	for i, rec := range records {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			continue
		}
		id := draw.PlayerID(strings.TrimSpace(rec.ID))
		if id == "" {
			n := i + 1
			for id = playerID(n); taken[id]; id = playerID(n) {
				n++
			}
			taken[id] = true
		}

		skill := rec.SkillRating
		if skill <= 0 {
			skill = SkillFromBracket(rec.SkillBracket)
		}
		p := draw.Player{
			ID:        id,
			Name:      name,
			Skill:     skill,
			Gender:    draw.ParseGender(rec.Gender),
			PartnerID: draw.PlayerID(rec.partner()),
			ByeCount:  max(rec.ByeCount, 0),
		}
		for _, nw := range rec.NeverWith {
			p.NeverWith = append(p.NeverWith, draw.PlayerID(nw))
		}
		ret.Players = append(ret.Players, p)

		division := rec.Division
		if division == "" {
			division = rec.SkillBracket
		}
		if division != "" {
			ret.Divisions[id] = division
		}
		if rec.RegisteredAt != "" {
			t, err := internal.ParseDateOrZero(rec.RegisteredAt)
			if err != nil {
				log.Printf("roster.json: %v: ignoring registration time %q: %v",
					id, rec.RegisteredAt, err)
			} else if !t.IsZero() {
				ret.Registered[id] = t
			}
		}
	}

	return ret, nil
}
