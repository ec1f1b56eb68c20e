/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package draw

// Resolve splits a pool into accepted locked pairs and singles. A partnership
// is accepted only if both players are in the pool, each references the other
// and neither was consumed by an earlier partnership; the first one seen wins.
// Singles keep their pool order. Resolve does not modify its input so it can
// be run on the full roster and again on the players left after byes.
func Resolve(pool []*Player) ([]LockedPair, []*Player) {
	byID := make(map[PlayerID]*Player, len(pool))
	for _, p := range pool {
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = p
		}
	}

	consumed := make(map[PlayerID]bool)
	var pairs []LockedPair
	for _, p := range pool {
		if consumed[p.ID] || p.PartnerID == "" || p.PartnerID == p.ID {
			continue
		}
		partner, ok := byID[p.PartnerID]
		if !ok || consumed[partner.ID] || partner.PartnerID != p.ID {
			continue
		}
		consumed[p.ID] = true
		consumed[partner.ID] = true
		pairs = append(pairs, LockedPair{p, partner})
	}

	singles := make([]*Player, 0, len(pool)-2*len(pairs))
	for _, p := range pool {
		if !consumed[p.ID] {
			singles = append(singles, p)
		}
	}

	return pairs, singles
}
