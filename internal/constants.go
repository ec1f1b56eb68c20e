/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"time"
)

const (
	UserAgent      = "pb-draw/0.4.0 (+https://github.com/FlippedOut/pb-draw)"
	WebCacheBucket = "flippedout-pb-draw-prod-webcache"
	WebCachePrefix = "rosters"

	// RosterCacheTTL bounds how stale a fetched registration page may be.
	// Registrations change up to the start of play so keep it short.
	RosterCacheTTL = 5 * time.Minute

	// FetchTimeout bounds a whole request including reading the body.
	FetchTimeout = 30 * time.Second

	// MaxRosterBytes caps a registration export; the largest real ones are
	// well under a megabyte.
	MaxRosterBytes = 4 << 20
)
