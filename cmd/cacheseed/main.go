/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/FlippedOut/pb-draw/roster"
)

// this program exists just to seed the http cache with registration exports
// ahead of an event so the draw does not wait on the registration site

const maxInFlight = 2

func rosterURLs() []string {
	urls := os.Args[1:]
	if len(urls) == 0 {
		urls = strings.Fields(os.Getenv("PBDRAW_ROSTER_URLS"))
	}
	return urls
}

func main() {
	urls := rosterURLs()
	if len(urls) == 0 {
		fmt.Fprintf(os.Stderr, "usage: cacheseed <url>... (or set PBDRAW_ROSTER_URLS)\n")
		os.Exit(1)
	}

	ctx := context.Background()
	client := roster.NewClient(ctx)

	var g errgroup.Group
	g.SetLimit(maxInFlight)
	for _, url := range urls {
		g.Go(func() error {
			r, err := roster.Fetch(ctx, client, url)
			time.Sleep(2 * time.Second) // avoid pegging the registration site
			if err != nil {
				// best effort
				fmt.Fprintf(os.Stderr, "failed to seed %v: %v\n", url, err)
				return nil
			}

			fmt.Printf("seeded %v (%v players)\n", url, len(r.Players))
			return nil
		})
	}
	_ = g.Wait()
}
