/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gregjones/httpcache"
)

func fetchTwice(t *testing.T, client *http.Client, url string) []*http.Response {
	t.Helper()

	var resps []*http.Response
	for i := 0; i < 2; i++ {
		resp, err := client.Get(url)
		if err != nil {
			t.Fatalf("Get %v failed: %v", url, err)
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("Failed to read response body: %v", err)
		}
		if len(data) == 0 {
			t.Errorf("Empty data")
		}
		resps = append(resps, resp)
	}

	return resps
}

func TestTTLOverride(t *testing.T) {
	hits := 0
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter,
		r *http.Request) {

		hits++
		agent = r.Header.Get("User-Agent")
		w.Header().Set("Cache-Control", "no-store, no-cache")
		w.Header().Set("Pragma", "no-cache")
		fmt.Fprint(w, "name,partner\n")
	}))
	defer srv.Close()

	client := NewClientWithCache(httpcache.NewMemoryCache(),
		http.DefaultTransport, time.Minute)
	resps := fetchTwice(t, client, srv.URL)

	if hits != 1 {
		t.Errorf("origin hits = %d; want 1", hits)
	}
	if resps[1].Header.Get(httpcache.XFromCache) != "1" {
		t.Errorf("object not cached")
	}
	if agent != UserAgent {
		t.Errorf("User-Agent = %q; want %q", agent, UserAgent)
	}
}

func TestS3HttpClient(t *testing.T) {
	client := NewCachedHttpClient(context.Background(), time.Minute)
	if client.Timeout != FetchTimeout {
		t.Errorf("Timeout = %v; want %v", client.Timeout, FetchTimeout)
	}
	if _, ok := client.Transport.(*httpcache.Transport); !ok {
		t.Skip("Skipping test because http client is uncached")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter,
		r *http.Request) {

		fmt.Fprintf(w, "seeded at %v\n", time.Now().UnixNano())
	}))
	defer srv.Close()

	resps := fetchTwice(t, client, srv.URL)
	if resps[1].Header.Get(httpcache.XFromCache) != "1" {
		t.Errorf("object not cached")
	}
}
