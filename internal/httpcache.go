/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/FlippedOut/pb-draw/s3cache"
	"github.com/gregjones/httpcache"
)

// NewCachedHttpClient returns an http.Client that caches responses in the
// S3 web cache bucket for maxAge regardless of what the origin asks for. If
// the bucket cannot be reached it falls back to the uncached default client.
func NewCachedHttpClient(ctx context.Context, maxAge time.Duration) *http.Client {
	return NewCachedHttpClientWithTransport(ctx, http.DefaultTransport, maxAge)
}

// NewCachedHttpClientWithTransport is NewCachedHttpClient with origin
// requests sent through rt.
func NewCachedHttpClientWithTransport(ctx context.Context, rt http.RoundTripper,
	maxAge time.Duration) *http.Client {

	cache := s3cache.New(ctx, s3cache.Options{
		Bucket:    WebCacheBucket,
		Prefix:    WebCachePrefix,
		Gzip:      true,
		LogErrors: true,
	})
	if err := cache.Init(); err != nil {
		log.Printf("httpcache: warning failed to init S3 cache: %v; falling back to uncached http",
			err)
		return &http.Client{Transport: rt, Timeout: FetchTimeout}
	}

	return NewClientWithCache(cache, rt, maxAge)
}

// NewClientWithCache wires cache in front of rt with the origin's caching
// headers replaced by a fixed max-age.
func NewClientWithCache(cache httpcache.Cache, rt http.RoundTripper,
	maxAge time.Duration) *http.Client {

	hc := httpcache.NewTransport(cache)
	// registration sites tend to send no-cache; override it so the TTL holds
	hc.Transport = NewTTLOverrideTransport(rt, maxAge)

	return &http.Client{Transport: hc, Timeout: FetchTimeout}
}

func NewTTLOverrideTransport(rt http.RoundTripper,
	maxAge time.Duration) *HeaderOverrideTransport {

	return &HeaderOverrideTransport{
		wrappedRT: rt,
		Request: func(req *http.Request) {
			if req.Header.Get("User-Agent") == "" {
				req.Header.Set("User-Agent", UserAgent)
			}
		},
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			resp.Header.Set("Cache-Control",
				fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}
}

type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	wrappedRT http.RoundTripper
}

// RoundTrip applies Request and Response hooks around the underlying transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don't stomp on the caller's original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	rt := t.wrappedRT
	if rt == nil {
		rt = http.DefaultTransport
	}
	resp, err := rt.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			resp.Body.Close()
			return nil, err
		}
	}
	return resp, nil
}
