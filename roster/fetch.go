/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/FlippedOut/pb-draw/internal"
)

// NewClient returns the http client used for registration pages: cached in
// the shared S3 web cache for internal.RosterCacheTTL.
func NewClient(ctx context.Context) *http.Client {
	return internal.NewCachedHttpClient(ctx, internal.RosterCacheTTL)
}

// ErrRosterTooLarge is returned when an export exceeds
// internal.MaxRosterBytes.
var ErrRosterTooLarge = errors.New("roster: export too large")

// NewPublicClient is NewClient restricted to public internet addresses, for
// urls supplied by people other than the operator.
func NewPublicClient(ctx context.Context) *http.Client {
	return internal.NewCachedHttpClientWithTransport(ctx,
		internal.NewPublicTransport(), internal.RosterCacheTTL)
}

// CheckRemoteURL rejects urls that are not https or whose host is not on
// the public internet.
func CheckRemoteURL(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("roster: invalid url %q: %w", rawURL, err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("roster: only https urls are allowed (got %q)", u.Scheme)
	}
	host := u.Hostname()
	if host == "" || strings.EqualFold(host, "localhost") {
		return fmt.Errorf("roster: url %q has no public host", rawURL)
	}
	if err := internal.CheckPublicHost(ctx, host); err != nil {
		return fmt.Errorf("roster: %w", err)
	}
	return nil
}

// Fetch downloads a registration export and parses it according to its
// content type, falling back to the url's extension and then the body
// itself.
func Fetch(ctx context.Context, client *http.Client, src string) (Roster, error) {
	if client == nil {
		client = &http.Client{Timeout: internal.FetchTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, "GET", src, nil)
	if err != nil {
		return Roster{}, fmt.Errorf("roster: failed to build request for %v: %w",
			src, err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return Roster{}, fmt.Errorf("roster: failed to fetch %v: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Roster{}, fmt.Errorf("roster: status %d fetching %s",
			resp.StatusCode, src)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, internal.MaxRosterBytes+1))
	if err != nil {
		return Roster{}, fmt.Errorf("roster: failed to read %v: %w", src, err)
	}
	if len(data) > internal.MaxRosterBytes {
		return Roster{}, fmt.Errorf("%w: %v is over %d bytes", ErrRosterTooLarge,
			src, internal.MaxRosterBytes)
	}

	format := formatFromContentType(resp.Header.Get("Content-Type"))
	if format == formatUnknown {
		format = formatFromName(req.URL.Path)
	}

	return parse(format, data)
}

// Load reads a roster from a local file or, for http(s) sources, fetches it
// with client.
func Load(ctx context.Context, client *http.Client, src string) (Roster, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return Fetch(ctx, client, src)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return Roster{}, fmt.Errorf("roster: failed to read %v: %w", src, err)
	}

	return parse(formatFromName(src), data)
}

type format int

const (
	formatUnknown format = iota
	formatText
	formatJSON
	formatHTML
)

func formatFromContentType(ct string) format {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return formatUnknown
	}
	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return formatJSON
	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		return formatHTML
	case mediaType == "text/csv" || mediaType == "text/tab-separated-values":
		return formatText
	}
	return formatUnknown
}

func formatFromName(name string) format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return formatJSON
	case ".html", ".htm":
		return formatHTML
	case ".csv", ".tsv", ".txt":
		return formatText
	}
	return formatUnknown
}

func sniff(data []byte) format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return formatText
	}
	switch trimmed[0] {
	case '<':
		return formatHTML
	case '[', '{':
		return formatJSON
	}
	return formatText
}

func parse(f format, data []byte) (Roster, error) {
	if f == formatUnknown {
		f = sniff(data)
	}
	switch f {
	case formatJSON:
		return ParseJSON(bytes.NewReader(data))
	case formatHTML:
		return ParseHTML(bytes.NewReader(data))
	}
	return ParseText(string(data))
}
