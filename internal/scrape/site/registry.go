// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/taibuivan/hondana/internal/scrape/fetch"
)

// Registered scraper keys.
const (
	KeyLibread = "libread"
	KeyBase    = "base"
)

// hostTable maps host substrings onto scraper keys. First match wins in
// declaration order; anything unmatched resolves to [KeyBase].
var hostTable = []struct {
	fragment string
	key      string
}{
	{"libread.com", KeyLibread},
}

// # Resolution

/*
Resolve maps a source URL onto the key of the scraper responsible for its
host. Unparseable URLs and unknown hosts resolve to [KeyBase], whose
scraper fails explicitly on use.

Parameters:
  - rawURL: string (Source site URL)

Returns:
  - string: A registered scraper key, [KeyBase] as the fallthrough
*/
func Resolve(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return KeyBase
	}

	host := strings.ToLower(parsed.Hostname())
	for _, entry := range hostTable {
		if strings.Contains(host, entry.fragment) {
			return entry.key
		}
	}
	return KeyBase
}

/*
New constructs the scraper registered under key.

Parameters:
  - key: string (A key returned by [Resolve])
  - logger: *slog.Logger
  - options: ...fetch.Option (Forwarded to the scraper's fetch session)

Returns:
  - Scraper: A fresh scraper owning its own fetch session
  - error: ErrUnsupportedSite for keys no constructor claims
*/
func New(key string, logger *slog.Logger, options ...fetch.Option) (Scraper, error) {
	switch key {
	case KeyLibread:
		return NewLibread(logger, options...), nil
	case KeyBase:
		return NewUnsupported(), nil
	default:
		return nil, ErrUnsupportedSite
	}
}

// # Registry

// Registry hands out per-request scrapers resolved from source URLs.
type Registry struct {
	logger  *slog.Logger
	options []fetch.Option
}

// NewRegistry creates a registry whose scrapers share the given fetch
// options.
func NewRegistry(logger *slog.Logger, options ...fetch.Option) *Registry {
	return &Registry{logger: logger, options: options}
}

// For resolves rawURL to its scraper. The caller owns the returned scraper
// and must Close it.
func (r *Registry) For(rawURL string) (Scraper, error) {
	key := Resolve(rawURL)

	scraper, err := New(key, r.logger, r.options...)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("scraper_resolved",
		slog.String("url", rawURL),
		slog.String("scraper", key),
	)
	return scraper, nil
}
