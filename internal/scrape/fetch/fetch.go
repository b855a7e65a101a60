// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package fetch provides the scoped HTTP session used by site scrapers.

A [Session] owns one underlying HTTP client per scraping unit of work. The
client is acquired lazily on the first fetch and must be released with
[Session.Close] when the scraper's session ends — scrapers guarantee this on
every exit path via defer.

Failures are typed: transport errors and non-2xx statuses both surface as
[*HTTPError], so callers decide whether a missing page is fatal.
*/
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/taibuivan/hondana/internal/platform/constants"
)

// defaultTimeout bounds a single page fetch, including redirects.
const defaultTimeout = 30 * time.Second

// HTTPError is the typed failure for an unfetchable page.
//
// Status is zero for pure transport errors (DNS, timeout, connection reset).
type HTTPError struct {
	// URL is the page that failed to fetch.
	URL string
	// Status is the HTTP status code, or 0 if the request never completed.
	Status int
	// cause is the underlying transport error, if any.
	cause error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch: %s returned status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch: %s failed: %v", e.URL, e.cause)
}

// Unwrap exposes the transport cause for [errors.Is] / [errors.As].
func (e *HTTPError) Unwrap() error { return e.cause }

// # Session

// Session is a scoped fetch client for one scraping unit of work.
//
// # Concurrency
//
// A Session is safe for sequential use only; scrapers fetch one page at a
// time, which also keeps load on the source site bounded.
type Session struct {
	mu      sync.Mutex
	client  *resty.Client
	limiter *rate.Limiter
	timeout time.Duration
	logger  *slog.Logger
}

// Option customizes a Session.
type Option func(*Session)

// WithTimeout overrides the per-fetch timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Session) { s.timeout = timeout }
}

// NewSession creates a session whose HTTP client is acquired lazily on the
// first call to [Session.Get].
func NewSession(logger *slog.Logger, options ...Option) *Session {
	session := &Session{
		limiter: rate.NewLimiter(rate.Limit(constants.FetchRPS), constants.FetchBurst),
		timeout: defaultTimeout,
		logger:  logger,
	}
	for _, option := range options {
		option(session)
	}
	return session
}

// acquire returns the underlying client, creating it on first use.
func (s *Session) acquire() *resty.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		// Redirects are followed transparently (net/http default, 10 hops).
		s.client = resty.New().
			SetTimeout(s.timeout).
			SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		s.logger.Debug("fetch_session_acquired")
	}
	return s.client
}

/*
Get fetches a page and returns its raw document text.

Parameters:
  - ctx: context.Context bounding the fetch alongside the session timeout.
  - url: string (Absolute page URL)

Returns:
  - string: The response body
  - error: *HTTPError on transport failure or non-2xx status
*/
func (s *Session) Get(ctx context.Context, url string) (string, error) {

	// Polite pacing against the source site.
	if err := s.limiter.Wait(ctx); err != nil {
		return "", &HTTPError{URL: url, cause: err}
	}

	response, err := s.acquire().R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		s.logger.Warn("fetch_failed", slog.String("url", url), slog.Any("error", err))
		return "", &HTTPError{URL: url, cause: err}
	}

	if response.StatusCode() < 200 || response.StatusCode() > 299 {
		s.logger.Warn("fetch_bad_status",
			slog.String("url", url),
			slog.Int("status", response.StatusCode()),
		)
		return "", &HTTPError{URL: url, Status: response.StatusCode()}
	}

	s.logger.Debug("fetch_ok",
		slog.String("url", url),
		slog.Int("bytes", len(response.Body())),
	)

	return string(response.Body()), nil
}

// Close releases the session's connection resources. Safe to call multiple
// times and on sessions that never fetched.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		s.client.GetClient().CloseIdleConnections()
		s.client = nil
		s.logger.Debug("fetch_session_released")
	}
}
