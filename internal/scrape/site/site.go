// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package site contains the per-site scraping strategies.

Each supported source site gets one [Scraper] implementation encoding that
site's markup conventions as extraction recipes built from pkg/htmlutil
primitives. The registry maps a source URL's host onto the responsible
implementation; unknown hosts fall through to a scraper whose operations
fail explicitly rather than crash.

# Degradation policy

Field-level extraction failures inside a scraper degrade to sentinel values
(partial success beats total failure). Page-level failures — the page cannot
be fetched, or the content container is missing entirely — propagate as
typed errors so the orchestrator can skip and retry later.
*/
package site

import (
	"context"
	"errors"
)

// Sentinel values substituted when a non-critical metadata field cannot be
// extracted from the listing page.
const (
	SentinelTitle       = "Unknown Title"
	SentinelAuthor      = "Unknown Author"
	SentinelDescription = "No description"
)

var (
	// ErrUnsupportedSite means no scraper knows this site's markup.
	// Not retryable without adding a scraper implementation.
	ErrUnsupportedSite = errors.New("site: no scraper registered for this site")

	// ErrNoContent means the page fetched but its content container is
	// absent or empty. The chapter stays unfilled and a later backfill
	// run will retry it.
	ErrNoContent = errors.New("site: content container not found")
)

// Metadata is the structured result of scraping a novel's listing page.
//
// Fields that could not be extracted hold their sentinel values; CoverURL
// is empty when no cover was found.
type Metadata struct {
	Title       string
	Author      string
	Description string
	CoverURL    string
	SourceURL   string
}

// ChapterRef is one entry of a novel's chapter listing: metadata only, the
// body text is backfilled later.
type ChapterRef struct {
	Title string
	URL   string
	// Number is the 1-based position among kept entries in document
	// order. The page's own numbering is ignored.
	Number int
}

// # Scraper Contract

// Scraper is the per-site extraction strategy.
//
// Implementations hold a scoped fetch session; callers must Close the
// scraper when its unit of work ends, on every exit path.
type Scraper interface {

	/*
		ScrapeMetadata extracts the novel metadata from a listing page.

		Parameters:
		  - ctx: context.Context
		  - url: string (Listing page URL)

		Returns:
		  - *Metadata: Extracted fields, sentinels substituted for missing ones
		  - error: *fetch.HTTPError if the page itself cannot be retrieved
	*/
	ScrapeMetadata(ctx context.Context, url string) (*Metadata, error)

	/*
		ListChapters enumerates the chapter listing in document order.

		Entries without a usable link are skipped silently and do not
		create numbering gaps. A fetched page without a list container
		yields an empty slice, not an error.

		Returns:
		  - []ChapterRef: Ordered chapter references, numbered 1..n
		  - error: *fetch.HTTPError if the page cannot be retrieved
	*/
	ListChapters(ctx context.Context, url string) ([]ChapterRef, error)

	/*
		ScrapeChapter extracts a chapter page's body as normalized plain
		text: optional heading first, then non-empty paragraphs in
		document order, each part separated by a blank line.

		Returns:
		  - string: The normalized body text
		  - error: *fetch.HTTPError or ErrNoContent
	*/
	ScrapeChapter(ctx context.Context, url string) (string, error)

	// Close releases the scraper's fetch session.
	Close()
}
