// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import "context"

// unsupported is the fallthrough scraper for hosts no implementation
// claims. It exists so "unsupported site" is an explicit, catchable
// outcome instead of a crash deep inside the pipeline.
type unsupported struct{}

// NewUnsupported returns the default scraper whose operations always fail
// with [ErrUnsupportedSite].
func NewUnsupported() Scraper {
	return unsupported{}
}

// ScrapeMetadata always fails with [ErrUnsupportedSite].
func (unsupported) ScrapeMetadata(ctx context.Context, url string) (*Metadata, error) {
	return nil, ErrUnsupportedSite
}

// ListChapters always fails with [ErrUnsupportedSite].
func (unsupported) ListChapters(ctx context.Context, url string) ([]ChapterRef, error) {
	return nil, ErrUnsupportedSite
}

// ScrapeChapter always fails with [ErrUnsupportedSite].
func (unsupported) ScrapeChapter(ctx context.Context, url string) (string, error) {
	return "", ErrUnsupportedSite
}

// Close is a no-op; the unsupported scraper never opens a session.
func (unsupported) Close() {}
