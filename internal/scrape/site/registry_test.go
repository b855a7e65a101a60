// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hondana/internal/scrape/site"
)

/*
TestResolve maps hosts onto scraper keys, defaulting unknown hosts to the
base key.
*/
func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "libread host",
			url:      "https://libread.com/libread/some-novel-12345",
			expected: site.KeyLibread,
		},
		{
			name:     "libread subdomain",
			url:      "https://www.libread.com/libread/some-novel-12345",
			expected: site.KeyLibread,
		},
		{
			name:     "libread mixed case host",
			url:      "https://LibRead.COM/libread/some-novel",
			expected: site.KeyLibread,
		},
		{
			name:     "unknown host",
			url:      "https://example.org/novel/1",
			expected: site.KeyBase,
		},
		{
			name:     "host fragment in path does not match",
			url:      "https://example.org/libread.com/novel",
			expected: site.KeyBase,
		},
		{
			name:     "unparseable url",
			url:      "http://\x7f",
			expected: site.KeyBase,
		},
		{
			name:     "empty url",
			url:      "",
			expected: site.KeyBase,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, site.Resolve(tc.url))
		})
	}
}

/*
TestNew_UnknownKey rejects keys no constructor claims.
*/
func TestNew_UnknownKey(t *testing.T) {
	_, err := site.New("royalroad", discardLogger())
	require.ErrorIs(t, err, site.ErrUnsupportedSite)
}

/*
TestRegistry_For_UnknownHost hands out the base scraper, whose operations
fail explicitly instead of crashing.
*/
func TestRegistry_For_UnknownHost(t *testing.T) {
	registry := site.NewRegistry(discardLogger())

	scraper, err := registry.For("https://example.org/novel/1")
	require.NoError(t, err)
	defer scraper.Close()

	_, err = scraper.ScrapeMetadata(context.Background(), "https://example.org/novel/1")
	assert.ErrorIs(t, err, site.ErrUnsupportedSite)

	_, err = scraper.ListChapters(context.Background(), "https://example.org/novel/1")
	assert.ErrorIs(t, err, site.ErrUnsupportedSite)

	_, err = scraper.ScrapeChapter(context.Background(), "https://example.org/novel/1/chapter-1")
	assert.ErrorIs(t, err, site.ErrUnsupportedSite)
}

/*
TestRegistry_For_Libread resolves libread URLs to a live scraper.
*/
func TestRegistry_For_Libread(t *testing.T) {
	registry := site.NewRegistry(discardLogger())

	scraper, err := registry.For("https://libread.com/libread/some-novel-12345")
	require.NoError(t, err)
	require.NotNil(t, scraper)
	scraper.Close()
}
