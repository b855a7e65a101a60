// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hondana/internal/scrape/site"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// serveHTML runs a test server answering every path with the given page.
func serveHTML(t *testing.T, page string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(server.Close)
	return server
}

const listingPage = `<!DOCTYPE html>
<html><body>
<div class="pic"><img src="/covers/orv.jpg" alt="cover"></div>
<div class="m-desc">
  <h1 class="tit">  Omniscient   Reader's Viewpoint </h1>
  <div class="item">
    <span class="glyphicon glyphicon-user"></span>
    <a class="a1" href="/author/sing-shong">Sing Shong</a>
  </div>
  <div class="txt">
    <p>Only I know the end of this world.</p>
    <p>One day the novel I was reading became reality.</p>
  </div>
</div>
<ul class="ul-list5" id="idData">
  <li><a class="con" href="/chapter-1">Chapter 1: Prologue</a></li>
  <li><span>advertisement</span></li>
  <li><a class="con" href="/chapter-2">Chapter 2: Starting</a></li>
  <li><a class="con" href="https://elsewhere.example/chapter-3">Chapter 3</a></li>
</ul>
</body></html>`

/*
TestLibread_ScrapeMetadata extracts every field from a fully populated
listing page, normalizing whitespace and resolving the cover URL.
*/
func TestLibread_ScrapeMetadata(t *testing.T) {
	server := serveHTML(t, listingPage)

	scraper := site.NewLibread(discardLogger())
	defer scraper.Close()

	metadata, err := scraper.ScrapeMetadata(context.Background(), server.URL+"/novel/orv")
	require.NoError(t, err)

	assert.Equal(t, "Omniscient Reader's Viewpoint", metadata.Title)
	assert.Equal(t, "Sing Shong", metadata.Author)
	assert.Equal(t,
		"Only I know the end of this world. One day the novel I was reading became reality.",
		metadata.Description,
	)
	assert.Equal(t, server.URL+"/covers/orv.jpg", metadata.CoverURL)
	assert.Equal(t, server.URL+"/novel/orv", metadata.SourceURL)
}

/*
TestLibread_ScrapeMetadata_Sentinels degrades missing fields independently
instead of failing the whole page.
*/
func TestLibread_ScrapeMetadata_Sentinels(t *testing.T) {
	server := serveHTML(t, `<html><body><div class="m-desc"></div></body></html>`)

	scraper := site.NewLibread(discardLogger())
	defer scraper.Close()

	metadata, err := scraper.ScrapeMetadata(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, site.SentinelTitle, metadata.Title)
	assert.Equal(t, site.SentinelAuthor, metadata.Author)
	assert.Equal(t, site.SentinelDescription, metadata.Description)
	assert.Empty(t, metadata.CoverURL)
}

/*
TestLibread_ScrapeMetadata_DescriptionFallback uses the container text when
the description holds no paragraph elements.
*/
func TestLibread_ScrapeMetadata_DescriptionFallback(t *testing.T) {
	server := serveHTML(t, `<html><body>
		<div class="m-desc"><div class="txt">  Bare   text description.  </div></div>
	</body></html>`)

	scraper := site.NewLibread(discardLogger())
	defer scraper.Close()

	metadata, err := scraper.ScrapeMetadata(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Bare text description.", metadata.Description)
}

/*
TestLibread_ListChapters keeps document order, skips link-less entries
without leaving numbering gaps, and resolves relative links.
*/
func TestLibread_ListChapters(t *testing.T) {
	server := serveHTML(t, listingPage)

	scraper := site.NewLibread(discardLogger())
	defer scraper.Close()

	chapters, err := scraper.ListChapters(context.Background(), server.URL+"/novel/orv")
	require.NoError(t, err)
	require.Len(t, chapters, 3)

	assert.Equal(t, "Chapter 1: Prologue", chapters[0].Title)
	assert.Equal(t, server.URL+"/chapter-1", chapters[0].URL)
	assert.Equal(t, 1, chapters[0].Number)

	// The decorative entry between 1 and 2 must not shift numbering.
	assert.Equal(t, "Chapter 2: Starting", chapters[1].Title)
	assert.Equal(t, 2, chapters[1].Number)

	// Absolute links pass through untouched.
	assert.Equal(t, "https://elsewhere.example/chapter-3", chapters[2].URL)
	assert.Equal(t, 3, chapters[2].Number)
}

/*
TestLibread_ListChapters_MissingContainer treats a listing without the
chapter container as an empty novel.
*/
func TestLibread_ListChapters_MissingContainer(t *testing.T) {
	server := serveHTML(t, `<html><body><p>nothing here</p></body></html>`)

	scraper := site.NewLibread(discardLogger())
	defer scraper.Close()

	chapters, err := scraper.ListChapters(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Empty(t, chapters)
}

const chapterPage = `<!DOCTYPE html>
<html><body>
<div id="article">
  <h4>Chapter 1: Prologue</h4>
  <script>trackPageView();</script>
  <div class="inner">
    <p>There are three ways to survive in a ruined world.</p>
    <div><p>Now, I have forgotten a few of them.</p></div>
  </div>
  <p>   </p>
  <p>However, one thing is certain.</p>
  <footer>Next chapter button</footer>
</div>
</body></html>`

/*
TestLibread_ScrapeChapter returns the heading first, then each non-empty
paragraph in document order, separated by blank lines, with noise subtrees
excluded.
*/
func TestLibread_ScrapeChapter(t *testing.T) {
	server := serveHTML(t, chapterPage)

	scraper := site.NewLibread(discardLogger())
	defer scraper.Close()

	body, err := scraper.ScrapeChapter(context.Background(), server.URL+"/chapter-1")
	require.NoError(t, err)

	expected := "Chapter 1: Prologue\n\n" +
		"There are three ways to survive in a ruined world.\n\n" +
		"Now, I have forgotten a few of them.\n\n" +
		"However, one thing is certain."
	assert.Equal(t, expected, body)
	assert.NotContains(t, body, "trackPageView")
	assert.NotContains(t, body, "Next chapter")
}

/*
TestLibread_ScrapeChapter_MissingContainer fails with ErrNoContent when the
content container is absent.
*/
func TestLibread_ScrapeChapter_MissingContainer(t *testing.T) {
	server := serveHTML(t, `<html><body><p>wrong page</p></body></html>`)

	scraper := site.NewLibread(discardLogger())
	defer scraper.Close()

	_, err := scraper.ScrapeChapter(context.Background(), server.URL)
	require.ErrorIs(t, err, site.ErrNoContent)
}

/*
TestLibread_ScrapeChapter_EmptyContainer fails with ErrNoContent when the
container yields no usable text.
*/
func TestLibread_ScrapeChapter_EmptyContainer(t *testing.T) {
	server := serveHTML(t, `<html><body><div id="article"><p>   </p></div></body></html>`)

	scraper := site.NewLibread(discardLogger())
	defer scraper.Close()

	_, err := scraper.ScrapeChapter(context.Background(), server.URL)
	require.ErrorIs(t, err, site.ErrNoContent)
}

/*
TestLibread_ScrapeChapter_Degenerate exercises a large flat chapter to make
sure paragraph collection scales linearly and stays ordered.
*/
func TestLibread_ScrapeChapter_Degenerate(t *testing.T) {
	page := `<html><body><div id="article">`
	for i := 1; i <= 200; i++ {
		page += fmt.Sprintf("<p>Paragraph %d.</p>", i)
	}
	page += `</div></body></html>`
	server := serveHTML(t, page)

	scraper := site.NewLibread(discardLogger())
	defer scraper.Close()

	body, err := scraper.ScrapeChapter(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, body, "Paragraph 1.\n\nParagraph 2.")
	assert.Contains(t, body, "Paragraph 200.")
}
