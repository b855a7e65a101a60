// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/taibuivan/hondana/internal/scrape/fetch"
	"github.com/taibuivan/hondana/pkg/htmlutil"
)

// Markup conventions of libread.com listing and chapter pages.
const (
	libreadTitleSelector   = "div.m-desc h1.tit"
	libreadAuthorIcon      = "span.glyphicon-user"
	libreadAuthorItem      = "div.item"
	libreadAuthorLink      = "a.a1"
	libreadDescContainer   = "div.m-desc div.txt"
	libreadCoverContainer  = "div.pic img"
	libreadChapterList     = "ul.ul-list5#idData"
	libreadChapterLink     = "a.con[href]"
	libreadContentSelector = "div#article"
	libreadHeadingSelector = "h4"
)

// noiseTags are stripped from chapter content working copies before
// paragraph extraction.
var noiseTags = []string{"script", "style", "nav", "header", "footer"}

// libread scrapes libread.com.
type libread struct {
	session *fetch.Session
	logger  *slog.Logger
}

// NewLibread constructs the libread.com [Scraper] with its own scoped
// fetch session.
func NewLibread(logger *slog.Logger, options ...fetch.Option) Scraper {
	return &libread{
		session: fetch.NewSession(logger, options...),
		logger:  logger,
	}
}

// Close releases the underlying fetch session.
func (s *libread) Close() {
	s.session.Close()
}

// # Listing Metadata

/*
ScrapeMetadata extracts title, author, description, and cover image from a
libread listing page. Every field degrades to its sentinel independently;
only an unfetchable page fails the operation.
*/
func (s *libread) ScrapeMetadata(ctx context.Context, url string) (*Metadata, error) {
	rawHTML, err := s.session.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	document, err := htmlutil.Parse(rawHTML)
	if err != nil {
		// A page that cannot be tokenized at all is treated as unusable.
		return nil, err
	}

	metadata := &Metadata{
		Title:       SentinelTitle,
		Author:      SentinelAuthor,
		Description: SentinelDescription,
		SourceURL:   url,
	}

	// Title
	if title := htmlutil.Text(document.Find(libreadTitleSelector).First()); title != "" {
		metadata.Title = title
	}

	// Author: the icon anchors the lookup, the name lives on a sibling link.
	authorLink := document.Find(libreadAuthorIcon).
		Closest(libreadAuthorItem).
		Find(libreadAuthorLink).
		First()
	if author := htmlutil.Text(authorLink); author != "" {
		metadata.Author = author
	}

	// Description: prefer joined paragraphs, fall back to the raw container text.
	if container := document.Find(libreadDescContainer).First(); container.Length() > 0 {
		var paragraphs []string
		container.Find("p").Each(func(_ int, p *goquery.Selection) {
			if text := htmlutil.Text(p); text != "" {
				paragraphs = append(paragraphs, text)
			}
		})

		if len(paragraphs) > 0 {
			metadata.Description = strings.Join(paragraphs, " ")
		} else if text := htmlutil.Text(container); text != "" {
			metadata.Description = text
		}
	}

	// Cover image, resolved against the listing URL when relative.
	if src, ok := document.Find(libreadCoverContainer).First().Attr("src"); ok && src != "" {
		metadata.CoverURL = htmlutil.ResolveURL(url, src)
	}

	s.logger.Info("metadata_scraped",
		slog.String("url", url),
		slog.String("title", metadata.Title),
		slog.String("author", metadata.Author),
		slog.Int("description_len", len(metadata.Description)),
	)

	return metadata, nil
}

// # Chapter Listing

/*
ListChapters walks the listing container in document order and returns one
[ChapterRef] per entry carrying a usable link. Numbers are assigned by
position among the kept entries.
*/
func (s *libread) ListChapters(ctx context.Context, url string) ([]ChapterRef, error) {
	rawHTML, err := s.session.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	document, err := htmlutil.Parse(rawHTML)
	if err != nil {
		return nil, err
	}

	container := document.Find(libreadChapterList).First()
	if container.Length() == 0 {
		// A listing without the container is an empty novel, not a failure.
		s.logger.Warn("chapter_list_container_missing", slog.String("url", url))
		return nil, nil
	}

	var chapters []ChapterRef
	container.Find("li").Each(func(_ int, item *goquery.Selection) {
		link := item.Find(libreadChapterLink).First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			// Entries without a link are decorative; skip without
			// shifting the numbering of real entries.
			return
		}

		absolute := htmlutil.ResolveURL(url, href)
		if absolute == "" {
			return
		}

		chapters = append(chapters, ChapterRef{
			Title:  htmlutil.Text(link),
			URL:    absolute,
			Number: len(chapters) + 1,
		})
	})

	s.logger.Info("chapter_list_scraped",
		slog.String("url", url),
		slog.Int("chapters", len(chapters)),
	)

	return chapters, nil
}

// # Chapter Content

/*
ScrapeChapter normalizes a chapter page into plain text.

The content container is cloned before cleanup so the fetched document
stays reusable; noise subtrees are stripped and nested wrapper divs are
flattened before paragraph collection.
*/
func (s *libread) ScrapeChapter(ctx context.Context, url string) (string, error) {
	rawHTML, err := s.session.Get(ctx, url)
	if err != nil {
		return "", err
	}

	document, err := htmlutil.Parse(rawHTML)
	if err != nil {
		return "", err
	}

	content := document.Find(libreadContentSelector).First()
	if content.Length() == 0 {
		s.logger.Warn("chapter_content_missing", slog.String("url", url))
		return "", ErrNoContent
	}

	// Heading first, read before any mutation.
	title := htmlutil.Text(content.Find(libreadHeadingSelector).First())

	// All cleanup happens on a working copy.
	working := content.Clone()
	htmlutil.Strip(working, noiseTags...)
	htmlutil.UnwrapAll(working, "div")

	var parts []string
	if title != "" {
		parts = append(parts, title)
	}

	working.Find("p").Each(func(_ int, paragraph *goquery.Selection) {
		if text := htmlutil.Text(paragraph); text != "" {
			parts = append(parts, text)
		}
	})

	body := strings.Join(parts, "\n\n")
	if strings.TrimSpace(body) == "" {
		return "", ErrNoContent
	}

	s.logger.Debug("chapter_scraped",
		slog.String("url", url),
		slog.Int("paragraphs", len(parts)),
		slog.Int("bytes", len(body)),
	)

	return body, nil
}
