// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ingest orchestrates the two-phase acquisition pipeline.

Phase one (IngestMetadata) scrapes a novel's listing page, persists the
metadata and the chapter roster, and leaves every body empty. Phase two
(BackfillContent) fills a range of bodies chapter by chapter. Both phases
are idempotent: re-running them converges on the same stored state.

# Failure Policy

A chapter that cannot be scraped is skipped, not poisoned: nothing is
written for it, so the next backfill run retries it. Unsupported sites and
unreachable sources surface as typed client errors instead of partial
writes.
*/
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/hondana/internal/novel"
	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/internal/platform/constants"
	"github.com/taibuivan/hondana/internal/platform/validate"
	"github.com/taibuivan/hondana/internal/scrape/fetch"
	"github.com/taibuivan/hondana/internal/scrape/site"
	"github.com/taibuivan/hondana/pkg/pointer"
	"github.com/taibuivan/hondana/pkg/slug"
)

const (
	FieldSourceURL    = "source_url"
	FieldStartChapter = "start_chapter"
	FieldEndChapter   = "end_chapter"
)

// # Collaborator Contracts

// Resolver hands out a scraper for a source URL. The caller owns the
// returned scraper and must Close it.
type Resolver interface {
	For(rawURL string) (site.Scraper, error)
}

// Locker serializes ingestion per source URL across processes.
type Locker interface {

	/*
		Acquire attempts to take the ingestion lock for a source URL.

		Returns:
		  - bool: true if this caller now holds the lock
		  - error: Lock backend failures
	*/
	Acquire(context context.Context, sourceURL string) (bool, error)

	// Release drops the lock. Best effort; expiry is the backstop.
	Release(context context.Context, sourceURL string)
}

// # Service Layer

// Service orchestrates scraping and persistence for the acquisition pipeline.
type Service struct {
	repository novel.Repository
	sites      Resolver
	locks      Locker
	logger     *slog.Logger
}

// NewService constructs a new ingestion [Service].
func NewService(repository novel.Repository, sites Resolver, locks Locker, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		sites:      sites,
		locks:      locks,
		logger:     logger,
	}
}

// Result summarizes an ingestion run.
type Result struct {
	NovelID      int64  `json:"novel_id"`
	Slug         string `json:"slug"`
	Created      bool   `json:"created"`
	ChapterCount int    `json:"chapter_count"`
}

// # Phase One: Metadata Ingestion

/*
IngestMetadata acquires a novel's listing metadata and chapter roster.

Description: The source URL is locked for the duration of the run so
concurrent requests for the same novel cannot race. Re-ingesting an
existing novel is a cheap no-op unless its roster is empty, in which case
the listing is scraped again.

Parameters:
  - context: context.Context
  - sourceURL: string (Listing page URL)

Returns:
  - *Result: Identity of the (possibly pre-existing) novel
  - error: Validation, conflict, unsupported-site, or upstream errors
*/
func (service *Service) IngestMetadata(context context.Context, sourceURL string) (*Result, error) {

	// Input validation
	validator := &validate.Validator{}
	validator.Required(FieldSourceURL, sourceURL)
	if !validator.HasErrors() {
		validator.URL(FieldSourceURL, sourceURL)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Per-source serialisation
	acquired, err := service.locks.Acquire(context, sourceURL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("ingest: lock acquire: %w", err))
	}
	if !acquired {
		return nil, apperr.Conflict("Ingestion already in progress for this source")
	}
	defer service.locks.Release(context, sourceURL)

	// Idempotence: an already-ingested source short-circuits.
	existing, err := service.repository.FindBySourceURL(context, sourceURL)
	if err == nil {
		return service.reconcileExisting(context, existing)
	}
	if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	// Scraper resolution; the scraper session lives for this run only.
	scraper, err := service.sites.For(sourceURL)
	if err != nil {
		return nil, classifyScrapeError(err)
	}
	defer scraper.Close()

	metadata, err := scraper.ScrapeMetadata(context, sourceURL)
	if err != nil {
		return nil, classifyScrapeError(err)
	}

	// Persist the novel, disambiguating slug collisions.
	record, err := service.createNovel(context, metadata)
	if err != nil {
		if errors.Is(err, novel.ErrSourceURLTaken) {
			// Lost a race outside our lock scope; converge on the winner.
			winner, findErr := service.repository.FindBySourceURL(context, sourceURL)
			if findErr != nil {
				return nil, findErr
			}
			return service.reconcileExisting(context, winner)
		}
		return nil, err
	}

	// Roster acquisition. The novel record survives even if this fails, so
	// a later re-ingest picks the roster up through the empty-shelf path.
	count, err := service.scrapeRoster(context, scraper, record)
	if err != nil {
		service.logger.Error("roster_scrape_failed",
			slog.Int64("novel_id", record.ID),
			slog.String("source_url", sourceURL),
			slog.Any("error", err),
		)
		return nil, classifyScrapeError(err)
	}

	service.logger.Info("novel_ingested",
		slog.Int64("novel_id", record.ID),
		slog.String("slug", record.Slug),
		slog.Int("chapters", count),
	)

	return &Result{NovelID: record.ID, Slug: record.Slug, Created: true, ChapterCount: count}, nil
}

// reconcileExisting handles re-ingestion of a known source: normally a
// no-op, but an empty roster triggers a fresh listing scrape.
func (service *Service) reconcileExisting(context context.Context, record *novel.Novel) (*Result, error) {
	count, err := service.repository.CountChapters(context, record.ID)
	if err != nil {
		return nil, err
	}

	if count == 0 {
		scraper, err := service.sites.For(record.SourceURL)
		if err != nil {
			return nil, classifyScrapeError(err)
		}
		defer scraper.Close()

		count, err = service.scrapeRoster(context, scraper, record)
		if err != nil {
			return nil, classifyScrapeError(err)
		}

		service.logger.Info("roster_rescraped",
			slog.Int64("novel_id", record.ID),
			slog.Int("chapters", count),
		)
	}

	return &Result{NovelID: record.ID, Slug: record.Slug, Created: false, ChapterCount: count}, nil
}

// createNovel persists scraped metadata, retrying slug collisions with
// numeric suffixes before giving up.
func (service *Service) createNovel(context context.Context, metadata *site.Metadata) (*novel.Novel, error) {
	base := slug.From(metadata.Title)

	record := &novel.Novel{
		Title:       metadata.Title,
		Author:      metadata.Author,
		Description: metadata.Description,
		SourceURL:   metadata.SourceURL,
	}
	if metadata.CoverURL != "" {
		record.CoverURL = pointer.To(metadata.CoverURL)
	}

	for attempt := 1; attempt <= constants.MaxSlugAttempts; attempt++ {
		record.Slug = base
		if attempt > 1 {
			record.Slug = fmt.Sprintf("%s-%d", base, attempt)
		}

		err := service.repository.Create(context, record)
		if err == nil {
			return record, nil
		}
		if errors.Is(err, novel.ErrSlugTaken) {
			continue
		}
		return nil, err
	}

	return nil, apperr.Conflict("Could not allocate a unique slug for this title")
}

// scrapeRoster lists the chapters on a novel's listing page and persists
// them with empty bodies.
func (service *Service) scrapeRoster(context context.Context, scraper site.Scraper, record *novel.Novel) (int, error) {
	refs, err := scraper.ListChapters(context, record.SourceURL)
	if err != nil {
		return 0, err
	}

	chapters := make([]*novel.Chapter, 0, len(refs))
	for _, ref := range refs {
		chapters = append(chapters, &novel.Chapter{
			NovelID:       record.ID,
			ChapterNumber: ref.Number,
			Title:         ref.Title,
			SourceURL:     ref.URL,
		})
	}

	if err := service.repository.CreateChapters(context, chapters); err != nil {
		return 0, err
	}
	return len(chapters), nil
}

// # Phase Two: Content Backfill

/*
BackfillContent scrapes bodies for a range of a novel's chapters.

Description: Chapters are fetched sequentially in roster order. A chapter
that already holds content is skipped; a chapter that fails to scrape is
logged and skipped so one broken page never aborts the run. All scraped
bodies land in a single transaction.

Parameters:
  - context: context.Context
  - novelID: int64
  - start: int (1-based first chapter number, inclusive; 0 defaults to 1)
  - end: int (Last chapter number, inclusive; 0 means the last chapter,
    larger values clamp to the roster)

Returns:
  - int: Number of chapters whose content was stored
  - error: Validation, not-found, unsupported-site, or storage errors
*/
func (service *Service) BackfillContent(context context.Context, novelID int64, start, end int) (int, error) {

	// Input validation. Zero values carry the defaults: a zero start means
	// "from the first chapter", a zero end means "through the last".
	if start == 0 {
		start = 1
	}
	validator := &validate.Validator{}
	validator.Custom(FieldStartChapter, start < 1, "Must be at least 1")
	validator.Custom(FieldEndChapter, end != 0 && end < start, "Must not precede start_chapter")
	if err := validator.Err(); err != nil {
		return 0, err
	}

	record, err := service.repository.FindByID(context, novelID)
	if err != nil {
		return 0, err
	}

	chapters, err := service.repository.ListChapters(context, novelID)
	if err != nil {
		return 0, err
	}
	if len(chapters) == 0 {
		return 0, apperr.Unprocessable("No chapter metadata found; ingest the novel first")
	}
	if start > len(chapters) {
		return 0, validate.RequiredError(FieldStartChapter, "Requested range is beyond the last chapter")
	}

	// Clamp the range to the roster. Chapter numbers are dense and
	// 1-based, so the roster slice maps directly.
	if end == 0 || end > len(chapters) {
		end = len(chapters)
	}
	targets := chapters[start-1 : end]

	scraper, err := service.sites.For(record.SourceURL)
	if err != nil {
		return 0, classifyScrapeError(err)
	}
	defer scraper.Close()

	// Sequential body acquisition with per-chapter failure isolation.
	var updates []novel.ContentUpdate
	for _, chapter := range targets {
		if chapter.HasContent || chapter.SourceURL == "" {
			continue
		}

		body, err := scraper.ScrapeChapter(context, chapter.SourceURL)
		if err != nil {
			if errors.Is(err, site.ErrUnsupportedSite) {
				return 0, classifyScrapeError(err)
			}
			service.logger.Warn("chapter_scrape_skipped",
				slog.Int64("novel_id", novelID),
				slog.Int("number", chapter.ChapterNumber),
				slog.Any("error", err),
			)
			continue
		}

		updates = append(updates, novel.ContentUpdate{ChapterID: chapter.ID, Content: body})
	}

	updated, err := service.repository.UpdateChapterContents(context, updates)
	if err != nil {
		return 0, err
	}

	service.logger.Info("backfill_finished",
		slog.Int64("novel_id", novelID),
		slog.Int("start", start),
		slog.Int("end", end),
		slog.Int("updated", updated),
	)

	return updated, nil
}

// # Error Classification

// classifyScrapeError maps pipeline errors onto client-facing codes:
// unsupported sites are unprocessable input, unreachable sources are an
// upstream outage, everything else passes through.
func classifyScrapeError(err error) error {
	if errors.Is(err, site.ErrUnsupportedSite) {
		return apperr.Unprocessable("This source site is not supported")
	}

	var httpErr *fetch.HTTPError
	if errors.As(err, &httpErr) {
		return apperr.ServiceUnavailable("The source site could not be reached")
	}

	return err
}
