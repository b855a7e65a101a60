// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package novel provides the PostgreSQL implementation for shelf data access.

It leans on a handful of Postgres features to keep the access paths cheap:
  - Window Functions: Total counts ride along the listing query, and reader
    navigation resolves previous/next chapter numbers in a single round-trip.
  - Batching: Chapter rosters are inserted through the pgx pipeline with
    'ON CONFLICT DO NOTHING' for idempotent re-scrapes.
  - Constraint Introspection: Unique violations are classified by constraint
    name so slug and source-URL collisions get distinct recovery paths.
*/
package novel

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/internal/platform/database/schema"
	"github.com/taibuivan/hondana/internal/platform/dberr"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed novel store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// # Novel Persistence

/*
Create inserts a new novel and hydrates its generated identity fields.

Description: Uniqueness collisions are classified by constraint name and
surfaced as the domain errors the ingestion flow recovers from.

Parameters:
  - context: context.Context
  - novel: *Novel (ID, CreatedAt, UpdatedAt filled in on success)

Returns:
  - error: ErrSlugTaken, ErrSourceURLTaken, or wrapped storage failures
*/
func (repository *repository) Create(context context.Context, novel *Novel) error {

	// Insertion with identity return
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s, %s
	`,
		schema.Novel.Table,
		schema.Novel.Title, schema.Novel.Slug, schema.Novel.Author,
		schema.Novel.Description, schema.Novel.CoverURL, schema.Novel.SourceURL,
		schema.Novel.ID, schema.Novel.CreatedAt, schema.Novel.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		novel.Title,
		novel.Slug,
		novel.Author,
		novel.Description,
		novel.CoverURL,
		novel.SourceURL,
	).Scan(&novel.ID, &novel.CreatedAt, &novel.UpdatedAt)

	// Collision classification
	if err != nil {
		if dberr.IsUniqueViolation(err, schema.NovelSlugKey) {
			return ErrSlugTaken
		}
		if dberr.IsUniqueViolation(err, schema.NovelSourceURLKey) {
			return ErrSourceURLTaken
		}
		return fmt.Errorf("postgres: failed to create novel: %w", dberr.Wrap(err))
	}

	return nil
}

// novelColumns is the scan order shared by all single-novel lookups.
func novelColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.Novel.ID, schema.Novel.Title, schema.Novel.Slug,
		schema.Novel.Author, schema.Novel.Description, schema.Novel.CoverURL,
		schema.Novel.SourceURL, schema.Novel.CreatedAt, schema.Novel.UpdatedAt,
	)
}

// scanNovel hydrates one novel row in novelColumns order.
func scanNovel(row pgx.Row) (*Novel, error) {
	var novel Novel
	err := row.Scan(
		&novel.ID,
		&novel.Title,
		&novel.Slug,
		&novel.Author,
		&novel.Description,
		&novel.CoverURL,
		&novel.SourceURL,
		&novel.CreatedAt,
		&novel.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("novel")
		}
		return nil, fmt.Errorf("postgres: failed to scan novel: %w", err)
	}
	return &novel, nil
}

/*
FindByID returns the novel with the given ID.
*/
func (repository *repository) FindByID(context context.Context, id int64) (*Novel, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		novelColumns(), schema.Novel.Table, schema.Novel.ID)

	return scanNovel(repository.pool.QueryRow(context, query, id))
}

/*
FindBySlug returns the novel addressed by its URL-safe slug.
*/
func (repository *repository) FindBySlug(context context.Context, slug string) (*Novel, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		novelColumns(), schema.Novel.Table, schema.Novel.Slug)

	return scanNovel(repository.pool.QueryRow(context, query, slug))
}

/*
FindBySourceURL returns the novel ingested from the given listing URL.
*/
func (repository *repository) FindBySourceURL(context context.Context, sourceURL string) (*Novel, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		novelColumns(), schema.Novel.Table, schema.Novel.SourceURL)

	return scanNovel(repository.pool.QueryRow(context, query, sourceURL))
}

/*
List returns a page of novels ordered by most recent activity.

Description: The total shelf size rides along every row through a window
function, avoiding a separate COUNT query.
*/
func (repository *repository) List(context context.Context, limit, offset int) ([]*Novel, int, error) {

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2
	`, novelColumns(), schema.Novel.Table, schema.Novel.UpdatedAt)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list novels: %w", err)
	}
	defer rows.Close()

	// Row iteration and entity hydration
	var novels []*Novel
	var totalCount int

	for rows.Next() {
		var novel Novel
		err := rows.Scan(
			&novel.ID,
			&novel.Title,
			&novel.Slug,
			&novel.Author,
			&novel.Description,
			&novel.CoverURL,
			&novel.SourceURL,
			&novel.CreatedAt,
			&novel.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan novel: %w", err)
		}
		novels = append(novels, &novel)
	}

	return novels, totalCount, nil
}

// # Chapter Persistence

/*
CreateChapters persists a chapter roster in a high-performance batch.

Description: Uses Postgres batching (pipelining) to reduce round-trips for
long rosters. 'ON CONFLICT DO NOTHING' on the chapter source URL makes
re-running a listing scrape idempotent: existing rows keep their numbers.
*/
func (repository *repository) CreateChapters(context context.Context, chapters []*Chapter) error {

	// Pre-condition verification
	if len(chapters) == 0 {
		return nil
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s) DO NOTHING
	`,
		schema.Chapter.Table,
		schema.Chapter.NovelID, schema.Chapter.ChapterNumber,
		schema.Chapter.Title, schema.Chapter.SourceURL,
		schema.Chapter.SourceURL,
	)

	// Batch queue construction
	batch := &pgx.Batch{}
	for _, chapter := range chapters {
		batch.Queue(insert, chapter.NovelID, chapter.ChapterNumber, chapter.Title, chapter.SourceURL)
	}

	// Send batch and close pipeline
	result := repository.pool.SendBatch(context, batch)
	defer result.Close()

	// Verify all items in the batch succeeded
	for i := 0; i < len(chapters); i++ {
		if _, err := result.Exec(); err != nil {
			return fmt.Errorf("postgres: failed to batch insert chapter %d: %w", i, dberr.Wrap(err))
		}
	}

	return nil
}

/*
ListChapters returns the full roster for a novel ordered by chapter number.

Description: Bodies are deliberately excluded from the projection; the
HasContent flag is computed in SQL so listings stay light even for novels
with thousands of filled chapters.
*/
func (repository *repository) ListChapters(context context.Context, novelID int64) ([]*Chapter, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s,
			(%s IS NOT NULL AND %s <> '') AS has_content,
			%s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.Chapter.ID, schema.Chapter.NovelID, schema.Chapter.ChapterNumber,
		schema.Chapter.Title, schema.Chapter.SourceURL,
		schema.Chapter.Content, schema.Chapter.Content,
		schema.Chapter.CreatedAt, schema.Chapter.UpdatedAt,
		schema.Chapter.Table,
		schema.Chapter.NovelID,
		schema.Chapter.ChapterNumber,
	)

	rows, err := repository.pool.Query(context, query, novelID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []*Chapter
	for rows.Next() {
		var chapter Chapter
		err := rows.Scan(
			&chapter.ID,
			&chapter.NovelID,
			&chapter.ChapterNumber,
			&chapter.Title,
			&chapter.SourceURL,
			&chapter.HasContent,
			&chapter.CreatedAt,
			&chapter.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan chapter: %w", err)
		}
		chapters = append(chapters, &chapter)
	}

	return chapters, nil
}

/*
CountChapters returns the roster size for a novel.
*/
func (repository *repository) CountChapters(context context.Context, novelID int64) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.Chapter.Table, schema.Chapter.NovelID)

	var count int
	if err := repository.pool.QueryRow(context, query, novelID).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: failed to count chapters: %w", err)
	}
	return count, nil
}

/*
FindChapterByNumber returns a chapter body with its reading neighbours.

Description: LAG and LEAD window functions over the novel's roster resolve
the previous and next chapter numbers in the same round-trip as the body
fetch, so the reader endpoint costs exactly one query.
*/
func (repository *repository) FindChapterByNumber(context context.Context, novelID int64, number int) (*ReaderView, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s,
			(%s IS NOT NULL AND %s <> '') AS has_content,
			%s, %s, prev_number, next_number
		FROM (
			SELECT *,
				LAG(%s)  OVER (ORDER BY %s) AS prev_number,
				LEAD(%s) OVER (ORDER BY %s) AS next_number
			FROM %s
			WHERE %s = $1
		) roster
		WHERE %s = $2
	`,
		schema.Chapter.ID, schema.Chapter.NovelID, schema.Chapter.ChapterNumber,
		schema.Chapter.Title, schema.Chapter.SourceURL, schema.Chapter.Content,
		schema.Chapter.Content, schema.Chapter.Content,
		schema.Chapter.CreatedAt, schema.Chapter.UpdatedAt,
		schema.Chapter.ChapterNumber, schema.Chapter.ChapterNumber,
		schema.Chapter.ChapterNumber, schema.Chapter.ChapterNumber,
		schema.Chapter.Table,
		schema.Chapter.NovelID,
		schema.Chapter.ChapterNumber,
	)

	var view ReaderView
	var chapter Chapter

	err := repository.pool.QueryRow(context, query, novelID, number).Scan(
		&chapter.ID,
		&chapter.NovelID,
		&chapter.ChapterNumber,
		&chapter.Title,
		&chapter.SourceURL,
		&chapter.Content,
		&chapter.HasContent,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
		&view.PrevNumber,
		&view.NextNumber,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("chapter")
		}
		return nil, fmt.Errorf("postgres: failed to find chapter by number: %w", err)
	}

	view.Chapter = &chapter
	return &view, nil
}

/*
UpdateChapterContents persists scraped bodies in one transaction.

Description: Each update is guarded so a chapter that already holds content
is never overwritten; concurrent backfill runs therefore converge instead
of clobbering each other. Returns how many rows actually changed.
*/
func (repository *repository) UpdateChapterContents(context context.Context, updates []ContentUpdate) (int, error) {

	if len(updates) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = NOW()
		WHERE %s = $2 AND (%s IS NULL OR %s = '')
	`,
		schema.Chapter.Table,
		schema.Chapter.Content, schema.Chapter.UpdatedAt,
		schema.Chapter.ID, schema.Chapter.Content, schema.Chapter.Content,
	)

	// All bodies land atomically or not at all.
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to begin content update: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	updated := 0
	for _, update := range updates {
		result, err := transaction.Exec(context, query, update.Content, update.ChapterID)
		if err != nil {
			return 0, fmt.Errorf("postgres: failed to update chapter %d content: %w", update.ChapterID, err)
		}
		updated += int(result.RowsAffected())
	}

	if err := transaction.Commit(context); err != nil {
		return 0, fmt.Errorf("postgres: failed to commit content update: %w", err)
	}

	return updated, nil
}
