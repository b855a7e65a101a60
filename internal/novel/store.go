// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package novel

import "context"

// # Novel & Chapter Data Access

// Repository defines the data access contract for novels and their chapters.
type Repository interface {

	/*
		Create persists a new novel and assigns its generated identity.

		Parameters:
		  - context: context.Context
		  - novel: *Novel (ID, CreatedAt and UpdatedAt are filled in on return)

		Returns:
		  - error: ErrSlugTaken or ErrSourceURLTaken on uniqueness collisions
	*/
	Create(context context.Context, novel *Novel) error

	/*
		FindByID returns the novel with the given ID.

		Returns:
		  - *Novel: Hydrated metadata
		  - error: apperr NOT_FOUND if missing
	*/
	FindByID(context context.Context, id int64) (*Novel, error)

	/*
		FindBySlug returns the novel addressed by its URL-safe slug.

		Returns:
		  - *Novel: Hydrated metadata
		  - error: apperr NOT_FOUND if missing
	*/
	FindBySlug(context context.Context, slug string) (*Novel, error)

	/*
		FindBySourceURL returns the novel ingested from the given listing URL.

		Returns:
		  - *Novel: Hydrated metadata
		  - error: apperr NOT_FOUND if missing
	*/
	FindBySourceURL(context context.Context, sourceURL string) (*Novel, error)

	/*
		List returns a page of novels ordered by most recently updated.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*Novel: The page of novels
		  - int: Total shelf size
		  - error: Storage failures
	*/
	List(context context.Context, limit, offset int) ([]*Novel, int, error)

	/*
		CreateChapters bulk-inserts chapter metadata for a novel.

		Rows whose source URL is already present are skipped, so re-running
		a listing scrape never duplicates or renumbers existing chapters.

		Parameters:
		  - context: context.Context
		  - chapters: []*Chapter

		Returns:
		  - error: Batch failure
	*/
	CreateChapters(context context.Context, chapters []*Chapter) error

	/*
		ListChapters returns a novel's full roster ordered by chapter
		number. Bodies are omitted; HasContent signals their presence.

		Returns:
		  - []*Chapter: Ordered roster metadata
		  - error: Storage failures
	*/
	ListChapters(context context.Context, novelID int64) ([]*Chapter, error)

	/*
		CountChapters returns the roster size for a novel.
	*/
	CountChapters(context context.Context, novelID int64) (int, error)

	/*
		FindChapterByNumber returns one chapter with its body plus the
		neighbouring chapter numbers for reader navigation.

		Returns:
		  - *ReaderView: Chapter with prev/next numbers, nil at the edges
		  - error: apperr NOT_FOUND if the chapter does not exist
	*/
	FindChapterByNumber(context context.Context, novelID int64, number int) (*ReaderView, error)

	/*
		UpdateChapterContents persists scraped chapter bodies in one
		transaction. A chapter that already holds content is left
		untouched.

		Parameters:
		  - context: context.Context
		  - updates: []ContentUpdate

		Returns:
		  - int: Number of chapters actually updated
		  - error: Transaction failure
	*/
	UpdateChapterContents(context context.Context, updates []ContentUpdate) (int, error)
}
