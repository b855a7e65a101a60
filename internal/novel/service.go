// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package novel

import (
	"context"
	"log/slog"
)

// # Service Layer

// Service orchestrates the read-side business logic for the shelf.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

// # Shelf Browsing

/*
ListNovels retrieves a page of the shelf ordered by recent activity.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Novel: The page of novels
  - int: Total shelf size
  - error: Storage failures
*/
func (service *Service) ListNovels(context context.Context, limit, offset int) ([]*Novel, int, error) {
	return service.repository.List(context, limit, offset)
}

/*
GetNovel retrieves one novel by its URL-safe slug.

Returns:
  - *Novel: The hydrated domain entity
  - error: apperr NOT_FOUND if missing
*/
func (service *Service) GetNovel(context context.Context, slug string) (*Novel, error) {
	return service.repository.FindBySlug(context, slug)
}

/*
ListChapters retrieves a novel's roster by the novel's slug.

Description: The roster carries metadata and the HasContent flag only;
bodies are served one at a time through the reader.

Returns:
  - []*Chapter: Ordered roster
  - error: apperr NOT_FOUND if the novel is missing
*/
func (service *Service) ListChapters(context context.Context, slug string) ([]*Chapter, error) {
	owner, err := service.repository.FindBySlug(context, slug)
	if err != nil {
		return nil, err
	}
	return service.repository.ListChapters(context, owner.ID)
}

// # Reading

/*
GetReader retrieves one chapter body with navigation neighbours.

Parameters:
  - context: context.Context
  - slug: string (Novel slug)
  - number: int (1-based chapter number)

Returns:
  - *ReaderView: Chapter with prev/next numbers
  - error: apperr NOT_FOUND for a missing novel or chapter
*/
func (service *Service) GetReader(context context.Context, slug string, number int) (*ReaderView, error) {
	owner, err := service.repository.FindBySlug(context, slug)
	if err != nil {
		return nil, err
	}

	view, err := service.repository.FindChapterByNumber(context, owner.ID, number)
	if err != nil {
		return nil, err
	}

	service.logger.Debug("chapter_read",
		slog.String("slug", slug),
		slog.Int("number", number),
		slog.Bool("has_content", view.Chapter.HasContent),
	)

	return view, nil
}
