// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package novel_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hondana/internal/novel"
	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/pkg/pointer"
)

// stubRepository embeds the interface so each test only scripts the
// methods its path actually touches.
type stubRepository struct {
	novel.Repository

	novels   map[string]*novel.Novel
	chapters map[int64][]*novel.Chapter
	views    map[int]*novel.ReaderView
}

func (s *stubRepository) FindBySlug(_ context.Context, slug string) (*novel.Novel, error) {
	if record, ok := s.novels[slug]; ok {
		return record, nil
	}
	return nil, apperr.NotFound("novel")
}

func (s *stubRepository) ListChapters(_ context.Context, novelID int64) ([]*novel.Chapter, error) {
	return s.chapters[novelID], nil
}

func (s *stubRepository) FindChapterByNumber(_ context.Context, _ int64, number int) (*novel.ReaderView, error) {
	if view, ok := s.views[number]; ok {
		return view, nil
	}
	return nil, apperr.NotFound("chapter")
}

func fixtureShelf() *stubRepository {
	owner := &novel.Novel{ID: 7, Title: "Shelf Life", Slug: "shelf-life"}
	return &stubRepository{
		novels: map[string]*novel.Novel{"shelf-life": owner},
		chapters: map[int64][]*novel.Chapter{
			7: {
				{ID: 1, NovelID: 7, ChapterNumber: 1, Title: "One", HasContent: true},
				{ID: 2, NovelID: 7, ChapterNumber: 2, Title: "Two"},
			},
		},
		views: map[int]*novel.ReaderView{
			2: {
				Chapter:    &novel.Chapter{ID: 2, NovelID: 7, ChapterNumber: 2, Title: "Two", HasContent: true},
				PrevNumber: pointer.To(1),
				NextNumber: pointer.To(3),
			},
		},
	}
}

/*
TestService_ListChapters resolves the slug before touching the roster, so
an unknown novel is a NOT_FOUND rather than an empty list.
*/
func TestService_ListChapters(t *testing.T) {
	service := novel.NewService(fixtureShelf(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	chapters, err := service.ListChapters(context.Background(), "shelf-life")
	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.True(t, chapters[0].HasContent)
	assert.False(t, chapters[1].HasContent)

	_, err = service.ListChapters(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestService_GetReader returns the chapter body with its navigation
neighbours, and NOT_FOUND for numbers outside the roster.
*/
func TestService_GetReader(t *testing.T) {
	service := novel.NewService(fixtureShelf(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	view, err := service.GetReader(context.Background(), "shelf-life", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Chapter.ChapterNumber)
	require.NotNil(t, view.PrevNumber)
	assert.Equal(t, 1, *view.PrevNumber)
	require.NotNil(t, view.NextNumber)
	assert.Equal(t, 3, *view.NextNumber)

	_, err = service.GetReader(context.Background(), "shelf-life", 99)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
