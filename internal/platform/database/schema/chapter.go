// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ChapterTable represents the 'chapters' table
type ChapterTable struct {
	Table         string
	ID            string
	NovelID       string
	Title         string
	ChapterNumber string
	SourceURL     string
	Content       string
	CreatedAt     string
	UpdatedAt     string
}

// Chapter is the schema definition for chapters
var Chapter = ChapterTable{
	Table:         "chapters",
	ID:            "id",
	NovelID:       "novel_id",
	Title:         "title",
	ChapterNumber: "chapter_number",
	SourceURL:     "source_url",
	Content:       "content",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
}

// # Unique Constraints

const (
	ChapterSourceURLKey = "chapters_source_url_key"
	ChapterNumberKey    = "chapters_novel_id_chapter_number_key"
)
