// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package novel defines the core domain entities for the Hondana shelf.

It manages the lifecycle of ingested web novels: listing metadata scraped
from source sites, the chapter roster discovered on a listing page, and the
chapter bodies filled in by later backfill runs.

Core Responsibility:

  - Shelf: Stores novels keyed by slug and source URL, both unique.
  - Roster: Tracks chapter metadata with dense positional numbering.
  - Reading: Serves chapter bodies with previous/next navigation.

This package acts as the source of truth for all content-related data models.
*/
package novel

import (
	"errors"
	"time"
)

// # Domain Entities

// Novel is one ingested publication on the shelf.
//
// Metadata fields hold extraction sentinels when the source page did not
// yield them; they are never empty strings.
type Novel struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"` // URL-safe identifier derived from the title
	Author      string    `json:"author"`
	Description string    `json:"description"`
	CoverURL    *string   `json:"cover_url"`  // nil when no cover was found
	SourceURL   string    `json:"source_url"` // Canonical listing page, unique
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Chapter is one entry of a novel's roster.
//
// Content is nil until a backfill run scrapes the chapter body; HasContent
// mirrors that state in listings without shipping the body itself.
type Chapter struct {
	ID            int64     `json:"id"`
	NovelID       int64     `json:"novel_id"`
	ChapterNumber int       `json:"chapter_number"` // Dense 1-based position in the roster
	Title         string    `json:"title"`
	SourceURL     string    `json:"source_url"` // Chapter page, unique across the shelf
	Content       *string   `json:"content,omitempty"`
	HasContent    bool      `json:"has_content"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ReaderView is a chapter prepared for reading: the full body plus the
// neighbouring chapter numbers for navigation.
type ReaderView struct {
	Chapter *Chapter `json:"chapter"`
	// PrevNumber and NextNumber are nil at the roster edges.
	PrevNumber *int `json:"prev_number"`
	NextNumber *int `json:"next_number"`
}

// ContentUpdate carries one scraped chapter body to persistence.
type ContentUpdate struct {
	ChapterID int64
	Content   string
}

// # Uniqueness Violations

var (
	// ErrSourceURLTaken means another novel already claims the source URL.
	// Callers resolve this by loading the existing record.
	ErrSourceURLTaken = errors.New("novel: source url already ingested")

	// ErrSlugTaken means the derived slug collides with another novel.
	// Callers retry with a suffixed slug.
	ErrSlugTaken = errors.New("novel: slug already in use")
)
