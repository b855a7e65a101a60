// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema centralizes table and column identifiers so that query
// builders never hardcode SQL names.
package schema

// NovelTable represents the 'novels' table
type NovelTable struct {
	Table       string
	ID          string
	Title       string
	Slug        string
	Author      string
	Description string
	CoverURL    string
	SourceURL   string
	CreatedAt   string
	UpdatedAt   string
}

// Novel is the schema definition for novels
var Novel = NovelTable{
	Table:       "novels",
	ID:          "id",
	Title:       "title",
	Slug:        "slug",
	Author:      "author",
	Description: "description",
	CoverURL:    "cover_url",
	SourceURL:   "source_url",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

// # Unique Constraints

// Constraint names as created by the initial migration. The novel store
// inspects these to tell a slug collision apart from a source-URL collision.
const (
	NovelSlugKey      = "novels_slug_key"
	NovelSourceURLKey = "novels_source_url_key"
)
