// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/hondana/pkg/slug"
)

/*
TestFrom verifies the slugification pipeline against common title shapes.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Lord of the Mysteries", "lord-of-the-mysteries"},
		{"punctuation_collapsed", "Omniscient Reader's Viewpoint!", "omniscient-reader-s-viewpoint"},
		{"accents_removed", "Café Étoile", "cafe-etoile"},
		{"numbers_kept", "Reverend Insanity 2", "reverend-insanity-2"},
		{"whitespace_runs", "  A   B  ", "a-b"},
		{"already_slug", "a-b-c", "a-b-c"},
		{"empty", "", ""},
		{"only_symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

/*
TestFrom_Deterministic verifies the same title always yields the same slug.
*/
func TestFrom_Deterministic(t *testing.T) {
	title := "The Beginning After The End"
	assert.Equal(t, slug.From(title), slug.From(title))
}
