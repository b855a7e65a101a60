// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package htmlutil_test

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hondana/pkg/htmlutil"
)

/*
TestText verifies whitespace normalization of visible text.
*/
func TestText(t *testing.T) {
	doc, err := htmlutil.Parse(`<div>  Hello   <b>cruel</b>
		world  </div>`)
	require.NoError(t, err)

	assert.Equal(t, "Hello cruel world", htmlutil.Text(doc.Find("div")))
}

/*
TestStrip verifies noise subtrees are removed destructively.
*/
func TestStrip(t *testing.T) {
	doc, err := htmlutil.Parse(`<div id="c"><script>evil()</script><p>keep</p><nav>menu</nav></div>`)
	require.NoError(t, err)

	content := doc.Find("div#c")
	htmlutil.Strip(content, "script", "nav")

	text := htmlutil.Text(content)
	assert.Equal(t, "keep", text)
	assert.NotContains(t, text, "evil")
	assert.NotContains(t, text, "menu")
}

/*
TestUnwrapAll verifies wrappers are flattened while children keep document
order and siblings are unaffected.
*/
func TestUnwrapAll(t *testing.T) {
	doc, err := htmlutil.Parse(`<article><div><div><p>one</p></div><p>two</p></div><p>three</p></article>`)
	require.NoError(t, err)

	article := doc.Find("article")
	htmlutil.UnwrapAll(article, "div")

	// No wrapper divs remain, all paragraphs survive in order.
	assert.Equal(t, 0, article.Find("div").Length())

	var order []string
	article.Find("p").Each(func(_ int, p *goquery.Selection) {
		order = append(order, htmlutil.Text(p))
	})
	assert.Equal(t, []string{"one", "two", "three"}, order)
}

/*
TestClone_Isolation verifies mutations on a working copy never leak back
into the original document.
*/
func TestClone_Isolation(t *testing.T) {
	doc, err := htmlutil.Parse(`<div id="c"><script>noise()</script><p>body</p></div>`)
	require.NoError(t, err)

	original := doc.Find("div#c")
	working := original.Clone()

	htmlutil.Strip(working, "script")

	assert.Equal(t, 0, working.Find("script").Length())
	assert.Equal(t, 1, original.Find("script").Length())
}

/*
TestResolveURL verifies relative link resolution against a base URL.
*/
func TestResolveURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		href string
		want string
	}{
		{"relative_path", "https://libread.com/libread/novel-1", "/libread/novel-1/chapter-2", "https://libread.com/libread/novel-1/chapter-2"},
		{"already_absolute", "https://libread.com/x", "https://cdn.libread.com/cover.jpg", "https://cdn.libread.com/cover.jpg"},
		{"fragment_only", "https://libread.com/x", "#top", ""},
		{"javascript", "https://libread.com/x", "javascript:void(0)", ""},
		{"mailto", "https://libread.com/x", "mailto:a@b.c", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, htmlutil.ResolveURL(tt.base, tt.href))
		})
	}
}
