// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package htmlutil provides site-agnostic helpers for extracting content from
parsed HTML trees.

Scrapers combine these primitives into per-site extraction recipes. All
mutating helpers (Strip, Unwrap) are meant to be used on a cloned selection
(goquery's Selection.Clone) so the originally fetched document stays intact
and repeated extraction passes over it are side-effect free.
*/
package htmlutil

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// # Parsing

// Parse builds a queryable document tree from raw HTML text.
func Parse(rawHTML string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
}

// # Text Extraction

// Text returns the concatenated visible text of a selection and its
// descendants, trimmed and with inner whitespace runs collapsed to a
// single space.
func Text(sel *goquery.Selection) string {
	var buffer bytes.Buffer
	for _, node := range sel.Nodes {
		textRecursive(node, &buffer)
	}
	return CleanText(buffer.String())
}

// NodeText returns the raw concatenated text of a single node subtree.
func NodeText(node *html.Node) string {
	var buffer bytes.Buffer
	textRecursive(node, &buffer)
	return buffer.String()
}

func textRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		textRecursive(child, buffer)
	}
}

// CleanText strips non-printable characters, trims surrounding whitespace,
// and collapses inner whitespace runs to single spaces.
func CleanText(s string) string {
	var cleaned strings.Builder
	for _, r := range s {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			cleaned.WriteRune(r)
		}
	}
	result := strings.TrimSpace(cleaned.String())
	return innerWhitespace.ReplaceAllString(result, " ")
}

// # Tree Surgery

// Strip destructively removes all descendants matching the given tag names
// (subtrees included) from the selection.
func Strip(sel *goquery.Selection, tags ...string) {
	if len(tags) == 0 {
		return
	}
	sel.Find(strings.Join(tags, ", ")).Remove()
}

// Unwrap replaces a container node with its children in place. Document
// order is preserved and sibling nodes are unaffected. Used to flatten
// nested wrapper containers down to the elements carrying real content.
func Unwrap(node *html.Node) {
	parent := node.Parent
	if parent == nil {
		return
	}
	for node.FirstChild != nil {
		child := node.FirstChild
		node.RemoveChild(child)
		parent.InsertBefore(child, node)
	}
	parent.RemoveChild(node)
}

// UnwrapAll unwraps every descendant of root matching the selector. Nested
// wrappers are handled in one pass: unwrapping a parent only relocates its
// children, so deeper matches stay valid when their turn comes.
func UnwrapAll(root *goquery.Selection, selector string) {
	root.Find(selector).Each(func(_ int, wrapper *goquery.Selection) {
		for _, node := range wrapper.Nodes {
			Unwrap(node)
		}
	})
}

// # Link Resolution

// ResolveURL converts a possibly-relative href into an absolute URL using
// the given base. Unresolvable or non-navigational links (mailto,
// javascript, bare fragments) yield an empty string.
func ResolveURL(base, href string) string {
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return ""
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := baseURL.ResolveReference(parsed)
	// Strip fragments.
	resolved.Fragment = ""
	return resolved.String()
}
