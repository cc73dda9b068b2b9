// Package sanitize cleans user supplied text before it is stored.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// StrictPolicy removes all HTML tags and attributes.
	StrictPolicy = bluemonday.StrictPolicy()

	// UGCPolicy keeps basic formatting (paragraphs, emphasis, links, lists).
	UGCPolicy = bluemonday.UGCPolicy()
)

// Text strips all HTML and surrounding whitespace. Used for titles, names and comments.
// The result is plain text: entities escaped by the policy are decoded again,
// so it must be escaped by whoever renders it into HTML.
func Text(input string) string {
	return strings.TrimSpace(html.UnescapeString(StrictPolicy.Sanitize(input)))
}

// HTML keeps safe formatting tags. Used for event descriptions.
func HTML(input string) string {
	return strings.TrimSpace(UGCPolicy.Sanitize(input))
}
