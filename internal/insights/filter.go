// Package insights holds pure views derived from a diary snapshot.
// Nothing here performs I/O.
package insights

import (
	"strings"

	"github.com/matheus3301/minda/internal/store"
	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
)

// PreviewLength is the number of characters kept by Preview.
const PreviewLength = 80

// Filter returns the entries whose title or content contains query,
// ignoring case. A blank query returns entries unchanged.
func Filter(entries []store.Entry, query string) []store.Entry {
	if strings.TrimSpace(query) == "" {
		return entries
	}
	fold := cases.Fold()
	needle := fold.String(query)

	out := make([]store.Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(fold.String(e.Title), needle) || strings.Contains(fold.String(e.Content), needle) {
			out = append(out, e)
		}
	}
	return out
}

// Preview cuts content to PreviewLength user-perceived characters and
// appends "..." when anything was cut.
func Preview(content string) string {
	if uniseg.GraphemeClusterCount(content) <= PreviewLength {
		return content
	}
	g := uniseg.NewGraphemes(content)
	var end int
	for n := 0; n < PreviewLength && g.Next(); n++ {
		_, end = g.Positions()
	}
	return content[:end] + "..."
}
