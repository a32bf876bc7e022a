// Package filter evaluates the current tag selection and search query
// against the full catalog.
package filter

import (
	"strings"

	"github.com/dipdaga/patina/internal/models"
)

// Apply returns the ordered subsequence of records matching the selected
// tag set and the free-text query, preserving catalog order. Pure: it is
// safe to recompute on every keystroke or chip toggle.
//
// With no selection and no query every record matches. Otherwise a record
// matches when its tag sequence intersects the selection, or when any one
// of the whitespace-split, lower-cased query terms is a substring of the
// lower-cased title or of any lower-cased tag. The match is deliberately
// OR across terms (recall-biased): a single hit is enough.
func Apply(records []models.Record, selected []string, query string) []models.Record {
	terms := strings.Fields(strings.ToLower(query))
	if len(selected) == 0 && len(terms) == 0 {
		return records
	}

	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if matchesTags(r, selected) || matchesQuery(r, terms) {
			out = append(out, r)
		}
	}
	return out
}

func matchesTags(r models.Record, selected []string) bool {
	for _, tag := range selected {
		if r.HasTag(tag) {
			return true
		}
	}
	return false
}

func matchesQuery(r models.Record, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	title := strings.ToLower(r.Title)
	for _, term := range terms {
		if strings.Contains(title, term) {
			return true
		}
		for _, tag := range r.Tags {
			if strings.Contains(strings.ToLower(tag), term) {
				return true
			}
		}
	}
	return false
}
