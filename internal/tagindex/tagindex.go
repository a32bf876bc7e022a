// Package tagindex derives tag frequency statistics from a loaded catalog.
package tagindex

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dipdaga/patina/internal/models"
)

// numericTagRe matches decade/year labels like "1999" or "1920s".
var numericTagRe = regexp.MustCompile(`^\d{3,4}s?$`)

// IsNumericTag reports whether tag is a 3-4 digit number optionally
// followed by "s". Numeric tags stay valid filter targets but are kept
// out of the popularity chip list.
func IsNumericTag(tag string) bool {
	return numericTagRe.MatchString(tag)
}

// TagCount pairs a tag with its occurrence count.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Index holds tag occurrence counts over a record set. Pure value: it
// never mutates the records it was built from.
type Index struct {
	counts map[string]int
	order  []string // first-seen order, ties stay stable under it
}

// Build scans the record set once and counts every tag. Tags are trimmed
// of surrounding whitespace; empty strings are excluded. Counting is
// case-sensitive.
func Build(records []models.Record) *Index {
	ix := &Index{counts: make(map[string]int)}
	for _, r := range records {
		for _, raw := range r.Tags {
			tag := strings.TrimSpace(raw)
			if tag == "" {
				continue
			}
			if _, seen := ix.counts[tag]; !seen {
				ix.order = append(ix.order, tag)
			}
			ix.counts[tag]++
		}
	}
	return ix
}

// Count returns the occurrence count for tag (0 when unseen).
func (ix *Index) Count(tag string) int {
	return ix.counts[tag]
}

// Len returns the number of distinct tags.
func (ix *Index) Len() int {
	return len(ix.order)
}

// All returns every tag with its count, ordered by count descending with
// ties in first-seen order.
func (ix *Index) All() []TagCount {
	out := make([]TagCount, 0, len(ix.order))
	for _, tag := range ix.order {
		out = append(out, TagCount{Tag: tag, Count: ix.counts[tag]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// TopTags returns the curated list (in the given order) concatenated with
// the highest-count non-numeric tags, deduplicated, truncated to n entries
// total. The popularity tail is ordered by count descending with ties
// broken by first-seen order.
func (ix *Index) TopTags(n int, curated []string) []string {
	if n <= 0 {
		return []string{}
	}
	out := make([]string, 0, n)
	seen := make(map[string]struct{})

	push := func(tag string) bool {
		if _, dup := seen[tag]; dup {
			return len(out) < n
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
		return len(out) < n
	}

	for _, tag := range curated {
		if !push(tag) {
			return out
		}
	}
	for _, tc := range ix.All() {
		if IsNumericTag(tc.Tag) {
			continue
		}
		if !push(tc.Tag) {
			return out
		}
	}
	return out
}
