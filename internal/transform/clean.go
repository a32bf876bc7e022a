package transform

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// stopWords are dropped from tag lists during cleaning. They come from
// scraping blog labels, where connective words leak into tags.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "in": {}, "on": {}, "at": {}, "of": {},
	"to": {}, "for": {}, "with": {}, "from": {}, "by": {}, "view": {},
	"during": {}, "been": {}, "were": {}, "was": {}, "are": {}, "is": {},
	"and": {}, "or": {}, "but": {}, "this": {}, "that": {}, "these": {},
	"those": {},
}

var (
	datePrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\s+`)
	partRe       = regexp.MustCompile(`(?i)\s*[-–—]?\s*Part\s*[-–—]?\s*[IVX0-9]+`)
	spacesRe     = regexp.MustCompile(`\s+`)
)

// CleanStats summarizes what a cleaning pass changed.
type CleanStats struct {
	Total               int `json:"total"`
	TitlesUpdated       int `json:"titles_updated"`
	TagListsCleaned     int `json:"tag_lists_cleaned"`
	DescriptionsBlanked int `json:"descriptions_blanked"`
	IDsAssigned         int `json:"ids_assigned"`
}

// Clean normalizes every item in place: titles are rederived from folder
// names, stop-word tags are pruned, weak descriptions are blanked, and
// records without an id get one assigned.
func Clean(items []Item) CleanStats {
	stats := CleanStats{Total: len(items)}
	for _, item := range items {
		if folder := stringField(item, "folder"); folder != "" {
			item["title"] = CleanTitle(folder)
			stats.TitlesUpdated++
		}

		if tags := stringSlice(item, "tag"); tags != nil {
			cleaned := CleanTags(tags)
			if len(cleaned) != len(tags) {
				stats.TagListsCleaned++
			}
			item["tag"] = anySlice(cleaned)
		}

		if desc := stringField(item, "post_description"); desc != "" && !ValidDescription(desc) {
			item["post_description"] = ""
			stats.DescriptionsBlanked++
		}

		if _, ok := item["id"]; !ok {
			item["id"] = uuid.NewString()
			stats.IDsAssigned++
		}
	}
	return stats
}

// CleanTitle derives a display title from a scraped folder name: the
// leading YYYY-MM-DD prefix and any "Part N" suffix are stripped and
// whitespace is collapsed.
func CleanTitle(folder string) string {
	title := datePrefixRe.ReplaceAllString(folder, "")
	title = partRe.ReplaceAllString(title, " ")
	title = spacesRe.ReplaceAllString(title, " ")
	return strings.TrimSpace(title)
}

// CleanTags drops empty and stop-word tags and deduplicates
// case-insensitively, keeping the first spelling seen.
func CleanTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		lower := strings.ToLower(tag)
		if _, stop := stopWords[lower]; stop {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		cleaned = append(cleaned, tag)
	}
	return cleaned
}

// ValidDescription reports whether a scraped description is worth
// keeping: at least 20 words, with at least one capital letter and one
// sentence-ending punctuation mark.
func ValidDescription(desc string) bool {
	if len(strings.Fields(desc)) < 20 {
		return false
	}
	hasCapital := strings.IndexFunc(desc, func(r rune) bool {
		return r >= 'A' && r <= 'Z'
	}) >= 0
	hasPunctuation := strings.ContainsAny(desc, ".!?")
	return hasCapital && hasPunctuation
}
