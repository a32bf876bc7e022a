package transform

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dipdaga/patina/internal/models"
	"github.com/dipdaga/patina/internal/tagindex"
)

var yearTagRe = regexp.MustCompile(`^\d{4}$`)

// DecadeTag rolls an exact-year tag up to its decade label: "1911"
// becomes "1910s", while an existing decade label like "1920s" passes
// through. Non-year tags report ok=false.
func DecadeTag(tag string) (string, bool) {
	if yearTagRe.MatchString(tag) {
		year, _ := strconv.Atoi(tag)
		return strconv.Itoa(year/10*10) + "s", true
	}
	if tagindex.IsNumericTag(tag) && strings.HasSuffix(tag, "s") {
		return tag, true
	}
	return "", false
}

// CategorySpec is the hand-authored tag category file: a mapping from
// category name to its member tags (matched case-insensitively).
type CategorySpec struct {
	Categories map[string][]string `yaml:"categories"`
}

// Report is the tag statistics document the tags subcommand emits.
type Report struct {
	TotalRecords  int                            `json:"total_records"`
	TotalTags     int                            `json:"total_tags"`
	Frequencies   []tagindex.TagCount            `json:"frequencies"`
	Decades       map[string]int                 `json:"decades"`
	Categories    map[string][]tagindex.TagCount `json:"categories,omitempty"`
	Uncategorized []tagindex.TagCount            `json:"uncategorized,omitempty"`
}

// BuildReport computes the tag frequency table over records, rolls
// year tags up into decade counts, and assigns every observed tag to its
// hand-authored category. Tags not claimed by any category land in
// Uncategorized.
func BuildReport(records []models.Record, spec CategorySpec) Report {
	index := tagindex.Build(records)
	freqs := index.All()

	report := Report{
		TotalRecords: len(records),
		TotalTags:    index.Len(),
		Frequencies:  freqs,
		Decades:      make(map[string]int),
	}

	for _, tc := range freqs {
		if decade, ok := DecadeTag(tc.Tag); ok {
			report.Decades[decade] += tc.Count
		}
	}

	if len(spec.Categories) == 0 {
		return report
	}

	// Invert the spec for lookup: lower-cased member tag → category.
	byTag := make(map[string]string)
	for name, members := range spec.Categories {
		for _, m := range members {
			byTag[strings.ToLower(m)] = name
		}
	}

	report.Categories = make(map[string][]tagindex.TagCount, len(spec.Categories))
	for name := range spec.Categories {
		report.Categories[name] = []tagindex.TagCount{}
	}
	for _, tc := range freqs {
		if name, ok := byTag[strings.ToLower(tc.Tag)]; ok {
			report.Categories[name] = append(report.Categories[name], tc)
		} else {
			report.Uncategorized = append(report.Uncategorized, tc)
		}
	}
	return report
}
