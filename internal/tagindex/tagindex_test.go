package tagindex

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dipdaga/patina/internal/models"
)

func TestIsNumericTag(t *testing.T) {
	cases := []struct {
		tag  string
		want bool
	}{
		{"1920s", true},
		{"1999", true},
		{"860s", true},
		{"20th Century", false},
		{"Delhi", false},
		{"12", false},
		{"19999", false},
		{"s", false},
	}
	for _, tc := range cases {
		if got := IsNumericTag(tc.tag); got != tc.want {
			t.Errorf("IsNumericTag(%q) = %v, want %v", tc.tag, got, tc.want)
		}
	}
}

func TestBuild_TrimsAndExcludesEmpty(t *testing.T) {
	ix := Build([]models.Record{
		{Tags: []string{" Delhi ", "", "  ", "Delhi"}},
		{Tags: []string{"Delhi"}},
	})
	if got := ix.Count("Delhi"); got != 3 {
		t.Errorf("Count(Delhi) = %d, want 3", got)
	}
	if got := ix.Len(); got != 1 {
		t.Errorf("Len = %d, want 1", got)
	}
}

func TestBuild_CaseSensitive(t *testing.T) {
	ix := Build([]models.Record{{Tags: []string{"delhi", "Delhi"}}})
	if ix.Count("delhi") != 1 || ix.Count("Delhi") != 1 {
		t.Errorf("counts = %d/%d, want 1/1", ix.Count("delhi"), ix.Count("Delhi"))
	}
}

func TestAll_OrderedByCountThenFirstSeen(t *testing.T) {
	ix := Build([]models.Record{
		{Tags: []string{"b", "a"}},
		{Tags: []string{"b", "c"}},
	})
	want := []TagCount{{"b", 2}, {"a", 1}, {"c", 1}}
	if diff := cmp.Diff(want, ix.All()); diff != "" {
		t.Errorf("All mismatch (-want +got):\n%s", diff)
	}
}

func TestTopTags_CuratedFirstNumericExcluded(t *testing.T) {
	ix := Build([]models.Record{
		{Tags: []string{"1920s", "Street", "Delhi"}},
		{Tags: []string{"1920s", "Street"}},
		{Tags: []string{"1920s"}},
	})

	got := ix.TopTags(3, []string{"Varanasi"})
	// Curated leads even with zero occurrences; 1920s is numeric and
	// never makes the chip list despite being the most frequent tag.
	want := []string{"Varanasi", "Street", "Delhi"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TopTags mismatch (-want +got):\n%s", diff)
	}
}

func TestTopTags_DeduplicatesAndTruncates(t *testing.T) {
	ix := Build([]models.Record{
		{Tags: []string{"Delhi", "Street"}},
		{Tags: []string{"Delhi"}},
	})

	got := ix.TopTags(2, []string{"Delhi"})
	want := []string{"Delhi", "Street"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TopTags mismatch (-want +got):\n%s", diff)
	}

	if got := ix.TopTags(0, []string{"Delhi"}); len(got) != 0 {
		t.Errorf("TopTags(0) = %v, want empty", got)
	}
}
