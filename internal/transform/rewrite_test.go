package transform

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRewrite_LocalPathsBecomeURLs(t *testing.T) {
	items := []Item{
		{
			"image": "photos/fort.jpg",
			"thumb": "./thumbs/fort.jpg",
		},
		{
			"images": []any{"a.jpg", "https://cdn.example.com/b.jpg"},
			"thumbs": []any{"t\\a.jpg"},
		},
	}

	stats, err := Rewrite(items, "https://img.example.com/archive")
	if err != nil {
		t.Fatal(err)
	}

	if items[0]["image"] != "https://img.example.com/archive/photos/fort.jpg" {
		t.Errorf("image = %q", items[0]["image"])
	}
	if items[0]["thumb"] != "https://img.example.com/archive/thumbs/fort.jpg" {
		t.Errorf("thumb = %q", items[0]["thumb"])
	}
	wantImages := []any{
		"https://img.example.com/archive/a.jpg",
		"https://cdn.example.com/b.jpg",
	}
	if diff := cmp.Diff(wantImages, items[1]["images"]); diff != "" {
		t.Errorf("images (-want +got):\n%s", diff)
	}
	if items[1]["thumbs"].([]any)[0] != "https://img.example.com/archive/t/a.jpg" {
		t.Errorf("backslash path = %q", items[1]["thumbs"].([]any)[0])
	}

	if stats.Rewritten != 4 || stats.Skipped != 1 {
		t.Errorf("stats = %+v, want 4 rewritten / 1 skipped", stats)
	}
}

func TestRewrite_IsIdempotent(t *testing.T) {
	items := []Item{{"image": "photos/fort.jpg"}}
	if _, err := Rewrite(items, "https://img.example.com"); err != nil {
		t.Fatal(err)
	}
	first := items[0]["image"]

	stats, err := Rewrite(items, "https://img.example.com")
	if err != nil {
		t.Fatal(err)
	}
	if items[0]["image"] != first {
		t.Errorf("second pass changed url: %q -> %q", first, items[0]["image"])
	}
	if stats.Rewritten != 0 || stats.Skipped != 1 {
		t.Errorf("stats = %+v, want 0 rewritten / 1 skipped", stats)
	}
}

func TestRewrite_RejectsRelativeBase(t *testing.T) {
	if _, err := Rewrite(nil, "img.example.com/archive"); err == nil {
		t.Error("relative base accepted")
	}
}
