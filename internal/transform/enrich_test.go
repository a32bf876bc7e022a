package transform

import (
	"context"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writePNG(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func TestEnrich_FillsDimensionsFromImageHeaders(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "fort.png", 640, 480)

	items := []Item{
		{"image": "fort.png"},
		{"image": "fort.png", "width": float64(100), "height": float64(50)},
		{"image": "https://cdn.example.com/remote.png"},
		{"image": "missing.png"},
		{"title": "no image at all"},
	}

	stats, err := Enrich(context.Background(), items, dir, 2, discardLogger())
	if err != nil {
		t.Fatal(err)
	}

	if items[0]["width"] != 640 || items[0]["height"] != 480 {
		t.Errorf("dimensions = %vx%v, want 640x480", items[0]["width"], items[0]["height"])
	}
	if items[1]["width"] != float64(100) {
		t.Errorf("already-enriched item overwritten: %v", items[1]["width"])
	}
	if _, ok := items[2]["width"]; ok {
		t.Error("remote image enriched")
	}

	if stats.Enriched != 1 || stats.Skipped != 4 {
		t.Errorf("stats = %+v, want 1 enriched / 4 skipped", stats)
	}
}

func TestEnrich_FallsBackToFirstOfImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png", 10, 20)

	items := []Item{{"images": []any{"a.png", "b.png"}}}
	if _, err := Enrich(context.Background(), items, dir, 1, discardLogger()); err != nil {
		t.Fatal(err)
	}
	if items[0]["width"] != 10 || items[0]["height"] != 20 {
		t.Errorf("dimensions = %vx%v, want 10x20", items[0]["width"], items[0]["height"])
	}
}

func TestEnrich_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := make([]Item, 500)
	for i := range items {
		items[i] = Item{"image": "x.png"}
	}
	if _, err := Enrich(ctx, items, t.TempDir(), 1, discardLogger()); err == nil {
		t.Error("canceled context returned nil error")
	}
}

func TestDocumentRoundTripPreservesUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	items := []Item{{
		"id":       "1",
		"title":    "Fort",
		"folder":   "2019-01-01 Fort",
		"post_url": "https://example.com/fort",
	}}

	if err := WriteDocument(path, items); err != nil {
		t.Fatal(err)
	}
	got, err := ReadDocument(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0]["post_url"] != "https://example.com/fort" {
		t.Errorf("round trip lost source fields: %v", got)
	}
	if got[0]["folder"] != "2019-01-01 Fort" {
		t.Errorf("folder = %v", got[0]["folder"])
	}
}
