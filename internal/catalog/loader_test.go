package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dipdaga/patina/internal/apperr"
	"github.com/dipdaga/patina/internal/models"
)

func TestParse_NormalizesFieldVariants(t *testing.T) {
	data := []byte(`[
		{"id": 7, "title": "Plural fields", "images": ["a.jpg", "b.jpg"], "thumbs": ["ta.jpg"], "tags": ["Delhi", "Street"]},
		{"id": "x1", "title": "Singular fields", "image": "c.jpg", "thumb": "tc.jpg", "tag": ["Mumbai"]},
		{"title": "Bare"}
	]`)

	records, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}

	want := models.Record{
		ID:    "7",
		Title: "Plural fields",
		Image: "a.jpg",
		Thumb: "ta.jpg",
		Tags:  []string{"Delhi", "Street"},
	}
	if diff := cmp.Diff(want, records[0]); diff != "" {
		t.Errorf("plural record mismatch (-want +got):\n%s", diff)
	}

	if records[1].Image != "c.jpg" || records[1].Thumb != "tc.jpg" {
		t.Errorf("singular record = %+v", records[1])
	}
	if records[1].ID != "x1" {
		t.Errorf("id = %q, want %q", records[1].ID, "x1")
	}
}

func TestParse_TagsNeverNil(t *testing.T) {
	records, err := Parse([]byte(`[{"title": "No tags at all"}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records[0].Tags == nil {
		t.Error("Tags is nil, want empty slice")
	}
	if len(records[0].Tags) != 0 {
		t.Errorf("Tags = %v, want empty", records[0].Tags)
	}
}

func TestParse_PreservesTagOrder(t *testing.T) {
	records, err := Parse([]byte(`[{"tag": ["z", "a", "m"]}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, records[0].Tags); diff != "" {
		t.Errorf("tag order mutated (-want +got):\n%s", diff)
	}
}

func TestParse_SingularWinsOverPlural(t *testing.T) {
	records, err := Parse([]byte(`[{"image": "single.jpg", "images": ["first.jpg"]}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records[0].Image != "single.jpg" {
		t.Errorf("image = %q, want singular field to win", records[0].Image)
	}
}

func TestParse_InvalidJSONIsLoadError(t *testing.T) {
	_, err := Parse([]byte(`{"not": "an array"`))
	if !errors.Is(err, apperr.ErrLoad) {
		t.Errorf("err = %v, want apperr.ErrLoad", err)
	}
}

func TestLoad_MissingFileIsLoadError(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/index.json")
	if !errors.Is(err, apperr.ErrLoad) {
		t.Errorf("err = %v, want apperr.ErrLoad", err)
	}
}

func TestFindByID(t *testing.T) {
	records := []models.Record{{ID: "1"}, {ID: "2"}}

	rec, err := FindByID(records, "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != "2" {
		t.Errorf("id = %q, want %q", rec.ID, "2")
	}

	if _, err := FindByID(records, "stale"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("stale id err = %v, want apperr.ErrNotFound", err)
	}
	if _, err := FindByID(records, ""); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("empty id err = %v, want apperr.ErrNotFound", err)
	}
}
