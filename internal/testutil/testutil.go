// Package testutil provides shared test helpers for building catalogs.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/dipdaga/patina/internal/models"
)

// Records builds n records titled "Photo 1".."Photo n" with ids "1".."n"
// and the given tags on every record.
func Records(n int, tags ...string) []models.Record {
	out := make([]models.Record, n)
	for i := range out {
		out[i] = models.Record{
			ID:    fmt.Sprintf("%d", i+1),
			Title: fmt.Sprintf("Photo %d", i+1),
			Image: fmt.Sprintf("images/photo_%d.jpg", i+1),
			Thumb: fmt.Sprintf("thumbs/photo_%d.jpg", i+1),
			Tags:  append([]string{}, tags...),
		}
	}
	return out
}

// WriteCatalog marshals records into a temp catalog file and returns its
// path. The file lives in its own directory so watcher tests can observe
// replacements without interference.
func WriteCatalog(t *testing.T, records []models.Record) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "index.json")
	data, err := json.Marshal(records)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
