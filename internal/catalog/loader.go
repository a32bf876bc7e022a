// Package catalog loads and normalizes the photo catalog JSON document.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/dipdaga/patina/internal/apperr"
	"github.com/dipdaga/patina/internal/models"
)

// rawRecord mirrors the loosely-shaped objects the batch scripts emit.
// Singular and plural field variants are both accepted; normalization
// picks the first element of a plural form when the singular is absent.
type rawRecord struct {
	ID          any      `json:"id"`
	Title       string   `json:"title"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
	Thumb       string   `json:"thumb"`
	Thumbs      []string `json:"thumbs"`
	Tag         []string `json:"tag"`
	Tags        []string `json:"tags"`
	Description string   `json:"post_description"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
}

// Load reads and parses the catalog from a local file path or an
// http(s) URL. Any read or parse failure wraps apperr.ErrLoad; callers
// treat that as fatal because nothing can render without a catalog.
func Load(ctx context.Context, source string) ([]models.Record, error) {
	data, err := fetch(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", apperr.ErrLoad, source, err)
	}
	return Parse(data)
}

// Parse decodes a JSON array of loosely-shaped objects into normalized records.
func Parse(data []byte) ([]models.Record, error) {
	var raws []rawRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: parse: %v", apperr.ErrLoad, err)
	}
	records := make([]models.Record, len(raws))
	for i, raw := range raws {
		records[i] = normalize(raw)
	}
	return records, nil
}

func fetch(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(source)
}

// normalize collapses the singular/plural field variants into the
// uniform Record shape. Tag order is preserved exactly as authored.
func normalize(raw rawRecord) models.Record {
	rec := models.Record{
		ID:          stringifyID(raw.ID),
		Title:       raw.Title,
		Image:       raw.Image,
		Thumb:       raw.Thumb,
		Tags:        raw.Tag,
		Description: raw.Description,
		Width:       raw.Width,
		Height:      raw.Height,
	}
	if rec.Image == "" && len(raw.Images) > 0 {
		rec.Image = raw.Images[0]
	}
	if rec.Thumb == "" && len(raw.Thumbs) > 0 {
		rec.Thumb = raw.Thumbs[0]
	}
	if rec.Tags == nil {
		rec.Tags = raw.Tags
	}
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	return rec
}

// stringifyID renders whatever the source used for id (string, number,
// absent) as a comparable string. Absent ids become the empty string.
func stringifyID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		if id == float64(int64(id)) {
			return strconv.FormatInt(int64(id), 10)
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", id)
	}
}

// FindByID returns the record whose stringified id equals id.
// Stale or unknown ids resolve to apperr.ErrNotFound; callers that got
// the id from the address bar ignore that and simply do not open a modal.
func FindByID(records []models.Record, id string) (models.Record, error) {
	if id != "" {
		for _, r := range records {
			if r.ID == id {
				return r, nil
			}
		}
	}
	return models.Record{}, apperr.ErrNotFound
}
