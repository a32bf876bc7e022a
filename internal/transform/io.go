package transform

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Item is one raw catalog object with all source fields intact.
type Item = map[string]any

// ReadDocument reads a catalog JSON array preserving every field.
func ReadDocument(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("transform: read %s: %w", path, err)
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("transform: parse %s: %w", path, err)
	}
	return items, nil
}

// WriteDocument atomically writes items as indented JSON:
// tmp file → fsync → rename, so a crash never leaves a torn catalog.
func WriteDocument(path string, items []Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("transform: marshal: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".patina-tmp-*")
	if err != nil {
		return fmt.Errorf("transform: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("transform: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("transform: sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("transform: close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("transform: rename: %w", err)
	}
	return nil
}

// stringField returns the string value of key, or "" when absent or not
// a string.
func stringField(item Item, key string) string {
	if v, ok := item[key].(string); ok {
		return v
	}
	return ""
}

// stringSlice returns the []string value of key. JSON arrays decode as
// []any, so elements are filtered to strings.
func stringSlice(item Item, key string) []string {
	raw, ok := item[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// anySlice converts strings back to the []any shape json.Unmarshal uses.
func anySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
