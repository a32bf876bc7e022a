// Package models defines the domain types for Patina.
package models

// Record is one normalized catalog entry. Immutable after load: the
// pipeline (tag index, filter, masonry, pagination) only ever reads it.
//
// Regardless of which raw field the source JSON used (image vs images,
// thumb vs thumbs, tag vs tags), a loaded Record always exposes Image,
// Thumb, and Tags in this shape.
type Record struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Image       string   `json:"image"`
	Thumb       string   `json:"thumb"`
	Tags        []string `json:"tag"`
	Description string   `json:"post_description,omitempty"`

	// Declared pixel dimensions, filled in by the enrich transform.
	// Zero when unknown.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// HasTag reports whether the record carries the given tag (case-sensitive).
func (r Record) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
