// Package viewstate maps the gallery view state to and from the
// address-bar query string, making views shareable and bookmarkable.
package viewstate

import (
	"net/url"
	"strconv"
	"strings"
)

// State is the whole of the user-visible view: which tags are selected,
// what was typed in the search box, how many pages have been revealed,
// and which record (if any) is open in the detail modal.
type State struct {
	SelectedTags []string
	Query        string
	Page         int
	OpenID       string
}

// HasTag reports whether tag is currently selected.
func (s State) HasTag(tag string) bool {
	for _, t := range s.SelectedTags {
		if t == tag {
			return true
		}
	}
	return false
}

// ToggleTag adds tag to the selection, or removes it if already selected.
func (s *State) ToggleTag(tag string) {
	for i, t := range s.SelectedTags {
		if t == tag {
			s.SelectedTags = append(s.SelectedTags[:i], s.SelectedTags[i+1:]...)
			return
		}
	}
	s.SelectedTags = append(s.SelectedTags, tag)
}

// Encode serializes the state as a query string. Fields at their default
// (empty selection, empty query, zero pages, no open record) are omitted
// entirely. Encoding immediately after decoding the same state reproduces
// an equivalent query string.
func (s State) Encode() string {
	v := url.Values{}
	if len(s.SelectedTags) > 0 {
		v.Set("tags", strings.Join(s.SelectedTags, ","))
	}
	if s.Query != "" {
		v.Set("q", s.Query)
	}
	if s.Page > 0 {
		v.Set("p", strconv.Itoa(s.Page))
	}
	if s.OpenID != "" {
		v.Set("open", s.OpenID)
	}
	return v.Encode()
}

// Decode parses a raw query string into a State. Malformed input degrades
// silently: an unparseable or negative p defaults to 0, empty tag entries
// are dropped, and unknown parameters are ignored.
func Decode(raw string) State {
	v, _ := url.ParseQuery(raw)

	var s State
	if tags := v.Get("tags"); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t != "" {
				s.SelectedTags = append(s.SelectedTags, t)
			}
		}
	}
	s.Query = v.Get("q")
	if p, err := strconv.Atoi(v.Get("p")); err == nil && p > 0 {
		s.Page = p
	}
	s.OpenID = v.Get("open")
	return s
}
