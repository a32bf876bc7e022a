// Package session drives the gallery view pipeline as an explicit event
// loop: a closed set of event kinds, each producing a state mutation and
// an ordered list of side effects. This replaces the hidden coupling of
// ambient globals with a single-owner state struct, so ordering and
// idempotence are directly testable without a display surface.
package session

import (
	"errors"

	"github.com/dipdaga/patina/internal/apperr"
	"github.com/dipdaga/patina/internal/catalog"
	"github.com/dipdaga/patina/internal/filter"
	"github.com/dipdaga/patina/internal/masonry"
	"github.com/dipdaga/patina/internal/models"
	"github.com/dipdaga/patina/internal/pagination"
	"github.com/dipdaga/patina/internal/tagindex"
	"github.com/dipdaga/patina/internal/viewstate"
)

// Event is one member of the closed set of inputs the session reacts to.
type Event interface{ isEvent() }

// TagToggle selects or deselects a tag chip.
type TagToggle struct{ Tag string }

// QueryChange replaces the search text.
type QueryChange struct{ Text string }

// Resize reports a new viewport width.
type Resize struct{ Width int }

// ScrollNearSentinel fires when the scroll sentinel comes within range.
type ScrollNearSentinel struct{}

// OpenDetail asks for a record's detail modal.
type OpenDetail struct{ ID string }

// EscapeKey dismisses the detail modal.
type EscapeKey struct{}

// Navigate carries the query string of a back/forward history entry.
type Navigate struct{ RawQuery string }

func (TagToggle) isEvent()          {}
func (QueryChange) isEvent()        {}
func (Resize) isEvent()             {}
func (ScrollNearSentinel) isEvent() {}
func (OpenDetail) isEvent()         {}
func (EscapeKey) isEvent()          {}
func (Navigate) isEvent()           {}

// Effect describes one side effect an event handler produced, in order.
type Effect interface{ isEffect() }

// GridReset reports that the visible set was discarded and columns rebuilt.
type GridReset struct{}

// PageRendered reports that Count records were appended to the grid.
type PageRendered struct{ Count int }

// URLWritten carries the query string the address bar should now show.
type URLWritten struct{ Query string }

// Reflowed reports a resize; Rebuilt is true when the breakpoint column
// count changed and cards were redistributed.
type Reflowed struct{ Rebuilt bool }

// ModalOpened carries the record now shown in the detail modal.
type ModalOpened struct{ Record models.Record }

// ModalClosed reports that the detail modal was hidden.
type ModalClosed struct{}

func (GridReset) isEffect()    {}
func (PageRendered) isEffect() {}
func (URLWritten) isEffect()   {}
func (Reflowed) isEffect()     {}
func (ModalOpened) isEffect()  {}
func (ModalClosed) isEffect()  {}

// Chip is one entry of the tag chip strip.
type Chip struct {
	Tag      string `json:"tag"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

// Session owns the full view pipeline for one gallery view: the loaded
// records, the derived tag index, the masonry grid, the pagination
// controller, and the view state mirrored to the address bar.
//
// A Session is single-owner: handlers are synchronous and must not be
// called concurrently. Every state-mutating event runs mutation, grid
// reset, and URL write in that order before the next event is handled.
type Session struct {
	records []models.Record
	index   *tagindex.Index
	grid    *masonry.Grid
	pager   *pagination.Controller
	state   viewstate.State
	width   int
}

// New builds a session over records at the given viewport width and
// renders the first page.
func New(records []models.Record, pageSize, width int, renderer masonry.Renderer) *Session {
	s := &Session{
		records: records,
		index:   tagindex.Build(records),
		width:   width,
	}
	s.grid = masonry.NewGrid(renderer, width)
	s.pager = pagination.NewController(pageSize, s.Filtered, s.grid)
	s.pager.RenderNextPage()
	s.state.Page = s.pager.Page()
	return s
}

// NewFromQuery restores a session from an address-bar query string: the
// decoded tag selection and search text are applied, the recorded number
// of pages is re-revealed (at least one), and a pending open id reopens
// the detail modal when it still matches a record. Stale open ids are
// ignored; the modal simply does not open.
func NewFromQuery(records []models.Record, pageSize, width int, renderer masonry.Renderer, rawQuery string) (*Session, []Effect) {
	s := &Session{
		records: records,
		index:   tagindex.Build(records),
		width:   width,
	}
	s.grid = masonry.NewGrid(renderer, width)
	s.pager = pagination.NewController(pageSize, s.Filtered, s.grid)
	s.state = viewstate.Decode(rawQuery)

	var effects []Effect
	pages := s.state.Page
	if pages < 1 {
		pages = 1
	}
	rendered := 0
	for i := 0; i < pages; i++ {
		n := s.pager.RenderNextPage()
		if n == 0 {
			break
		}
		rendered += n
	}
	s.state.Page = s.pager.Page()
	effects = append(effects, PageRendered{Count: rendered})

	if s.state.OpenID != "" {
		if rec, err := catalog.FindByID(s.records, s.state.OpenID); err == nil {
			effects = append(effects, ModalOpened{Record: rec})
		}
	}
	return s, effects
}

// State returns a copy of the current view state.
func (s *Session) State() viewstate.State {
	return s.state
}

// Visible returns the records revealed so far.
func (s *Session) Visible() []models.Record {
	return s.pager.Visible()
}

// Grid exposes the masonry grid for inspection.
func (s *Session) Grid() *masonry.Grid {
	return s.grid
}

// Filtered evaluates the current selection and query against the full
// record set, preserving catalog order.
func (s *Session) Filtered() []models.Record {
	return filter.Apply(s.records, s.state.SelectedTags, s.state.Query)
}

// Chips returns the chip strip: curated tags first, then the most
// frequent non-numeric tags, with selection flags applied.
func (s *Session) Chips(n int, curated []string) []Chip {
	tags := s.index.TopTags(n, curated)
	chips := make([]Chip, len(tags))
	for i, tag := range tags {
		chips[i] = Chip{Tag: tag, Count: s.index.Count(tag), Selected: s.state.HasTag(tag)}
	}
	return chips
}

// SetRecords swaps in a freshly loaded catalog (watcher reload), rebuilds
// the tag index, and re-renders from the start.
func (s *Session) SetRecords(records []models.Record) []Effect {
	s.records = records
	s.index = tagindex.Build(records)
	return s.resetAndWrite()
}

// Handle processes one event and returns its side effects in order.
func (s *Session) Handle(ev Event) []Effect {
	switch e := ev.(type) {
	case TagToggle:
		s.state.ToggleTag(e.Tag)
		return s.resetAndWrite()

	case QueryChange:
		s.state.Query = e.Text
		return s.resetAndWrite()

	case Resize:
		s.width = e.Width
		rebuilt := s.grid.Resize(e.Width)
		return []Effect{Reflowed{Rebuilt: rebuilt}}

	case ScrollNearSentinel:
		if !s.pager.HasMore() {
			return nil
		}
		n := s.pager.RenderNextPage()
		if n == 0 {
			return nil
		}
		s.state.Page = s.pager.Page()
		return []Effect{PageRendered{Count: n}, URLWritten{Query: s.state.Encode()}}

	case OpenDetail:
		rec, err := catalog.FindByID(s.records, e.ID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil
			}
			return nil
		}
		s.state.OpenID = rec.ID
		return []Effect{ModalOpened{Record: rec}, URLWritten{Query: s.state.Encode()}}

	case EscapeKey:
		if s.state.OpenID == "" {
			return nil
		}
		s.state.OpenID = ""
		return []Effect{ModalClosed{}, URLWritten{Query: s.state.Encode()}}

	case Navigate:
		return s.navigate(e.RawQuery)
	}
	return nil
}

// resetAndWrite is the state-mutation tail shared by tag toggles, query
// edits, and catalog reloads: discard the visible set, re-render from the
// start, then mirror the state to the address bar.
func (s *Session) resetAndWrite() []Effect {
	s.pager.ResetGrid(s.width)
	s.state.Page = s.pager.Page()
	return []Effect{
		GridReset{},
		PageRendered{Count: len(s.pager.Visible())},
		URLWritten{Query: s.state.Encode()},
	}
}

// navigate applies a back/forward history entry. This is the one place
// browser history feeds back into UI state rather than the reverse, so
// no URLWritten effect is emitted: the address bar already changed.
func (s *Session) navigate(rawQuery string) []Effect {
	prev := s.state
	next := viewstate.Decode(rawQuery)

	var effects []Effect

	filtersChanged := prev.Query != next.Query || !sameTags(prev.SelectedTags, next.SelectedTags)
	if filtersChanged || next.Page != prev.Page {
		s.state.SelectedTags = next.SelectedTags
		s.state.Query = next.Query
		s.pager.ResetGrid(s.width)
		pages := next.Page
		for s.pager.Page() < pages {
			if s.pager.RenderNextPage() == 0 {
				break
			}
		}
		s.state.Page = s.pager.Page()
		effects = append(effects,
			GridReset{},
			PageRendered{Count: len(s.pager.Visible())},
		)
	}

	// Modal reaction: the history entry decides visibility.
	switch {
	case prev.OpenID != "" && next.OpenID == "":
		s.state.OpenID = ""
		effects = append(effects, ModalClosed{})
	case next.OpenID != "" && next.OpenID != prev.OpenID:
		if rec, err := catalog.FindByID(s.records, next.OpenID); err == nil {
			s.state.OpenID = rec.ID
			effects = append(effects, ModalOpened{Record: rec})
		}
	}
	return effects
}

func sameTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	for _, t := range b {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}
