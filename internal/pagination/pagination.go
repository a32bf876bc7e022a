// Package pagination reveals the filtered catalog in fixed-size pages.
package pagination

import (
	"github.com/dipdaga/patina/internal/masonry"
	"github.com/dipdaga/patina/internal/models"
)

// DefaultPageSize is the number of records revealed per page.
const DefaultPageSize = 60

// Source yields the current filtered record set. It is invoked fresh on
// every page render so the controller never holds a stale subset.
type Source func() []models.Record

// Controller holds the monotonically increasing page counter and the list
// of currently visible records, placing each revealed record into the
// masonry grid.
type Controller struct {
	pageSize int
	source   Source
	grid     *masonry.Grid
	page     int
	visible  []models.Record
}

// NewController creates a controller over grid. pageSize values below 1
// fall back to DefaultPageSize.
func NewController(pageSize int, source Source, grid *masonry.Grid) *Controller {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Controller{pageSize: pageSize, source: source, grid: grid}
}

// Page returns the count of pages already revealed.
func (c *Controller) Page() int {
	return c.page
}

// Visible returns the records revealed so far, in reveal order.
func (c *Controller) Visible() []models.Record {
	return c.visible
}

// HasMore reports whether the filtered set still holds unrevealed records.
// The scroll sentinel only advances pagination while this is true.
func (c *Controller) HasMore() bool {
	return len(c.visible) < len(c.source())
}

// RenderNextPage computes the filtered set fresh, takes the next page
// slice, appends each record to the grid and the visible list, and
// increments the page counter. Returns the number of records revealed.
// An empty slice is a complete no-op (counter unchanged): that is the
// end-of-data signal, so repeated calls past the end stay idempotent.
func (c *Controller) RenderNextPage() int {
	filtered := c.source()
	start := c.page * c.pageSize
	if start >= len(filtered) {
		return 0
	}
	end := start + c.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	slice := filtered[start:end]
	for _, rec := range slice {
		c.grid.Append(rec)
	}
	c.visible = append(c.visible, slice...)
	c.page++
	return len(slice)
}

// ResetGrid discards all revealed records, zeroes the page counter,
// rebuilds the grid columns for the given viewport width, and renders the
// first page. Invoked whenever the filter criteria change.
func (c *Controller) ResetGrid(width int) {
	c.visible = nil
	c.page = 0
	c.grid.Reset(width)
	c.RenderNextPage()
}
