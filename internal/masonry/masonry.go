// Package masonry packs catalog cards into a responsive number of
// balanced-height columns.
package masonry

import "github.com/dipdaga/patina/internal/models"

// Breakpoint table: viewport width units to column count.
const (
	breakTwo   = 520
	breakThree = 800
	breakFour  = 1100
	breakFive  = 1400

	// captionHeight approximates the title strip under each image.
	captionHeight = 48
)

// ColumnCount returns the column count for a viewport width: one column
// below 520 width units, growing to five at 1400 and above.
func ColumnCount(width int) int {
	switch {
	case width < breakTwo:
		return 1
	case width < breakThree:
		return 2
	case width < breakFour:
		return 3
	case width < breakFive:
		return 4
	default:
		return 5
	}
}

// Card is one rendered record together with its measured extent. Heights
// are whatever unit the renderer works in; the grid only compares them.
type Card struct {
	Record models.Record
	Height float64
}

// Renderer produces a renderable card for a record. The presentation
// layer is injected here so the layout, filter, and pagination logic can
// be exercised without a real display surface.
type Renderer interface {
	Render(rec models.Record, columnWidth float64) Card
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func(rec models.Record, columnWidth float64) Card

// Render calls f.
func (f RendererFunc) Render(rec models.Record, columnWidth float64) Card {
	return f(rec, columnWidth)
}

// EstimateRenderer builds cards whose height is estimated from the
// record's declared dimensions scaled to the column width, plus a fixed
// caption strip. Records without declared dimensions are assumed square.
// The real display reflows as images load; the estimate only has to be
// good enough for the shortest-column heuristic.
func EstimateRenderer() Renderer {
	return RendererFunc(func(rec models.Record, columnWidth float64) Card {
		h := columnWidth
		if rec.Width > 0 && rec.Height > 0 {
			h = columnWidth * float64(rec.Height) / float64(rec.Width)
		}
		return Card{Record: rec, Height: h + captionHeight}
	})
}

type column struct {
	cards  []Card
	height float64
}

// Grid maintains the column containers for the current viewport width and
// appends each new card to the currently shortest column. The greedy
// heuristic approximates balanced column heights without knowing final
// card heights in advance.
type Grid struct {
	renderer Renderer
	width    int
	columns  []column
}

// NewGrid creates a grid sized for the given viewport width.
func NewGrid(renderer Renderer, width int) *Grid {
	g := &Grid{renderer: renderer}
	g.rebuild(width)
	return g
}

func (g *Grid) rebuild(width int) {
	g.width = width
	g.columns = make([]column, ColumnCount(width))
}

// ColumnCount returns the current number of columns.
func (g *Grid) ColumnCount() int {
	return len(g.columns)
}

// columnWidth is the per-column share of the viewport.
func (g *Grid) columnWidth() float64 {
	return float64(g.width) / float64(len(g.columns))
}

// ShortestColumn returns the index of the column with the smallest
// accumulated height; ties resolve to the first column left-to-right.
func (g *Grid) ShortestColumn() int {
	shortest := 0
	for i := 1; i < len(g.columns); i++ {
		if g.columns[i].height < g.columns[shortest].height {
			shortest = i
		}
	}
	return shortest
}

// Append renders a card for rec and places it in the shortest column.
func (g *Grid) Append(rec models.Record) {
	card := g.renderer.Render(rec, g.columnWidth())
	g.appendCard(card)
}

func (g *Grid) appendCard(card Card) {
	i := g.ShortestColumn()
	g.columns[i].cards = append(g.columns[i].cards, card)
	g.columns[i].height += card.Height
}

// Resize adjusts the grid to a new viewport width. When the breakpoint
// column count is unchanged the existing columns and their cards persist
// untouched, so scroll position is not disturbed. When it changes, the
// already-rendered cards are collected in their current display order,
// the columns are cleared, and each card is re-appended through the same
// shortest-column heuristic. This is not a re-layout from the data:
// card identities and order are preserved, only column assignment moves.
// Reports whether the columns were rebuilt.
func (g *Grid) Resize(width int) bool {
	if ColumnCount(width) == len(g.columns) {
		g.width = width
		return false
	}
	cards := g.Cards()
	g.rebuild(width)
	for _, c := range cards {
		g.appendCard(c)
	}
	return true
}

// Reset clears every column and rebuilds the containers for width.
// Invoked whenever the filter criteria change.
func (g *Grid) Reset(width int) {
	g.rebuild(width)
}

// Cards returns every placed card in display order: columns left to
// right, cards within a column top to bottom.
func (g *Grid) Cards() []Card {
	var out []Card
	for _, col := range g.columns {
		out = append(out, col.cards...)
	}
	return out
}

// Column returns the cards of column i top to bottom.
func (g *Grid) Column(i int) []Card {
	return g.columns[i].cards
}

// ColumnHeight returns the accumulated content extent of column i.
func (g *Grid) ColumnHeight(i int) float64 {
	return g.columns[i].height
}

// Total returns the number of placed cards.
func (g *Grid) Total() int {
	n := 0
	for _, col := range g.columns {
		n += len(col.cards)
	}
	return n
}
