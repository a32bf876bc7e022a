package api

import (
	"sync"

	"github.com/dipdaga/patina/internal/catalog"
	"github.com/dipdaga/patina/internal/masonry"
	"github.com/dipdaga/patina/internal/models"
	"github.com/dipdaga/patina/internal/session"
	"github.com/dipdaga/patina/internal/tagindex"
)

// defaultChipCount bounds the chip strip when neither the caller nor the
// configuration gives a count.
const defaultChipCount = 30

// Service holds the current catalog snapshot for the read-only API.
// The watcher swaps in fresh records via SetRecords; handlers evaluate
// views against whatever snapshot is current. Every view evaluation is
// pure, so no state beyond the snapshot is shared between requests.
type Service struct {
	mu        sync.RWMutex
	records   []models.Record
	index     *tagindex.Index
	pageSize  int
	chipCount int
	curated   []string
}

// NewService creates a service over the loaded catalog. chipCount is the
// configured chip strip size, used whenever a request gives no n of its
// own; values below 1 fall back to defaultChipCount.
func NewService(records []models.Record, pageSize, chipCount int, curated []string) *Service {
	if chipCount < 1 {
		chipCount = defaultChipCount
	}
	return &Service{
		records:   records,
		index:     tagindex.Build(records),
		pageSize:  pageSize,
		chipCount: chipCount,
		curated:   curated,
	}
}

// SetRecords replaces the catalog snapshot and rebuilds the tag index.
func (s *Service) SetRecords(records []models.Record) {
	index := tagindex.Build(records)
	s.mu.Lock()
	s.records = records
	s.index = index
	s.mu.Unlock()
}

// Catalog returns the current snapshot and its size.
func (s *Service) Catalog() ([]models.Record, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records, len(s.records)
}

// View evaluates the gallery pipeline for an address-bar query string.
// A positive viewport width additionally runs the masonry layout and
// groups the revealed records into columns.
func (s *Service) View(rawQuery string, width int) ViewResponse {
	s.mu.RLock()
	records := s.records
	s.mu.RUnlock()

	gridWidth := width
	if gridWidth <= 0 {
		gridWidth = 1280
	}

	sess, _ := session.NewFromQuery(records, s.pageSize, gridWidth, masonry.EstimateRenderer(), rawQuery)

	resp := ViewResponse{
		Records: sess.Visible(),
		Page:    sess.State().Page,
		Total:   len(sess.Filtered()),
		Query:   sess.State().Encode(),
	}
	if resp.Records == nil {
		resp.Records = []models.Record{}
	}
	if width > 0 {
		grid := sess.Grid()
		cols := make([][]models.Record, grid.ColumnCount())
		for i := range cols {
			cards := grid.Column(i)
			cols[i] = make([]models.Record, len(cards))
			for j, card := range cards {
				cols[i][j] = card.Record
			}
		}
		resp.Columns = cols
	}
	return resp
}

// Tags returns the chip strip (curated first, then top non-numeric tags)
// and the full frequency table. Selected flags reflect the tags parameter
// of the caller's view state. An n below 1 means the caller did not ask
// for a size and the configured chip count applies.
func (s *Service) Tags(n int, selected []string) TagsResponse {
	s.mu.RLock()
	index := s.index
	curated := s.curated
	s.mu.RUnlock()

	if n < 1 {
		n = s.chipCount
	}

	top := index.TopTags(n, curated)
	chips := make([]session.Chip, len(top))
	sel := make(map[string]struct{}, len(selected))
	for _, t := range selected {
		sel[t] = struct{}{}
	}
	for i, tag := range top {
		_, isSel := sel[tag]
		chips[i] = session.Chip{Tag: tag, Count: index.Count(tag), Selected: isSel}
	}
	return TagsResponse{Chips: chips, Tags: index.All(), Total: index.Len()}
}

// Record looks up a single record by its stringified id.
func (s *Service) Record(id string) (models.Record, error) {
	s.mu.RLock()
	records := s.records
	s.mu.RUnlock()
	return catalog.FindByID(records, id)
}
