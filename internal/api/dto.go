package api

import (
	"github.com/dipdaga/patina/internal/models"
	"github.com/dipdaga/patina/internal/session"
	"github.com/dipdaga/patina/internal/tagindex"
)

// CatalogResponse wraps the full normalized record list.
type CatalogResponse struct {
	Records []models.Record `json:"records"`
	Total   int             `json:"total"`
}

// ViewResponse is one evaluated gallery view: the records revealed up to
// the requested page, optionally grouped into masonry columns when a
// viewport width was supplied.
type ViewResponse struct {
	Records []models.Record   `json:"records"`
	Columns [][]models.Record `json:"columns,omitempty"`
	Page    int               `json:"page"`
	Total   int               `json:"total"`
	Query   string            `json:"query"`
}

// TagsResponse carries the chip strip and the full frequency table.
type TagsResponse struct {
	Chips []session.Chip      `json:"chips"`
	Tags  []tagindex.TagCount `json:"tags"`
	Total int                 `json:"total"`
}
