// Package api implements the Patina read-only catalog API using chi.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dipdaga/patina/internal/apperr"
	"github.com/dipdaga/patina/internal/viewstate"
)

// Handler holds API route handlers.
type Handler struct {
	svc *Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ListCatalog handles GET /api/catalog: the full normalized record set.
func (h *Handler) ListCatalog(w http.ResponseWriter, _ *http.Request) {
	records, total := h.svc.Catalog()
	writeJSON(w, http.StatusOK, CatalogResponse{Records: records, Total: total})
}

// View handles GET /api/view. The query string is the same tags/q/p/open
// shape the gallery mirrors to the address bar; an optional w parameter
// (viewport width units) additionally returns the masonry column split.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	width, _ := strconv.Atoi(r.URL.Query().Get("w"))
	resp := h.svc.View(r.URL.RawQuery, width)
	writeJSON(w, http.StatusOK, resp)
}

// Tags handles GET /api/tags: chip strip plus the full frequency table.
// The tags parameter (comma-joined, same as the view state) marks chips
// as selected. Without an explicit n the configured chip count applies.
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	state := viewstate.Decode(r.URL.RawQuery)
	writeJSON(w, http.StatusOK, h.svc.Tags(n, state.SelectedTags))
}

// GetRecord handles GET /api/records/{id}.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("id is required"))
		return
	}
	rec, err := h.svc.Record(id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get record failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
