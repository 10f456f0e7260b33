package handler

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/distmalvinas/remito-service/internal/catalog"
)

// CatalogHandler serves the spreadsheet-backed product catalog.
type CatalogHandler struct {
	svc catalog.Service
}

func NewCatalogHandler(svc catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// GetCatalog re-fetches the catalog from the data source on every call. Any
// upstream failure is logged in full and surfaced as one generic message.
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Fetch(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to fetch catalog")
		respondWithError(w, http.StatusInternalServerError, "Error al leer Google Sheets")
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}
