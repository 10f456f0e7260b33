package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/distmalvinas/remito-service/internal/remito"
)

// PedidoHandler exposes the order composer over HTTP, one composer per
// session id.
type PedidoHandler struct {
	sessions *remito.Sessions
}

func NewPedidoHandler(sessions *remito.Sessions) *PedidoHandler {
	return &PedidoHandler{sessions: sessions}
}

type addItemRequest struct {
	Producto string  `json:"producto"`
	Cantidad float64 `json:"cantidad"`
	Precio   float64 `json:"precio"`
}

type pedidoResponse struct {
	ID     string        `json:"id"`
	Estado remito.State  `json:"estado"`
	Pedido *remito.Order `json:"pedido,omitempty"`
}

// CreatePedido opens a new composer session.
func (h *PedidoHandler) CreatePedido(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessions.Create()
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to create pedido session")
		respondWithError(w, http.StatusInternalServerError, "no se pudo crear el pedido")
		return
	}

	respondWithJSON(w, http.StatusCreated, pedidoResponse{ID: id.String(), Estado: remito.StatePreviewing})
}

// GetPedido returns the live preview: current lines, total and a peek at the
// next remito number.
func (h *PedidoHandler) GetPedido(w http.ResponseWriter, r *http.Request) {
	id, c, ok := h.composer(w, r)
	if !ok {
		return
	}

	ord, err := c.Preview(r.Context())
	if err != nil {
		log.Error().Err(err).Str("pedido_id", id.String()).Msg("handler: failed to build preview")
		respondWithError(w, http.StatusInternalServerError, "no se pudo generar la vista previa")
		return
	}

	respondWithJSON(w, http.StatusOK, pedidoResponse{ID: id.String(), Estado: c.State(), Pedido: ord})
}

// AddItem adds a product to the cart; repeated adds of the same product
// accumulate quantity.
func (h *PedidoHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	_, c, ok := h.composer(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}

	if err := c.AddLine(req.Producto, req.Cantidad, req.Precio); err != nil {
		respondWithError(w, http.StatusBadRequest, "Seleccioná un producto.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveItem deletes the cart line at the given position. An out-of-range
// index leaves the cart unchanged; either way the request succeeds.
func (h *PedidoHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	_, c, ok := h.composer(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "índice inválido")
		return
	}

	c.RemoveLine(index)
	w.WriteHeader(http.StatusNoContent)
}

// SetCliente replaces the four free-text customer fields.
func (h *PedidoHandler) SetCliente(w http.ResponseWriter, r *http.Request) {
	_, c, ok := h.composer(w, r)
	if !ok {
		return
	}

	var cust remito.Customer
	if err := json.NewDecoder(r.Body).Decode(&cust); err != nil {
		respondWithError(w, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}

	c.SetCustomer(cust)
	w.WriteHeader(http.StatusNoContent)
}

// GenerateRemito commits the order: consumes the next number and renders the
// PDF. An empty cart is rejected without touching the counter.
func (h *PedidoHandler) GenerateRemito(w http.ResponseWriter, r *http.Request) {
	id, c, ok := h.composer(w, r)
	if !ok {
		return
	}

	doc, err := c.Commit(r.Context())
	switch {
	case errors.Is(err, remito.ErrEmptyCart):
		respondWithError(w, http.StatusUnprocessableEntity, "Agregá al menos un producto.")
		return
	case errors.Is(err, remito.ErrCommitInFlight):
		respondWithError(w, http.StatusConflict, "ya hay una generación en curso")
		return
	case err != nil:
		log.Error().Err(err).Str("pedido_id", id.String()).Msg("handler: failed to generate remito")
		respondWithError(w, http.StatusInternalServerError, "Error generando PDF")
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"numero":  doc.Numero,
		"total":   doc.Order.Total,
		"archivo": remito.Filename(doc.Numero, doc.Order.Cliente),
	})
}

// DownloadRemito streams the last committed PDF. The filename reflects the
// customer name at download time.
func (h *PedidoHandler) DownloadRemito(w http.ResponseWriter, r *http.Request) {
	id, c, ok := h.composer(w, r)
	if !ok {
		return
	}

	pdf, filename, err := c.Download()
	if errors.Is(err, remito.ErrNotCommitted) {
		respondWithError(w, http.StatusNotFound, "todavía no se generó el remito")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(pdf); err != nil {
		log.Error().Err(err).Str("pedido_id", id.String()).Msg("handler: failed to write pdf response")
	}
}

// ShareWhatsApp returns the wa.me compose link for the committed remito. The
// cart is re-checked at request time; an order emptied after commit cannot be
// shared.
func (h *PedidoHandler) ShareWhatsApp(w http.ResponseWriter, r *http.Request) {
	_, c, ok := h.composer(w, r)
	if !ok {
		return
	}

	uri, err := c.ShareURI()
	switch {
	case errors.Is(err, remito.ErrNotCommitted):
		respondWithError(w, http.StatusNotFound, "todavía no se generó el remito")
		return
	case errors.Is(err, remito.ErrEmptyCart):
		respondWithError(w, http.StatusConflict, "Agregá al menos un producto antes de enviar por WhatsApp.")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"url": uri})
}

func (h *PedidoHandler) composer(w http.ResponseWriter, r *http.Request) (uuid.UUID, *remito.Composer, bool) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "id de pedido inválido")
		return uuid.Nil, nil, false
	}

	c, ok := h.sessions.Get(id)
	if !ok {
		respondWithError(w, http.StatusNotFound, "pedido no encontrado")
		return uuid.Nil, nil, false
	}
	return id, c, true
}
