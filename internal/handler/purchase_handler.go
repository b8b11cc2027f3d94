package handler

import (
	"net/http"

	"feastly/internal/middleware"
	"feastly/internal/model"
	"feastly/internal/service"

	"github.com/rs/zerolog"
)

// PurchaseHandler handles purchase-related HTTP requests.
type PurchaseHandler struct {
	service service.PurchaseService
	logger  zerolog.Logger
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(service service.PurchaseService, logger zerolog.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		service: service,
		logger:  logger.With().Str("handler", "purchase").Logger(),
	}
}

// Create handles POST /api/purchases requests.
func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrCredentials, h.logger)
		return
	}

	var req model.PurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	purchases, err := h.service.Purchase(r.Context(), caller.ID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, purchases)
}

// History handles GET /api/purchases requests.
func (h *PurchaseHandler) History(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrCredentials, h.logger)
		return
	}

	purchases, err := h.service.History(r.Context(), caller.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, purchases)
}
