package handler

import (
	"net/http"
	"strconv"
	"strings"

	"feastly/internal/discovery"
	"feastly/internal/middleware"
	"feastly/internal/model"
	"feastly/internal/service"

	"github.com/rs/zerolog"
)

// RestaurantHandler handles restaurant-related HTTP requests.
type RestaurantHandler struct {
	service service.RestaurantService
	logger  zerolog.Logger
}

// NewRestaurantHandler creates a new restaurant handler.
func NewRestaurantHandler(service service.RestaurantService, logger zerolog.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		service: service,
		logger:  logger.With().Str("handler", "restaurant").Logger(),
	}
}

// List handles GET /api/restaurants requests with discovery filters.
func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := discovery.ParseFilters(r.URL.Query())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	page, err := h.service.List(r.Context(), filters)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Search handles GET /api/restaurants/search requests.
func (h *RestaurantHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, model.ErrMissingQuery, h.logger)
		return
	}

	pageNum, itemsPerPage, err := discovery.ParsePagination(r.URL.Query())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	page, err := h.service.Search(r.Context(), query, pageNum, itemsPerPage)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// GetByID handles GET /api/restaurants/{id} requests.
func (h *RestaurantHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	restaurant, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, restaurant)
}

// Create handles POST /api/restaurants requests.
func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrCredentials, h.logger)
		return
	}

	var req model.RestaurantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	restaurant, err := h.service.Create(r.Context(), caller.ID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, restaurant)
}

// Update handles PUT /api/restaurants/{id} requests.
func (h *RestaurantHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrCredentials, h.logger)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.RestaurantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	restaurant, err := h.service.Update(r.Context(), caller.ID, id, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, restaurant)
}

// Delete handles DELETE /api/restaurants/{id} requests.
func (h *RestaurantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrCredentials, h.logger)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), caller.ID, id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddDish handles POST /api/restaurants/{id}/menus requests.
func (h *RestaurantHandler) AddDish(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrCredentials, h.logger)
		return
	}

	restaurantID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.MenuRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	menu, err := h.service.AddDish(r.Context(), caller.ID, restaurantID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, menu)
}

// UpdateDish handles PUT /api/restaurants/{id}/menus/{menuID} requests.
func (h *RestaurantHandler) UpdateDish(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrCredentials, h.logger)
		return
	}

	restaurantID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	menuID, err := pathID(r, "menuID")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.MenuRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	menu, err := h.service.UpdateDish(r.Context(), caller.ID, restaurantID, menuID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, menu)
}

// DeleteDish handles DELETE /api/restaurants/{id}/menus/{menuID} requests.
func (h *RestaurantHandler) DeleteDish(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrCredentials, h.logger)
		return
	}

	restaurantID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	menuID, err := pathID(r, "menuID")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.DeleteDish(r.Context(), caller.ID, restaurantID, menuID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathID extracts a positive integer path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, model.NewValidationError("path parameter '" + name + "' must be a positive integer")
	}
	return id, nil
}
