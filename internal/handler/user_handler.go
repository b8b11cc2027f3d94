package handler

import (
	"net/http"

	"feastly/internal/middleware"
	"feastly/internal/model"
	"feastly/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler handles account-related HTTP requests.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

// Register handles POST /api/users/register requests.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		writeError(w, err, h.logger)
		return
	}

	token, err := h.service.Register(r.Context(), &creds)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, token)
}

// Login handles POST /api/users/login requests.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		writeError(w, err, h.logger)
		return
	}

	token, err := h.service.Login(r.Context(), &creds)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, token)
}

// ChangePassword handles POST /api/users/password requests.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req model.PasswordChange
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.ChangePassword(r.Context(), &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAccount handles DELETE /api/users requests.
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.DeleteAccount(r.Context(), &creds); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/users/me requests.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrCredentials, h.logger)
		return
	}

	user, err := h.service.GetByID(r.Context(), caller.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user.Safe())
}

// TopUp handles POST /api/users/topup requests.
func (h *UserHandler) TopUp(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrCredentials, h.logger)
		return
	}

	var req model.TopUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	user, err := h.service.TopUp(r.Context(), caller.ID, req.Amount)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user.Safe())
}
