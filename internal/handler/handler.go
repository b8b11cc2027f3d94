package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"feastly/internal/model"
	"feastly/internal/paging"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError maps a service error onto its HTTP status and writes the
// standard error body. Unrecognised errors become an opaque 500.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var pageErr *paging.InvalidPageError
	if errors.As(err, &pageErr) {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:   model.ErrCodeInvalidPage,
			Message: pageErr.Error(),
		})
		return
	}

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeJSON(w, statusFor(domainErr.Code), model.ErrorResponse{
			Error:   domainErr.Code,
			Message: domainErr.Message,
		})
		return
	}

	logger.Error().Err(err).Msg("unhandled error")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Error:   model.ErrCodeInternalError,
		Message: "internal server error",
	})
}

// statusFor maps a domain error code onto an HTTP status.
func statusFor(code string) int {
	switch code {
	case model.ErrCodeValidation, model.ErrCodeInvalidJSON, model.ErrCodeInvalidHours,
		model.ErrCodeInvalidDateTime, model.ErrCodeInvalidPage, model.ErrCodeMissingQuery,
		model.ErrCodeInvalidQuantity:
		return http.StatusBadRequest
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodePaymentRequired:
		return http.StatusPaymentRequired
	case model.ErrCodeOwnerRequired:
		return http.StatusForbidden
	case model.ErrCodeRestaurantNotFound, model.ErrCodeMenuNotFound:
		return http.StatusNotFound
	case model.ErrCodeNameTaken:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a request body into dst, rejecting malformed JSON.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "request body must be valid JSON")
	}
	return nil
}
