package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).Str("error", message).Int("status", status).Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps err to a response. Domain errors keep their code
// and message; anything else becomes an opaque 500.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("unexpected service error")
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}

	writeError(w, statusFor(domainErr), domainErr.Code, domainErr.Message, logger)
}

func statusFor(err *model.DomainError) int {
	switch err.Code {
	case model.ErrCodeProductNotFound, model.ErrCodeOrderNotFound:
		return http.StatusNotFound
	case model.ErrCodeProductExists, model.ErrCodeUsernameTaken, model.ErrCodeCheckoutInProgress:
		return http.StatusConflict
	case model.ErrCodeInvalidStatus, model.ErrCodeEmptyCart, model.ErrCodeMissingField, model.ErrCodeInvalidJSON, model.ErrCodeInvalidParameter:
		return http.StatusBadRequest
	case model.ErrCodeInvalidCredentials, model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// decodeJSON reads a JSON body into dst and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, logger zerolog.Logger) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}
	return true
}

// sessionUser returns the username stored by middleware.RequireSession.
func sessionUser(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (model.Username, bool) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok || !session.IsAuthenticated {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "login required", logger)
		return "", false
	}
	return session.Username, true
}
