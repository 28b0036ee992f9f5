package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgSessionNotFoundError    = "Session not found"
	ErrMsgSessionClosedError      = "Session is closed"
	ErrMsgTaskNotFoundError       = "Task not found"
	ErrMsgInsufficientEnergyError = "Not enough energy!"
	ErrMsgNotInGameError          = "Start a game first"
	ErrMsgSceneDestroyedError     = "The game has ended"
	ErrMsgNotImplementedError     = "Not implemented yet"
	ErrMsgCatalogInvalidError     = "Task catalog is invalid"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act on
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFoundError
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, ErrMsgTaskNotFoundError
	case errors.Is(err, domain.ErrInsufficientEnergy):
		return http.StatusConflict, ErrMsgInsufficientEnergyError
	case errors.Is(err, domain.ErrNotInGame):
		return http.StatusConflict, ErrMsgNotInGameError
	case errors.Is(err, domain.ErrSceneDestroyed):
		return http.StatusConflict, ErrMsgSceneDestroyedError
	case errors.Is(err, domain.ErrSessionClosed):
		return http.StatusGone, ErrMsgSessionClosedError
	case errors.Is(err, domain.ErrNotImplemented):
		return http.StatusNotImplemented, ErrMsgNotImplementedError
	case errors.Is(err, domain.ErrInvalidCatalog), errors.Is(err, domain.ErrEmptyCatalog):
		return http.StatusUnprocessableEntity, ErrMsgCatalogInvalidError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs err and writes the mapped status and message
func respondServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		log.Error(fmt.Sprintf(LogMsgServiceError, action), "error", err)
	} else {
		log.Debug(fmt.Sprintf(LogMsgServiceRejected, action), "error", err, "status", status)
	}
	respondError(w, status, msg)
}
