package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/WiMProject/backend-test/internal/user"
)

// Envelope wraps every response body. Data is only set on success, Error only
// on failure and Errors only for validation failures.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// noData renders as "data": null instead of dropping the key.
var noData = json.RawMessage("null")

func respondWithSuccess(w http.ResponseWriter, code int, message string, data any) {
	if data == nil {
		data = noData
	}
	respondWithJSON(w, code, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondWithError(w http.ResponseWriter, code int, message, errText string) {
	respondWithJSON(w, code, Envelope{
		Success: false,
		Message: message,
		Error:   errText,
	})
}

func respondWithValidationError(w http.ResponseWriter, message string, fields map[string][]string) {
	respondWithJSON(w, http.StatusUnprocessableEntity, Envelope{
		Success: false,
		Message: message,
		Error:   "Validation failed",
		Errors:  fields,
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func mapErrorToStatusCode(err error) int {
	var verr *user.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, user.ErrEmailExists):
		return http.StatusUnprocessableEntity
	case errors.Is(err, user.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
