package handlers

import (
	"aetherium-service/internal/application/dto"
	"aetherium-service/internal/domain/apperrors"
	"aetherium-service/internal/infrastructure/logging"
	"encoding/json"
	"errors"
	"net/http"
)

// routeErrors son los mensajes fijos de cada ruta. Nunca se reenvía el status ni el body del upstream.
type routeErrors struct {
	validation    string
	notFound      string
	configMissing string
	failure       string
}

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (m routeErrors) message(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrValidation) && m.validation != "":
		return m.validation
	case errors.Is(err, apperrors.ErrNotFound) && m.notFound != "":
		return m.notFound
	case errors.Is(err, apperrors.ErrConfigMissing) && m.configMissing != "":
		return m.configMissing
	default:
		return m.failure
	}
}

// writeServiceError logs err and writes the static message for the route
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, messages routeErrors) {
	status := statusForError(err)
	fields := logging.Fields{
		logging.FieldHTTPPath:       r.URL.Path,
		logging.FieldHTTPStatusCode: status,
	}
	if status >= http.StatusInternalServerError {
		logging.ErrorWithError(r.Context(), "Request failed", err, fields)
	} else {
		logging.WarnWithError(r.Context(), "Request rejected", err, fields)
	}
	writeJSON(w, status, dto.NewErrorResponse(messages.message(err)))
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to encode response"}`))
		return
	}
	writeRawJSON(w, statusCode, body)
}

// writeRawJSON relays an upstream body as is
func writeRawJSON(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}
