package http

import (
	"encoding/json"
	"net/http"

	apperrors "gymbook/pkg/errors"
)

type ErrorResponse struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError maps an application error to its HTTP status and a JSON body.
// AppErrors carry a message written for clients; anything else is masked
// behind a generic internal error by AsAppError, so no raw error text
// leaks over the wire.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)

	return WriteJSON(w, appErr.StatusCode(), ErrorResponse{
		Error:   appErr.Message,
		Details: appErr.Details,
	})
}

// WriteSuccess writes the service envelope: the given fields plus "ok": true.
func WriteSuccess(w http.ResponseWriter, fields map[string]any) error {
	return WriteJSON(w, http.StatusOK, envelope(fields))
}

// WriteCreated is WriteSuccess with a 201 status.
func WriteCreated(w http.ResponseWriter, fields map[string]any) error {
	return WriteJSON(w, http.StatusCreated, envelope(fields))
}

func envelope(fields map[string]any) map[string]any {
	body := map[string]any{"ok": true}
	for k, v := range fields {
		body[k] = v
	}
	return body
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
