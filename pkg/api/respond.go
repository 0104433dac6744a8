// Package api writes HTTP responses: JSON payloads for successful calls and
// RFC 7807 problem details for everything else.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"stylehunt/pkg/logger"
)

// ProblemDetails follows RFC 7807. RequestID is an extension member tying
// the problem to the server logs.
type ProblemDetails struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail"`
	Instance  string `json:"instance,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (pd *ProblemDetails) Error() string {
	return fmt.Sprintf("%d %s: %s", pd.Status, pd.Title, pd.Detail)
}

// WriteJSON serialises a success payload.
func WriteJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func WriteError(w http.ResponseWriter, status int, title, detail, instance, requestID string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)

	pd := &ProblemDetails{
		Type:      "about:blank",
		Title:     title,
		Status:    status,
		Detail:    detail,
		Instance:  instance,
		RequestID: requestID,
	}

	if err := json.NewEncoder(w).Encode(pd); err != nil {
		logger.Error().Err(err).Msg("failed to encode problem details")
	}
}

func WriteBadRequest(w http.ResponseWriter, detail, instance, requestID string) {
	WriteError(w, http.StatusBadRequest, "Bad Request", detail, instance, requestID)
}

func WriteMethodNotAllowed(w http.ResponseWriter, instance, requestID string) {
	WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed", "Use GET for this endpoint.", instance, requestID)
}

func WriteInternalServerError(w http.ResponseWriter, err error, instance, requestID string) {
	WriteError(w, http.StatusInternalServerError, "Internal Server Error", err.Error(), instance, requestID)
}
