package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sorveteria-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// VerifyEnvelope wraps verification responses.
type VerifyEnvelope struct {
	Success  bool   `json:"success"`
	Verified bool   `json:"verified"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// CartEnvelope wraps cart responses with their derived totals.
type CartEnvelope struct {
	Cart      *domain.Cart `json:"cart,omitempty"`
	Total     int64        `json:"total"`
	ItemCount int          `json:"item_count"`
	Error     string       `json:"error,omitempty"`
}

// AuthEnvelope wraps gestão login responses.
type AuthEnvelope struct {
	Bearer  string `json:"Bearer,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

func cartJSON(w http.ResponseWriter, status int, c *domain.Cart) {
	writeJSON(w, status, CartEnvelope{Cart: c, Total: c.Total(), ItemCount: c.ItemCount()})
}

// httpError maps wrapped domain sentinel errors to HTTP statuses. Unknown
// errors become an opaque 500 so internals never leak to the client.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest), errors.Is(err, domain.ErrExpired):
		writeError(w, http.StatusBadRequest, userMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, userMessage(err))
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, userMessage(err))
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, userMessage(err))
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, userMessage(err))
	case errors.Is(err, domain.ErrNotConfigured):
		writeError(w, http.StatusInternalServerError, userMessage(err))
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// userMessage strips the wrapped sentinel suffix ("...: not found") so the
// client sees only the service's own message.
func userMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{
		domain.ErrBadRequest, domain.ErrExpired, domain.ErrNotFound,
		domain.ErrUnauthorized, domain.ErrForbidden, domain.ErrConflict,
		domain.ErrNotConfigured,
	} {
		suffix := ": " + sentinel.Error()
		if len(msg) > len(suffix) && msg[len(msg)-len(suffix):] == suffix {
			return msg[:len(msg)-len(suffix)]
		}
	}
	return msg
}
