package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sorveteria-api/internal/application/admin"
	"github.com/sorveteria-api/internal/domain"
)

const msgWrongPassword = "Senha incorreta"

// AdminHandler handles the gestão panel gate.
type AdminHandler struct {
	svc admin.Service
}

func NewAdminHandler(svc admin.Service) *AdminHandler { return &AdminHandler{svc: svc} }

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Password == "" {
		writeError(w, http.StatusBadRequest, "Senha é obrigatória")
		return
	}

	bearer, err := h.svc.Login(body.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, msgWrongPassword)
			return
		}
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Bearer: bearer})
}

// Logout exists so the panel has an explicit endpoint to call; tokens are
// stateless, discarding the bearer is the actual logout.
func (h *AdminHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logged out"})
}
