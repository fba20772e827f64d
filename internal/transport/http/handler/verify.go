package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sorveteria-api/internal/application/verification"
	"github.com/sorveteria-api/internal/domain"
)

// User-facing copy for the verification flow. The storefront shows these
// strings verbatim, so they are part of the endpoint contract.
const (
	msgPhoneAndCodeRequired = "Telefone e código são obrigatórios"
	msgPhoneRequired        = "Telefone é obrigatório"
	msgCodeInvalid          = "Código inválido ou expirado"
	msgCodeExpired          = "Código expirado. Solicite um novo código."
	msgCodeSent             = "Código enviado por SMS"
	msgPhoneVerified        = "Telefone verificado com sucesso"
	msgVerifyFailed         = "Erro ao verificar código"
)

// VerifyHandler handles the SMS verification flow.
type VerifyHandler struct {
	svc verification.Service
}

func NewVerifyHandler(svc verification.Service) *VerifyHandler {
	return &VerifyHandler{svc: svc}
}

// Request issues a fresh code and sends it by SMS.
func (h *VerifyHandler) Request(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Phone == "" {
		writeError(w, http.StatusBadRequest, msgPhoneRequired)
		return
	}
	if err := h.svc.Request(r.Context(), body.Phone); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: msgCodeSent})
}

// Verify validates a code against the phone number.
func (h *VerifyHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, msgPhoneAndCodeRequired)
		return
	}
	if body.Phone == "" || body.Code == "" {
		writeError(w, http.StatusBadRequest, msgPhoneAndCodeRequired)
		return
	}

	if err := h.svc.Verify(r.Context(), body.Phone, body.Code); err != nil {
		switch {
		case errors.Is(err, domain.ErrBadRequest):
			writeError(w, http.StatusBadRequest, msgPhoneAndCodeRequired)
		case errors.Is(err, domain.ErrExpired):
			writeError(w, http.StatusBadRequest, msgCodeExpired)
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusBadRequest, msgCodeInvalid)
		default:
			writeError(w, http.StatusInternalServerError, msgVerifyFailed)
		}
		return
	}

	writeJSON(w, http.StatusOK, VerifyEnvelope{
		Success:  true,
		Verified: true,
		Message:  msgPhoneVerified,
	})
}
