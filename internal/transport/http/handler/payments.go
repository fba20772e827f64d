package handler

import (
	"errors"
	"net/http"

	"github.com/sorveteria-api/internal/application/payment"
	"github.com/sorveteria-api/internal/domain"
	"github.com/sorveteria-api/internal/infrastructure/mercadopago"
)

const (
	msgPaymentIDRequired  = "paymentId é obrigatório"
	msgGatewayNotConfig   = "Token do Mercado Pago não configurado"
	msgPaymentLookupError = "Erro ao consultar pagamento"
)

// PaymentHandler proxies payment status lookups to the gateway.
type PaymentHandler struct {
	svc payment.Service
}

func NewPaymentHandler(svc payment.Service) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// Check relays a single read-only status lookup. Upstream failures keep the
// upstream status code.
func (h *PaymentHandler) Check(w http.ResponseWriter, r *http.Request) {
	paymentID := r.URL.Query().Get("paymentId")
	if paymentID == "" {
		writeError(w, http.StatusBadRequest, msgPaymentIDRequired)
		return
	}

	status, err := h.svc.Check(r.Context(), paymentID)
	if err != nil {
		var ue *mercadopago.UpstreamError
		switch {
		case errors.As(err, &ue):
			writeJSON(w, ue.StatusCode, MessageEnvelope{Error: msgPaymentLookupError, Details: ue.Body})
		case errors.Is(err, domain.ErrNotConfigured):
			writeError(w, http.StatusInternalServerError, msgGatewayNotConfig)
		case errors.Is(err, domain.ErrBadRequest):
			writeError(w, http.StatusBadRequest, msgPaymentIDRequired)
		default:
			writeError(w, http.StatusInternalServerError, msgPaymentLookupError)
		}
		return
	}

	writeJSON(w, http.StatusOK, status)
}
