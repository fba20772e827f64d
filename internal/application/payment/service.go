package payment

import (
	"context"
	"fmt"

	"github.com/sorveteria-api/internal/domain"
)

// Gateway is the upstream payment gateway lookup.
type Gateway interface {
	PaymentStatus(ctx context.Context, paymentID string) (*domain.PaymentStatus, error)
}

type Service interface {
	Check(ctx context.Context, paymentID string) (*domain.PaymentStatus, error)
}

type service struct {
	gateway Gateway
}

func NewService(gateway Gateway) Service {
	return &service{gateway: gateway}
}

// Check forwards a single read-only lookup to the gateway.
func (s *service) Check(ctx context.Context, paymentID string) (*domain.PaymentStatus, error) {
	if paymentID == "" {
		return nil, fmt.Errorf("paymentId required: %w", domain.ErrBadRequest)
	}
	return s.gateway.PaymentStatus(ctx, paymentID)
}
