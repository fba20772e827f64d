package order

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sorveteria-api/internal/domain"
	"github.com/sorveteria-api/internal/pkg/id"
	"github.com/sorveteria-api/internal/pkg/phone"
)

// Repo is the order persistence layer.
type Repo interface {
	Put(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Order, error)
	ListByPhone(ctx context.Context, phone string) ([]domain.Order, error)
	Update(ctx context.Context, orderID string, updates map[string]interface{}) error
}

// CartStore loads and clears the cart being checked out.
type CartStore interface {
	Load(ctx context.Context, cartID string) (*domain.Cart, error)
	Delete(ctx context.Context, cartID string) error
}

// PhoneVerifier confirms the customer completed SMS verification.
type PhoneVerifier interface {
	IsVerified(ctx context.Context, rawPhone string) (bool, error)
}

// SMSSender delivers the order confirmation.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type CheckoutRequest struct {
	CartID        string `json:"cart_id" validate:"required"`
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerPhone string `json:"customer_phone" validate:"required"`
	PaymentID     string `json:"payment_id"`
	Notes         string `json:"notes"`
}

type Service interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*domain.Order, error)
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error)
}

type service struct {
	repo        Repo
	carts       CartStore
	verifier    PhoneVerifier
	sms         SMSSender
	countryCode string
}

func NewService(repo Repo, carts CartStore, verifier PhoneVerifier, sms SMSSender, countryCode string) Service {
	return &service{repo: repo, carts: carts, verifier: verifier, sms: sms, countryCode: countryCode}
}

// Checkout snapshots the cart into an immutable order. The cart is cleared and
// the customer notified afterwards; both are best-effort and never fail a
// placed order.
func (s *service) Checkout(ctx context.Context, req CheckoutRequest) (*domain.Order, error) {
	normalized := phone.Normalize(req.CustomerPhone, s.countryCode)

	verified, err := s.verifier.IsVerified(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, fmt.Errorf("phone not verified: %w", domain.ErrForbidden)
	}

	c, err := s.carts.Load(ctx, req.CartID)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", domain.ErrBadRequest)
	}

	now := time.Now().UTC()
	o := &domain.Order{
		OrderID:       id.New(),
		CartID:        c.CartID,
		CustomerName:  req.CustomerName,
		CustomerPhone: normalized,
		Items:         c.Items,
		Total:         c.Total(),
		Status:        domain.OrderStatusReceived,
		PaymentID:     req.PaymentID,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Put(ctx, o); err != nil {
		return nil, err
	}

	if err := s.carts.Delete(ctx, c.CartID); err != nil {
		slog.Warn("failed to clear cart after checkout", "cart_id", c.CartID, "order_id", o.OrderID, "err", err)
	}
	if s.sms != nil {
		msg := fmt.Sprintf("Sorveteria: pedido %s recebido! Total R$ %d,%02d.", o.OrderID, o.Total/100, o.Total%100)
		if err := s.sms.SendSMS(ctx, normalized, msg); err != nil {
			slog.Warn("failed to send order confirmation SMS", "order_id", o.OrderID, "err", err)
		}
	}
	return o, nil
}

func (s *service) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.repo.Get(ctx, orderID)
}

func (s *service) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.repo.ListRecent(ctx, limit)
}

func (s *service) UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !domain.ValidOrderTransition(o.Status, status) {
		return nil, fmt.Errorf("cannot move order from %s to %s: %w", o.Status, status, domain.ErrConflict)
	}
	if err := s.repo.Update(ctx, orderID, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}); err != nil {
		return nil, err
	}
	o.Status = status
	return o, nil
}
