package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/sorveteria-api/internal/domain"
	"github.com/sorveteria-api/internal/pkg/id"
	"github.com/sorveteria-api/internal/pkg/phone"
)

// CodeRepo is the persistence the service needs from the verification code store.
type CodeRepo interface {
	Put(ctx context.Context, v *domain.VerificationCode) error
	GetLatestUnused(ctx context.Context, phone, code string) (*domain.VerificationCode, error)
	GetLatestVerified(ctx context.Context, phone string) (*domain.VerificationCode, error)
	MarkUsed(ctx context.Context, phone, codeID string, verifiedAt time.Time) error
}

// SMSSender delivers the code to the customer.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type Service interface {
	// Request issues a fresh code for the phone and sends it by SMS.
	Request(ctx context.Context, rawPhone string) error
	// Verify validates a code for the phone and marks it used.
	Verify(ctx context.Context, rawPhone, code string) error
	// IsVerified reports whether the phone has a validated code on record.
	IsVerified(ctx context.Context, rawPhone string) (bool, error)
}

type service struct {
	repo        CodeRepo
	sms         SMSSender
	countryCode string
	codeTTL     time.Duration
}

func NewService(repo CodeRepo, sms SMSSender, countryCode string, codeTTL time.Duration) Service {
	return &service{repo: repo, sms: sms, countryCode: countryCode, codeTTL: codeTTL}
}

func (s *service) Request(ctx context.Context, rawPhone string) error {
	if rawPhone == "" {
		return fmt.Errorf("phone required: %w", domain.ErrBadRequest)
	}
	normalized := phone.Normalize(rawPhone, s.countryCode)

	n, err := rand.Int(rand.Reader, big.NewInt(999999))
	if err != nil {
		return err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	now := time.Now().UTC()
	v := &domain.VerificationCode{
		Phone:     normalized,
		CodeID:    id.New(),
		Code:      code,
		Used:      false,
		ExpiresAt: now.Add(s.codeTTL).Unix(),
		CreatedAt: now,
	}
	if err := s.repo.Put(ctx, v); err != nil {
		return err
	}

	if s.sms == nil {
		slog.Warn("SMS sender not configured, code not delivered", "phone", normalized)
		return nil
	}
	return s.sms.SendSMS(ctx, normalized, "Sorveteria: seu código de verificação é "+code)
}

// Verify implements at-most-once semantics on a best-effort basis: once the
// matching unexpired record is found, validation is logically complete; a
// failure persisting the used flag is logged, not surfaced.
func (s *service) Verify(ctx context.Context, rawPhone, code string) error {
	if rawPhone == "" || code == "" {
		return fmt.Errorf("phone and code required: %w", domain.ErrBadRequest)
	}
	normalized := phone.Normalize(rawPhone, s.countryCode)

	v, err := s.repo.GetLatestUnused(ctx, normalized, code)
	if err != nil {
		return fmt.Errorf("verification code not found: %w", domain.ErrNotFound)
	}
	if v.Expired(time.Now()) {
		// Expired records are left untouched.
		return fmt.Errorf("verification code expired: %w", domain.ErrExpired)
	}

	if err := s.repo.MarkUsed(ctx, v.Phone, v.CodeID, time.Now().UTC()); err != nil {
		slog.Warn("failed to mark verification code as used", "phone", v.Phone, "code_id", v.CodeID, "err", err)
	}
	return nil
}

func (s *service) IsVerified(ctx context.Context, rawPhone string) (bool, error) {
	normalized := phone.Normalize(rawPhone, s.countryCode)
	_, err := s.repo.GetLatestVerified(ctx, normalized)
	if err == nil {
		return true, nil
	}
	return false, nil
}
