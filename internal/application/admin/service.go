package admin

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/sorveteria-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// TokenSigner issues the bearer token handed to the gestão panel after login.
type TokenSigner interface {
	Sign(role string) (string, error)
}

type Service interface {
	// Login checks the password against the configured admin secret and, on
	// success, returns a signed admin bearer token.
	Login(password string) (string, error)
}

type service struct {
	adminPassword string
	signer        TokenSigner
}

func NewService(adminPassword string, signer TokenSigner) Service {
	return &service{adminPassword: adminPassword, signer: signer}
}

// Login supports two forms of the configured secret: a bcrypt hash (preferred)
// or a plain value for local setups. This gate is a UI convenience, not a hard
// security boundary.
func (s *service) Login(password string) (string, error) {
	if s.adminPassword == "" {
		return "", fmt.Errorf("admin password not set: %w", domain.ErrNotConfigured)
	}
	if s.signer == nil {
		return "", fmt.Errorf("token signer not available: %w", domain.ErrNotConfigured)
	}

	if !s.matches(password) {
		return "", fmt.Errorf("wrong password: %w", domain.ErrUnauthorized)
	}
	return s.signer.Sign(domain.RoleAdmin)
}

func (s *service) matches(password string) bool {
	if strings.HasPrefix(s.adminPassword, "$2a$") || strings.HasPrefix(s.adminPassword, "$2b$") {
		return bcrypt.CompareHashAndPassword([]byte(s.adminPassword), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.adminPassword), []byte(password)) == 1
}
