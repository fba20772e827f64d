package admin

import (
	"errors"
	"testing"

	"github.com/sorveteria-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(role string) (string, error) {
	args := m.Called(role)
	return args.String(0), args.Error(1)
}

// --- Login ---

func TestLogin_NoPasswordConfigured(t *testing.T) {
	svc := NewService("", &mockSigner{})
	_, err := svc.Login("anything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotConfigured))
}

func TestLogin_NoSigner(t *testing.T) {
	svc := NewService("segredo", nil)
	_, err := svc.Login("segredo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotConfigured))
}

func TestLogin_WrongPassword(t *testing.T) {
	signer := &mockSigner{}
	svc := NewService("segredo", signer)

	_, err := svc.Login("errada")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	signer.AssertNotCalled(t, "Sign", mock.Anything)
}

func TestLogin_PlainPassword(t *testing.T) {
	signer := &mockSigner{}
	signer.On("Sign", domain.RoleAdmin).Return("token-123", nil)

	svc := NewService("segredo", signer)
	token, err := svc.Login("segredo")

	require.NoError(t, err)
	assert.Equal(t, "token-123", token)
	signer.AssertExpectations(t)
}

func TestLogin_BcryptPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("segredo"), bcrypt.MinCost)
	require.NoError(t, err)

	signer := &mockSigner{}
	signer.On("Sign", domain.RoleAdmin).Return("token-123", nil)

	svc := NewService(string(hash), signer)

	token, err := svc.Login("segredo")
	require.NoError(t, err)
	assert.Equal(t, "token-123", token)

	_, err = svc.Login("errada")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
