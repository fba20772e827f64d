package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/sorveteria-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockAdminSvc struct{ mock.Mock }

func (m *mockAdminSvc) Login(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

// --- Login ---

func TestAdminLogin_MissingPassword(t *testing.T) {
	h := NewAdminHandler(&mockAdminSvc{})
	rec := postJSON(t, h.Login, `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Senha é obrigatória"}`, rec.Body.String())
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	svc := &mockAdminSvc{}
	svc.On("Login", "errada").Return("", fmt.Errorf("wrong password: %w", domain.ErrUnauthorized))

	h := NewAdminHandler(svc)
	rec := postJSON(t, h.Login, `{"password":"errada"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Senha incorreta"}`, rec.Body.String())
}

func TestAdminLogin_HappyPath(t *testing.T) {
	svc := &mockAdminSvc{}
	svc.On("Login", "segredo").Return("token-abc", nil)

	h := NewAdminHandler(svc)
	rec := postJSON(t, h.Login, `{"password":"segredo"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AuthEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "token-abc", resp.Bearer)
	svc.AssertExpectations(t)
}

func TestAdminLogin_NotConfigured(t *testing.T) {
	svc := &mockAdminSvc{}
	svc.On("Login", "segredo").Return("", fmt.Errorf("admin password not set: %w", domain.ErrNotConfigured))

	h := NewAdminHandler(svc)
	rec := postJSON(t, h.Login, `{"password":"segredo"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAdminLogout(t *testing.T) {
	h := NewAdminHandler(&mockAdminSvc{})
	rec := postJSON(t, h.Logout, ``)

	assert.Equal(t, http.StatusOK, rec.Code)
}
