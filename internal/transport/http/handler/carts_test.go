package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	cartapp "github.com/sorveteria-api/internal/application/cart"
	"github.com/sorveteria-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockCartSvc struct{ mock.Mock }

func (m *mockCartSvc) Create(ctx context.Context) (*domain.Cart, error) {
	args := m.Called(ctx)
	if c, _ := args.Get(0).(*domain.Cart); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCartSvc) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	args := m.Called(ctx, cartID)
	if c, _ := args.Get(0).(*domain.Cart); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCartSvc) AddItem(ctx context.Context, cartID string, req cartapp.AddItemRequest) (*domain.Cart, error) {
	args := m.Called(ctx, cartID, req)
	if c, _ := args.Get(0).(*domain.Cart); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCartSvc) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error) {
	args := m.Called(ctx, cartID, productID, quantity)
	if c, _ := args.Get(0).(*domain.Cart); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCartSvc) RemoveItem(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	args := m.Called(ctx, cartID, productID)
	if c, _ := args.Get(0).(*domain.Cart); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCartSvc) Clear(ctx context.Context, cartID string) error {
	return m.Called(ctx, cartID).Error(0)
}

func cartRouter(svc cartapp.Service) http.Handler {
	h := NewCartHandler(svc)
	r := chi.NewRouter()
	r.Post("/carts", h.Create)
	r.Get("/carts/{id}", h.Get)
	r.Post("/carts/{id}/items", h.AddItem)
	r.Put("/carts/{id}/items/{productId}", h.UpdateQuantity)
	r.Delete("/carts/{id}/items/{productId}", h.RemoveItem)
	r.Delete("/carts/{id}", h.Clear)
	return r
}

func cartWith(quantity int) *domain.Cart {
	c := &domain.Cart{CartID: "c1"}
	c.AddItem(domain.Product{ProductID: "p1", Name: "Picolé de Limão", Price: 800, Available: true}, quantity, nil, 0)
	return c
}

// --- tests ---

func TestCartCreate(t *testing.T) {
	svc := &mockCartSvc{}
	svc.On("Create", mock.Anything).Return(&domain.Cart{CartID: "c1"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/carts", nil)
	rec := httptest.NewRecorder()
	cartRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CartEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "c1", resp.Cart.CartID)
	assert.Zero(t, resp.Total)
	assert.Zero(t, resp.ItemCount)
}

func TestCartGet_NotFound(t *testing.T) {
	svc := &mockCartSvc{}
	svc.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/carts/missing", nil)
	rec := httptest.NewRecorder()
	cartRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartAddItem_ReturnsDerivedTotals(t *testing.T) {
	svc := &mockCartSvc{}
	svc.On("AddItem", mock.Anything, "c1", cartapp.AddItemRequest{ProductID: "p1", Quantity: 3}).
		Return(cartWith(3), nil)

	body := bytes.NewBufferString(`{"product_id":"p1","quantity":3}`)
	req := httptest.NewRequest(http.MethodPost, "/carts/c1/items", body)
	rec := httptest.NewRecorder()
	cartRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CartEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(2400), resp.Total)
	assert.Equal(t, 3, resp.ItemCount)
	svc.AssertExpectations(t)
}

func TestCartAddItem_MissingProductID(t *testing.T) {
	svc := &mockCartSvc{}

	body := bytes.NewBufferString(`{"quantity":1}`)
	req := httptest.NewRequest(http.MethodPost, "/carts/c1/items", body)
	rec := httptest.NewRecorder()
	cartRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	svc.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUpdateQuantity(t *testing.T) {
	svc := &mockCartSvc{}
	svc.On("UpdateQuantity", mock.Anything, "c1", "p1", 0).Return(&domain.Cart{CartID: "c1"}, nil)

	body := bytes.NewBufferString(`{"quantity":0}`)
	req := httptest.NewRequest(http.MethodPut, "/carts/c1/items/p1", body)
	rec := httptest.NewRecorder()
	cartRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CartEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Cart.Items)
	svc.AssertExpectations(t)
}

func TestCartClear(t *testing.T) {
	svc := &mockCartSvc{}
	svc.On("Clear", mock.Anything, "c1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/carts/c1", nil)
	rec := httptest.NewRecorder()
	cartRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
