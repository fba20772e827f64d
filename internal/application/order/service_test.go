package order

import (
	"context"
	"errors"
	"testing"

	"github.com/sorveteria-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) Put(ctx context.Context, o *domain.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *mockOrderRepo) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if o, _ := args.Get(0).(*domain.Order); o != nil {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockOrderRepo) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	args := m.Called(ctx, limit)
	if o, _ := args.Get(0).([]domain.Order); o != nil {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockOrderRepo) ListByPhone(ctx context.Context, phone string) ([]domain.Order, error) {
	args := m.Called(ctx, phone)
	if o, _ := args.Get(0).([]domain.Order); o != nil {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockOrderRepo) Update(ctx context.Context, orderID string, updates map[string]interface{}) error {
	return m.Called(ctx, orderID, updates).Error(0)
}

type mockCartStore struct{ mock.Mock }

func (m *mockCartStore) Load(ctx context.Context, cartID string) (*domain.Cart, error) {
	args := m.Called(ctx, cartID)
	if c, _ := args.Get(0).(*domain.Cart); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCartStore) Delete(ctx context.Context, cartID string) error {
	return m.Called(ctx, cartID).Error(0)
}

type mockVerifier struct{ mock.Mock }

func (m *mockVerifier) IsVerified(ctx context.Context, rawPhone string) (bool, error) {
	args := m.Called(ctx, rawPhone)
	return args.Bool(0), args.Error(1)
}

type mockSMSSender struct{ mock.Mock }

func (m *mockSMSSender) SendSMS(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}

func filledCart() *domain.Cart {
	c := &domain.Cart{CartID: "c1"}
	c.AddItem(domain.Product{ProductID: "p1", Name: "Açaí 500ml", Price: 2500, Available: true}, 2, nil, 0)
	return c
}

func checkoutReq() CheckoutRequest {
	return CheckoutRequest{
		CartID:        "c1",
		CustomerName:  "Maria",
		CustomerPhone: "(47) 99988-7766",
	}
}

// --- Checkout ---

func TestCheckout_UnverifiedPhone(t *testing.T) {
	verifier := &mockVerifier{}
	verifier.On("IsVerified", mock.Anything, "5547999887766").Return(false, nil)
	repo := &mockOrderRepo{}

	svc := NewService(repo, &mockCartStore{}, verifier, nil, "55")
	_, err := svc.Checkout(context.Background(), checkoutReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCheckout_EmptyCart(t *testing.T) {
	verifier := &mockVerifier{}
	verifier.On("IsVerified", mock.Anything, "5547999887766").Return(true, nil)
	carts := &mockCartStore{}
	carts.On("Load", mock.Anything, "c1").Return(&domain.Cart{CartID: "c1"}, nil)

	svc := NewService(&mockOrderRepo{}, carts, verifier, nil, "55")
	_, err := svc.Checkout(context.Background(), checkoutReq())

	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCheckout_HappyPath(t *testing.T) {
	verifier := &mockVerifier{}
	verifier.On("IsVerified", mock.Anything, "5547999887766").Return(true, nil)
	carts := &mockCartStore{}
	carts.On("Load", mock.Anything, "c1").Return(filledCart(), nil)
	carts.On("Delete", mock.Anything, "c1").Return(nil)
	repo := &mockOrderRepo{}
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
	sms := &mockSMSSender{}
	sms.On("SendSMS", mock.Anything, "5547999887766", mock.Anything).Return(nil)

	svc := NewService(repo, carts, verifier, sms, "55")
	o, err := svc.Checkout(context.Background(), checkoutReq())

	require.NoError(t, err)
	assert.NotEmpty(t, o.OrderID)
	assert.Equal(t, domain.OrderStatusReceived, o.Status)
	assert.Equal(t, int64(5000), o.Total)
	assert.Equal(t, "5547999887766", o.CustomerPhone)
	repo.AssertExpectations(t)
	carts.AssertExpectations(t)
	sms.AssertExpectations(t)
}

func TestCheckout_CartClearFailureDoesNotFailOrder(t *testing.T) {
	verifier := &mockVerifier{}
	verifier.On("IsVerified", mock.Anything, "5547999887766").Return(true, nil)
	carts := &mockCartStore{}
	carts.On("Load", mock.Anything, "c1").Return(filledCart(), nil)
	carts.On("Delete", mock.Anything, "c1").Return(errors.New("redis down"))
	repo := &mockOrderRepo{}
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)

	svc := NewService(repo, carts, verifier, nil, "55")
	o, err := svc.Checkout(context.Background(), checkoutReq())

	require.NoError(t, err)
	assert.NotEmpty(t, o.OrderID)
}

// --- ListRecent ---

func TestListRecent_ClampsLimit(t *testing.T) {
	repo := &mockOrderRepo{}
	repo.On("ListRecent", mock.Anything, 50).Return([]domain.Order{}, nil)

	svc := NewService(repo, &mockCartStore{}, &mockVerifier{}, nil, "55")

	_, err := svc.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	_, err = svc.ListRecent(context.Background(), 10_000)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "ListRecent", 2)
}

// --- UpdateStatus ---

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	repo := &mockOrderRepo{}
	repo.On("Get", mock.Anything, "o1").Return(&domain.Order{
		OrderID: "o1",
		Status:  domain.OrderStatusDelivered,
	}, nil)

	svc := NewService(repo, &mockCartStore{}, &mockVerifier{}, nil, "55")
	_, err := svc.UpdateStatus(context.Background(), "o1", domain.OrderStatusPreparing)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_HappyPath(t *testing.T) {
	repo := &mockOrderRepo{}
	repo.On("Get", mock.Anything, "o1").Return(&domain.Order{
		OrderID: "o1",
		Status:  domain.OrderStatusReceived,
	}, nil)
	repo.On("Update", mock.Anything, "o1", mock.Anything).Return(nil)

	svc := NewService(repo, &mockCartStore{}, &mockVerifier{}, nil, "55")
	o, err := svc.UpdateStatus(context.Background(), "o1", domain.OrderStatusPreparing)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPreparing, o.Status)
	repo.AssertExpectations(t)
}
