package cart

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

type mockCartStore struct{ mock.Mock }

func (m *mockCartStore) Load(ctx context.Context, cartID string) (*domain.Cart, error) {
	args := m.Called(ctx, cartID)
	if c, _ := args.Get(0).(*domain.Cart); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCartStore) Save(ctx context.Context, c *domain.Cart) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockCartStore) Delete(ctx context.Context, cartID string) error {
	return m.Called(ctx, cartID).Error(0)
}

type mockProductGetter struct{ mock.Mock }

func (m *mockProductGetter) Get(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if p, _ := args.Get(0).(*domain.Product); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func sorvete() *domain.Product {
	return &domain.Product{
		ProductID: "p-sorvete",
		Name:      "Sorvete de Chocolate",
		Price:     1500,
		Available: true,
		Variations: []domain.Variation{
			{
				VariationID: "size",
				Name:        "Tamanho",
				Options: []domain.VariationOption{
					{OptionID: "small", Name: "Pequeno", AdditionalPrice: 0},
					{OptionID: "large", Name: "Grande", AdditionalPrice: 500},
				},
			},
		},
	}
}

// --- Create / Get ---

func TestCreate_SavesEmptyCart(t *testing.T) {
	store := &mockCartStore{}
	store.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

	svc := NewService(store, &mockProductGetter{})
	c, err := svc.Create(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, c.CartID)
	assert.Empty(t, c.Items)
	store.AssertExpectations(t)
}

func TestGet_UnknownCart(t *testing.T) {
	store := &mockCartStore{}
	store.On("Load", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := NewService(store, &mockProductGetter{})
	_, err := svc.Get(context.Background(), "missing")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// --- AddItem ---

func TestAddItem_UnknownProduct(t *testing.T) {
	store := &mockCartStore{}
	store.On("Load", mock.Anything, "c1").Return(&domain.Cart{CartID: "c1"}, nil)
	products := &mockProductGetter{}
	products.On("Get", mock.Anything, "nope").Return(nil, domain.ErrNotFound)

	svc := NewService(store, products)
	_, err := svc.AddItem(context.Background(), "c1", AddItemRequest{ProductID: "nope", Quantity: 1})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddItem_UnavailableProduct(t *testing.T) {
	store := &mockCartStore{}
	store.On("Load", mock.Anything, "c1").Return(&domain.Cart{CartID: "c1"}, nil)
	p := sorvete()
	p.Available = false
	products := &mockProductGetter{}
	products.On("Get", mock.Anything, "p-sorvete").Return(p, nil)

	svc := NewService(store, products)
	_, err := svc.AddItem(context.Background(), "c1", AddItemRequest{ProductID: "p-sorvete", Quantity: 1})

	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestAddItem_VariationSurchargeApplied(t *testing.T) {
	store := &mockCartStore{}
	store.On("Load", mock.Anything, "c1").Return(&domain.Cart{CartID: "c1"}, nil)
	store.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)
	products := &mockProductGetter{}
	products.On("Get", mock.Anything, "p-sorvete").Return(sorvete(), nil)

	svc := NewService(store, products)
	c, err := svc.AddItem(context.Background(), "c1", AddItemRequest{
		ProductID:          "p-sorvete",
		Quantity:           2,
		SelectedVariations: map[string]string{"size": "large"},
	})

	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(500), c.Items[0].AdditionalPrice)
	assert.Equal(t, int64(2*(1500+500)), c.Total())
}

func TestAddItem_UnknownVariationOption(t *testing.T) {
	store := &mockCartStore{}
	store.On("Load", mock.Anything, "c1").Return(&domain.Cart{CartID: "c1"}, nil)
	products := &mockProductGetter{}
	products.On("Get", mock.Anything, "p-sorvete").Return(sorvete(), nil)

	svc := NewService(store, products)
	_, err := svc.AddItem(context.Background(), "c1", AddItemRequest{
		ProductID:          "p-sorvete",
		SelectedVariations: map[string]string{"size": "extra-giga"},
	})

	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddItem_ZeroQuantityDefaultsToOne(t *testing.T) {
	store := &mockCartStore{}
	store.On("Load", mock.Anything, "c1").Return(&domain.Cart{CartID: "c1"}, nil)
	store.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)
	products := &mockProductGetter{}
	products.On("Get", mock.Anything, "p-sorvete").Return(sorvete(), nil)

	svc := NewService(store, products)
	c, err := svc.AddItem(context.Background(), "c1", AddItemRequest{ProductID: "p-sorvete"})

	require.NoError(t, err)
	assert.Equal(t, 1, c.Items[0].Quantity)
}

// --- UpdateQuantity / RemoveItem / Clear ---

func TestUpdateQuantity_ZeroRemovesAndPersists(t *testing.T) {
	existing := &domain.Cart{CartID: "c1"}
	existing.AddItem(*sorvete(), 2, nil, 0)

	store := &mockCartStore{}
	store.On("Load", mock.Anything, "c1").Return(existing, nil)
	store.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

	svc := NewService(store, &mockProductGetter{})
	c, err := svc.UpdateQuantity(context.Background(), "c1", "p-sorvete", 0)

	require.NoError(t, err)
	assert.Empty(t, c.Items)
	store.AssertExpectations(t)
}

func TestClear_HydratesBeforeEmptying(t *testing.T) {
	store := &mockCartStore{}
	store.On("Load", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := NewService(store, &mockProductGetter{})
	err := svc.Clear(context.Background(), "missing")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
