package cart

import (
	"context"
	"fmt"

	"github.com/sorveteria-api/internal/domain"
	"github.com/sorveteria-api/internal/pkg/id"
)

// CartStore is the persistence layer for carts. Load must succeed before any
// read or mutation is valid; the service enforces this hydrate-first lifecycle
// on every operation.
type CartStore interface {
	Load(ctx context.Context, cartID string) (*domain.Cart, error)
	Save(ctx context.Context, c *domain.Cart) error
	Delete(ctx context.Context, cartID string) error
}

// ProductGetter resolves products from the catalog when items are added.
type ProductGetter interface {
	Get(ctx context.Context, productID string) (*domain.Product, error)
}

type AddItemRequest struct {
	ProductID          string            `json:"product_id" validate:"required"`
	Quantity           int               `json:"quantity"`
	SelectedVariations map[string]string `json:"selected_variations,omitempty"`
}

type Service interface {
	Create(ctx context.Context) (*domain.Cart, error)
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID string, req AddItemRequest) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, cartID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, cartID string) error
}

type service struct {
	store    CartStore
	products ProductGetter
}

func NewService(store CartStore, products ProductGetter) Service {
	return &service{store: store, products: products}
}

func (s *service) Create(ctx context.Context) (*domain.Cart, error) {
	c := &domain.Cart{CartID: id.New()}
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	return s.store.Load(ctx, cartID)
}

func (s *service) AddItem(ctx context.Context, cartID string, req AddItemRequest) (*domain.Cart, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	p, err := s.products.Get(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !p.Available {
		return nil, fmt.Errorf("product %s is unavailable: %w", p.ProductID, domain.ErrBadRequest)
	}

	additional, err := resolveAdditionalPrice(p, req.SelectedVariations)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	c.AddItem(*p, quantity, req.SelectedVariations, additional)

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	c.UpdateQuantity(productID, quantity)
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) RemoveItem(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	c.RemoveItem(productID)
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Clear(ctx context.Context, cartID string) error {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return err
	}
	c.Clear()
	return s.store.Save(ctx, c)
}

// resolveAdditionalPrice sums the per-unit surcharge of the chosen options.
// Selections that don't exist on the product are rejected.
func resolveAdditionalPrice(p *domain.Product, selected map[string]string) (int64, error) {
	var total int64
	for variationID, optionID := range selected {
		price, ok := p.OptionPrice(variationID, optionID)
		if !ok {
			return 0, fmt.Errorf("unknown variation option %s/%s: %w", variationID, optionID, domain.ErrBadRequest)
		}
		total += price
	}
	return total, nil
}
