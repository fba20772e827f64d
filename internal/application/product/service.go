package product

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sorveteria-api/internal/domain"
	"github.com/sorveteria-api/internal/pkg/id"
)

// Repo is the catalog persistence layer.
type Repo interface {
	Put(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, productID string) (*domain.Product, error)
	Scan(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Update(ctx context.Context, productID string, updates map[string]interface{}) error
	Delete(ctx context.Context, productID string) error
}

// ImageStore holds product images.
type ImageStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type CreateProductRequest struct {
	Name        string             `json:"name" validate:"required"`
	Description string             `json:"description"`
	Price       int64              `json:"price" validate:"required,gt=0"` // centavos
	Category    string             `json:"category" validate:"required"`
	Available   *bool              `json:"available"`
	Variations  []domain.Variation `json:"variations,omitempty"`
}

type UpdateProductRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Price       *int64             `json:"price"`
	Category    *string            `json:"category"`
	Variations  []domain.Variation `json:"variations,omitempty"`
}

type Service interface {
	// List returns the menu. Unavailable products are filtered out unless
	// includeUnavailable is set (gestão view).
	List(ctx context.Context, category string, includeUnavailable bool) ([]domain.Product, error)
	Get(ctx context.Context, productID string) (*domain.Product, error)
	Create(ctx context.Context, req CreateProductRequest) (*domain.Product, error)
	Update(ctx context.Context, productID string, req UpdateProductRequest) (*domain.Product, error)
	SetAvailability(ctx context.Context, productID string, available bool) error
	Delete(ctx context.Context, productID string) error
	UploadImage(ctx context.Context, productID, filename string, r io.Reader, contentType string) (*domain.Product, error)
	UploadImageBase64(ctx context.Context, productID, filename, b64Data string) (*domain.Product, error)
	ImageURL(ctx context.Context, productID string) (string, error)
}

type service struct {
	repo   Repo
	images ImageStore
}

func NewService(repo Repo, images ImageStore) Service {
	return &service{repo: repo, images: images}
}

func (s *service) List(ctx context.Context, category string, includeUnavailable bool) ([]domain.Product, error) {
	var (
		products []domain.Product
		err      error
	)
	if category != "" {
		products, err = s.repo.ListByCategory(ctx, category)
	} else {
		products, err = s.repo.Scan(ctx)
	}
	if err != nil {
		return nil, err
	}
	if includeUnavailable {
		return products, nil
	}
	visible := products[:0]
	for _, p := range products {
		if p.Available {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

func (s *service) Get(ctx context.Context, productID string) (*domain.Product, error) {
	return s.repo.Get(ctx, productID)
}

func (s *service) Create(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	now := time.Now().UTC()
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	p := &domain.Product{
		ProductID:   id.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Available:   available,
		Variations:  req.Variations,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, productID string, req UpdateProductRequest) (*domain.Product, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("price must be positive: %w", domain.ErrBadRequest)
		}
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Variations != nil {
		updates["variations"] = req.Variations
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	updates["updated_at"] = time.Now().UTC()

	if err := s.repo.Update(ctx, productID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, productID)
}

func (s *service) SetAvailability(ctx context.Context, productID string, available bool) error {
	return s.repo.Update(ctx, productID, map[string]interface{}{
		"available":  available,
		"updated_at": time.Now().UTC(),
	})
}

func (s *service) Delete(ctx context.Context, productID string) error {
	p, err := s.repo.Get(ctx, productID)
	if err != nil {
		return err
	}
	if p.ImageKey != "" {
		if err := s.images.Delete(ctx, p.ImageKey); err != nil {
			slog.Warn("failed to delete product image", "product_id", productID, "key", p.ImageKey, "err", err)
		}
	}
	return s.repo.Delete(ctx, productID)
}

func (s *service) UploadImage(ctx context.Context, productID, filename string, r io.Reader, contentType string) (*domain.Product, error) {
	if _, err := s.repo.Get(ctx, productID); err != nil {
		return nil, err
	}
	key := fmt.Sprintf("products/%s/%s", productID, filename)
	if _, err := s.images.Upload(ctx, key, r, contentType); err != nil {
		return nil, err
	}
	return s.attachImage(ctx, productID, key)
}

func (s *service) UploadImageBase64(ctx context.Context, productID, filename, b64Data string) (*domain.Product, error) {
	if _, err := s.repo.Get(ctx, productID); err != nil {
		return nil, err
	}
	key := fmt.Sprintf("products/%s/%s", productID, filename)
	if _, err := s.images.UploadBase64(ctx, key, b64Data); err != nil {
		return nil, err
	}
	return s.attachImage(ctx, productID, key)
}

func (s *service) attachImage(ctx context.Context, productID, key string) (*domain.Product, error) {
	if err := s.repo.Update(ctx, productID, map[string]interface{}{
		"image_key":  key,
		"updated_at": time.Now().UTC(),
	}); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, productID)
}

func (s *service) ImageURL(ctx context.Context, productID string) (string, error) {
	p, err := s.repo.Get(ctx, productID)
	if err != nil {
		return "", err
	}
	if p.ImageKey == "" {
		return "", fmt.Errorf("product has no image: %w", domain.ErrNotFound)
	}
	return s.images.PresignedURL(ctx, p.ImageKey, 15*time.Minute)
}
