package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/burgerhouse/storefront/internal/datasync"
	"github.com/burgerhouse/storefront/internal/models"
	"github.com/burgerhouse/storefront/internal/store"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product fields")
)

// ProductService manages the admin-side mutable product records. Products
// are mutated in place and never hard-deleted, only toggled unavailable.
type ProductService struct {
	data  datasync.Service
	store *store.Store
	log   *slog.Logger
}

// NewProductService creates a product service.
func NewProductService(data datasync.Service, st *store.Store, log *slog.Logger) *ProductService {
	return &ProductService{data: data, store: st, log: log}
}

// ProductInput carries the editable product fields.
type ProductInput struct {
	Name        string          `json:"name"`
	Category    models.Category `json:"category"`
	Price       float64         `json:"price"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Available   bool            `json:"available"`
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" {
		return ErrInvalidProduct
	}
	if !models.ValidCategory(in.Category) {
		return ErrInvalidProduct
	}
	if in.Price <= 0 {
		return ErrInvalidProduct
	}
	return nil
}

// Create persists a new product.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (models.Product, error) {
	if err := in.validate(); err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		Type:        models.RecordTypeProduct,
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Category:    in.Category,
		Price:       in.Price,
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Available:   in.Available,
		CreatedAt:   time.Now().UTC(),
	}

	rec, err := models.NewRecord(product)
	if err != nil {
		return models.Product{}, err
	}
	if err := s.data.Create(ctx, rec); err != nil {
		return models.Product{}, fmt.Errorf("persist product: %w", err)
	}

	s.log.Info("product created", "product_id", product.ID, "name", product.Name)
	return product, nil
}

// Update mutates an existing product in place.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (models.Product, error) {
	if err := in.validate(); err != nil {
		return models.Product{}, err
	}

	product, ok := s.store.ProductByID(id)
	if !ok {
		return models.Product{}, ErrProductNotFound
	}

	product.Name = strings.TrimSpace(in.Name)
	product.Category = in.Category
	product.Price = in.Price
	product.Description = strings.TrimSpace(in.Description)
	product.ImageURL = strings.TrimSpace(in.ImageURL)
	product.Available = in.Available

	rec, err := models.NewRecord(product)
	if err != nil {
		return models.Product{}, err
	}
	if err := s.data.Update(ctx, rec); err != nil {
		return models.Product{}, fmt.Errorf("persist product: %w", err)
	}

	return product, nil
}

// ToggleAvailability flips the availability flag.
func (s *ProductService) ToggleAvailability(ctx context.Context, id string) (models.Product, error) {
	product, ok := s.store.ProductByID(id)
	if !ok {
		return models.Product{}, ErrProductNotFound
	}

	product.Available = !product.Available

	rec, err := models.NewRecord(product)
	if err != nil {
		return models.Product{}, err
	}
	if err := s.data.Update(ctx, rec); err != nil {
		return models.Product{}, fmt.Errorf("persist product: %w", err)
	}

	s.log.Info("product availability toggled", "product_id", id, "available", product.Available)
	return product, nil
}
