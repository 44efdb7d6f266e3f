package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minishoplabs/minishop-backend/pkg/db/models"
	pkgerrors "github.com/minishoplabs/minishop-backend/pkg/errors"
	"github.com/minishoplabs/minishop-backend/pkg/money"
)

// Service exposes catalog management and browsing operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context) ([]ProductDTO, error)
	ListProductsLegacy(ctx context.Context) ([]LegacyProductDTO, error)
	SearchProducts(ctx context.Context, query string) ([]ProductDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       string
	ImageURL    *string
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *string
	ImageURL    *string
}

// service implements the catalog service.
type service struct {
	repo *Repository
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// CreateProduct validates and inserts a new listing.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	priceCents, err := money.ParseAmount(input.Price)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	product := &models.Product{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		PriceCents:  priceCents,
		ImageURL:    normalizeImageURL(input.ImageURL),
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	return NewProductDTO(created), nil
}

// UpdateProduct applies the provided fields to an existing listing.
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, mapLookupError(err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		product.Name = name
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		priceCents, err := money.ParseAmount(*input.Price)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		product.PriceCents = priceCents
	}
	if input.ImageURL != nil {
		product.ImageURL = normalizeImageURL(input.ImageURL)
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}
	return NewProductDTO(updated), nil
}

// DeleteProduct removes the listing. Existing order items keep their snapshots.
func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if err := s.repo.Delete(ctx, productID); err != nil {
		return mapLookupError(err)
	}
	return nil
}

// GetProduct loads one listing.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return NewProductDTO(product), nil
}

// ListProducts returns the full catalog.
func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	return NewProductDTOs(products), nil
}

// ListProductsLegacy serves the flat array shape older storefront widgets
// still consume.
func (s *service) ListProductsLegacy(ctx context.Context) ([]LegacyProductDTO, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	return NewLegacyProductDTOs(products), nil
}

// SearchProducts matches names and descriptions case-insensitively. A blank
// query returns an empty set without touching the database.
func (s *service) SearchProducts(ctx context.Context, query string) ([]ProductDTO, error) {
	term := strings.TrimSpace(query)
	if term == "" {
		return []ProductDTO{}, nil
	}
	products, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: search products")
	}
	return NewProductDTOs(products), nil
}

func normalizeImageURL(url *string) *string {
	if url == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*url)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func mapLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
}
