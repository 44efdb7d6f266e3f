package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minishoplabs/minishop-backend/pkg/db/models"
	pkgerrors "github.com/minishoplabs/minishop-backend/pkg/errors"
)

// Service exposes per-user cart operations.
type Service interface {
	AddItem(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error)
	GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type service struct {
	repo     *Repository
	products productLoader
}

// NewService constructs a cart service instance.
func NewService(repo *Repository, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, products: products}, nil
}

// AddItem puts one unit of the product into the cart. Repeat adds bump the
// quantity of the existing row.
func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	existing, err := s.repo.FindByUserAndProduct(ctx, userID, productID)
	switch {
	case err == nil:
		if err := s.repo.IncrementQuantity(ctx, existing.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: increment cart quantity")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  1,
		}
		if _, err := s.repo.Create(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert cart item")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart item")
	}

	return s.GetCart(ctx, userID)
}

// RemoveItem drops the product's row entirely. Removing a product that is not
// in the cart succeeds and leaves the cart unchanged.
func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error) {
	if err := s.repo.DeleteByUserAndProduct(ctx, userID, productID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete cart item")
	}
	return s.GetCart(ctx, userID)
}

// GetCart assembles the read model with live product names and prices.
func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list cart items")
	}
	lines, err := s.buildLines(ctx, items)
	if err != nil {
		return nil, err
	}
	return NewCartDTO(lines), nil
}

func (s *service) buildLines(ctx context.Context, items []models.CartItem) ([]CartLine, error) {
	if len(items) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart products")
	}
	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]CartLine, 0, len(items))
	for i := range items {
		product, ok := byID[items[i].ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeInconsistent, "cart references a product that no longer exists").
				WithDetails(map[string]any{"product_id": items[i].ProductID})
		}
		lines = append(lines, NewCartLine(&items[i], product))
	}
	return lines, nil
}
