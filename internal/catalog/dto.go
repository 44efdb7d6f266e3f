package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/minishoplabs/minishop-backend/pkg/db/models"
	"github.com/minishoplabs/minishop-backend/pkg/money"
)

// ProductDTO represents the catalog payload returned to clients.
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	PriceCents  int64     `json:"price_cents"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LegacyProductDTO mirrors the flat array shape the storefront widget consumes.
type LegacyProductDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
	Image string    `json:"image"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	return &ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       money.FormatCents(product.PriceCents),
		PriceCents:  product.PriceCents,
		ImageURL:    product.ImageURL,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// NewProductDTOs maps a slice of models.
func NewProductDTOs(products []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, len(products))
	for i := range products {
		dtos[i] = *NewProductDTO(&products[i])
	}
	return dtos
}

// NewLegacyProductDTOs maps products into the legacy array shape.
func NewLegacyProductDTOs(products []models.Product) []LegacyProductDTO {
	dtos := make([]LegacyProductDTO, len(products))
	for i := range products {
		image := ""
		if products[i].ImageURL != nil {
			image = *products[i].ImageURL
		}
		dtos[i] = LegacyProductDTO{
			ID:    products[i].ID,
			Name:  products[i].Name,
			Price: money.Float64Cents(products[i].PriceCents),
			Image: image,
		}
	}
	return dtos
}
