package cart

import (
	"github.com/google/uuid"

	"github.com/minishoplabs/minishop-backend/pkg/db/models"
	"github.com/minishoplabs/minishop-backend/pkg/money"
)

// CartLine joins one cart row with its current product data.
type CartLine struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	UnitPrice      string    `json:"unit_price"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	LineTotal      string    `json:"line_total"`
	LineTotalCents int64     `json:"line_total_cents"`
	ImageURL       *string   `json:"image_url,omitempty"`
}

// CartDTO is the whole-cart read model returned to clients.
type CartDTO struct {
	Items      []CartLine `json:"items"`
	ItemCount  int        `json:"item_count"`
	Total      string     `json:"total"`
	TotalCents int64      `json:"total_cents"`
}

// NewCartLine builds one read-model line from the row and its product.
func NewCartLine(item *models.CartItem, product *models.Product) CartLine {
	lineTotal := product.PriceCents * int64(item.Quantity)
	return CartLine{
		ProductID:      product.ID,
		Name:           product.Name,
		UnitPrice:      money.FormatCents(product.PriceCents),
		UnitPriceCents: product.PriceCents,
		Quantity:       item.Quantity,
		LineTotal:      money.FormatCents(lineTotal),
		LineTotalCents: lineTotal,
		ImageURL:       product.ImageURL,
	}
}

// NewCartDTO assembles the read model and totals from prepared lines.
func NewCartDTO(lines []CartLine) *CartDTO {
	dto := &CartDTO{Items: lines}
	if dto.Items == nil {
		dto.Items = []CartLine{}
	}
	for _, line := range lines {
		dto.ItemCount += line.Quantity
		dto.TotalCents += line.LineTotalCents
	}
	dto.Total = money.FormatCents(dto.TotalCents)
	return dto
}
