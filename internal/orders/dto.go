package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/minishoplabs/minishop-backend/pkg/db/models"
	"github.com/minishoplabs/minishop-backend/pkg/money"
)

// OrderItemDTO is one purchased line as captured at checkout time.
type OrderItemDTO struct {
	ProductID      *uuid.UUID `json:"product_id,omitempty"`
	Name           string     `json:"name"`
	UnitPrice      string     `json:"unit_price"`
	UnitPriceCents int64      `json:"unit_price_cents"`
	Quantity       int        `json:"quantity"`
	LineTotal      string     `json:"line_total"`
	LineTotalCents int64      `json:"line_total_cents"`
}

// OrderDTO is the client-facing view of one order.
type OrderDTO struct {
	ID              uuid.UUID      `json:"id"`
	Status          string         `json:"status"`
	Currency        string         `json:"currency"`
	Total           string         `json:"total"`
	TotalCents      int64          `json:"total_cents"`
	PaymentIntentID *string        `json:"payment_intent_id,omitempty"`
	ShippingAddress *string        `json:"shipping_address,omitempty"`
	Phone           *string        `json:"phone,omitempty"`
	Items           []OrderItemDTO `json:"items"`
	CreatedAt       time.Time      `json:"created_at"`
}

// NewOrderDTO maps a stored order and its items to the response shape.
func NewOrderDTO(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	items := make([]OrderItemDTO, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items = append(items, OrderItemDTO{
			ProductID:      item.ProductID,
			Name:           item.ProductName,
			UnitPrice:      money.FormatCents(item.UnitPriceCents),
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
			LineTotal:      money.FormatCents(item.LineTotalCents),
			LineTotalCents: item.LineTotalCents,
		})
	}
	return &OrderDTO{
		ID:              order.ID,
		Status:          order.Status.String(),
		Currency:        order.Currency,
		Total:           money.FormatCents(order.TotalCents),
		TotalCents:      order.TotalCents,
		PaymentIntentID: order.PaymentIntentID,
		ShippingAddress: order.ShippingAddress,
		Phone:           order.Phone,
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
}

// NewOrderDTOs maps a slice of stored orders.
func NewOrderDTOs(orders []models.Order) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, *NewOrderDTO(&orders[i]))
	}
	return dtos
}
