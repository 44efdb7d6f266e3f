package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem captures the snapshot of one purchased line. Name and unit price
// are copied from the product at checkout time so later catalog edits or
// deletions never alter order history. ProductID is nullable for the same
// reason.
type OrderItem struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID  `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID      *uuid.UUID `gorm:"column:product_id;type:uuid"`
	ProductName    string     `gorm:"column:product_name;not null"`
	UnitPriceCents int64      `gorm:"column:unit_price_cents;not null"`
	Quantity       int        `gorm:"column:quantity;not null"`
	LineTotalCents int64      `gorm:"column:line_total_cents;not null"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
}
