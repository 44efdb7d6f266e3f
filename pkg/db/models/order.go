package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/minishoplabs/minishop-backend/pkg/enums"
)

// Order represents a completed checkout for one user.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	Status          enums.OrderStatus `gorm:"column:status;type:text;not null;default:'placed'"`
	Currency        string            `gorm:"column:currency;type:text;not null;default:'inr'"`
	TotalCents      int64             `gorm:"column:total_cents;not null"`
	PaymentIntentID *string           `gorm:"column:payment_intent_id"`
	ShippingAddress *string           `gorm:"column:shipping_address"`
	Phone           *string           `gorm:"column:phone"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
