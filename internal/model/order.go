package model

import "github.com/google/uuid"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderProcessed OrderStatus = "processed"
	OrderRejected  OrderStatus = "rejected"
	OrderCancelled OrderStatus = "cancelled"
)

// Terminal reports whether the status ends the order lifecycle.
// Transitions are one-directional: pending -> terminal, never back.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderProcessed, OrderRejected, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	BaseModel
	ProductID uuid.UUID   `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product    `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int         `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Status    OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes     string      `gorm:"type:text" json:"notes"`

	AddedByID uuid.UUID `gorm:"type:uuid;not null;index" json:"added_by_id"`
	AddedBy   *User     `gorm:"foreignKey:AddedByID" json:"added_by,omitempty"`

	ProcessedByID *uuid.UUID `gorm:"type:uuid" json:"processed_by_id,omitempty"`
	ProcessedBy   *User      `gorm:"foreignKey:ProcessedByID" json:"processed_by,omitempty"`
}
