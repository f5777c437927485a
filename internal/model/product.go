package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	Name      string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category  string `gorm:"type:varchar(100)" json:"category" validate:"required"`
	Price     int64  `gorm:"not null" json:"price" validate:"gt=0"`
	Quantity  int    `gorm:"default:0" json:"quantity" validate:"gte=0"` // Never below zero
	MinStocks int    `gorm:"default:5" json:"min_stocks" validate:"gte=0"`

	SupplierID uuid.UUID `gorm:"type:uuid;not null;index" json:"supplier_id" validate:"uuid_required"`
	Supplier   *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`

	// User tracking
	AddedByID   *uuid.UUID `gorm:"type:uuid" json:"added_by_id,omitempty"`
	AddedBy     *User      `gorm:"foreignKey:AddedByID" json:"added_by,omitempty"`
	UpdatedByID *uuid.UUID `gorm:"type:uuid" json:"updated_by_id,omitempty"`

	Transactions []Transaction `json:"transactions,omitempty"`
}

// IsLowStock reports whether the quantity dropped to the reorder threshold.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStocks
}
