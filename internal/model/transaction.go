package model

import "github.com/google/uuid"

type TransactionType string

const (
	TxIn  TransactionType = "IN"
	TxOut TransactionType = "OUT"
)

// Transaction is one row of the stock ledger: exactly one is written per
// stock-affecting event (order processing or direct stock update).
type Transaction struct {
	BaseModel
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product     *Product        `json:"product,omitempty" validate:"-"`
	Type        TransactionType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=IN OUT"`
	Quantity    int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	TotalAmount int64           `gorm:"not null" json:"total_amount"` // Snapshot price * quantity
	Notes       string          `gorm:"type:text" json:"notes"`

	// Order that triggered the movement, when any
	ReferenceID *uuid.UUID `gorm:"type:uuid;index" json:"reference_id,omitempty"`

	PerformedByID *uuid.UUID `gorm:"type:uuid" json:"performed_by_id,omitempty"`
	PerformedBy   *User      `gorm:"foreignKey:PerformedByID" json:"performed_by,omitempty"`
}
