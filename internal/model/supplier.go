package model

type Supplier struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	ContactInfo string `gorm:"type:text" json:"contact_info"`

	Products []Product `gorm:"foreignKey:SupplierID" json:"products,omitempty"`
}
