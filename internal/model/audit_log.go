package model

import "github.com/google/uuid"

// AuditLog is an append-only record of who changed what.
type AuditLog struct {
	BaseModel
	Entity string `gorm:"column:table_name;type:varchar(100);not null;index" json:"table_name"`
	Action string `gorm:"type:varchar(50);not null" json:"action"` // "create", "update", "process", "login", ...
	Detail string `gorm:"type:text" json:"detail"`

	ChangedByID *uuid.UUID `gorm:"type:uuid;index" json:"changed_by_id,omitempty"`
	ChangedBy   *User      `gorm:"foreignKey:ChangedByID" json:"changed_by,omitempty"`
}

// TableName keeps the original table naming.
func (AuditLog) TableName() string {
	return "audit_log"
}
