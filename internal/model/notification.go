package model

import "github.com/google/uuid"

type NotificationType string

const (
	NotifOrderCreated   NotificationType = "OrderCreated"
	NotifOrderProcessed NotificationType = "OrderProcessed"
	NotifSystemAlert    NotificationType = "SystemAlert"
)

// RelatedEntity points a notification at the record it is about so the
// client can jump straight to it.
type RelatedEntity struct {
	Type string    `json:"type"` // "order", "product", "user"
	ID   uuid.UUID `json:"id"`
}

// Notification is a per-user message. The read flag only ever goes
// false -> true; rows are never deleted.
type Notification struct {
	BaseModel
	UserID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	User    *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Message string           `gorm:"type:text;not null" json:"message"`
	Type    NotificationType `gorm:"type:varchar(50);not null" json:"type"`
	IsRead  bool             `gorm:"default:false;index" json:"is_read"`

	RelatedEntityType string     `gorm:"type:varchar(50)" json:"related_entity_type,omitempty"`
	RelatedEntityID   *uuid.UUID `gorm:"type:uuid" json:"related_entity_id,omitempty"`
}

// Related returns the entity reference, or nil when the notification is not
// tied to one.
func (n *Notification) Related() *RelatedEntity {
	if n.RelatedEntityType == "" || n.RelatedEntityID == nil {
		return nil
	}
	return &RelatedEntity{Type: n.RelatedEntityType, ID: *n.RelatedEntityID}
}
