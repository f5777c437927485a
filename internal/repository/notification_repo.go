package repository

import (
	"github.com/YasinKhilji/ims-project/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(tx *gorm.DB, notification *model.Notification) error
	FindRecent(userID uuid.UUID, limit int) ([]model.Notification, error)
	FindByID(id uuid.UUID) (*model.Notification, error)
	CountUnread(userID uuid.UUID) (int64, error)
	MarkRead(id uuid.UUID) error
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db}
}

// Create accepts *gorm.DB (tx) so fan-out inserts can share the transaction
// of the write that triggered them.
func (r *notificationRepo) Create(tx *gorm.DB, notification *model.Notification) error {
	return tx.Create(notification).Error
}

func (r *notificationRepo) FindRecent(userID uuid.UUID, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepo) FindByID(id uuid.UUID) (*model.Notification, error) {
	var notification model.Notification
	if err := r.db.First(&notification, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepo) CountUnread(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepo) MarkRead(id uuid.UUID) error {
	return r.db.Model(&model.Notification{}).Where("id = ?", id).Update("is_read", true).Error
}
