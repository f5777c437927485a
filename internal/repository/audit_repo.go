package repository

import (
	"github.com/YasinKhilji/ims-project/internal/model"

	"gorm.io/gorm"
)

type AuditRepository interface {
	Record(entry *model.AuditLog) error
	FindRecent(limit int) ([]model.AuditLog, error)
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db}
}

func (r *auditRepo) Record(entry *model.AuditLog) error {
	return r.db.Create(entry).Error
}

func (r *auditRepo) FindRecent(limit int) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := r.db.Preload("ChangedBy").
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
