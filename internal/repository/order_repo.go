package repository

import (
	"github.com/YasinKhilji/ims-project/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	FindAll() ([]model.Order, error)
	FindByID(id uuid.UUID) (*model.Order, error)
	FindByStatus(status model.OrderStatus) ([]model.Order, error)
	CountByStatus(status model.OrderStatus) (int64, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

// Create accepts *gorm.DB (tx) so the insert can share a transaction with
// the notification fan-out.
func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepo) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Product").Preload("AddedBy").Preload("ProcessedBy").
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Product").Preload("AddedBy").Preload("ProcessedBy").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindByStatus(status model.OrderStatus) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Product").Preload("AddedBy").
		Where("status = ?", status).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) CountByStatus(status model.OrderStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.Order{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
