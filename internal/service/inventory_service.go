package service

import (
	"errors"
	"fmt"

	"github.com/YasinKhilji/ims-project/internal/apperr"
	"github.com/YasinKhilji/ims-project/internal/model"
	"github.com/YasinKhilji/ims-project/internal/repository"
	"github.com/YasinKhilji/ims-project/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InventoryService interface {
	CreateProduct(req *model.Product, userID uuid.UUID) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID uuid.UUID) (*model.Product, error)
	DeleteProduct(id uuid.UUID, userID uuid.UUID) error
	GetAllProducts() ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetLowStock() ([]model.Product, error)
	UpdateStock(req *UpdateStockRequest, userID uuid.UUID) (*model.Transaction, error)
	GetAllTransactions() ([]model.Transaction, error)
	GetTransaction(id uuid.UUID) (*model.Transaction, error)
}

type UpdateStockRequest struct {
	ProductID uuid.UUID             `json:"product_id" validate:"uuid_required"`
	Type      model.TransactionType `json:"type" validate:"required,oneof=IN OUT"`
	Quantity  int                   `json:"quantity" validate:"required,gt=0"`
	Notes     string                `json:"notes"`
}

type inventoryService struct {
	db           *gorm.DB
	productRepo  repository.ProductRepository
	txRepo       repository.TransactionRepository
	supplierRepo repository.SupplierRepository
	audit        repository.AuditRepository
	log          *zap.Logger
}

func NewInventoryService(db *gorm.DB, productRepo repository.ProductRepository, txRepo repository.TransactionRepository, supplierRepo repository.SupplierRepository, audit repository.AuditRepository, log *zap.Logger) InventoryService {
	return &inventoryService{
		db:           db,
		productRepo:  productRepo,
		txRepo:       txRepo,
		supplierRepo: supplierRepo,
		audit:        audit,
		log:          log,
	}
}

func (s *inventoryService) CreateProduct(req *model.Product, userID uuid.UUID) error {
	if fieldErr := validator.Struct(req); fieldErr != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, fieldErr)
	}

	if _, err := s.supplierRepo.FindByID(req.SupplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrSupplierNotFound
		}
		return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	creator := userID
	req.AddedByID = &creator
	req.CreatedBy = userID.String()
	req.UpdatedBy = userID.String()

	if err := s.productRepo.Create(req); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	s.recordAudit("products", "create", userID, req.Name)
	return nil
}

func (s *inventoryService) UpdateProduct(id uuid.UUID, req *model.Product, userID uuid.UUID) (*model.Product, error) {
	if fieldErr := validator.Struct(req); fieldErr != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, fieldErr)
	}

	var updated *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := lockForUpdate(tx).First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrProductNotFound
			}
			return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
		}

		updater := userID
		existing.Name = req.Name
		existing.Category = req.Category
		existing.Price = req.Price
		existing.Quantity = req.Quantity
		existing.MinStocks = req.MinStocks
		existing.SupplierID = req.SupplierID
		existing.UpdatedByID = &updater
		existing.UpdatedBy = userID.String()

		if err := tx.Save(&existing).Error; err != nil {
			return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
		}

		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit("products", "update", userID, updated.Name)
	return updated, nil
}

// DeleteProduct soft-deletes: the row stays for ledger history but drops out
// of every listing.
func (s *inventoryService) DeleteProduct(id uuid.UUID, userID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrProductNotFound
		}
		return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	if err := s.productRepo.SoftDelete(id, userID.String()); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	s.recordAudit("products", "delete", userID, id.String())
	return nil
}

func (s *inventoryService) GetAllProducts() ([]model.Product, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	return products, nil
}

func (s *inventoryService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	return product, nil
}

func (s *inventoryService) GetLowStock() ([]model.Product, error) {
	products, err := s.productRepo.FindLowStock()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	return products, nil
}

// UpdateStock applies a direct IN/OUT movement and writes the matching
// ledger row, both under one transaction. Stock never goes below zero.
func (s *inventoryService) UpdateStock(req *UpdateStockRequest, userID uuid.UUID) (*model.Transaction, error) {
	if fieldErr := validator.Struct(req); fieldErr != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, fieldErr)
	}

	var ledger *model.Transaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := lockForUpdate(tx).First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrProductNotFound
			}
			return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
		}

		newQuantity := product.Quantity
		switch req.Type {
		case model.TxIn:
			newQuantity += req.Quantity
		case model.TxOut:
			if product.Quantity < req.Quantity {
				return apperr.ErrInsufficientStock
			}
			newQuantity -= req.Quantity
		}

		if err := s.productRepo.UpdateQuantity(tx, product.ID, newQuantity, userID.String()); err != nil {
			return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
		}

		performer := userID
		ledger = &model.Transaction{
			ProductID:     product.ID,
			Type:          req.Type,
			Quantity:      req.Quantity,
			TotalAmount:   product.Price * int64(req.Quantity),
			Notes:         req.Notes,
			PerformedByID: &performer,
		}
		ledger.CreatedBy = userID.String()
		ledger.UpdatedBy = userID.String()
		if err := tx.Create(ledger).Error; err != nil {
			return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit("transactions", "stock_update", userID,
		fmt.Sprintf("%s %d of product %s", ledger.Type, ledger.Quantity, ledger.ProductID))
	s.log.Info("stock updated",
		zap.String("product_id", ledger.ProductID.String()),
		zap.String("type", string(ledger.Type)),
		zap.Int("quantity", ledger.Quantity),
	)

	return ledger, nil
}

func (s *inventoryService) GetAllTransactions() ([]model.Transaction, error) {
	transactions, err := s.txRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	return transactions, nil
}

func (s *inventoryService) GetTransaction(id uuid.UUID) (*model.Transaction, error) {
	transaction, err := s.txRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transaction", apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	return transaction, nil
}

func (s *inventoryService) recordAudit(entity, action string, by uuid.UUID, detail string) {
	performer := by
	entry := &model.AuditLog{
		Entity:      entity,
		Action:      action,
		Detail:      detail,
		ChangedByID: &performer,
	}
	if err := s.audit.Record(entry); err != nil {
		s.log.Warn("audit write failed", zap.String("entity", entity), zap.String("action", action), zap.Error(err))
	}
}
