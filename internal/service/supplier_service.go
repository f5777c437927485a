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

type SupplierService interface {
	Create(req *model.Supplier, userID uuid.UUID) error
	Update(id uuid.UUID, req *model.Supplier, userID uuid.UUID) (*model.Supplier, error)
	Delete(id uuid.UUID, userID uuid.UUID) error
	GetAll() ([]model.Supplier, error)
	GetByID(id uuid.UUID) (*model.Supplier, error)
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	log          *zap.Logger
}

func NewSupplierService(supplierRepo repository.SupplierRepository, productRepo repository.ProductRepository, log *zap.Logger) SupplierService {
	return &supplierService{
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		log:          log,
	}
}

func (s *supplierService) Create(req *model.Supplier, userID uuid.UUID) error {
	if fieldErr := validator.Struct(req); fieldErr != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, fieldErr)
	}

	req.CreatedBy = userID.String()
	req.UpdatedBy = userID.String()

	if err := s.supplierRepo.Create(req); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	return nil
}

func (s *supplierService) Update(id uuid.UUID, req *model.Supplier, userID uuid.UUID) (*model.Supplier, error) {
	if fieldErr := validator.Struct(req); fieldErr != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, fieldErr)
	}

	existing, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrSupplierNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	existing.Name = req.Name
	existing.ContactInfo = req.ContactInfo
	existing.UpdatedBy = userID.String()

	if err := s.supplierRepo.Update(existing); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	return existing, nil
}

// Delete removes a supplier. Blocked while any live product still references
// it, so product rows never point at a missing supplier.
func (s *supplierService) Delete(id uuid.UUID, userID uuid.UUID) error {
	if _, err := s.supplierRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrSupplierNotFound
		}
		return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	count, err := s.productRepo.CountBySupplier(id)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	if count > 0 {
		return apperr.ErrSupplierInUse
	}

	if err := s.supplierRepo.Delete(id); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	s.log.Info("supplier deleted", zap.String("supplier_id", id.String()), zap.String("deleted_by", userID.String()))
	return nil
}

func (s *supplierService) GetAll() ([]model.Supplier, error) {
	suppliers, err := s.supplierRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	return suppliers, nil
}

func (s *supplierService) GetByID(id uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByIDWithProducts(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrSupplierNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	return supplier, nil
}
