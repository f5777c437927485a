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

type OrderService interface {
	Create(req *CreateOrderRequest, requesterID uuid.UUID) (*model.Order, error)
	Process(orderID uuid.UUID, req *ProcessOrderRequest, processorID uuid.UUID) (*model.Order, error)
	GetAll() ([]model.Order, error)
	GetByID(id uuid.UUID) (*OrderDetail, error)
}

type CreateOrderRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	Notes     string    `json:"notes"`
}

type ProcessOrderRequest struct {
	Status model.OrderStatus `json:"status" validate:"required,oneof=processed rejected cancelled"`
	Notes  string            `json:"notes"`
}

// OrderDetail pairs an order with the ledger rows it produced.
type OrderDetail struct {
	Order        model.Order         `json:"order"`
	Transactions []model.Transaction `json:"transactions"`
}

type orderService struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
	txRepo    repository.TransactionRepository
	notifier  NotificationService
	audit     repository.AuditRepository
	log       *zap.Logger
}

func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository, txRepo repository.TransactionRepository, notifier NotificationService, audit repository.AuditRepository, log *zap.Logger) OrderService {
	return &orderService{
		db:        db,
		orderRepo: orderRepo,
		txRepo:    txRepo,
		notifier:  notifier,
		audit:     audit,
		log:       log,
	}
}

// Create validates the request, persists a pending order and fans one
// notification out to every InventoryManager. Order insert and fan-out share
// one transaction: a failed notification insert rolls the order back.
func (s *orderService) Create(req *CreateOrderRequest, requesterID uuid.UUID) (*model.Order, error) {
	if fieldErr := validator.Struct(req); fieldErr != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, fieldErr)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", apperr.ErrValidation)
	}

	order := &model.Order{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Status:    model.OrderPending,
		Notes:     req.Notes,
		AddedByID: requesterID,
	}
	order.CreatedBy = requesterID.String()
	order.UpdatedBy = requesterID.String()

	var fannedOut []*model.Notification

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrProductNotFound
			}
			return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
		}

		if err := s.orderRepo.Create(tx, order); err != nil {
			return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
		}

		var managers []model.User
		if err := tx.Where("role = ?", model.RoleInventoryManager).Find(&managers).Error; err != nil {
			return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
		}

		message := fmt.Sprintf("New order #%s for %s (Qty: %d)", order.ID, product.Name, order.Quantity)
		related := &model.RelatedEntity{Type: "order", ID: order.ID}
		for _, manager := range managers {
			n, err := s.notifier.NotifyTx(tx, manager.ID, message, model.NotifOrderCreated, related)
			if err != nil {
				return err
			}
			fannedOut = append(fannedOut, n)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, n := range fannedOut {
		s.notifier.Push(n)
	}
	s.recordAudit("orders", "create", requesterID, fmt.Sprintf("order %s qty %d", order.ID, order.Quantity))
	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("requested_by", requesterID.String()),
		zap.Int("fan_out", len(fannedOut)),
	)

	return order, nil
}

// Process transitions a pending order to a terminal status. A "processed"
// order decrements product stock and writes one ledger row; any terminal
// status notifies the order's creator. The status check runs under the same
// transaction as the update, so two racing calls cannot both succeed.
func (s *orderService) Process(orderID uuid.UUID, req *ProcessOrderRequest, processorID uuid.UUID) (*model.Order, error) {
	if fieldErr := validator.Struct(req); fieldErr != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, fieldErr)
	}
	if !req.Status.Terminal() {
		return nil, fmt.Errorf("%w: status %q is not a terminal status", apperr.ErrValidation, req.Status)
	}

	var processed *model.Order
	var queued *model.Notification

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := lockForUpdate(tx).First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrOrderNotFound
			}
			return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
		}

		if order.Status.Terminal() {
			return apperr.ErrOrderAlreadyFinal
		}

		var product model.Product
		if err := lockForUpdate(tx).First(&product, "id = ?", order.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrProductNotFound
			}
			return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
		}

		if req.Status == model.OrderProcessed {
			if product.Quantity < order.Quantity {
				return apperr.ErrInsufficientStock
			}

			newQuantity := product.Quantity - order.Quantity
			if err := tx.Model(&model.Product{}).Where("id = ?", product.ID).
				Updates(map[string]interface{}{
					"quantity":   newQuantity,
					"updated_by": processorID.String(),
				}).Error; err != nil {
				return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
			}

			orderRef := order.ID
			performer := processorID
			ledger := &model.Transaction{
				ProductID:     product.ID,
				Type:          model.TxOut,
				Quantity:      order.Quantity,
				TotalAmount:   product.Price * int64(order.Quantity),
				Notes:         req.Notes,
				ReferenceID:   &orderRef,
				PerformedByID: &performer,
			}
			ledger.CreatedBy = processorID.String()
			ledger.UpdatedBy = processorID.String()
			if err := tx.Create(ledger).Error; err != nil {
				return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
			}
		}

		performer := processorID
		order.Status = req.Status
		order.ProcessedByID = &performer
		if req.Notes != "" {
			order.Notes = req.Notes
		}
		order.UpdatedBy = processorID.String()
		if err := tx.Save(&order).Error; err != nil {
			return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
		}

		message := fmt.Sprintf("Order #%s for %s is now %s", order.ID, product.Name, order.Status)
		related := &model.RelatedEntity{Type: "order", ID: order.ID}
		n, err := s.notifier.NotifyTx(tx, order.AddedByID, message, model.NotifOrderProcessed, related)
		if err != nil {
			return err
		}

		queued = n
		processed = &order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Push(queued)
	s.recordAudit("orders", "process", processorID, fmt.Sprintf("order %s -> %s", processed.ID, processed.Status))
	s.log.Info("order processed",
		zap.String("order_id", processed.ID.String()),
		zap.String("status", string(processed.Status)),
		zap.String("processed_by", processorID.String()),
	)

	return processed, nil
}

func (s *orderService) GetAll() ([]model.Order, error) {
	orders, err := s.orderRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	return orders, nil
}

func (s *orderService) GetByID(id uuid.UUID) (*OrderDetail, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrOrderNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	transactions, err := s.txRepo.FindByReference(order.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	return &OrderDetail{Order: *order, Transactions: transactions}, nil
}

// recordAudit appends to the audit trail. Best effort: the workflow already
// committed, so a failed audit write is logged, not surfaced.
func (s *orderService) recordAudit(entity, action string, by uuid.UUID, detail string) {
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
