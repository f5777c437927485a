package service

import (
	"fmt"
	"time"

	"github.com/YasinKhilji/ims-project/internal/apperr"
	"github.com/YasinKhilji/ims-project/internal/model"
	"github.com/YasinKhilji/ims-project/internal/repository"

	"gorm.io/gorm"
)

type ReportService interface {
	GetDashboardStats() (*DashboardStats, error)
	GetStockMovement(days int) ([]repository.StockMovementData, error)
	GetSupplierReport() ([]SupplierStats, error)
	GetSalesReport(startDate, endDate time.Time) (*SalesReport, error)
}

// DashboardStats is the overview block common to all dashboards
type DashboardStats struct {
	TotalProducts  int64 `json:"total_products"`
	LowStockCount  int64 `json:"low_stock_count"`
	PendingOrders  int64 `json:"pending_orders"`
	ActiveUsers    int64 `json:"active_users"`
	TotalValuation int64 `json:"total_valuation"`
}

// SupplierStats aggregates product metrics per supplier
type SupplierStats struct {
	SupplierID   string  `json:"supplier_id"`
	SupplierName string  `json:"supplier_name"`
	ProductCount int64   `json:"product_count"`
	TotalStock   int64   `json:"total_stock"`
	AvgPrice     float64 `json:"avg_price"`
}

// SalesReport summarizes OUT movements over a date window
type SalesReport struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	TotalAmount int64  `json:"total_amount"`
	TotalUnits  int64  `json:"total_units"`
}

type reportService struct {
	db          *gorm.DB
	txRepo      repository.TransactionRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
}

func NewReportService(db *gorm.DB, txRepo repository.TransactionRepository, productRepo repository.ProductRepository, orderRepo repository.OrderRepository, userRepo repository.UserRepository) ReportService {
	return &reportService{
		db:          db,
		txRepo:      txRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
	}
}

func (s *reportService) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	if err := s.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	if err := s.db.Model(&model.Product{}).Where("quantity <= min_stocks").Count(&stats.LowStockCount).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	pending, err := s.orderRepo.CountByStatus(model.OrderPending)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	stats.PendingOrders = pending

	active, err := s.userRepo.CountActive()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	stats.ActiveUsers = active

	if err := s.db.Model(&model.Product{}).
		Select("COALESCE(SUM(quantity * price), 0)").
		Scan(&stats.TotalValuation).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	return &stats, nil
}

func (s *reportService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	if days <= 0 {
		days = 7
	}
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	movement, err := s.txRepo.GetStockMovement(startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	return movement, nil
}

func (s *reportService) GetSupplierReport() ([]SupplierStats, error) {
	var results []SupplierStats

	err := s.db.Model(&model.Supplier{}).
		Select(`
			suppliers.id as supplier_id,
			suppliers.name as supplier_name,
			COUNT(products.id) as product_count,
			COALESCE(SUM(products.quantity), 0) as total_stock,
			COALESCE(AVG(products.price), 0) as avg_price
		`).
		Joins("LEFT JOIN products ON products.supplier_id = suppliers.id AND products.deleted_at IS NULL").
		Where("suppliers.deleted_at IS NULL").
		Group("suppliers.id, suppliers.name").
		Order("product_count DESC").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	return results, nil
}

func (s *reportService) GetSalesReport(startDate, endDate time.Time) (*SalesReport, error) {
	amount, units, err := s.txRepo.GetSalesSummary(startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	return &SalesReport{
		StartDate:   startDate.Format("2006-01-02"),
		EndDate:     endDate.Format("2006-01-02"),
		TotalAmount: amount,
		TotalUnits:  units,
	}, nil
}
