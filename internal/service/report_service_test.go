package service

import (
	"testing"
	"time"

	"github.com/YasinKhilji/ims-project/internal/model"
	"github.com/YasinKhilji/ims-project/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestReportService(db *gorm.DB) ReportService {
	return NewReportService(
		db,
		repository.NewTransactionRepo(db),
		repository.NewProductRepo(db),
		repository.NewOrderRepo(db),
		repository.NewUserRepo(db),
	)
}

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	svc := newTestReportService(db)

	sales := seedUser(t, db, "sales1", model.RoleSales, true)
	seedUser(t, db, "manager1", model.RoleInventoryManager, true)
	seedUser(t, db, "pending1", model.RoleSales, false)

	supplier := seedSupplier(t, db, "Acme")
	seedProduct(t, db, supplier, "Scarce", 1000, 2)  // low stock: 2 <= 5
	seedProduct(t, db, supplier, "Plenty", 500, 100) // valuation 50000

	orders := newTestOrderService(t, db)
	scarce, err := repository.NewProductRepo(db).FindLowStock()
	require.NoError(t, err)
	require.Len(t, scarce, 1)

	_, err = orders.Create(&CreateOrderRequest{ProductID: scarce[0].ID, Quantity: 1}, sales.ID)
	require.NoError(t, err)

	stats, err := svc.GetDashboardStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.LowStockCount)
	assert.Equal(t, int64(1), stats.PendingOrders)
	assert.Equal(t, int64(2), stats.ActiveUsers)
	assert.Equal(t, int64(52000), stats.TotalValuation)
}

func TestSupplierReportAggregatesLiveProducts(t *testing.T) {
	db := newTestDB(t)
	svc := newTestReportService(db)

	acme := seedSupplier(t, db, "Acme")
	seedProduct(t, db, acme, "Widget", 1000, 10)
	seedProduct(t, db, acme, "Gadget", 3000, 2)
	empty := seedSupplier(t, db, "Empty Co")

	report, err := svc.GetSupplierReport()
	require.NoError(t, err)
	require.Len(t, report, 2)

	assert.Equal(t, "Acme", report[0].SupplierName)
	assert.Equal(t, int64(2), report[0].ProductCount)
	assert.Equal(t, int64(12), report[0].TotalStock)
	assert.InDelta(t, 2000.0, report[0].AvgPrice, 0.01)

	assert.Equal(t, empty.Name, report[1].SupplierName)
	assert.Equal(t, int64(0), report[1].ProductCount)
}

func TestSalesReportSumsOutMovements(t *testing.T) {
	db := newTestDB(t)
	svc := newTestReportService(db)

	manager := seedUser(t, db, "manager1", model.RoleInventoryManager, true)
	supplier := seedSupplier(t, db, "Acme")
	product := seedProduct(t, db, supplier, "Widget", 1500, 20)

	inventory := newTestInventoryService(t, db)
	_, err := inventory.UpdateStock(&UpdateStockRequest{ProductID: product.ID, Type: model.TxOut, Quantity: 3}, manager.ID)
	require.NoError(t, err)
	_, err = inventory.UpdateStock(&UpdateStockRequest{ProductID: product.ID, Type: model.TxIn, Quantity: 10}, manager.ID)
	require.NoError(t, err)

	start := time.Now().Add(-24 * time.Hour)
	end := time.Now().Add(24 * time.Hour)

	report, err := svc.GetSalesReport(start, end)
	require.NoError(t, err)
	// IN movements do not count as sales.
	assert.Equal(t, int64(4500), report.TotalAmount)
	assert.Equal(t, int64(3), report.TotalUnits)
}

func TestStockMovementWindowDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := newTestReportService(db)

	manager := seedUser(t, db, "manager1", model.RoleInventoryManager, true)
	supplier := seedSupplier(t, db, "Acme")
	product := seedProduct(t, db, supplier, "Widget", 1500, 20)

	inventory := newTestInventoryService(t, db)
	_, err := inventory.UpdateStock(&UpdateStockRequest{ProductID: product.ID, Type: model.TxIn, Quantity: 5}, manager.ID)
	require.NoError(t, err)

	movement, err := svc.GetStockMovement(0)
	require.NoError(t, err)
	require.NotEmpty(t, movement)
}
