package service

import (
	"testing"

	"github.com/YasinKhilji/ims-project/internal/apperr"
	"github.com/YasinKhilji/ims-project/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderRejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db)

	sales := seedUser(t, db, "sales1", model.RoleSales, true)
	supplier := seedSupplier(t, db, "Acme")
	product := seedProduct(t, db, supplier, "Widget", 1500, 10)

	for _, qty := range []int{0, -3} {
		_, err := svc.Create(&CreateOrderRequest{ProductID: product.ID, Quantity: qty}, sales.ID)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	}

	var orders int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)

	var notifications int64
	require.NoError(t, db.Model(&model.Notification{}).Count(&notifications).Error)
	assert.Zero(t, notifications)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db)

	sales := seedUser(t, db, "sales1", model.RoleSales, true)

	_, err := svc.Create(&CreateOrderRequest{ProductID: uuid.New(), Quantity: 2}, sales.ID)
	assert.ErrorIs(t, err, apperr.ErrProductNotFound)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	var orders int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestCreateOrderFansOutToEveryInventoryManager(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db)

	sales := seedUser(t, db, "sales1", model.RoleSales, true)
	manager1 := seedUser(t, db, "manager1", model.RoleInventoryManager, true)
	manager2 := seedUser(t, db, "manager2", model.RoleInventoryManager, true)
	seedUser(t, db, "admin1", model.RoleAdmin, true)

	supplier := seedSupplier(t, db, "Acme")
	product := seedProduct(t, db, supplier, "Widget", 1500, 10)

	order, err := svc.Create(&CreateOrderRequest{ProductID: product.ID, Quantity: 3, Notes: "urgent"}, sales.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, order.Status)
	assert.Equal(t, sales.ID, order.AddedByID)

	var notifications []model.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 2)

	recipients := map[uuid.UUID]bool{}
	for _, n := range notifications {
		recipients[n.UserID] = true
		assert.Equal(t, model.NotifOrderCreated, n.Type)
		assert.False(t, n.IsRead)
		assert.Contains(t, n.Message, "Widget")
		assert.Contains(t, n.Message, "Qty: 3")
		assert.Equal(t, "order", n.RelatedEntityType)
		require.NotNil(t, n.RelatedEntityID)
		assert.Equal(t, order.ID, *n.RelatedEntityID)
	}
	assert.True(t, recipients[manager1.ID])
	assert.True(t, recipients[manager2.ID])
	assert.False(t, recipients[sales.ID])
}

func TestProcessOrderDecrementsStockAndWritesLedger(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db)

	sales := seedUser(t, db, "sales1", model.RoleSales, true)
	manager := seedUser(t, db, "manager1", model.RoleInventoryManager, true)

	supplier := seedSupplier(t, db, "Acme")
	product := seedProduct(t, db, supplier, "Widget", 1500, 10)

	order, err := svc.Create(&CreateOrderRequest{ProductID: product.ID, Quantity: 3}, sales.ID)
	require.NoError(t, err)

	processed, err := svc.Process(order.ID, &ProcessOrderRequest{Status: model.OrderProcessed}, manager.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderProcessed, processed.Status)
	require.NotNil(t, processed.ProcessedByID)
	assert.Equal(t, manager.ID, *processed.ProcessedByID)

	var fresh model.Product
	require.NoError(t, db.First(&fresh, "id = ?", product.ID).Error)
	assert.Equal(t, 7, fresh.Quantity)

	var ledger []model.Transaction
	require.NoError(t, db.Where("reference_id = ?", order.ID).Find(&ledger).Error)
	require.Len(t, ledger, 1)
	assert.Equal(t, model.TxOut, ledger[0].Type)
	assert.Equal(t, 3, ledger[0].Quantity)
	assert.Equal(t, int64(4500), ledger[0].TotalAmount)

	var notified []model.Notification
	require.NoError(t, db.Where("user_id = ? AND type = ?", sales.ID, model.NotifOrderProcessed).Find(&notified).Error)
	require.Len(t, notified, 1)
	assert.Contains(t, notified[0].Message, "processed")
}

func TestProcessOrderTwiceConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db)

	sales := seedUser(t, db, "sales1", model.RoleSales, true)
	manager := seedUser(t, db, "manager1", model.RoleInventoryManager, true)

	supplier := seedSupplier(t, db, "Acme")
	product := seedProduct(t, db, supplier, "Widget", 1500, 10)

	order, err := svc.Create(&CreateOrderRequest{ProductID: product.ID, Quantity: 2}, sales.ID)
	require.NoError(t, err)

	_, err = svc.Process(order.ID, &ProcessOrderRequest{Status: model.OrderProcessed}, manager.ID)
	require.NoError(t, err)

	_, err = svc.Process(order.ID, &ProcessOrderRequest{Status: model.OrderProcessed}, manager.ID)
	assert.ErrorIs(t, err, apperr.ErrOrderAlreadyFinal)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// Stock debited exactly once.
	var fresh model.Product
	require.NoError(t, db.First(&fresh, "id = ?", product.ID).Error)
	assert.Equal(t, 8, fresh.Quantity)

	var ledger int64
	require.NoError(t, db.Model(&model.Transaction{}).Where("reference_id = ?", order.ID).Count(&ledger).Error)
	assert.Equal(t, int64(1), ledger)
}

func TestProcessOrderInsufficientStockRollsBack(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db)

	sales := seedUser(t, db, "sales1", model.RoleSales, true)
	manager := seedUser(t, db, "manager1", model.RoleInventoryManager, true)

	supplier := seedSupplier(t, db, "Acme")
	product := seedProduct(t, db, supplier, "Widget", 1500, 2)

	order, err := svc.Create(&CreateOrderRequest{ProductID: product.ID, Quantity: 5}, sales.ID)
	require.NoError(t, err)

	_, err = svc.Process(order.ID, &ProcessOrderRequest{Status: model.OrderProcessed}, manager.ID)
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	var fresh model.Order
	require.NoError(t, db.First(&fresh, "id = ?", order.ID).Error)
	assert.Equal(t, model.OrderPending, fresh.Status)

	var freshProduct model.Product
	require.NoError(t, db.First(&freshProduct, "id = ?", product.ID).Error)
	assert.Equal(t, 2, freshProduct.Quantity)

	var ledger int64
	require.NoError(t, db.Model(&model.Transaction{}).Count(&ledger).Error)
	assert.Zero(t, ledger)

	var processedNotifs int64
	require.NoError(t, db.Model(&model.Notification{}).
		Where("type = ?", model.NotifOrderProcessed).Count(&processedNotifs).Error)
	assert.Zero(t, processedNotifs)
}

func TestProcessOrderRejectLeavesStockAlone(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db)

	sales := seedUser(t, db, "sales1", model.RoleSales, true)
	manager := seedUser(t, db, "manager1", model.RoleInventoryManager, true)

	supplier := seedSupplier(t, db, "Acme")
	product := seedProduct(t, db, supplier, "Widget", 1500, 10)

	order, err := svc.Create(&CreateOrderRequest{ProductID: product.ID, Quantity: 4}, sales.ID)
	require.NoError(t, err)

	processed, err := svc.Process(order.ID, &ProcessOrderRequest{Status: model.OrderRejected, Notes: "out of season"}, manager.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderRejected, processed.Status)
	assert.Equal(t, "out of season", processed.Notes)

	var fresh model.Product
	require.NoError(t, db.First(&fresh, "id = ?", product.ID).Error)
	assert.Equal(t, 10, fresh.Quantity)

	var ledger int64
	require.NoError(t, db.Model(&model.Transaction{}).Count(&ledger).Error)
	assert.Zero(t, ledger)

	var notified []model.Notification
	require.NoError(t, db.Where("user_id = ?", sales.ID).Find(&notified).Error)
	require.Len(t, notified, 1)
	assert.Contains(t, notified[0].Message, "rejected")
}

func TestProcessOrderRejectsNonTerminalStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db)

	manager := seedUser(t, db, "manager1", model.RoleInventoryManager, true)

	_, err := svc.Process(uuid.New(), &ProcessOrderRequest{Status: model.OrderPending}, manager.ID)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestProcessUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db)

	manager := seedUser(t, db, "manager1", model.RoleInventoryManager, true)

	_, err := svc.Process(uuid.New(), &ProcessOrderRequest{Status: model.OrderRejected}, manager.ID)
	assert.ErrorIs(t, err, apperr.ErrOrderNotFound)
}

func TestGetOrderByIDIncludesLedger(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db)

	sales := seedUser(t, db, "sales1", model.RoleSales, true)
	manager := seedUser(t, db, "manager1", model.RoleInventoryManager, true)

	supplier := seedSupplier(t, db, "Acme")
	product := seedProduct(t, db, supplier, "Widget", 1500, 10)

	order, err := svc.Create(&CreateOrderRequest{ProductID: product.ID, Quantity: 2}, sales.ID)
	require.NoError(t, err)

	_, err = svc.Process(order.ID, &ProcessOrderRequest{Status: model.OrderProcessed}, manager.ID)
	require.NoError(t, err)

	detail, err := svc.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, detail.Order.ID)
	require.Len(t, detail.Transactions, 1)
	assert.Equal(t, model.TxOut, detail.Transactions[0].Type)

	_, err = svc.GetByID(uuid.New())
	assert.ErrorIs(t, err, apperr.ErrOrderNotFound)
}
