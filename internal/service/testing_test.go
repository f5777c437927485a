package service

import (
	"fmt"
	"testing"

	"github.com/YasinKhilji/ims-project/internal/model"
	"github.com/YasinKhilji/ims-project/internal/repository"
	"github.com/YasinKhilji/ims-project/internal/ws"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// Each pooled connection gets its own private :memory: database, so
	// pin the pool to one connection to keep all queries on the same DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Supplier{},
		&model.Product{},
		&model.Order{},
		&model.Transaction{},
		&model.Notification{},
		&model.AuditLog{},
	))
	return db
}

func newTestNotifier(t *testing.T, db *gorm.DB) NotificationService {
	t.Helper()
	log := zaptest.NewLogger(t)
	return NewNotificationService(db, repository.NewNotificationRepo(db), ws.NewHub(log), log)
}

func newTestOrderService(t *testing.T, db *gorm.DB) OrderService {
	t.Helper()
	return NewOrderService(
		db,
		repository.NewOrderRepo(db),
		repository.NewTransactionRepo(db),
		newTestNotifier(t, db),
		repository.NewAuditRepo(db),
		zaptest.NewLogger(t),
	)
}

func seedUser(t *testing.T, db *gorm.DB, username string, role model.Role, active bool) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		FullName: username,
		Role:     role,
		IsActive: active,
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedSupplier(t *testing.T, db *gorm.DB, name string) *model.Supplier {
	t.Helper()
	supplier := &model.Supplier{Name: name, ContactInfo: "supplier@example.com"}
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func seedProduct(t *testing.T, db *gorm.DB, supplier *model.Supplier, name string, price int64, quantity int) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:       name,
		Category:   "General",
		Price:      price,
		Quantity:   quantity,
		MinStocks:  5,
		SupplierID: supplier.ID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
