package service

import (
	"testing"

	"github.com/YasinKhilji/ims-project/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestLockForUpdateEmitsRowLockOnPostgres(t *testing.T) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=app dbname=app",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	var order model.Order
	stmt := lockForUpdate(db).Limit(1).Find(&order, "id = ?", uuid.New()).Statement
	assert.Contains(t, stmt.SQL.String(), "FOR UPDATE")

	var product model.Product
	stmt = lockForUpdate(db).Limit(1).Find(&product, "id = ?", uuid.New()).Statement
	assert.Contains(t, stmt.SQL.String(), "FOR UPDATE")
}

func TestLockForUpdateSkippedOnSqlite(t *testing.T) {
	db := newTestDB(t)
	session := db.Session(&gorm.Session{DryRun: true})

	var order model.Order
	stmt := lockForUpdate(session).Limit(1).Find(&order, "id = ?", uuid.New()).Statement
	assert.NotContains(t, stmt.SQL.String(), "FOR UPDATE")
}
