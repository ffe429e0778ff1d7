package productionControllers

import (
	"path/filepath"
	"testing"

	orderControllers "github.com/provabook/provabook-api/controllers/order"
	"github.com/provabook/provabook-api/models"
	"github.com/provabook/provabook-api/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserProfile{},
		&models.Order{},
		&models.ProductionRecord{},
		&models.AuditLog{},
		&sequence.Counter{},
	))
	return db
}

func newOrder(t *testing.T, db *gorm.DB) models.Order {
	t.Helper()
	order, err := orderControllers.CreateOrder(db, orderControllers.CreateOrderRequest{
		CustomerName: "ABC Textiles",
	}, "", "")
	require.NoError(t, err)
	return order
}

func TestCreateProductionRecord(t *testing.T) {
	db := openTestDB(t)

	_, err := CreateProductionRecord(db, CreateProductionRecordRequest{OrderID: "missing"}, "", "")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	order := newOrder(t, db)
	_, err = CreateProductionRecord(db, CreateProductionRecordRequest{
		OrderID: order.ID,
		Process: "weaving",
	}, "", "")
	assert.ErrorIs(t, err, ErrBadProductionInput)

	record, err := CreateProductionRecord(db, CreateProductionRecordRequest{
		OrderID:          order.ID,
		Process:          "dyeing",
		QuantityProduced: 1200,
		QuantityTarget:   5000,
	}, "u1", "Karim")
	require.NoError(t, err)
	assert.Equal(t, models.ProcessDyeing, record.Process)

	var entry models.AuditLog
	require.NoError(t, db.First(&entry, "action = ?", models.ActionProductionAdded).Error)
	assert.Equal(t, record.ID, entry.EntityID)
	assert.Equal(t, order.OrderNumber, entry.OrderNumber)
}

func TestBehindTargetPredicate(t *testing.T) {
	db := openTestDB(t)
	order := newOrder(t, db)

	mk := func(produced, target int) {
		_, err := CreateProductionRecord(db, CreateProductionRecordRequest{
			OrderID:          order.ID,
			Process:          "sewing",
			QuantityProduced: produced,
			QuantityTarget:   target,
		}, "", "")
		require.NoError(t, err)
	}
	mk(100, 500) // behind
	mk(500, 500) // on target
	mk(700, 500) // ahead
	mk(0, 0)     // no target set

	var behind []models.ProductionRecord
	require.NoError(t, db.
		Where("quantity_target > 0 AND quantity_produced < quantity_target").
		Find(&behind).Error)
	require.Len(t, behind, 1)
	assert.Equal(t, 100, behind[0].QuantityProduced)
}
