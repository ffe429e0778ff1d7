package financialControllers

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

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
		&models.ProformaInvoice{},
		&models.LetterOfCredit{},
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

func TestCreatePIAssignsNumberAndVersion(t *testing.T) {
	db := openTestDB(t)
	order := newOrder(t, db)
	year := time.Now().Year()

	first, err := CreateProformaInvoice(db, CreatePIRequest{OrderID: order.ID, Amount: 12000}, "", "")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("PI%d0001", year), first.PINumber)
	assert.Equal(t, 1, first.Version)

	// A re-issue gets a fresh number and the next version
	second, err := CreateProformaInvoice(db, CreatePIRequest{OrderID: order.ID, Amount: 12500}, "", "")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("PI%d0002", year), second.PINumber)
	assert.Equal(t, 2, second.Version)

	// Versions are per order, numbers are global
	other := newOrder(t, db)
	third, err := CreateProformaInvoice(db, CreatePIRequest{OrderID: other.ID, Amount: 800}, "", "")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("PI%d0003", year), third.PINumber)
	assert.Equal(t, 1, third.Version)
}

func TestExpiringLCsThreshold(t *testing.T) {
	db := openTestDB(t)
	order := newOrder(t, db)

	lc, err := CreateLetterOfCredit(db, CreateLCRequest{
		OrderID:    order.ID,
		LCNumber:   "LC-7731",
		IssueDate:  time.Now().AddDate(0, -1, 0),
		ExpiryDate: time.Now().AddDate(0, 0, 10),
	}, "", "")
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.LetterOfCredit{}).
		Where("id = ?", lc.ID).
		Update("status", models.LCStatusReceived).Error)

	within30, err := ExpiringLCs(db, 30)
	require.NoError(t, err)
	require.Len(t, within30, 1)
	assert.Equal(t, "LC-7731", within30[0].LCNumber)

	within5, err := ExpiringLCs(db, 5)
	require.NoError(t, err)
	assert.Empty(t, within5)
}

func TestExpiringLCsIgnoresOtherStatuses(t *testing.T) {
	db := openTestDB(t)
	order := newOrder(t, db)

	// Pending LC expiring soon must not show up in the expiry report
	_, err := CreateLetterOfCredit(db, CreateLCRequest{
		OrderID:    order.ID,
		LCNumber:   "LC-11",
		IssueDate:  time.Now(),
		ExpiryDate: time.Now().AddDate(0, 0, 3),
	}, "", "")
	require.NoError(t, err)

	within30, err := ExpiringLCs(db, 30)
	require.NoError(t, err)
	assert.Empty(t, within30)
}
