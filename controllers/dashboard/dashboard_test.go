package dashboardControllers

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
		&models.Sample{},
		&models.Incident{},
		&models.AuditLog{},
		&sequence.Counter{},
	))
	return db
}

func TestDescribeActivity(t *testing.T) {
	entry := models.AuditLog{
		Action:      models.ActionOrderCreated,
		ActorName:   "Rina",
		OrderNumber: "PB20240001",
	}
	assert.Equal(t, "Rina created order PB20240001", DescribeActivity(entry))

	// Unknown action codes pass through verbatim
	entry.Action = "legacy_import"
	assert.Equal(t, "legacy_import", DescribeActivity(entry))

	// Missing actor gets a neutral fallback
	entry = models.AuditLog{Action: models.ActionStageChanged, OrderNumber: "PB20240002"}
	assert.Equal(t, "Someone moved order PB20240002 to a new stage", DescribeActivity(entry))
}

func TestBuildSummaryScopes(t *testing.T) {
	db := openTestDB(t)

	mine := models.UserProfile{Email: "m@provabook.test", Role: models.RoleMerchandiser, PasswordHash: "x"}
	require.NoError(t, db.Create(&mine).Error)
	colleague := models.UserProfile{Email: "c@provabook.test", Role: models.RoleMerchandiser, PasswordHash: "x"}
	require.NoError(t, db.Create(&colleague).Error)

	myOrder, err := orderControllers.CreateOrder(db, orderControllers.CreateOrderRequest{
		CustomerName:   "ABC Textiles",
		MerchandiserID: &mine.ID,
	}, mine.ID, "Mina")
	require.NoError(t, err)

	theirOrder, err := orderControllers.CreateOrder(db, orderControllers.CreateOrderRequest{
		CustomerName:   "DEF Mills",
		MerchandiserID: &colleague.ID,
	}, colleague.ID, "Arif")
	require.NoError(t, err)

	_, err = orderControllers.ChangeStage(db, theirOrder.ID, string(models.StageProduction), colleague.ID, "Arif")
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Incident{
		OrderID:  myOrder.ID,
		Title:    "Shade variance",
		Severity: models.SeverityCritical,
	}).Error)

	// Manager sees everything
	global, err := BuildSummary(db, models.RoleManager, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), global.UpcomingOrders)
	assert.Equal(t, int64(1), global.RunningOrders)
	assert.Equal(t, int64(1), global.OpenIncidents)
	assert.Len(t, global.RecentActivity, 3)

	// Merchandiser only their own orders and activity
	scoped, err := BuildSummary(db, models.RoleMerchandiser, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), scoped.UpcomingOrders)
	assert.Zero(t, scoped.RunningOrders)
	assert.Equal(t, int64(1), scoped.OpenIncidents)
	require.Len(t, scoped.RecentActivity, 1)
	assert.Equal(t, "Mina created order "+myOrder.OrderNumber, scoped.RecentActivity[0].Description)
}
