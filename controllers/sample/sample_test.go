package sampleControllers

import (
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
		&models.Sample{},
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

func TestCreateSampleRequiresOrder(t *testing.T) {
	db := openTestDB(t)

	_, err := CreateSample(db, CreateSampleRequest{OrderID: "missing", Type: "lab_dip"}, "", "")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	order := newOrder(t, db)
	sample, err := CreateSample(db, CreateSampleRequest{OrderID: order.ID, Type: "lab_dip"}, "", "")
	require.NoError(t, err)
	assert.Equal(t, models.SampleStatusPending, sample.Status)
	assert.False(t, sample.ResubmissionPlanSet)
}

func TestResubmissionPlanDerivation(t *testing.T) {
	db := openTestDB(t)
	order := newOrder(t, db)

	person := "Karim"
	target := time.Now().AddDate(0, 0, 14)
	rejected := string(models.SampleStatusRejected)

	t.Run("both fields on a rejected sample set the flag", func(t *testing.T) {
		sample, err := CreateSample(db, CreateSampleRequest{OrderID: order.ID, Type: "lab_dip"}, "", "")
		require.NoError(t, err)

		updated, err := UpdateSample(db, sample.ID, UpdateSampleRequest{
			Status:                 &rejected,
			ResponsiblePerson:      &person,
			ResubmissionTargetDate: &target,
		}, "", "")
		require.NoError(t, err)
		assert.True(t, updated.ResubmissionPlanSet)
	})

	t.Run("missing target date leaves the flag unset", func(t *testing.T) {
		sample, err := CreateSample(db, CreateSampleRequest{OrderID: order.ID, Type: "strike_off"}, "", "")
		require.NoError(t, err)

		updated, err := UpdateSample(db, sample.ID, UpdateSampleRequest{
			Status:            &rejected,
			ResponsiblePerson: &person,
		}, "", "")
		require.NoError(t, err)
		assert.False(t, updated.ResubmissionPlanSet)
	})

	t.Run("missing responsible person leaves the flag unset", func(t *testing.T) {
		sample, err := CreateSample(db, CreateSampleRequest{OrderID: order.ID, Type: "pp"}, "", "")
		require.NoError(t, err)

		updated, err := UpdateSample(db, sample.ID, UpdateSampleRequest{
			Status:                 &rejected,
			ResubmissionTargetDate: &target,
		}, "", "")
		require.NoError(t, err)
		assert.False(t, updated.ResubmissionPlanSet)
	})

	t.Run("non-rejected status leaves the flag unset", func(t *testing.T) {
		sample, err := CreateSample(db, CreateSampleRequest{OrderID: order.ID, Type: "hand_loom"}, "", "")
		require.NoError(t, err)

		received := string(models.SampleStatusReceived)
		updated, err := UpdateSample(db, sample.ID, UpdateSampleRequest{
			Status:                 &received,
			ResponsiblePerson:      &person,
			ResubmissionTargetDate: &target,
		}, "", "")
		require.NoError(t, err)
		assert.False(t, updated.ResubmissionPlanSet)
	})

	t.Run("plan fields landing on an already rejected sample set the flag", func(t *testing.T) {
		sample, err := CreateSample(db, CreateSampleRequest{OrderID: order.ID, Type: "presentation"}, "", "")
		require.NoError(t, err)

		_, err = UpdateSample(db, sample.ID, UpdateSampleRequest{Status: &rejected}, "", "")
		require.NoError(t, err)

		updated, err := UpdateSample(db, sample.ID, UpdateSampleRequest{
			ResponsiblePerson:      &person,
			ResubmissionTargetDate: &target,
		}, "", "")
		require.NoError(t, err)
		assert.True(t, updated.ResubmissionPlanSet)
	})
}

func TestInvalidSampleInputs(t *testing.T) {
	db := openTestDB(t)
	order := newOrder(t, db)

	_, err := CreateSample(db, CreateSampleRequest{OrderID: order.ID, Type: "swatch"}, "", "")
	assert.EqualError(t, err, "invalid sample type")

	sample, err := CreateSample(db, CreateSampleRequest{OrderID: order.ID, Type: "lab_dip"}, "", "")
	require.NoError(t, err)

	bad := "lost"
	_, err = UpdateSample(db, sample.ID, UpdateSampleRequest{Status: &bad}, "", "")
	assert.EqualError(t, err, "invalid sample status")
}

func TestUpdateSampleWritesAudit(t *testing.T) {
	db := openTestDB(t)
	order := newOrder(t, db)

	sample, err := CreateSample(db, CreateSampleRequest{OrderID: order.ID, Type: "lab_dip"}, "u1", "Karim")
	require.NoError(t, err)

	approved := string(models.SampleStatusApproved)
	_, err = UpdateSample(db, sample.ID, UpdateSampleRequest{Status: &approved}, "u1", "Karim")
	require.NoError(t, err)

	var entry models.AuditLog
	require.NoError(t, db.First(&entry, "action = ?", models.ActionSampleUpdated).Error)
	assert.Equal(t, sample.ID, entry.EntityID)
	assert.Equal(t, order.OrderNumber, entry.OrderNumber)
	assert.Equal(t, string(models.SampleStatusPending), entry.OldValue)
	assert.Equal(t, approved, entry.NewValue)
	assert.Equal(t, "Karim", entry.ActorName)
}
