package notificationControllers

import (
	"path/filepath"
	"testing"

	"github.com/provabook/provabook-api/models"
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
	require.NoError(t, db.AutoMigrate(&models.UserProfile{}, &models.Notification{}))
	return db
}

func newUser(t *testing.T, db *gorm.DB, email string) models.UserProfile {
	t.Helper()
	user := models.UserProfile{Email: email, FullName: "Test User", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestMarkAsReadSetsPairTogether(t *testing.T) {
	db := openTestDB(t)
	user := newUser(t, db, "a@provabook.test")

	n, err := CreateNotification(db, CreateNotificationRequest{
		UserID: user.ID,
		Title:  "LC expiring",
	})
	require.NoError(t, err)
	assert.False(t, n.IsRead)
	assert.Nil(t, n.ReadAt)

	read, err := MarkAsRead(db, n.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
	require.NotNil(t, read.ReadAt)

	var stored models.Notification
	require.NoError(t, db.First(&stored, "id = ?", n.ID).Error)
	assert.True(t, stored.IsRead)
	assert.NotNil(t, stored.ReadAt)
}

func TestMarkAllAsRead(t *testing.T) {
	db := openTestDB(t)
	user := newUser(t, db, "b@provabook.test")
	other := newUser(t, db, "c@provabook.test")

	for i := 0; i < 3; i++ {
		_, err := CreateNotification(db, CreateNotificationRequest{UserID: user.ID, Title: "n"})
		require.NoError(t, err)
	}
	_, err := CreateNotification(db, CreateNotificationRequest{UserID: other.ID, Title: "n"})
	require.NoError(t, err)

	require.NoError(t, MarkAllAsRead(db, user.ID))

	var unreadMine, unreadOther int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).Count(&unreadMine).Error)
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", other.ID, false).Count(&unreadOther).Error)

	assert.Zero(t, unreadMine)
	assert.Equal(t, int64(1), unreadOther)

	// Every read row carries its timestamp
	var withStamp int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ? AND read_at IS NOT NULL", user.ID, true).Count(&withStamp).Error)
	assert.Equal(t, int64(3), withStamp)
}

func TestCreateNotificationRequiresUser(t *testing.T) {
	db := openTestDB(t)

	_, err := CreateNotification(db, CreateNotificationRequest{UserID: "missing", Title: "n"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
