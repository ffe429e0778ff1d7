package incidentControllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
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
		&models.Incident{},
		&models.AuditLog{},
		&sequence.Counter{},
	))
	return db
}

func newIncident(t *testing.T, db *gorm.DB) models.Incident {
	t.Helper()
	order, err := orderControllers.CreateOrder(db, orderControllers.CreateOrderRequest{
		CustomerName: "ABC Textiles",
	}, "", "")
	require.NoError(t, err)

	incident, err := CreateIncident(db, CreateIncidentRequest{
		OrderID: order.ID,
		Title:   "Shade variance",
	}, "", "")
	require.NoError(t, err)
	return incident
}

func TestCreateIncidentRejectsBadEnums(t *testing.T) {
	db := openTestDB(t)
	order, err := orderControllers.CreateOrder(db, orderControllers.CreateOrderRequest{
		CustomerName: "ABC Textiles",
	}, "", "")
	require.NoError(t, err)

	_, err = CreateIncident(db, CreateIncidentRequest{
		OrderID: order.ID,
		Title:   "Shade variance",
		Type:    "weather",
	}, "", "")
	assert.ErrorIs(t, err, ErrBadIncidentInput)

	_, err = CreateIncident(db, CreateIncidentRequest{
		OrderID:  order.ID,
		Title:    "Shade variance",
		Severity: "catastrophic",
	}, "", "")
	assert.ErrorIs(t, err, ErrBadIncidentInput)
}

func TestUpdateIncidentValidatesEnums(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := openTestDB(t)
	incident := newIncident(t, db)

	r := gin.New()
	r.PATCH("/incidents/:incidentID", UpdateIncidentHandler(db))

	patch := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/incidents/"+incident.ID, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusBadRequest, patch(`{"status":"escalated"}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch(`{"type":"weather"}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch(`{"severity":"catastrophic"}`).Code)

	// Rejected values never reach the row
	var got models.Incident
	require.NoError(t, db.First(&got, "id = ?", incident.ID).Error)
	assert.Equal(t, models.IncidentStatusOpen, got.Status)
	assert.Nil(t, got.ResolvedAt)

	assert.Equal(t, http.StatusOK, patch(`{"status":"resolved"}`).Code)
	require.NoError(t, db.First(&got, "id = ?", incident.ID).Error)
	assert.Equal(t, models.IncidentStatusResolved, got.Status)
	assert.NotNil(t, got.ResolvedAt)
}
