package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
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
	require.NoError(t, db.AutoMigrate(&models.UserProfile{}))
	return db
}

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/register", RegisterHandler(db))
	r.POST("/login", LoginHandler(db))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := openTestDB(t)
	r := newRouter(db)

	w := postJSON(t, r, "/register", RegisterRequest{
		Email:    "rina@provabook.test",
		Password: "s3cretpass",
		FullName: "Rina Akter",
		Role:     "merchandiser",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Password hash never leaves the server
	assert.NotContains(t, w.Body.String(), "s3cretpass")
	assert.NotContains(t, w.Body.String(), "password_hash")

	w = postJSON(t, r, "/login", LoginRequest{Email: "rina@provabook.test", Password: "s3cretpass"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string             `json:"token"`
		User  models.UserProfile `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	// Token carries the user id and the role held at issue time
	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.User.ID, claims["user_id"])
	assert.Equal(t, "merchandiser", claims["role"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := openTestDB(t)
	r := newRouter(db)

	w := postJSON(t, r, "/register", RegisterRequest{
		Email:    "arif@provabook.test",
		Password: "s3cretpass",
		FullName: "Arif Hossain",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/login", LoginRequest{Email: "arif@provabook.test", Password: "wrongpass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, r, "/login", LoginRequest{Email: "nobody@provabook.test", Password: "s3cretpass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsDeactivatedUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := openTestDB(t)
	r := newRouter(db)

	w := postJSON(t, r, "/register", RegisterRequest{
		Email:    "old@provabook.test",
		Password: "s3cretpass",
		FullName: "Former Employee",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, db.Model(&models.UserProfile{}).
		Where("email = ?", "old@provabook.test").
		Update("is_active", false).Error)

	w = postJSON(t, r, "/login", LoginRequest{Email: "old@provabook.test", Password: "s3cretpass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "disabled")
}
