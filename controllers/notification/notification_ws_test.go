package notificationControllers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/provabook/provabook-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialWS(t *testing.T, srv *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + userID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// Registration happens after the handshake completes
	require.Eventually(t, func() bool {
		wsMu.Lock()
		defer wsMu.Unlock()
		return len(wsClients[userID]) > 0
	}, 2*time.Second, 10*time.Millisecond)
	return conn
}

func TestBroadcastReachesOwnerOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/:uid", func(c *gin.Context) {
		c.Set("user_id", c.Param("uid"))
		NotificationWebSocketHandler(c)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	owner := dialWS(t, srv, "user-a")
	other := dialWS(t, srv, "user-b")

	broadcastNotification(models.Notification{UserID: "user-a", Title: "LC expiring"})

	require.NoError(t, owner.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := owner.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), "LC expiring")

	// The other user's connection stays silent
	require.NoError(t, other.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = other.ReadMessage()
	assert.Error(t, err)
}
