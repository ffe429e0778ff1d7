package notificationControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/provabook/provabook-api/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Connections keyed by the owning user so a broadcast only reaches that
// user's dashboards. A user may hold several tabs open at once.
var (
	wsMu      sync.Mutex
	wsClients = make(map[string]map[*websocket.Conn]bool)
)

func addClient(userID string, conn *websocket.Conn) {
	wsMu.Lock()
	defer wsMu.Unlock()
	if wsClients[userID] == nil {
		wsClients[userID] = make(map[*websocket.Conn]bool)
	}
	wsClients[userID][conn] = true
}

func removeClient(userID string, conn *websocket.Conn) {
	wsMu.Lock()
	defer wsMu.Unlock()
	if conns := wsClients[userID]; conns != nil {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(wsClients, userID)
		}
	}
}

// GET /notifications/ws. Dashboard clients hold this open to receive
// their own newly created notifications as they happen.
func NotificationWebSocketHandler(c *gin.Context) {
	userID, _ := c.Get("user_id")
	id, ok := userID.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	addClient(id, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			removeClient(id, conn)
			break
		}
	}
}

// broadcastNotification pushes the notification to the owner's open
// connections only. A connection that fails a write is dropped.
func broadcastNotification(n models.Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		return
	}

	wsMu.Lock()
	defer wsMu.Unlock()
	for conn := range wsClients[n.UserID] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(wsClients[n.UserID], conn)
		}
	}
	if len(wsClients[n.UserID]) == 0 {
		delete(wsClients, n.UserID)
	}
}
