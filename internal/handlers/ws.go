package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/nestnic/taskflow/internal/types"
	"github.com/nestnic/taskflow/internal/utils"
)

// Board clients connect per project to hear refresh hints when a task,
// membership or chat mutation lands. Polling stays the source of
// truth; the hint only shortcuts the next poll.
var (
	boardClients   = make(map[string]map[*websocket.Conn]bool)
	boardClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastRefresh tells every client watching the project to refetch
// the board. Best effort: dead connections are dropped on failure.
func BroadcastRefresh(projectPublicID string) {
	boardClientsMu.RLock()
	clients, exists := boardClients[projectPublicID]
	if !exists || len(clients) == 0 {
		boardClientsMu.RUnlock()
		return
	}

	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	boardClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":       "refresh",
			"project_id": projectPublicID,
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to client: %v", err)
			removeBoardClient(projectPublicID, conn)
			conn.Close()
		}
	}
}

func removeBoardClient(projectPublicID string, conn *websocket.Conn) {
	boardClientsMu.Lock()
	defer boardClientsMu.Unlock()

	if clients, exists := boardClients[projectPublicID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(boardClients, projectPublicID)
		}
	}
}

// WebSocket upgrades a participant's connection and parks it on the
// project's refresh channel.
func WebSocket(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, _, ok := loadProjectWithRole(ctx, projectID, userID)

	if !ok {
		return
	}

	key := project.PublicID

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	boardClientsMu.Lock()
	if boardClients[key] == nil {
		boardClients[key] = make(map[*websocket.Conn]bool)
	}
	boardClients[key][conn] = true
	boardClientsMu.Unlock()

	defer func() {
		removeBoardClient(key, conn)
		conn.Close()
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":       "connected",
		"project_id": key,
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for project %s: %v", key, err)
			}
			break
		}
	}
}
