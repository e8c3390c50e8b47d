package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/teamboard-dev/teamboard/internal/models"
	"github.com/teamboard-dev/teamboard/internal/types"
	"github.com/teamboard-dev/teamboard/internal/utils"
)

var (
	userClients   = make(map[uint]map[*websocket.Conn]bool)
	userClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// PushNotification sends a freshly stored notification to every websocket
// connection the user has open. Connections that fail to write are dropped.
func PushNotification(userID uint, notification models.Notification) {
	userClientsMu.RLock()
	clients, exists := userClients[userID]
	if !exists || len(clients) == 0 {
		userClientsMu.RUnlock()
		return
	}

	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	userClientsMu.RUnlock()

	payload := gin.H{
		"type":         "notification",
		"notification": notificationResponse(notification),
	}

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Error().Err(err).Msg("Failed to set write deadline for notification push")
			continue
		}

		if err := conn.WriteJSON(payload); err != nil {
			log.Error().Err(err).Uint("user_id", userID).Msg("Failed to push notification")
			dropClient(userID, conn)
			conn.Close()
		}
	}
}

func dropClient(userID uint, conn *websocket.Conn) {
	userClientsMu.Lock()
	defer userClientsMu.Unlock()

	if clients, exists := userClients[userID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(userClients, userID)
		}
	}
}

// WebSocket upgrades the request and streams the caller's notifications until
// the connection closes.
func WebSocket(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   types.APIError{Code: types.CodeAuth, Message: "User not authenticated"},
		})
		return
	}

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
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Error().Err(err).Msg("Failed to set initial read deadline")
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Error().Err(err).Msg("Failed to set read deadline in pong handler")
		}
		return nil
	})

	userClientsMu.Lock()
	if userClients[currentUser.ID] == nil {
		userClients[currentUser.ID] = make(map[*websocket.Conn]bool)
	}
	userClients[currentUser.ID][conn] = true
	userClientsMu.Unlock()

	defer func() {
		dropClient(currentUser.ID, conn)
		conn.Close()

		log.Info().Uint("user_id", currentUser.ID).Msg("WebSocket connection closed")
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Error().Err(err).Msg("Failed to set write deadline for welcome message")
		return
	}

	err = conn.WriteJSON(gin.H{
		"type":    "connected",
		"message": "WebSocket connection established",
	})

	if err != nil {
		log.Error().Err(err).Msg("Failed to send welcome message")
		return
	}

	// Stop does not close the ticker channel, so the ping goroutine needs its
	// own exit signal.
	done := make(chan struct{})
	defer close(done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Error().Err(err).Uint("user_id", currentUser.ID).Msg("Failed to set read deadline")
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Uint("user_id", currentUser.ID).Msg("WebSocket error")
			}
			break
		}
	}
}
