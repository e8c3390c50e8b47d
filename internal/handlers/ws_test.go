package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/teamboard-dev/teamboard/internal/middleware"
	"github.com/teamboard-dev/teamboard/internal/types"
)

func TestWebSocket_RegistersAndCleansUp(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const userID = uint(77)

	r := gin.New()
	r.GET("/ws", func(ctx *gin.Context) {
		ctx.Set(types.ContextUserKey, middleware.AuthenticatedUser{ID: userID, Name: "Tester"})
	}, WebSocket)

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	header := http.Header{"Origin": []string{"http://localhost:3000"}}

	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if resp != nil {
		resp.Body.Close()
	}

	var welcome struct {
		Type string `json:"type"`
	}
	if err := conn.ReadJSON(&welcome); err != nil {
		t.Fatalf("read welcome message: %v", err)
	}
	if welcome.Type != "connected" {
		t.Fatalf("welcome type = %q, want connected", welcome.Type)
	}

	userClientsMu.RLock()
	registered := len(userClients[userID])
	userClientsMu.RUnlock()

	if registered != 1 {
		t.Fatalf("registered connections = %d, want 1", registered)
	}

	conn.Close()

	// The read loop must drop the connection from the hub once the peer goes
	// away; poll until it does.
	deadline := time.Now().Add(2 * time.Second)

	for {
		userClientsMu.RLock()
		_, exists := userClients[userID]
		userClientsMu.RUnlock()

		if !exists {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("connection still registered after close")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWebSocket_RejectsUnknownOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/ws", func(ctx *gin.Context) {
		ctx.Set(types.ContextUserKey, middleware.AuthenticatedUser{ID: 78, Name: "Tester"})
	}, WebSocket)

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	header := http.Header{"Origin": []string{"http://evil.example.com"}}

	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		conn.Close()
		t.Fatalf("expected the upgrade to be refused")
	}
	if resp != nil {
		resp.Body.Close()
	}
}
