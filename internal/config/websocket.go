package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader  websocket.Upgrader
	ReadLimit int64 // bytes per incoming message
}

func NewWebSocket() (*WebSocket, error) {
	ws := &WebSocket{
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		ReadLimit: 4096,
	}

	// the default CheckOrigin only lets same-origin pages in
	if Development() {
		ws.Upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}

	if s, ok := os.LookupEnv("WS_READ_LIMIT"); ok {
		limit, err := strconv.ParseInt(s, 10, 64)
		if err != nil || limit <= 0 {
			return nil, fmt.Errorf("WS_READ_LIMIT must be a positive int, got %q", s)
		}
		ws.ReadLimit = limit
	}

	return ws, nil
}
