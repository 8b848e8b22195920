package config

import (
	"fmt"
	"net/http"

	"github.com/caarlos0/env/v11"
	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader  websocket.Upgrader
	ReadLimit int64
}

type webSocketEnv struct {
	ReadLimit int64 `env:"WS_READ_LIMIT" envDefault:"4096"`
}

func NewWebSocket() (*WebSocket, error) {
	cfg, err := env.ParseAs[webSocketEnv]()
	if err != nil {
		return nil, fmt.Errorf("unable to parse websocket config: %w", err)
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	ws := &WebSocket{
		Upgrader:  upgrader,
		ReadLimit: cfg.ReadLimit,
	}

	return ws, nil
}
