package config

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
	"github.com/spf13/viper"
)

type WebSocket struct {
	Upgrader       websocket.Upgrader
	AllowedOrigins []string
	// ReadLimit caps the size of a single command frame.
	ReadLimit int64
}

// NewWebSocket accepts any origin unless ws.allowed_origins lists some.
func NewWebSocket(v *viper.Viper) (*WebSocket, error) {
	origins := v.GetStringSlice("ws.allowed_origins")

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if len(origins) == 0 {
				return true
			}
			return slices.Contains(origins, r.Header.Get("Origin"))
		},
	}

	ws := &WebSocket{
		Upgrader:       upgrader,
		AllowedOrigins: origins,
		ReadLimit:      v.GetInt64("ws.read_limit"),
	}

	return ws, nil
}
