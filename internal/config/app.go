package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type App struct {
	Addr       string
	BasePath   string
	SweepEvery time.Duration
	SessionTTL time.Duration
}

func NewApp(v *viper.Viper) (*App, error) {
	app := &App{
		Addr:       v.GetString("app.addr"),
		BasePath:   v.GetString("app.base_path"),
		SweepEvery: v.GetDuration("app.sweep_every"),
		SessionTTL: v.GetDuration("app.session_ttl"),
	}
	if app.Addr == "" {
		return nil, fmt.Errorf("app.addr must not be empty")
	}
	if app.SweepEvery <= 0 || app.SessionTTL <= 0 {
		return nil, fmt.Errorf("app.sweep_every and app.session_ttl must be positive")
	}
	return app, nil
}
