package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/middleware"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/sessions"
)

type App struct {
	logger *slog.Logger
	router *http.ServeMux
	config *config.App
	game   *config.Game
	ws     *config.WebSocket
	games  *sessions.Registry
}

func New(logger *slog.Logger, v *viper.Viper) (*App, error) {
	cfg, err := config.NewApp(v)
	if err != nil {
		return nil, err
	}

	game, err := config.NewGame(v)
	if err != nil {
		return nil, err
	}

	ws, err := config.NewWebSocket(v)
	if err != nil {
		return nil, err
	}

	jwt, err := config.NewJWT(v)
	if err != nil {
		return nil, err
	}

	app := &App{
		logger: logger,
		router: http.NewServeMux(),
		config: cfg,
		game:   game,
		ws:     ws,
		games:  sessions.New(logger, jwt, mines.NewRand()),
	}

	app.loadRoutes()

	return app, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		middleware.Mount(a.config.BasePath, a.router),
		middleware.Logging(a.logger),
		middleware.Cors(a.ws.AllowedOrigins...),
	)
}

// Start serves until ctx is done, then shuts the server down.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening",
			slog.String("addr", a.config.Addr),
			slog.String("base path", a.config.BasePath),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return a.games.Run(gCtx, a.config.SweepEvery, a.config.SessionTTL)
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
