package app

import (
	"github.com/vancomm/sweeper/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.logger, a.games, a.game, a.ws)

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{handle}", game.Fetch)
	a.router.HandleFunc("GET /game/{handle}/cell", game.FetchCell)
	a.router.HandleFunc("POST /game/{handle}/move", game.MakeAMove)
	a.router.HandleFunc("DELETE /game/{handle}", game.Delete)
	a.router.HandleFunc("GET /game/{handle}/connect", game.ConnectWS)
}
