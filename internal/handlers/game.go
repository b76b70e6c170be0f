package handlers

import (
	"log/slog"
	"net/http"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/sessions"
)

type GameHandler struct {
	logger *slog.Logger
	games  *sessions.Registry
	game   *config.Game
	ws     *config.WebSocket
}

func NewGameHandler(
	logger *slog.Logger,
	games *sessions.Registry,
	game *config.Game,
	ws *config.WebSocket,
) *GameHandler {
	handler := &GameHandler{
		logger: logger,
		games:  games,
		game:   game,
		ws:     ws,
	}

	return handler
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	query, err := ParseNewGameDTO(r.URL.Query(), g.game.Defaults)
	if err != nil {
		sendFailure(w, g.logger, "invalid new game query", err)
		return
	}

	params := query.Params()
	if err := g.game.Check(params); err != nil {
		sendFailure(w, g.logger, "invalid game params", err)
		return
	}

	handle, snap, err := g.games.Create(params, query.Seed)
	if err != nil {
		sendFailure(w, g.logger, "unable to create a new game", err)
		return
	}

	dto := NewGameSessionDTO(handle, snap)
	if _, err := SendJSON(w, http.StatusCreated, dto); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error(
			"unable to send response",
			slog.Any("response", dto),
			slog.Any("error", err),
		)
	}
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	snap, err := g.games.Snapshot(r.PathValue("handle"))
	if err != nil {
		sendFailure(w, g.logger, "unable to fetch game", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO("", snap))
}

func (g GameHandler) FetchCell(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		sendFailure(w, g.logger, "invalid cell query", err)
		return
	}

	state, err := g.games.Query(r.PathValue("handle"), pos.X, pos.Y)
	if err != nil {
		sendFailure(w, g.logger, "unable to query cell", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewCellDTO(mines.Point{X: pos.X, Y: pos.Y}, state))
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	move, err := ParseGameMove(query.Get("move"))
	if err != nil {
		sendFailure(w, g.logger, "invalid move", err)
		return
	}

	cmd, err := move.Command(query)
	if err != nil {
		sendFailure(w, g.logger, "invalid move", err)
		return
	}

	outcome, err := g.games.Apply(r.PathValue("handle"), cmd)
	if err != nil {
		sendFailure(w, g.logger, "unable to make a move", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewOutcomeDTO(outcome))
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := g.games.Remove(r.PathValue("handle")); err != nil {
		sendFailure(w, g.logger, "unable to delete game", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
