package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/protocol"
)

// wsRunGameLoop answers every text frame with one outcome covering all the
// commands in it. A frame that fails to parse is answered with an error and
// changes nothing.
func (g GameHandler) wsRunGameLoop(conn *websocket.Conn, handle string) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		outcome, err := g.games.Execute(handle, func(s *mines.Session) (mines.Outcome, error) {
			return protocol.Execute(s, string(buf))
		})
		if err != nil {
			if statusOf(err) != http.StatusBadRequest {
				return err
			}
			if err := conn.WriteJSON(wrapError(err)); err != nil {
				return fmt.Errorf("unable to write json: %w", err)
			}
			continue
		}

		if err := conn.WriteJSON(NewOutcomeDTO(outcome)); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	if _, err := g.games.Phase(handle); err != nil {
		sendFailure(w, g.logger, "unable to connect to game", err)
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()
	if g.ws.ReadLimit > 0 {
		conn.SetReadLimit(g.ws.ReadLimit)
	}

	g.logger.Debug("established WS connection")

	err = g.wsRunGameLoop(conn, handle)
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || err == nil {
		return
	}
	g.logger.Warn("error in ws loop", slog.Any("error", err))
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "session closed"))
}
