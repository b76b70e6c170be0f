package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/protocol"
	"github.com/vancomm/sweeper/internal/sessions"
)

func SendJSON(w http.ResponseWriter, statusCode int, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, logger *slog.Logger, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error(
			"unable to send response",
			slog.Any("response", v),
			slog.Any("error", err),
		)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.Write(payload)
}

func SendErrorOrLog(
	w http.ResponseWriter,
	logger *slog.Logger,
	statusCode int,
	e error,
) {
	_, err := SendJSON(w, statusCode, wrapError(e))
	if err != nil {
		logger.Error(
			"failed to send error message",
			slog.Any("sent error", e),
			slog.Any("error", err),
		)
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

// statusOf maps errors from the layers below to the status a client sees.
func statusOf(err error) int {
	var (
		multi schema.MultiError
		empty schema.EmptyFieldError
	)
	switch {
	case errors.Is(err, sessions.ErrBadHandle):
		return http.StatusUnauthorized
	case errors.Is(err, sessions.ErrUnknownSession):
		return http.StatusNotFound
	case errors.Is(err, mines.ErrInvalidParams),
		errors.Is(err, mines.ErrOutOfBounds),
		errors.Is(err, protocol.ErrUnknownCommand),
		errors.Is(err, protocol.ErrNargs),
		errors.Is(err, ErrUnknownMove),
		errors.As(err, &multi),
		errors.As(err, &empty):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// sendFailure answers with the status of err. Server side failures are
// logged and their details withheld.
func sendFailure(w http.ResponseWriter, logger *slog.Logger, msg string, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.Error(msg, slog.Any("error", err))
		SendErrorOrLog(w, logger, status, errors.New(http.StatusText(status)))
		return
	}
	logger.Debug(msg, slog.Any("error", err))
	SendErrorOrLog(w, logger, status, err)
}
