package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Skotchmaster/restaurant_pos/internal/domain"
	"github.com/labstack/echo/v4"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrIncompleteSelection):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrDuplicateTable),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrNoOpenOrder),
		errors.Is(err, domain.ErrPending):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrRemote):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// fail logs err under event and turns it into an HTTP error carrying the
// operator-facing message.
func fail(l *slog.Logger, event string, err error) error {
	status := statusOf(err)
	msg := domain.Short(err)
	if status >= http.StatusInternalServerError {
		l.Error(event, "status", status, "reason", msg, "error", err)
		if status == http.StatusInternalServerError {
			msg = "internal error"
		}
	} else {
		l.Warn(event, "status", status, "reason", msg, "error", err)
	}
	return echo.NewHTTPError(status, msg)
}

func parseID(c echo.Context, l *slog.Logger, event, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		l.Warn(event, "status", 400, "reason", name+" is not a positive integer", "error", err)
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is not a positive integer")
	}
	return id, nil
}

func message(msg string) map[string]string {
	return map[string]string{"message": msg}
}
