package apperror

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/GitDDAN/padel-palms-proposal/pkg/logger"
)

// HTTPErrorHandler returns an Echo error handler producing
// {"error":{"code","message",["details"]}} bodies.
func HTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := Body(err)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			body = map[string]any{"error": echoErrorBody(he)}
		}

		if code >= 500 {
			log.Error("request error",
				slog.Int("status", code),
				slog.String("path", c.Request().URL.Path),
				logger.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func echoErrorBody(he *echo.HTTPError) map[string]any {
	errObj := map[string]any{
		"code":    codeForStatus(he.Code),
		"message": http.StatusText(he.Code),
	}
	if msg, ok := he.Message.(string); ok {
		errObj["message"] = msg
	}
	return errObj
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest.Code
	case http.StatusNotFound:
		return ErrNotFound.Code
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusRequestEntityTooLarge:
		return "payload_too_large"
	case http.StatusUnprocessableEntity:
		return ErrValidation.Code
	case http.StatusTooManyRequests:
		return ErrRateLimited.Code
	case http.StatusServiceUnavailable:
		return "unavailable"
	}
	if status >= 500 {
		return ErrInternal.Code
	}
	return "error"
}
