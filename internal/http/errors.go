package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "taskflow.com/taskflow/internal/errors"
)

type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// NewErrorHandler renders every error as a {message} body. Field problems are
// listed under "errors" as well.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := apperrors.StatusCode(err)
		resp := errorResponse{Message: http.StatusText(status)}

		var (
			verr    *apperrors.ValidationError
			appErr  *apperrors.Exception
			httpErr *echo.HTTPError
		)
		switch {
		case errors.As(err, &verr):
			resp.Message = verr.Error()
			resp.Errors = verr.Fields
		case errors.As(err, &appErr):
			resp.Message = appErr.Message
		case errors.As(err, &httpErr):
			status = httpErr.Code
			resp.Message = fmt.Sprint(httpErr.Message)
		default:
			logger.ErrorContext(c.Request().Context(), "unhandled error",
				slog.String("path", c.Path()),
				slog.Any("error", err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, resp)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", slog.Any("error", err))
		}
	}
}
