package presenter

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type errorResponse struct {
	Message string `json:"message"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func BadRequestMessage(c echo.Context, msg string) error {
	slog.InfoContext(c.Request().Context(), "Bad request", slog.String("module", "rest"), slog.String("message", msg))
	return c.JSON(http.StatusBadRequest, errorResponse{Message: msg})
}

func NotFound(c echo.Context, msg string) error {
	slog.DebugContext(c.Request().Context(), "Not found", slog.String("module", "rest"), slog.String("path", c.Request().URL.Path))
	return c.JSON(http.StatusNotFound, errorResponse{Message: msg})
}

func BadGateway(c echo.Context, err error) error {
	recordError(c, err)
	slog.WarnContext(c.Request().Context(), "Upstream error", slog.String("module", "rest"), slog.String("error", err.Error()))
	return c.JSON(http.StatusBadGateway, errorResponse{Message: "The source collection could not be retrieved"})
}

func ServiceUnavailable(c echo.Context, err error) error {
	recordError(c, err)
	slog.WarnContext(c.Request().Context(), "Store unavailable", slog.String("module", "rest"), slog.String("error", err.Error()))
	return c.JSON(http.StatusServiceUnavailable, errorResponse{Message: "The activity store is unavailable"})
}

func InternalError(c echo.Context, err error) error {
	recordError(c, err)
	slog.ErrorContext(c.Request().Context(), "Internal error", slog.String("module", "rest"), slog.String("error", err.Error()))
	return c.JSON(http.StatusInternalServerError, errorResponse{Message: "An unexpected error occurred"})
}

func recordError(c echo.Context, err error) {
	span := trace.SpanFromContext(c.Request().Context())
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
