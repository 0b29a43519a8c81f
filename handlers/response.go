package handlers

import (
	"net/http"

	"github.com/jotapp/jot/config"
	"github.com/jotapp/jot/services/logging"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Error: message})
}

// internalError hides infrastructure failures behind a generic message in
// production; outside production the underlying error is surfaced to speed up
// debugging.
func internalError(c echo.Context, cfg *config.Config, logger *logging.Service, err error, message string) error {
	logger.Error(message, zap.Error(err), zap.String("path", c.Path()))

	if !cfg.App.IsProduction() {
		return errorJSON(c, http.StatusInternalServerError, message+": "+err.Error())
	}
	return errorJSON(c, http.StatusInternalServerError, message)
}
