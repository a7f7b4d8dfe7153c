package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopfusion/backend/internal/service/settings"
)

type SettingsHandler struct {
	Settings *settings.Service
}

func (h *SettingsHandler) GetSettings(c echo.Context) error {
	values, err := h.Settings.Public(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"settings": values}})
}
