package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopfusion/backend/internal/service/search"
	"github.com/shopfusion/backend/internal/util"
)

type SearchHandler struct {
	Search *search.Service
}

func (h *SearchHandler) Handler(c echo.Context) error {
	if h.Search == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	from, size := util.Calculate(page, parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize))

	total, products, err := h.Search.Search(c.Request().Context(), q, from, size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
