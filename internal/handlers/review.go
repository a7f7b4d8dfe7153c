package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopfusion/backend/internal/middleware/auth"
	"github.com/shopfusion/backend/internal/service/review"
	"github.com/shopfusion/backend/internal/util"
)

type ReviewHandler struct {
	Reviews *review.Service
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	productID, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	r, err := h.Reviews.AddReview(c.Request().Context(), productID, user.ID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, review.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, review.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, review.ErrConflict):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"data": echo.Map{"review": r}})
}

func (h *ReviewHandler) ListReviews(c echo.Context) error {
	productID, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	offset, limit := util.Calculate(page, parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize))

	total, reviews, err := h.Reviews.ListReviews(c.Request().Context(), productID, offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"results":     len(reviews),
		"totalPages":  util.TotalPages(total, limit),
		"currentPage": page,
		"data":        echo.Map{"reviews": reviews},
	})
}
