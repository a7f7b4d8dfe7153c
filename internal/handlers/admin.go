package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopfusion/backend/internal/events"
	"github.com/shopfusion/backend/internal/logging"
	"github.com/shopfusion/backend/internal/middleware/auth"
	"github.com/shopfusion/backend/internal/models"
	"github.com/shopfusion/backend/internal/repo"
	"github.com/shopfusion/backend/internal/service/moderation"
	"github.com/shopfusion/backend/internal/service/search"
	"github.com/shopfusion/backend/internal/util"

	disputesvc "github.com/shopfusion/backend/internal/service/dispute"
)

type AdminHandler struct {
	Repo       *repo.GormRepo
	Moderation *moderation.Service
	Disputes   *disputesvc.Service
	Search     *search.Service
	Events     events.Publisher
}

// ReviewProduct applies a moderation decision and keeps the search index in
// step: approved products become searchable, rejected ones disappear.
func (h *AdminHandler) ReviewProduct(c echo.Context) error {
	admin, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	moderationID, err := parseUint(c.Param("moderationId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Status   string `json:"status"`
		Feedback string `json:"feedback"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	ctx := c.Request().Context()
	entry, err := h.Moderation.Review(ctx, moderationID, admin.ID, req.Status, req.Feedback)
	if err != nil {
		return mapModerationError(err)
	}

	h.syncSearchIndex(c, entry)

	publish(c, h.Events, events.TopicProductEvents, fmt.Sprint(entry.ProductID), map[string]any{
		"type":      "product_moderated",
		"productID": entry.ProductID,
		"status":    entry.Status,
		"adminID":   admin.ID,
	})

	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"moderation": entry}})
}

func (h *AdminHandler) ListModerationQueue(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	offset, limit := util.Calculate(page, parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize))

	total, entries, err := h.Moderation.ListQueue(c.Request().Context(), c.QueryParam("status"), offset, limit)
	if err != nil {
		return mapModerationError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"results":     len(entries),
		"totalPages":  util.TotalPages(total, limit),
		"currentPage": page,
		"data":        echo.Map{"moderation": entries},
	})
}

func (h *AdminHandler) ResolveDispute(c echo.Context) error {
	admin, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	disputeID, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Status            string `json:"status"`
		ResolutionDetails string `json:"resolution_details"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	d, err := h.Disputes.Resolve(c.Request().Context(), disputeID, admin.ID, req.Status, req.ResolutionDetails)
	if err != nil {
		return mapDisputeError(err)
	}

	publish(c, h.Events, events.TopicOrderEvents, fmt.Sprint(d.OrderID), map[string]any{
		"type":      "dispute_resolved",
		"disputeID": d.ID,
		"status":    d.Status,
		"adminID":   admin.ID,
	})

	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"dispute": d}})
}

// syncSearchIndex is best-effort: a search outage must not fail moderation.
func (h *AdminHandler) syncSearchIndex(c echo.Context, entry *models.ModerationEntry) {
	if h.Search == nil {
		return
	}

	ctx := c.Request().Context()
	l := logging.FromContext(ctx)

	switch entry.Status {
	case models.ModerationApproved:
		product, err := h.Repo.GetProduct(ctx, entry.ProductID)
		if err != nil {
			l.Error("search index sync: load product failed", "productID", entry.ProductID, "error", err)
			return
		}
		if err := h.Search.IndexProduct(ctx, product); err != nil {
			l.Error("search index sync failed", "productID", entry.ProductID, "error", err)
		}
	case models.ModerationRejected:
		if err := h.Search.RemoveProduct(ctx, entry.ProductID); err != nil {
			l.Error("search index removal failed", "productID", entry.ProductID, "error", err)
		}
	}
}

func mapModerationError(err error) error {
	switch {
	case errors.Is(err, moderation.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, moderation.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
