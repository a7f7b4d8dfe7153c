package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopfusion/backend/internal/events"
	"github.com/shopfusion/backend/internal/logging"
	"github.com/shopfusion/backend/internal/middleware/auth"
	"github.com/shopfusion/backend/internal/service/dispute"
	"github.com/shopfusion/backend/internal/service/order"
	"github.com/shopfusion/backend/internal/util"
)

type OrderHandler struct {
	Orders   *order.Service
	Disputes *dispute.Service
	Events   events.Publisher
}

// CreateOrder turns the caller's cart into an order. The request carries no
// body: the cart is the input.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	placed, err := h.Orders.Checkout(ctx, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			l.Warn("checkout rejected", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, order.ErrProductNotFound):
			l.Warn("checkout rejected", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, order.ErrInsufficientStock):
			l.Warn("checkout rejected", "status", 409, "error", err)
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			l.Error("checkout failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("order placed", "orderID", placed.ID, "total", placed.TotalAmount)
	publish(c, h.Events, events.TopicOrderEvents, fmt.Sprint(user.ID), map[string]any{
		"type":    "order_created",
		"userID":  user.ID,
		"orderID": placed.ID,
		"total":   placed.TotalAmount,
	})

	return c.JSON(http.StatusCreated, echo.Map{"data": echo.Map{"order": placed}})
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	offset, limit := util.Calculate(page, parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize))

	total, orders, err := h.Orders.ListOrders(c.Request().Context(), user.ID, offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"results":     len(orders),
		"totalOrders": total,
		"totalPages":  util.TotalPages(total, limit),
		"currentPage": page,
		"data":        echo.Map{"orders": orders},
	})
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	id, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	placed, err := h.Orders.GetOrder(c.Request().Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"order": placed}})
}

func (h *OrderHandler) OpenDispute(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	orderID, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	d, err := h.Disputes.Open(c.Request().Context(), orderID, user.ID, req.Reason)
	if err != nil {
		return mapDisputeError(err)
	}

	publish(c, h.Events, events.TopicOrderEvents, fmt.Sprint(user.ID), map[string]any{
		"type":      "dispute_opened",
		"userID":    user.ID,
		"orderID":   orderID,
		"disputeID": d.ID,
	})

	return c.JSON(http.StatusCreated, echo.Map{"data": echo.Map{"dispute": d}})
}

func mapDisputeError(err error) error {
	switch {
	case errors.Is(err, dispute.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, dispute.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, dispute.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
