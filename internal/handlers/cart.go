package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopfusion/backend/internal/events"
	"github.com/shopfusion/backend/internal/middleware/auth"
	"github.com/shopfusion/backend/internal/service/cart"
)

type CartHandler struct {
	Cart   *cart.Service
	Events events.Publisher
}

func (h *CartHandler) GetCart(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	shoppingCart, err := h.Cart.GetCart(c.Request().Context(), user.ID)
	if err != nil {
		return mapCartError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"cart": shoppingCart}})
}

func (h *CartHandler) AddItem(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Cart.AddItem(c.Request().Context(), user.ID, req.ProductID, req.Quantity)
	if err != nil {
		return mapCartError(err)
	}

	publish(c, h.Events, events.TopicCartEvents, fmt.Sprint(user.ID), map[string]any{
		"type":      "cart_item_added",
		"userID":    user.ID,
		"productID": item.ProductID,
		"quantity":  item.Quantity,
	})

	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"item": item}})
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	itemID, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Cart.UpdateItem(c.Request().Context(), user.ID, itemID, req.Quantity)
	if err != nil {
		return mapCartError(err)
	}

	if item == nil {
		publish(c, h.Events, events.TopicCartEvents, fmt.Sprint(user.ID), map[string]any{
			"type":   "cart_item_deleted",
			"userID": user.ID,
			"itemID": itemID,
		})
		return c.NoContent(http.StatusNoContent)
	}

	publish(c, h.Events, events.TopicCartEvents, fmt.Sprint(user.ID), map[string]any{
		"type":     "cart_item_updated",
		"userID":   user.ID,
		"itemID":   item.ID,
		"quantity": item.Quantity,
	})
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"item": item}})
}

func (h *CartHandler) DeleteItem(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	itemID, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Cart.RemoveItem(c.Request().Context(), user.ID, itemID); err != nil {
		return mapCartError(err)
	}

	publish(c, h.Events, events.TopicCartEvents, fmt.Sprint(user.ID), map[string]any{
		"type":   "cart_item_deleted",
		"userID": user.ID,
		"itemID": itemID,
	})
	return c.NoContent(http.StatusNoContent)
}

func mapCartError(err error) error {
	if errors.Is(err, cart.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
