package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopfusion/backend/internal/events"
	"github.com/shopfusion/backend/internal/middleware/auth"
	"github.com/shopfusion/backend/internal/service/catalog"
	"github.com/shopfusion/backend/internal/util"
)

type ProductHandler struct {
	Catalog *catalog.Service
	Events  events.Publisher
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	role, requesterID := requester(c)

	f := catalog.Filters{Status: c.QueryParam("status")}
	if v := c.QueryParam("seller_id"); v != "" {
		id, err := parseUint(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid seller_id")
		}
		f.SellerID = id
	}
	if v := c.QueryParam("category"); v != "" {
		id, err := parseUint(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid category")
		}
		f.CategoryID = id
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	offset, limit := util.Calculate(page, parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize))

	total, products, err := h.Catalog.ListProducts(c.Request().Context(), role, requesterID, f, offset, limit)
	if err != nil {
		return mapCatalogError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"results":       len(products),
		"totalProducts": total,
		"totalPages":    util.TotalPages(total, limit),
		"currentPage":   page,
		"data":          echo.Map{"products": products},
	})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	role, requesterID := requester(c)
	product, err := h.Catalog.GetProduct(c.Request().Context(), role, requesterID, id)
	if err != nil {
		return mapCatalogError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"product": product}})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	var req catalog.CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Catalog.CreateProduct(c.Request().Context(), user.ID, req)
	if err != nil {
		return mapCatalogError(err)
	}

	publish(c, h.Events, events.TopicProductEvents, fmt.Sprint(user.ID), map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"sellerID":  product.SellerID,
		"name":      product.Name,
	})

	return c.JSON(http.StatusCreated, echo.Map{"data": echo.Map{"product": product}})
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	id, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req catalog.UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Catalog.UpdateProduct(c.Request().Context(), user, id, req)
	if err != nil {
		return mapCatalogError(err)
	}

	publish(c, h.Events, events.TopicProductEvents, fmt.Sprint(user.ID), map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})

	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"product": product}})
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	id, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Catalog.DeleteProduct(c.Request().Context(), user, id); err != nil {
		return mapCatalogError(err)
	}

	publish(c, h.Events, events.TopicProductEvents, fmt.Sprint(user.ID), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return c.NoContent(http.StatusNoContent)
}

// requester reports who is asking; guests come back with an empty role.
func requester(c echo.Context) (string, uint) {
	if user, ok := auth.UserFromContext(c); ok {
		return user.Role, user.ID
	}
	return "", 0
}

func mapCatalogError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
