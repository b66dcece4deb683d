package handler

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mealora/food-ordering/internal/authz"
	"github.com/mealora/food-ordering/internal/middleware"
	"github.com/mealora/food-ordering/internal/model"
)

// ListIncomingOrders handles GET /v1/owner/orders.  Optional query
// params: ?restaurant_id= narrows to one of the owner's restaurants and
// ?status= to one order status.
func (h *OwnerHandler) ListIncomingOrders(c echo.Context) error {
	p, err := middleware.Principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	status := c.QueryParam("status")
	if status != "" && !model.ValidStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	items, err := h.Orders.ListForOwner(c.Request().Context(), p.ID,
		c.QueryParam("restaurant_id"), status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load orders"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetIncomingOrder handles GET /v1/owner/orders/:id.  Orders at other
// owners' restaurants are reported as not found.
func (h *OwnerHandler) GetIncomingOrder(c echo.Context) error {
	p, err := middleware.Principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	facts, err := h.Orders.GetFacts(ctx, c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load order"})
	}
	if !authz.Decide(p, authz.OpRead, authz.TableOrders,
		authz.OrderRow{CustomerID: facts.CustomerID, RestaurantOwnerID: facts.RestaurantOwnerID}) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
	}
	detail, err := h.Orders.GetDetail(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load order"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": detail})
}

// UpdateOrderStatus handles PATCH /v1/owner/orders/:id/status.  Status
// moves through the closed machine only; an invalid move returns 409
// with the current status so the client can resynchronize.
func (h *OwnerHandler) UpdateOrderStatus(c echo.Context) error {
	p, err := middleware.Principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !model.ValidStatus(body.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx := c.Request().Context()
	facts, err := h.Orders.GetFacts(ctx, c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load order"})
	}
	if !authz.Decide(p, authz.OpUpdate, authz.TableOrders,
		authz.OrderRow{CustomerID: facts.CustomerID, RestaurantOwnerID: facts.RestaurantOwnerID}) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if !model.CanTransition(facts.Status, body.Status) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":  "invalid status transition",
			"status": facts.Status,
		})
	}
	if err := h.Orders.UpdateStatus(ctx, c.Param("id"), body.Status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	detail, err := h.Orders.GetDetail(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load order"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": detail})
}

// Dashboard handles GET /v1/owner/dashboard: order volume, revenue and
// status breakdown aggregated across all of the caller's restaurants.
func (h *OwnerHandler) Dashboard(c echo.Context) error {
	p, err := middleware.Principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	d, err := h.Orders.DashboardForOwner(c.Request().Context(), p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load dashboard"})
	}
	return c.JSON(http.StatusOK, d)
}
