package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mealora/food-ordering/internal/authz"
	"github.com/mealora/food-ordering/internal/middleware"
	"github.com/mealora/food-ordering/internal/model"
	"github.com/mealora/food-ordering/internal/repository"
)

type menuItemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	PriceCents  *int64  `json:"price_cents"`
	Calories    *uint32 `json:"calories"`
	IsHealthy   *bool   `json:"is_healthy"`
	Category    *string `json:"category"`
	IsAvailable *bool   `json:"is_available"`
}

// CreateMenuItem handles POST /v1/owner/restaurants/:id/menu.  Managing
// a menu requires owning the parent restaurant; prices are integer
// cents and must be positive.
func (h *OwnerHandler) CreateMenuItem(c echo.Context) error {
	p, err := middleware.Principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	ownerID, err := h.Restaurants.OwnerOf(ctx, c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurant"})
	}
	if !authz.Decide(p, authz.OpInsert, authz.TableMenuItems,
		authz.MenuItemRow{RestaurantOwnerID: ownerID}) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	var body menuItemBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == nil || strings.TrimSpace(*body.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if body.PriceCents == nil || *body.PriceCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_cents must be a positive integer"})
	}

	item := &model.MenuItem{
		RestaurantID: c.Param("id"),
		Name:         strings.TrimSpace(*body.Name),
		PriceCents:   *body.PriceCents,
		IsAvailable:  true,
	}
	if body.Description != nil {
		item.Description = *body.Description
	}
	if body.ImageURL != nil {
		item.ImageURL = *body.ImageURL
	}
	if body.Calories != nil {
		item.Calories = *body.Calories
	}
	if body.IsHealthy != nil {
		item.IsHealthy = *body.IsHealthy
	}
	if body.Category != nil {
		item.Category = strings.TrimSpace(*body.Category)
	}
	if body.IsAvailable != nil {
		item.IsAvailable = *body.IsAvailable
	}
	if err := h.Menu.Create(ctx, item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create menu item"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": item})
}

// ListMyMenu handles GET /v1/owner/restaurants/:id/menu, returning the
// full menu including unavailable items.
func (h *OwnerHandler) ListMyMenu(c echo.Context) error {
	p, err := middleware.Principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	ownerID, err := h.Restaurants.OwnerOf(ctx, c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurant"})
	}
	if !authz.Decide(p, authz.OpRead, authz.TableMenuItems,
		authz.MenuItemRow{RestaurantOwnerID: ownerID}) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	items, err := h.Menu.ListByRestaurant(ctx, c.Param("id"), true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load menu"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateMenuItem handles PUT /v1/owner/menu/:id.  Only fields present
// in the body change.  Price and calorie edits never touch existing
// order lines, which keep their placement-time snapshots.
func (h *OwnerHandler) UpdateMenuItem(c echo.Context) error {
	p, err := middleware.Principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	ownerID, err := h.Menu.OwnerOf(ctx, c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load menu item"})
	}
	if !authz.Decide(p, authz.OpUpdate, authz.TableMenuItems,
		authz.MenuItemRow{RestaurantOwnerID: ownerID}) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	item, err := h.Menu.GetByID(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load menu item"})
	}
	var body menuItemBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name != nil {
		name := strings.TrimSpace(*body.Name)
		if name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name cannot be empty"})
		}
		item.Name = name
	}
	if body.Description != nil {
		item.Description = *body.Description
	}
	if body.ImageURL != nil {
		item.ImageURL = *body.ImageURL
	}
	if body.PriceCents != nil {
		if *body.PriceCents <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_cents must be a positive integer"})
		}
		item.PriceCents = *body.PriceCents
	}
	if body.Calories != nil {
		item.Calories = *body.Calories
	}
	if body.IsHealthy != nil {
		item.IsHealthy = *body.IsHealthy
	}
	if body.Category != nil {
		item.Category = strings.TrimSpace(*body.Category)
	}
	if body.IsAvailable != nil {
		item.IsAvailable = *body.IsAvailable
	}
	if err := h.Menu.Update(ctx, &item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Menu.GetByID(ctx, item.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load menu item"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": updated})
}

// DeleteMenuItem handles DELETE /v1/owner/menu/:id.
func (h *OwnerHandler) DeleteMenuItem(c echo.Context) error {
	p, err := middleware.Principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	ownerID, err := h.Menu.OwnerOf(ctx, c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load menu item"})
	}
	if !authz.Decide(p, authz.OpDelete, authz.TableMenuItems,
		authz.MenuItemRow{RestaurantOwnerID: ownerID}) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Menu.Delete(ctx, c.Param("id")); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		if err == repository.ErrMenuItemInUse {
			return c.JSON(http.StatusConflict, echo.Map{"error": "item appears in past orders; mark it unavailable instead"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
