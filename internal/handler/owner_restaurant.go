package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mealora/food-ordering/internal/authz"
	"github.com/mealora/food-ordering/internal/middleware"
	"github.com/mealora/food-ordering/internal/model"
)

type restaurantBody struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	ImageURL        *string  `json:"image_url"`
	Cuisine         *string  `json:"cuisine"`
	Rating          *float64 `json:"rating"`
	DeliveryMinutes *uint32  `json:"delivery_minutes"`
	IsActive        *bool    `json:"is_active"`
}

// CreateRestaurant handles POST /v1/owner/restaurants.  The insert
// predicate requires the restaurant_owner role and that the new row is
// owned by the caller, so a restaurant can never be created for someone
// else.
func (h *OwnerHandler) CreateRestaurant(c echo.Context) error {
	p, err := middleware.Principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body restaurantBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == nil || strings.TrimSpace(*body.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if body.Rating != nil && (*body.Rating < 0 || *body.Rating > 5) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 0 and 5"})
	}

	rest := &model.Restaurant{
		OwnerID:  p.ID,
		Name:     strings.TrimSpace(*body.Name),
		IsActive: true,
	}
	if body.Description != nil {
		rest.Description = *body.Description
	}
	if body.ImageURL != nil {
		rest.ImageURL = *body.ImageURL
	}
	if body.Cuisine != nil {
		rest.Cuisine = strings.TrimSpace(*body.Cuisine)
	}
	if body.Rating != nil {
		rest.Rating = *body.Rating
	}
	if body.DeliveryMinutes != nil {
		rest.DeliveryMinutes = *body.DeliveryMinutes
	}
	if body.IsActive != nil {
		rest.IsActive = *body.IsActive
	}

	if !authz.Decide(p, authz.OpInsert, authz.TableRestaurants,
		authz.RestaurantRow{OwnerID: rest.OwnerID, IsActive: rest.IsActive}) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Restaurants.Create(c.Request().Context(), rest); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create restaurant"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": rest})
}

// ListMyRestaurants handles GET /v1/owner/restaurants and returns every
// restaurant the caller owns, active or not.
func (h *OwnerHandler) ListMyRestaurants(c echo.Context) error {
	p, err := middleware.Principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Restaurants.ListByOwner(c.Request().Context(), p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurants"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetMyRestaurant handles GET /v1/owner/restaurants/:id.  Unlike the
// public route this admits inactive restaurants, as long as the caller
// owns them.
func (h *OwnerHandler) GetMyRestaurant(c echo.Context) error {
	p, err := middleware.Principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	rest, err := h.Restaurants.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurant"})
	}
	if !authz.Decide(p, authz.OpRead, authz.TableRestaurants,
		authz.RestaurantRow{OwnerID: rest.OwnerID, IsActive: rest.IsActive}) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": rest})
}

// UpdateRestaurant handles PUT /v1/owner/restaurants/:id.  Only fields
// present in the body change; is_active toggles listing in the public
// catalog.
func (h *OwnerHandler) UpdateRestaurant(c echo.Context) error {
	p, err := middleware.Principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	rest, err := h.Restaurants.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurant"})
	}
	if !authz.Decide(p, authz.OpUpdate, authz.TableRestaurants,
		authz.RestaurantRow{OwnerID: rest.OwnerID, IsActive: rest.IsActive}) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	var body restaurantBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name != nil {
		name := strings.TrimSpace(*body.Name)
		if name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name cannot be empty"})
		}
		rest.Name = name
	}
	if body.Description != nil {
		rest.Description = *body.Description
	}
	if body.ImageURL != nil {
		rest.ImageURL = *body.ImageURL
	}
	if body.Cuisine != nil {
		rest.Cuisine = strings.TrimSpace(*body.Cuisine)
	}
	if body.Rating != nil {
		if *body.Rating < 0 || *body.Rating > 5 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 0 and 5"})
		}
		rest.Rating = *body.Rating
	}
	if body.DeliveryMinutes != nil {
		rest.DeliveryMinutes = *body.DeliveryMinutes
	}
	if body.IsActive != nil {
		rest.IsActive = *body.IsActive
	}

	if err := h.Restaurants.Update(ctx, &rest); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Restaurants.GetByID(ctx, rest.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurant"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": updated})
}
