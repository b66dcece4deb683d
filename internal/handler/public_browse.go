package handler

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mealora/food-ordering/internal/authz"
	"github.com/mealora/food-ordering/internal/repository"
)

// PublicHandler serves the unauthenticated catalog: restaurant listings
// and menus.  These routes carry no JWT, so every policy decision is
// made for the guest principal; only active restaurants and available
// menu items pass the read rules.
type PublicHandler struct {
	Restaurants *repository.RestaurantRepo
	Menu        *repository.MenuRepo
}

func NewPublicHandler(r *repository.RestaurantRepo, m *repository.MenuRepo) *PublicHandler {
	if r == nil || m == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Restaurants: r, Menu: m}
}

// guest is the anonymous principal used for public reads.
var guest = authz.Principal{}

// ListRestaurants handles GET /v1/restaurants.  Optional query params:
// ?cuisine= for an exact category match and ?q= for a name/description
// substring.  Filtering is a plain scan; there is no relevance ranking.
func (h *PublicHandler) ListRestaurants(c echo.Context) error {
	items, err := h.Restaurants.ListActive(c.Request().Context(),
		c.QueryParam("cuisine"), c.QueryParam("q"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurants"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetRestaurant handles GET /v1/restaurants/:id.  Inactive restaurants
// are reported as not found; owners see theirs through the owner routes.
func (h *PublicHandler) GetRestaurant(c echo.Context) error {
	rest, err := h.Restaurants.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurant"})
	}
	if !authz.Decide(guest, authz.OpRead, authz.TableRestaurants,
		authz.RestaurantRow{OwnerID: rest.OwnerID, IsActive: rest.IsActive}) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": rest})
}

// GetMenu handles GET /v1/restaurants/:id/menu.  Only available items
// of an active restaurant are returned.
func (h *PublicHandler) GetMenu(c echo.Context) error {
	ctx := c.Request().Context()
	rest, err := h.Restaurants.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurant"})
	}
	if !authz.Decide(guest, authz.OpRead, authz.TableRestaurants,
		authz.RestaurantRow{OwnerID: rest.OwnerID, IsActive: rest.IsActive}) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
	}
	items, err := h.Menu.ListByRestaurant(ctx, rest.ID, false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load menu"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
