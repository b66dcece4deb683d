package handler

import (
	"github.com/mealora/food-ordering/internal/repository"
)

// OwnerHandler bundles the repositories owner routes need to manage
// restaurants, menus and incoming orders.  Every route runs behind the
// RESTAURANT_OWNER role gate; per-row decisions are still made against
// the policy so one owner can never reach another owner's rows.
type OwnerHandler struct {
	Restaurants *repository.RestaurantRepo
	Menu        *repository.MenuRepo
	Orders      *repository.OrderRepo
}

// NewOwnerHandler constructs an OwnerHandler and panics if any
// dependency is nil.
func NewOwnerHandler(r *repository.RestaurantRepo, m *repository.MenuRepo, o *repository.OrderRepo) *OwnerHandler {
	if r == nil || m == nil || o == nil {
		panic("nil repository passed to NewOwnerHandler")
	}
	return &OwnerHandler{Restaurants: r, Menu: m, Orders: o}
}
