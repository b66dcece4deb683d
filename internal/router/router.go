// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mealora/food-ordering/internal/handler"
	"github.com/mealora/food-ordering/internal/middleware"
	"github.com/mealora/food-ordering/internal/model"
)

// RegisterRoutes registers routes that carry no authentication.
// Currently it exposes only a health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the account lifecycle.  Unauthenticated
// operations live under /v1/auth; the profile endpoints live under /v1
// and require a valid access token with at least one known role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer, model.RoleOwner),
	)
	auth.GET("/me", a.Me)
	auth.PUT("/me", a.UpdateMe)
}

// RegisterPublic registers the guest catalog: restaurant listings and
// menus.  No JWT applies; row visibility is decided for the anonymous
// principal.  The passed middleware (the Redis response cache, or nil)
// wraps every catalog GET.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	mws := []echo.MiddlewareFunc{}
	if cache != nil {
		mws = append(mws, cache)
	}
	e.GET("/v1/restaurants", p.ListRestaurants, mws...)
	e.GET("/v1/restaurants/:id", p.GetRestaurant, mws...)
	e.GET("/v1/restaurants/:id/menu", p.GetMenu, mws...)
}

// RegisterCustomer registers customer-scoped endpoints under /v1.  All
// routes require a valid JWT and the CUSTOMER role; per-row decisions
// happen in the handlers.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer),
	)
	g.POST("/orders", h.PlaceOrder)
	g.GET("/orders", h.ListOrders)
	g.GET("/orders/:id", h.GetOrder)
	g.GET("/me/stats", h.Stats)
}

// RegisterOwner registers RESTAURANT_OWNER-scoped endpoints under
// /v1/owner.  All routes require a valid JWT and the owner role.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
	g := e.Group(
		"/v1/owner",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleOwner),
	)

	g.POST("/restaurants", o.CreateRestaurant)
	g.GET("/restaurants", o.ListMyRestaurants)
	g.GET("/restaurants/:id", o.GetMyRestaurant)
	g.PUT("/restaurants/:id", o.UpdateRestaurant)
	g.PATCH("/restaurants/:id", o.UpdateRestaurant)

	g.POST("/restaurants/:id/menu", o.CreateMenuItem)
	g.GET("/restaurants/:id/menu", o.ListMyMenu)
	g.PUT("/menu/:id", o.UpdateMenuItem)
	g.PATCH("/menu/:id", o.UpdateMenuItem)
	g.DELETE("/menu/:id", o.DeleteMenuItem)

	g.GET("/orders", o.ListIncomingOrders)
	g.GET("/orders/:id", o.GetIncomingOrder)
	g.PATCH("/orders/:id/status", o.UpdateOrderStatus)
	g.GET("/dashboard", o.Dashboard)
}
