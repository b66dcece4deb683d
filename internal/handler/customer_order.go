package handler

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/mealora/food-ordering/internal/authz"
	"github.com/mealora/food-ordering/internal/middleware"
	"github.com/mealora/food-ordering/internal/model"
	"github.com/mealora/food-ordering/internal/queue"
	"github.com/mealora/food-ordering/internal/repository"
	queue_publisher "github.com/mealora/food-ordering/internal/service"
	"github.com/mealora/food-ordering/internal/stats"
)

// CustomerHandler serves order placement, order history and the
// health/spending summary for authenticated customers.  The critical
// write path runs inside one transaction: an order becomes visible only
// when every line item persisted with it.
type CustomerHandler struct {
	DB          *sql.DB
	Restaurants *repository.RestaurantRepo
	Menu        *repository.MenuRepo
	Orders      *repository.OrderRepo
	AMQPURL     string
}

func NewCustomerHandler(db *sql.DB, r *repository.RestaurantRepo, m *repository.MenuRepo, o *repository.OrderRepo, amqpURL string) *CustomerHandler {
	if db == nil || r == nil || m == nil || o == nil {
		panic("nil dependency passed to NewCustomerHandler")
	}
	return &CustomerHandler{DB: db, Restaurants: r, Menu: m, Orders: o, AMQPURL: amqpURL}
}

type cartEntry struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   uint32 `json:"quantity"`
}

type placeOrderReq struct {
	RestaurantID    string      `json:"restaurant_id"`
	DeliveryAddress string      `json:"delivery_address"`
	Instructions    string      `json:"instructions"`
	Items           []cartEntry `json:"items"`
}

// PlaceOrder handles POST /v1/orders.  It validates the cart, snapshots
// the current price, calories and health flag of every item, computes
// the total and writes the order plus all line items atomically.
func (h *CustomerHandler) PlaceOrder(c echo.Context) error {
	p, err := middleware.Principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req placeOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RestaurantID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant_id is required"})
	}
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "delivery_address is required"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "items is required"})
	}
	// Merge duplicate entries; reject zero quantities.
	quantities := make(map[string]uint32, len(req.Items))
	ids := make([]string, 0, len(req.Items))
	for _, e := range req.Items {
		if e.MenuItemID == "" || e.Quantity == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "each item needs menu_item_id and quantity >= 1"})
		}
		if _, seen := quantities[e.MenuItemID]; !seen {
			ids = append(ids, e.MenuItemID)
		}
		quantities[e.MenuItemID] += e.Quantity
	}

	ctx := c.Request().Context()
	rest, err := h.Restaurants.GetByID(ctx, req.RestaurantID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !authz.Decide(p, authz.OpRead, authz.TableRestaurants,
		authz.RestaurantRow{OwnerID: rest.OwnerID, IsActive: rest.IsActive}) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
	}
	orderFacts := authz.OrderRow{CustomerID: p.ID, RestaurantOwnerID: rest.OwnerID}
	if !authz.Decide(p, authz.OpInsert, authz.TableOrders, orderFacts) ||
		!authz.Decide(p, authz.OpInsert, authz.TableOrderItems, authz.OrderItemRow{OrderCustomerID: p.ID, RestaurantOwnerID: rest.OwnerID}) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	snapshot, err := h.Menu.SnapshotForOrderTx(ctx, tx, rest.ID, ids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load menu items"})
	}
	var total int64
	for _, id := range ids {
		item, ok := snapshot[id]
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":        "some items are unavailable",
				"menu_item_id": id,
			})
		}
		total += item.PriceCents * int64(quantities[id])
	}

	order := &model.Order{
		CustomerID:      p.ID,
		RestaurantID:    rest.ID,
		TotalCents:      total,
		DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		Status:          model.StatusPending,
	}
	if ins := strings.TrimSpace(req.Instructions); ins != "" {
		order.Instructions = &ins
	}
	if err := h.Orders.CreateTx(ctx, tx, order); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order"})
	}
	lines := make([]model.OrderItem, 0, len(ids))
	for _, id := range ids {
		item := snapshot[id]
		lines = append(lines, model.OrderItem{
			OrderID:    order.ID,
			MenuItemID: item.ID,
			Name:       item.Name,
			Quantity:   quantities[id],
			PriceCents: item.PriceCents,
			Calories:   item.Calories,
			IsHealthy:  item.IsHealthy,
		})
	}
	if err := h.Orders.CreateItemsBulkTx(ctx, tx, lines); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order items"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	// Event publication is best effort; the order is already durable.
	ev := queue.OrderPlacedEvent{
		OrderID:        order.ID,
		CustomerID:     p.ID,
		RestaurantID:   rest.ID,
		RestaurantName: rest.Name,
		TotalCents:     total,
		ItemCount:      len(lines),
		PlacedAt:       order.CreatedAt.UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishOrderPlaced(ctx, h.AMQPURL, ev); err != nil {
		logrus.WithError(err).Warn("order.placed publish failed")
	}

	detail, err := h.Orders.GetDetail(ctx, order.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load order"})
	}
	detail.CustomerID = ""
	return c.JSON(http.StatusCreated, echo.Map{"item": detail})
}

// ListOrders handles GET /v1/orders: the caller's order history, newest
// first, with line items.
func (h *CustomerHandler) ListOrders(c echo.Context) error {
	p, err := middleware.Principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.Orders.ListByCustomer(c.Request().Context(), p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load orders"})
	}
	for i := range details {
		details[i].CustomerID = ""
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// GetOrder handles GET /v1/orders/:id.  Denials are reported as not
// found so the existence of other customers' orders never leaks.
func (h *CustomerHandler) GetOrder(c echo.Context) error {
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
	detail.CustomerID = ""
	return c.JSON(http.StatusOK, echo.Map{"item": detail})
}

// Stats handles GET /v1/me/stats?window=30d|month|all.  It fetches the
// caller's order-item snapshots in the window and folds them into the
// health/spending summary.
func (h *CustomerHandler) Stats(c echo.Context) error {
	p, err := middleware.Principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var since time.Time
	now := time.Now().UTC()
	switch c.QueryParam("window") {
	case "", "30d":
		since = now.AddDate(0, 0, -30)
	case "month":
		since = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	case "all":
		// zero time: no lower bound
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "window must be 30d, month or all"})
	}

	items, err := h.Orders.LinesByCustomerSince(c.Request().Context(), p.ID, since)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load order history"})
	}
	lines := make([]stats.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, stats.Line{
			PriceCents: it.PriceCents,
			Quantity:   it.Quantity,
			Calories:   it.Calories,
			IsHealthy:  it.IsHealthy,
		})
	}
	return c.JSON(http.StatusOK, stats.Compute(lines))
}
