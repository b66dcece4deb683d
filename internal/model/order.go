package model

import "time"

// Order status values.  The column itself is free text so that historical
// rows always scan, but every write goes through CanTransition which
// enforces the closed machine below.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusOnTheWay  = "on_the_way"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// transitions maps each status to the set of statuses reachable from it.
// delivered and cancelled are terminal; cancelled is reachable from every
// non-terminal state.
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusOnTheWay, StatusCancelled},
	StatusOnTheWay:  {StatusDelivered, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

// ValidStatus reports whether s is one of the six known order statuses.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to
// another.  Unknown source statuses (legacy free-text rows) allow no
// transitions except cancellation.
func CanTransition(from, to string) bool {
	next, ok := transitions[from]
	if !ok {
		return to == StatusCancelled
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// Order records a customer's purchase at a single restaurant.  The total
// is computed from the item snapshots at placement time and written once;
// it is never recomputed from the live menu.
//
// Fields:
//  ID              – UUID primary key.
//  CustomerID      – user who placed the order.
//  RestaurantID    – restaurant the order was placed at.
//  TotalCents      – sum of snapshot price × quantity over all items.
//  DeliveryAddress – free-text delivery address.
//  Instructions    – optional delivery instructions.
//  Status          – current state (see constants above).
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Order struct {
	ID              string    // orders.id
	CustomerID      string    // orders.customer_id
	RestaurantID    string    // orders.restaurant_id
	TotalCents      int64     // orders.total_cents
	DeliveryAddress string    // orders.delivery_address
	Instructions    *string   // orders.instructions (nullable)
	Status          string    // orders.status
	CreatedAt       time.Time // orders.created_at
	UpdatedAt       time.Time // orders.updated_at
}

// OrderItem is one line of an order.  Name, PriceCents, Calories and
// IsHealthy are snapshots of the menu item taken when the order was
// placed; later edits to the menu item never change them.
//
// Fields:
//  ID         – UUID primary key.
//  OrderID    – parent order.
//  MenuItemID – menu item the line refers to.
//  Name       – item name at order time.
//  Quantity   – number of units ordered (>= 1).
//  PriceCents – unit price at order time.
//  Calories   – calorie count at order time.
//  IsHealthy  – health classification at order time.
//  CreatedAt  – creation timestamp.
type OrderItem struct {
	ID         string    // order_items.id
	OrderID    string    // order_items.order_id
	MenuItemID string    // order_items.menu_item_id
	Name       string    // order_items.name
	Quantity   uint32    // order_items.quantity
	PriceCents int64     // order_items.price_cents
	Calories   uint32    // order_items.calories
	IsHealthy  bool      // order_items.is_healthy
	CreatedAt  time.Time // order_items.created_at
}
