// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderPlacedEvent is published when an order has been committed. It
// carries enough information for downstream consumers to log, notify or
// feed analytics without querying the primary database.
type OrderPlacedEvent struct {
	OrderID        string `json:"order_id"`
	CustomerID     string `json:"customer_id"`
	RestaurantID   string `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	TotalCents     int64  `json:"total_cents"`
	ItemCount      int    `json:"item_count"`
	PlacedAt       string `json:"placed_at"`
}
