package model

import "time"

// Restaurant represents a venue owned by a user.  A restaurant is listed
// in the public catalog only while IsActive is true; its owner can always
// see it regardless of the flag.  This struct corresponds to a row in the
// `restaurants` table.
//
// Fields:
//  ID              – UUID primary key.
//  OwnerID         – user ID of the restaurant owner.
//  Name            – restaurant name.
//  Description     – free-text description.
//  ImageURL        – reference to a cover image (may be empty).
//  Cuisine         – cuisine category label.
//  Rating          – average rating, one decimal place, 0–5.
//  DeliveryMinutes – delivery-time estimate in minutes.
//  IsActive        – whether the restaurant is listed publicly.
//  CreatedAt       – timestamp when the restaurant was created.
//  UpdatedAt       – timestamp of last update.
type Restaurant struct {
	ID              string    // restaurants.id
	OwnerID         string    // restaurants.owner_id
	Name            string    // restaurants.name
	Description     string    // restaurants.description
	ImageURL        string    // restaurants.image_url
	Cuisine         string    // restaurants.cuisine
	Rating          float64   // restaurants.rating
	DeliveryMinutes uint32    // restaurants.delivery_minutes
	IsActive        bool      // restaurants.is_active
	CreatedAt       time.Time // restaurants.created_at
	UpdatedAt       time.Time // restaurants.updated_at
}

// MenuItem belongs to exactly one restaurant.  Prices are stored in
// integer cents.  Only available items appear in the public menu; the
// owner of the parent restaurant manages items in any state.
//
// Fields:
//  ID           – UUID primary key.
//  RestaurantID – parent restaurant.
//  Name         – item name.
//  Description  – free-text description.
//  ImageURL     – reference to an item image (may be empty).
//  PriceCents   – price in cents.
//  Calories     – calorie count per unit.
//  IsHealthy    – health classification used by spending analytics.
//  Category     – free-text category label (e.g. "Mains").
//  IsAvailable  – whether the item can currently be ordered.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type MenuItem struct {
	ID           string    // menu_items.id
	RestaurantID string    // menu_items.restaurant_id
	Name         string    // menu_items.name
	Description  string    // menu_items.description
	ImageURL     string    // menu_items.image_url
	PriceCents   int64     // menu_items.price_cents
	Calories     uint32    // menu_items.calories
	IsHealthy    bool      // menu_items.is_healthy
	Category     string    // menu_items.category
	IsAvailable  bool      // menu_items.is_available
	CreatedAt    time.Time // menu_items.created_at
	UpdatedAt    time.Time // menu_items.updated_at
}
