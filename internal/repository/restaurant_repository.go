package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/mealora/food-ordering/internal/model"
)

// RestaurantRepo provides CRUD operations for restaurants.  Catalog
// queries mirror the read policy in SQL: everyone sees active rows, the
// owner additionally sees their own rows in any state.
type RestaurantRepo struct{ DB *sql.DB }

func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{DB: db} }

const restaurantCols = "id,owner_id,name,description,image_url,cuisine,rating,delivery_minutes,is_active,created_at,updated_at"

func scanRestaurant(row interface{ Scan(...any) error }) (model.Restaurant, error) {
	var r model.Restaurant
	err := row.Scan(&r.ID, &r.OwnerID, &r.Name, &r.Description, &r.ImageURL,
		&r.Cuisine, &r.Rating, &r.DeliveryMinutes, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// Create inserts a restaurant and populates the generated ID and
// timestamps on the provided record.
func (r *RestaurantRepo) Create(ctx context.Context, rest *model.Restaurant) error {
	rest.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO restaurants (id, owner_id, name, description, image_url, cuisine, rating, delivery_minutes, is_active)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		rest.ID, rest.OwnerID, rest.Name, rest.Description, rest.ImageURL,
		rest.Cuisine, rest.Rating, rest.DeliveryMinutes, rest.IsActive)
	if err != nil {
		return err
	}
	// Query back to pick up database-assigned timestamps.
	got, err := r.GetByID(ctx, rest.ID)
	if err != nil {
		return err
	}
	*rest = got
	return nil
}

// GetByID fetches a restaurant regardless of its active flag.  Callers
// are responsible for the visibility decision.
func (r *RestaurantRepo) GetByID(ctx context.Context, id string) (model.Restaurant, error) {
	return scanRestaurant(r.DB.QueryRowContext(ctx,
		"SELECT "+restaurantCols+" FROM restaurants WHERE id=? LIMIT 1", id))
}

// OwnerOf returns the owning user ID of a restaurant.  It exists so
// policy row facts can be built without loading the whole row.
func (r *RestaurantRepo) OwnerOf(ctx context.Context, id string) (string, error) {
	var ownerID string
	err := r.DB.QueryRowContext(ctx,
		"SELECT owner_id FROM restaurants WHERE id=? LIMIT 1", id).Scan(&ownerID)
	return ownerID, err
}

// ListActive returns the public catalog: active restaurants, optionally
// narrowed by exact cuisine match and a name/description substring.
func (r *RestaurantRepo) ListActive(ctx context.Context, cuisine, search string) ([]model.Restaurant, error) {
	q := "SELECT " + restaurantCols + " FROM restaurants WHERE is_active=1"
	args := make([]any, 0, 3)
	if cuisine != "" {
		q += " AND cuisine=?"
		args = append(args, cuisine)
	}
	if search != "" {
		q += " AND (name LIKE ? OR description LIKE ?)"
		like := "%" + escapeLike(search) + "%"
		args = append(args, like, like)
	}
	q += " ORDER BY rating DESC, name"
	return r.list(ctx, q, args...)
}

// ListByOwner returns every restaurant the owner has, active or not.
func (r *RestaurantRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Restaurant, error) {
	return r.list(ctx,
		"SELECT "+restaurantCols+" FROM restaurants WHERE owner_id=? ORDER BY created_at", ownerID)
}

func (r *RestaurantRepo) list(ctx context.Context, q string, args ...any) ([]model.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Restaurant, 0)
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	return out, rows.Err()
}

// Update rewrites the mutable restaurant fields.
func (r *RestaurantRepo) Update(ctx context.Context, rest *model.Restaurant) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE restaurants SET name=?, description=?, image_url=?, cuisine=?, rating=?, delivery_minutes=?, is_active=?
		 WHERE id=?`,
		rest.Name, rest.Description, rest.ImageURL, rest.Cuisine, rest.Rating,
		rest.DeliveryMinutes, rest.IsActive, rest.ID)
	return err
}

// escapeLike quotes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
