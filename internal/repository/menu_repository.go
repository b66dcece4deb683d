package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/mealora/food-ordering/internal/model"
)

// MenuRepo provides CRUD operations for menu items.
type MenuRepo struct{ DB *sql.DB }

func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{DB: db} }

const menuCols = "id,restaurant_id,name,description,image_url,price_cents,calories,is_healthy,category,is_available,created_at,updated_at"

func scanMenuItem(row interface{ Scan(...any) error }) (model.MenuItem, error) {
	var m model.MenuItem
	err := row.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.ImageURL,
		&m.PriceCents, &m.Calories, &m.IsHealthy, &m.Category, &m.IsAvailable,
		&m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// Create inserts a menu item and populates the generated ID and
// timestamps on the provided record.
func (r *MenuRepo) Create(ctx context.Context, item *model.MenuItem) error {
	item.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO menu_items (id, restaurant_id, name, description, image_url, price_cents, calories, is_healthy, category, is_available)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		item.ID, item.RestaurantID, item.Name, item.Description, item.ImageURL,
		item.PriceCents, item.Calories, item.IsHealthy, item.Category, item.IsAvailable)
	if err != nil {
		return err
	}
	got, err := r.GetByID(ctx, item.ID)
	if err != nil {
		return err
	}
	*item = got
	return nil
}

// GetByID fetches a menu item regardless of availability.
func (r *MenuRepo) GetByID(ctx context.Context, id string) (model.MenuItem, error) {
	return scanMenuItem(r.DB.QueryRowContext(ctx,
		"SELECT "+menuCols+" FROM menu_items WHERE id=? LIMIT 1", id))
}

// OwnerOf returns the owner of the item's parent restaurant, for policy
// row facts.  sql.ErrNoRows when the item does not exist.
func (r *MenuRepo) OwnerOf(ctx context.Context, itemID string) (string, error) {
	var ownerID string
	err := r.DB.QueryRowContext(ctx,
		`SELECT rs.owner_id FROM menu_items mi JOIN restaurants rs ON rs.id = mi.restaurant_id WHERE mi.id=?`,
		itemID).Scan(&ownerID)
	return ownerID, err
}

// ListByRestaurant returns a restaurant's menu.  When includeUnavailable
// is false only orderable items are returned (the public view); the
// owner passes true to manage the full menu.
func (r *MenuRepo) ListByRestaurant(ctx context.Context, restaurantID string, includeUnavailable bool) ([]model.MenuItem, error) {
	q := "SELECT " + menuCols + " FROM menu_items WHERE restaurant_id=?"
	if !includeUnavailable {
		q += " AND is_available=1"
	}
	q += " ORDER BY category, name"
	rows, err := r.DB.QueryContext(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.MenuItem, 0)
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Update rewrites the mutable menu item fields.
func (r *MenuRepo) Update(ctx context.Context, item *model.MenuItem) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE menu_items SET name=?, description=?, image_url=?, price_cents=?, calories=?, is_healthy=?, category=?, is_available=?
		 WHERE id=?`,
		item.Name, item.Description, item.ImageURL, item.PriceCents, item.Calories,
		item.IsHealthy, item.Category, item.IsAvailable, item.ID)
	return err
}

// Delete removes a menu item that was never ordered.  Items referenced
// by historical order lines are protected by the FK (ON DELETE RESTRICT)
// and return ErrMenuItemInUse; mark those unavailable instead.
func (r *MenuRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM menu_items WHERE id=?", id)
	if err != nil {
		if strings.Contains(err.Error(), "1451") {
			return ErrMenuItemInUse
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SnapshotForOrderTx loads the items of one restaurant for an order
// being placed, within the order transaction.  Only available items
// belonging to the given restaurant are returned; a requested ID that is
// missing from the result means the cart is invalid.
func (r *MenuRepo) SnapshotForOrderTx(ctx context.Context, tx *sql.Tx, restaurantID string, itemIDs []string) (map[string]model.MenuItem, error) {
	if len(itemIDs) == 0 {
		return map[string]model.MenuItem{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(itemIDs)), ",")
	args := make([]any, 0, len(itemIDs)+1)
	args = append(args, restaurantID)
	for _, id := range itemIDs {
		args = append(args, id)
	}
	rows, err := tx.QueryContext(ctx,
		"SELECT "+menuCols+" FROM menu_items WHERE restaurant_id=? AND is_available=1 AND id IN ("+placeholders+")",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]model.MenuItem, len(itemIDs))
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		out[m.ID] = m
	}
	return out, rows.Err()
}
