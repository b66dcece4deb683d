package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mealora/food-ordering/internal/model"
)

// OrderRepo provides access to orders and their line items.  The order
// write path is transactional: the order row and every item row are
// inserted inside one transaction so readers can never observe an order
// without its items.
type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

// OrderFacts carries the columns needed to build policy row facts and
// validate status transitions, without loading the full detail.
type OrderFacts struct {
	CustomerID        string
	RestaurantID      string
	RestaurantOwnerID string
	Status            string
}

// GetFacts loads the access facts for one order.  sql.ErrNoRows when the
// order does not exist.
func (r *OrderRepo) GetFacts(ctx context.Context, orderID string) (OrderFacts, error) {
	const q = `SELECT o.customer_id, o.restaurant_id, rs.owner_id, o.status
	           FROM orders o
	           JOIN restaurants rs ON rs.id = o.restaurant_id
	           WHERE o.id = ?`
	var f OrderFacts
	err := r.DB.QueryRowContext(ctx, q, orderID).Scan(
		&f.CustomerID, &f.RestaurantID, &f.RestaurantOwnerID, &f.Status)
	return f, err
}

// CreateTx inserts the order row within an existing transaction and
// populates the generated ID and timestamps on the record.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	o.ID = uuid.NewString()
	if o.Status == "" {
		o.Status = model.StatusPending
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO orders (id, customer_id, restaurant_id, total_cents, delivery_address, instructions, status)
		 VALUES (?,?,?,?,?,?,?)`,
		o.ID, o.CustomerID, o.RestaurantID, o.TotalCents, o.DeliveryAddress, o.Instructions, o.Status)
	if err != nil {
		return err
	}
	return tx.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM orders WHERE id=?", o.ID).
		Scan(&o.CreatedAt, &o.UpdatedAt)
}

// CreateItemsBulkTx inserts all line items in a single statement inside
// the order transaction.  Passing an empty slice has no effect.
func (r *OrderRepo) CreateItemsBulkTx(ctx context.Context, tx *sql.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	q := "INSERT INTO order_items (id, order_id, menu_item_id, name, quantity, price_cents, calories, is_healthy) VALUES "
	args := make([]any, 0, len(items)*8)
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		if i > 0 {
			q += ","
		}
		q += "(?,?,?,?,?,?,?,?)"
		args = append(args, items[i].ID, items[i].OrderID, items[i].MenuItemID, items[i].Name,
			items[i].Quantity, items[i].PriceCents, items[i].Calories, items[i].IsHealthy)
	}
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}

// UpdateStatus moves an order to a new status.  Transition validation
// happens in the handler against the facts loaded beforehand.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID, status string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE orders SET status=? WHERE id=?", status, orderID)
	return err
}

// OrderLine is one line of an order as returned to clients.  Every field
// is the order-time snapshot; the live menu_items row is never consulted,
// so a line renders the same even after its item was renamed or deleted.
type OrderLine struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   uint32 `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
	Calories   uint32 `json:"calories"`
	IsHealthy  bool   `json:"is_healthy"`
}

// OrderDetail is an order with its restaurant context and line items,
// shaped for JSON responses.  CustomerID is filled only on owner views.
type OrderDetail struct {
	ID              string      `json:"id"`
	CustomerID      string      `json:"customer_id,omitempty"`
	RestaurantID    string      `json:"restaurant_id"`
	RestaurantName  string      `json:"restaurant_name"`
	TotalCents      int64       `json:"total_cents"`
	DeliveryAddress string      `json:"delivery_address"`
	Instructions    *string     `json:"instructions,omitempty"`
	Status          string      `json:"status"`
	CreatedAt       string      `json:"created_at"`
	Items           []OrderLine `json:"items"`
}

const orderDetailCols = `o.id, o.customer_id, o.restaurant_id, rs.name, o.total_cents,
	o.delivery_address, o.instructions, o.status, o.created_at`

func scanOrderDetail(row interface{ Scan(...any) error }) (OrderDetail, error) {
	var (
		d            OrderDetail
		instructions sql.NullString
		createdAt    time.Time
	)
	err := row.Scan(&d.ID, &d.CustomerID, &d.RestaurantID, &d.RestaurantName,
		&d.TotalCents, &d.DeliveryAddress, &instructions, &d.Status, &createdAt)
	if err != nil {
		return d, err
	}
	if instructions.Valid {
		v := instructions.String
		d.Instructions = &v
	}
	d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	d.Items = []OrderLine{}
	return d, nil
}

// GetDetail loads one order with its items, without any visibility
// restriction.  Callers must authorize against GetFacts first.
func (r *OrderRepo) GetDetail(ctx context.Context, orderID string) (*OrderDetail, error) {
	const q = `SELECT ` + orderDetailCols + `
	           FROM orders o
	           JOIN restaurants rs ON rs.id = o.restaurant_id
	           WHERE o.id = ?`
	d, err := scanOrderDetail(r.DB.QueryRowContext(ctx, q, orderID))
	if err != nil {
		return nil, err
	}
	byID := map[string]*OrderDetail{d.ID: &d}
	if err := r.attachItems(ctx, byID, []string{d.ID}); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByCustomer returns the customer's orders, newest first, each with
// its line items.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]OrderDetail, error) {
	const q = `SELECT ` + orderDetailCols + `
	           FROM orders o
	           JOIN restaurants rs ON rs.id = o.restaurant_id
	           WHERE o.customer_id = ?
	           ORDER BY o.created_at DESC`
	return r.listDetails(ctx, q, customerID)
}

// ListForOwner returns orders placed at the owner's restaurants, newest
// first, optionally narrowed to one restaurant and/or one status.
func (r *OrderRepo) ListForOwner(ctx context.Context, ownerID, restaurantID, status string) ([]OrderDetail, error) {
	q := `SELECT ` + orderDetailCols + `
	      FROM orders o
	      JOIN restaurants rs ON rs.id = o.restaurant_id
	      WHERE rs.owner_id = ?`
	args := []any{ownerID}
	if restaurantID != "" {
		q += " AND o.restaurant_id = ?"
		args = append(args, restaurantID)
	}
	if status != "" {
		q += " AND o.status = ?"
		args = append(args, status)
	}
	q += " ORDER BY o.created_at DESC"
	return r.listDetails(ctx, q, args...)
}

func (r *OrderRepo) listDetails(ctx context.Context, q string, args ...any) ([]OrderDetail, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]OrderDetail, 0)
	for rows.Next() {
		d, err := scanOrderDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}
	byID := make(map[string]*OrderDetail, len(details))
	ids := make([]string, 0, len(details))
	for i := range details {
		byID[details[i].ID] = &details[i]
		ids = append(ids, details[i].ID)
	}
	if err := r.attachItems(ctx, byID, ids); err != nil {
		return nil, err
	}
	return details, nil
}

// attachItems populates line items for all listed orders in one query.
func (r *OrderRepo) attachItems(ctx context.Context, byID map[string]*OrderDetail, ids []string) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	q := `SELECT order_id, menu_item_id, name, quantity, price_cents, calories, is_healthy
	      FROM order_items
	      WHERE order_id IN (` + placeholders + `)
	      ORDER BY order_id, name`
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			orderID string
			line    OrderLine
		)
		if err := rows.Scan(&orderID, &line.MenuItemID, &line.Name, &line.Quantity,
			&line.PriceCents, &line.Calories, &line.IsHealthy); err != nil {
			return err
		}
		if d, ok := byID[orderID]; ok {
			d.Items = append(d.Items, line)
		}
	}
	return rows.Err()
}

// LinesByCustomerSince returns the customer's order-item snapshots from
// orders created at or after since (all history when since is zero).
// Cancelled orders are excluded from analytics.
func (r *OrderRepo) LinesByCustomerSince(ctx context.Context, customerID string, since time.Time) ([]model.OrderItem, error) {
	q := `SELECT oi.id, oi.order_id, oi.menu_item_id, oi.name, oi.quantity, oi.price_cents, oi.calories, oi.is_healthy, oi.created_at
	      FROM order_items oi
	      JOIN orders o ON o.id = oi.order_id
	      WHERE o.customer_id = ? AND o.status <> ?`
	args := []any{customerID, model.StatusCancelled}
	if !since.IsZero() {
		q += " AND o.created_at >= ?"
		args = append(args, since)
	}
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.OrderItem, 0)
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Name, &it.Quantity,
			&it.PriceCents, &it.Calories, &it.IsHealthy, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// RestaurantStats is one dashboard row: order volume and revenue for a
// single restaurant the owner runs.
type RestaurantStats struct {
	RestaurantID   string `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	Orders         int64  `json:"orders"`
	RevenueCents   int64  `json:"revenue_cents"`
}

// Dashboard aggregates order activity across all of an owner's
// restaurants.  Cancelled orders count toward volume but not revenue.
type Dashboard struct {
	TotalOrders  int64             `json:"total_orders"`
	RevenueCents int64             `json:"revenue_cents"`
	StatusCounts map[string]int64  `json:"status_counts"`
	Restaurants  []RestaurantStats `json:"restaurants"`
}

// DashboardForOwner computes the owner dashboard in SQL.
func (r *OrderRepo) DashboardForOwner(ctx context.Context, ownerID string) (*Dashboard, error) {
	d := &Dashboard{StatusCounts: map[string]int64{}, Restaurants: []RestaurantStats{}}

	const perRestaurant = `
	    SELECT rs.id, rs.name,
	           COUNT(o.id),
	           COALESCE(SUM(CASE WHEN o.status <> ? THEN o.total_cents ELSE 0 END), 0)
	    FROM restaurants rs
	    LEFT JOIN orders o ON o.restaurant_id = rs.id
	    WHERE rs.owner_id = ?
	    GROUP BY rs.id, rs.name
	    ORDER BY rs.name`
	rows, err := r.DB.QueryContext(ctx, perRestaurant, model.StatusCancelled, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s RestaurantStats
		if err := rows.Scan(&s.RestaurantID, &s.RestaurantName, &s.Orders, &s.RevenueCents); err != nil {
			return nil, err
		}
		d.TotalOrders += s.Orders
		d.RevenueCents += s.RevenueCents
		d.Restaurants = append(d.Restaurants, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const perStatus = `
	    SELECT o.status, COUNT(*)
	    FROM orders o
	    JOIN restaurants rs ON rs.id = o.restaurant_id
	    WHERE rs.owner_id = ?
	    GROUP BY o.status`
	srows, err := r.DB.QueryContext(ctx, perStatus, ownerID)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var (
			status string
			n      int64
		)
		if err := srows.Scan(&status, &n); err != nil {
			return nil, err
		}
		d.StatusCounts[status] = n
	}
	return d, srows.Err()
}
