package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealora/food-ordering/internal/model"
)

func TestCreateOrderWithItemsCommitsAtomically(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewOrderRepo(db)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM orders").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec("INSERT INTO order_items").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	order := &model.Order{
		CustomerID:      "cust-1",
		RestaurantID:    "rest-1",
		TotalCents:      38000,
		DeliveryAddress: "12 Main St",
	}
	require.NoError(t, repo.CreateTx(ctx, tx, order))
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, model.StatusPending, order.Status)
	assert.WithinDuration(t, now, order.CreatedAt, time.Second)

	items := []model.OrderItem{
		{OrderID: order.ID, MenuItemID: "item-1", Name: "Green Salad", Quantity: 2, PriceCents: 15000, Calories: 300, IsHealthy: true},
		{OrderID: order.ID, MenuItemID: "item-2", Name: "Cheese Burger", Quantity: 1, PriceCents: 8000, Calories: 500},
	}
	require.NoError(t, repo.CreateItemsBulkTx(ctx, tx, items))
	assert.NotEmpty(t, items[0].ID)
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderRollsBackWhenItemsFail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewOrderRepo(db)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM orders").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec("INSERT INTO order_items").
		WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	order := &model.Order{CustomerID: "cust-1", RestaurantID: "rest-1", TotalCents: 500, DeliveryAddress: "12 Main St"}
	require.NoError(t, repo.CreateTx(ctx, tx, order))

	err = repo.CreateItemsBulkTx(ctx, tx, []model.OrderItem{
		{OrderID: order.ID, MenuItemID: "gone", Quantity: 1, PriceCents: 500},
	})
	require.Error(t, err)
	require.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateItemsBulkTxEmptySliceIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewOrderRepo(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, repo.CreateItemsBulkTx(ctx, tx, nil))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFacts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewOrderRepo(db)

	mock.ExpectQuery("SELECT o.customer_id, o.restaurant_id, rs.owner_id, o.status").
		WithArgs("order-1").
		WillReturnRows(sqlmock.NewRows([]string{"customer_id", "restaurant_id", "owner_id", "status"}).
			AddRow("cust-1", "rest-1", "owner-1", model.StatusPreparing))

	facts, err := repo.GetFacts(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, "cust-1", facts.CustomerID)
	assert.Equal(t, "owner-1", facts.RestaurantOwnerID)
	assert.Equal(t, model.StatusPreparing, facts.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDetailServesLinesFromStoredSnapshots(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewOrderRepo(db)

	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM orders o").
		WithArgs("order-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "customer_id", "restaurant_id", "name", "total_cents",
			"delivery_address", "instructions", "status", "created_at",
		}).AddRow("order-1", "cust-1", "rest-1", "Green Bowl", 38000,
			"12 Main St", nil, model.StatusDelivered, created))

	// Lines come from order_items alone; the menu_items table is never
	// touched, so the order renders even after its items are deleted.
	mock.ExpectQuery("SELECT order_id, menu_item_id, name, quantity, price_cents, calories, is_healthy\\s+FROM order_items").
		WithArgs("order-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"order_id", "menu_item_id", "name", "quantity", "price_cents", "calories", "is_healthy",
		}).
			AddRow("order-1", "item-2", "Cheese Burger", 1, 8000, 500, false).
			AddRow("order-1", "item-1", "Green Salad", 2, 15000, 300, true))

	d, err := repo.GetDetail(context.Background(), "order-1")
	require.NoError(t, err)
	require.Len(t, d.Items, 2)
	assert.Equal(t, "Cheese Burger", d.Items[0].Name)
	assert.Equal(t, int64(15000), d.Items[1].PriceCents)

	var lineTotal int64
	for _, l := range d.Items {
		lineTotal += l.PriceCents * int64(l.Quantity)
	}
	assert.Equal(t, d.TotalCents, lineTotal)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLinesByCustomerSinceExcludesCancelled(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewOrderRepo(db)

	since := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	cols := []string{"id", "order_id", "menu_item_id", "name", "quantity", "price_cents", "calories", "is_healthy", "created_at"}
	mock.ExpectQuery("FROM order_items oi").
		WithArgs("cust-1", model.StatusCancelled, since).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("li-1", "order-1", "item-1", "Green Salad", 2, 15000, 300, true, since.Add(24*time.Hour)))

	lines, err := repo.LinesByCustomerSince(context.Background(), "cust-1", since)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(15000), lines[0].PriceCents)
	assert.True(t, lines[0].IsHealthy)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLinesByCustomerSinceZeroTimeHasNoLowerBound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewOrderRepo(db)

	cols := []string{"id", "order_id", "menu_item_id", "name", "quantity", "price_cents", "calories", "is_healthy", "created_at"}
	mock.ExpectQuery("FROM order_items oi").
		WithArgs("cust-1", model.StatusCancelled).
		WillReturnRows(sqlmock.NewRows(cols))

	lines, err := repo.LinesByCustomerSince(context.Background(), "cust-1", time.Time{})
	require.NoError(t, err)
	assert.Empty(t, lines)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardForOwnerAggregates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewOrderRepo(db)

	mock.ExpectQuery("FROM restaurants rs").
		WithArgs(model.StatusCancelled, "owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "orders", "revenue"}).
			AddRow("rest-1", "Green Bowl", 3, 9000).
			AddRow("rest-2", "Pizza Hub", 1, 2500))
	mock.ExpectQuery("GROUP BY o.status").
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"status", "n"}).
			AddRow(model.StatusPending, 1).
			AddRow(model.StatusDelivered, 2).
			AddRow(model.StatusCancelled, 1))

	d, err := repo.DashboardForOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), d.TotalOrders)
	assert.Equal(t, int64(11500), d.RevenueCents)
	assert.Equal(t, int64(2), d.StatusCounts[model.StatusDelivered])
	require.Len(t, d.Restaurants, 2)
	assert.Equal(t, "Green Bowl", d.Restaurants[0].RestaurantName)

	assert.NoError(t, mock.ExpectationsWereMet())
}
