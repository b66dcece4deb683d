// Package authz implements the row-level access policy for every table in
// the schema.  Each table carries one or more named rules scoped to one or
// more operations.  A request is permitted when at least one rule for the
// requested (table, operation) pair evaluates true against the principal
// and the candidate row: the proposed row for inserts, the existing row
// for reads, updates and deletes.
//
// Rules form a union: declaration order is irrelevant and adding a rule
// can only ever grant more access, never revoke it.  Handlers call Decide
// before touching storage; repository queries additionally scope their SQL
// by the same conditions so that no code path can widen visibility.
//
// All predicates are pure functions over the Principal and a small
// row-fact struct, so they can be tested without a database.
package authz

import "github.com/mealora/food-ordering/internal/model"

// Operation is the kind of data access being attempted.
type Operation uint8

const (
	OpRead Operation = iota
	OpInsert
	OpUpdate
	OpDelete
)

// Table identifies the target of an access decision.
type Table string

const (
	TableProfiles    Table = "profiles"
	TableUserRoles   Table = "user_roles"
	TableRestaurants Table = "restaurants"
	TableMenuItems   Table = "menu_items"
	TableOrders      Table = "orders"
	TableOrderItems  Table = "order_items"
)

// Principal is the authenticated identity a request acts as.  Roles holds
// every role the user currently has; a principal may hold both CUSTOMER
// and RESTAURANT_OWNER at once.
type Principal struct {
	ID    string
	Roles []model.Role
}

// HasRole reports whether the principal holds the given role.  It is the
// only role test rules are allowed to use.
func (p Principal) HasRole(r model.Role) bool {
	for _, held := range p.Roles {
		if held == r {
			return true
		}
	}
	return false
}

// Row-fact structs carry only the columns the rules for a table inspect.
// Callers build them from the candidate row; for inserts the facts
// describe the proposed row, not any pre-existing state.

// ProfileRow describes a profiles row for policy evaluation.
type ProfileRow struct {
	UserID string
}

// RoleRow describes a user_roles row for policy evaluation.
type RoleRow struct {
	UserID string
}

// RestaurantRow describes a restaurants row for policy evaluation.
type RestaurantRow struct {
	OwnerID  string
	IsActive bool
}

// MenuItemRow describes a menu_items row for policy evaluation.  The
// owner of the parent restaurant must be resolved by the caller.
type MenuItemRow struct {
	RestaurantOwnerID string
	IsAvailable       bool
}

// OrderRow describes an orders row for policy evaluation.  The owner of
// the referenced restaurant must be resolved by the caller.
type OrderRow struct {
	CustomerID        string
	RestaurantOwnerID string
}

// OrderItemRow describes an order_items row for policy evaluation.  The
// facts are inherited from the parent order.
type OrderItemRow struct {
	OrderCustomerID   string
	RestaurantOwnerID string
}

// rule binds a predicate to one table and a set of operations.  The name
// exists only to make test failures and policy listings readable.
type rule struct {
	table Table
	ops   []Operation
	name  string
	allow func(p Principal, row any) bool
}

func (r rule) covers(op Operation) bool {
	for _, o := range r.ops {
		if o == op {
			return true
		}
	}
	return false
}

var all = []Operation{OpRead, OpInsert, OpUpdate, OpDelete}

// rules is the complete policy.  Predicates that receive a row of an
// unexpected type deny, so a caller mistake can never grant access.
var rules = []rule{
	{TableProfiles, []Operation{OpRead}, "profiles_public_read",
		func(_ Principal, _ any) bool { return true }},
	{TableProfiles, []Operation{OpInsert, OpUpdate}, "profiles_own_write",
		func(p Principal, row any) bool {
			r, ok := row.(ProfileRow)
			return ok && p.ID == r.UserID
		}},

	{TableUserRoles, []Operation{OpRead}, "roles_own_read",
		func(p Principal, row any) bool {
			r, ok := row.(RoleRow)
			return ok && p.ID == r.UserID
		}},
	// No insert/update/delete rules: role rows are system managed and only
	// ever written by the registration hook, which runs above the policy.

	{TableRestaurants, []Operation{OpRead}, "restaurants_active_read",
		func(_ Principal, row any) bool {
			r, ok := row.(RestaurantRow)
			return ok && r.IsActive
		}},
	{TableRestaurants, []Operation{OpRead}, "restaurants_owner_read",
		func(p Principal, row any) bool {
			r, ok := row.(RestaurantRow)
			return ok && p.ID == r.OwnerID
		}},
	{TableRestaurants, []Operation{OpInsert}, "restaurants_owner_insert",
		func(p Principal, row any) bool {
			r, ok := row.(RestaurantRow)
			return ok && p.HasRole(model.RoleOwner) && p.ID == r.OwnerID
		}},
	{TableRestaurants, []Operation{OpUpdate}, "restaurants_owner_update",
		func(p Principal, row any) bool {
			r, ok := row.(RestaurantRow)
			return ok && p.ID == r.OwnerID
		}},

	{TableMenuItems, []Operation{OpRead}, "menu_items_available_read",
		func(_ Principal, row any) bool {
			r, ok := row.(MenuItemRow)
			return ok && r.IsAvailable
		}},
	{TableMenuItems, all, "menu_items_owner_manage",
		func(p Principal, row any) bool {
			r, ok := row.(MenuItemRow)
			return ok && p.ID == r.RestaurantOwnerID
		}},

	{TableOrders, []Operation{OpRead}, "orders_customer_read",
		func(p Principal, row any) bool {
			r, ok := row.(OrderRow)
			return ok && p.ID == r.CustomerID
		}},
	{TableOrders, []Operation{OpRead}, "orders_owner_read",
		func(p Principal, row any) bool {
			r, ok := row.(OrderRow)
			return ok && p.ID == r.RestaurantOwnerID
		}},
	{TableOrders, []Operation{OpInsert}, "orders_customer_insert",
		func(p Principal, row any) bool {
			r, ok := row.(OrderRow)
			return ok && p.HasRole(model.RoleCustomer) && p.ID == r.CustomerID
		}},
	{TableOrders, []Operation{OpUpdate}, "orders_owner_update",
		func(p Principal, row any) bool {
			r, ok := row.(OrderRow)
			return ok && p.ID == r.RestaurantOwnerID
		}},

	{TableOrderItems, []Operation{OpRead}, "order_items_customer_read",
		func(p Principal, row any) bool {
			r, ok := row.(OrderItemRow)
			return ok && p.ID == r.OrderCustomerID
		}},
	{TableOrderItems, []Operation{OpRead}, "order_items_owner_read",
		func(p Principal, row any) bool {
			r, ok := row.(OrderItemRow)
			return ok && p.ID == r.RestaurantOwnerID
		}},
	{TableOrderItems, []Operation{OpInsert}, "order_items_customer_insert",
		func(p Principal, row any) bool {
			r, ok := row.(OrderItemRow)
			return ok && p.ID == r.OrderCustomerID
		}},
}

// Decide evaluates the policy for one access.  It returns true when at
// least one rule registered for the table covers the operation and allows
// the principal against the given row facts.
func Decide(p Principal, op Operation, table Table, row any) bool {
	for _, r := range rules {
		if r.table == table && r.covers(op) && r.allow(p, row) {
			return true
		}
	}
	return false
}
