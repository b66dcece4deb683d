package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mealora/food-ordering/internal/model"
)

var (
	guest    = Principal{}
	alice    = Principal{ID: "alice", Roles: []model.Role{model.RoleCustomer}}
	bob      = Principal{ID: "bob", Roles: []model.Role{model.RoleOwner}}
	carolAll = Principal{ID: "carol", Roles: []model.Role{model.RoleCustomer, model.RoleOwner}}
)

func TestRestaurantReadVisibility(t *testing.T) {
	active := RestaurantRow{OwnerID: "bob", IsActive: true}
	hidden := RestaurantRow{OwnerID: "bob", IsActive: false}

	assert.True(t, Decide(guest, OpRead, TableRestaurants, active))
	assert.False(t, Decide(guest, OpRead, TableRestaurants, hidden))
	assert.False(t, Decide(alice, OpRead, TableRestaurants, hidden))
	// The owner sees their own restaurant in any state.
	assert.True(t, Decide(bob, OpRead, TableRestaurants, hidden))
}

func TestRestaurantInsertRequiresOwnerRoleAndSelf(t *testing.T) {
	assert.True(t, Decide(bob, OpInsert, TableRestaurants, RestaurantRow{OwnerID: "bob"}))
	// Right role, wrong owner.
	assert.False(t, Decide(bob, OpInsert, TableRestaurants, RestaurantRow{OwnerID: "alice"}))
	// Right owner, missing role.
	assert.False(t, Decide(alice, OpInsert, TableRestaurants, RestaurantRow{OwnerID: "alice"}))
	assert.False(t, Decide(guest, OpInsert, TableRestaurants, RestaurantRow{OwnerID: ""}))
}

func TestMenuItemOwnerManagesAnyState(t *testing.T) {
	unavailable := MenuItemRow{RestaurantOwnerID: "bob", IsAvailable: false}

	for _, op := range []Operation{OpRead, OpInsert, OpUpdate, OpDelete} {
		assert.True(t, Decide(bob, op, TableMenuItems, unavailable), "op %d", op)
		assert.False(t, Decide(alice, op, TableMenuItems, unavailable), "op %d", op)
	}
	// Guests read available items only.
	assert.True(t, Decide(guest, OpRead, TableMenuItems, MenuItemRow{RestaurantOwnerID: "bob", IsAvailable: true}))
	assert.False(t, Decide(guest, OpRead, TableMenuItems, unavailable))
}

func TestOrderVisibilityIsCustomerOrOwner(t *testing.T) {
	row := OrderRow{CustomerID: "alice", RestaurantOwnerID: "bob"}

	assert.True(t, Decide(alice, OpRead, TableOrders, row))
	assert.True(t, Decide(bob, OpRead, TableOrders, row))
	assert.False(t, Decide(guest, OpRead, TableOrders, row))
	assert.False(t, Decide(carolAll, OpRead, TableOrders, row))
}

func TestOrderInsertRequiresCustomerRoleAndSelf(t *testing.T) {
	assert.True(t, Decide(alice, OpInsert, TableOrders, OrderRow{CustomerID: "alice"}))
	// Proposed row names someone else as the customer.
	assert.False(t, Decide(alice, OpInsert, TableOrders, OrderRow{CustomerID: "bob"}))
	// Owners without the customer role cannot place orders.
	assert.False(t, Decide(bob, OpInsert, TableOrders, OrderRow{CustomerID: "bob"}))
	// A multi-role principal orders through its customer role.
	assert.True(t, Decide(carolAll, OpInsert, TableOrders, OrderRow{CustomerID: "carol"}))
}

func TestOrderStatusUpdateIsOwnerOnly(t *testing.T) {
	row := OrderRow{CustomerID: "alice", RestaurantOwnerID: "bob"}

	assert.True(t, Decide(bob, OpUpdate, TableOrders, row))
	assert.False(t, Decide(alice, OpUpdate, TableOrders, row))
	// No delete rule exists for orders at all.
	assert.False(t, Decide(bob, OpDelete, TableOrders, row))
}

func TestOrderItemsInheritOrderFacts(t *testing.T) {
	row := OrderItemRow{OrderCustomerID: "alice", RestaurantOwnerID: "bob"}

	assert.True(t, Decide(alice, OpRead, TableOrderItems, row))
	assert.True(t, Decide(bob, OpRead, TableOrderItems, row))
	assert.False(t, Decide(carolAll, OpRead, TableOrderItems, row))
	assert.True(t, Decide(alice, OpInsert, TableOrderItems, row))
	assert.False(t, Decide(bob, OpInsert, TableOrderItems, row))
	// Snapshots are immutable: nobody updates or deletes line items.
	assert.False(t, Decide(alice, OpUpdate, TableOrderItems, row))
	assert.False(t, Decide(bob, OpDelete, TableOrderItems, row))
}

func TestProfilesPublicReadOwnWrite(t *testing.T) {
	row := ProfileRow{UserID: "alice"}

	assert.True(t, Decide(guest, OpRead, TableProfiles, row))
	assert.True(t, Decide(alice, OpUpdate, TableProfiles, row))
	assert.False(t, Decide(bob, OpUpdate, TableProfiles, row))
	assert.False(t, Decide(guest, OpDelete, TableProfiles, row))
}

func TestRoleRowsAreReadOnlyToTheirUser(t *testing.T) {
	row := RoleRow{UserID: "alice"}

	assert.True(t, Decide(alice, OpRead, TableUserRoles, row))
	assert.False(t, Decide(bob, OpRead, TableUserRoles, row))
	for _, op := range []Operation{OpInsert, OpUpdate, OpDelete} {
		assert.False(t, Decide(alice, op, TableUserRoles, row), "op %d", op)
	}
}

func TestWrongRowTypeDenies(t *testing.T) {
	// A caller passing the wrong fact struct must never be granted
	// anything beyond unconditional rules.
	assert.False(t, Decide(bob, OpUpdate, TableRestaurants, OrderRow{RestaurantOwnerID: "bob"}))
	assert.False(t, Decide(alice, OpInsert, TableOrders, ProfileRow{UserID: "alice"}))
	assert.False(t, Decide(alice, OpRead, TableOrders, nil))
}

func TestDecisionsAreUnionOfRules(t *testing.T) {
	// An inactive restaurant fails the public-read rule but the owner
	// rule still grants: one passing rule is enough.
	hidden := RestaurantRow{OwnerID: "bob", IsActive: false}
	assert.True(t, Decide(bob, OpRead, TableRestaurants, hidden))

	// And for an active restaurant both rules pass; the decision is the
	// same either way.
	assert.True(t, Decide(bob, OpRead, TableRestaurants, RestaurantRow{OwnerID: "bob", IsActive: true}))
}

func TestHasRole(t *testing.T) {
	assert.True(t, carolAll.HasRole(model.RoleCustomer))
	assert.True(t, carolAll.HasRole(model.RoleOwner))
	assert.False(t, alice.HasRole(model.RoleOwner))
	assert.False(t, guest.HasRole(model.RoleCustomer))
}
