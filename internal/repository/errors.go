// Package repository implements data access for every table.  Not-found
// is reported as sql.ErrNoRows, the same way single-row queries surface
// it; the sentinels below cover the driver errors handlers need to tell
// apart.
package repository

import "errors"

// ErrEmailExists is returned when registering with an email address that
// is already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrMenuItemInUse is returned when deleting a menu item that appears in
// historical orders.  Those rows are protected so order history never
// changes; the item should be marked unavailable instead.
var ErrMenuItemInUse = errors.New("menu item appears in past orders")
