package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/mealora/food-ordering/internal/model"
)

// RoleRepo manages rows in the user_roles table.  Role rows are system
// managed: they are only ever written by the registration transaction,
// never through a client-callable endpoint.
type RoleRepo struct{ DB *sql.DB }

func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{DB: db} }

// GrantTx inserts a role row for the user inside the given transaction.
// Granting a role the user already holds is a no-op.
func (r *RoleRepo) GrantTx(ctx context.Context, tx *sql.Tx, userID string, role model.Role) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO user_roles (id, user_id, role) VALUES (?,?,?)",
		uuid.NewString(), userID, string(role))
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return nil
	}
	return err
}

// ListByUser returns every role the user holds, oldest grant first.
func (r *RoleRepo) ListByUser(ctx context.Context, userID string) ([]model.Role, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT role FROM user_roles WHERE user_id=? ORDER BY created_at", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	roles := make([]model.Role, 0, 2)
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, model.Role(role))
	}
	return roles, rows.Err()
}
