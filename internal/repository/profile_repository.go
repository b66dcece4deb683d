package repository

import (
	"context"
	"database/sql"

	"github.com/mealora/food-ordering/internal/model"
)

// ProfileRepo manages rows in the profiles table.  Exactly one profile
// exists per user; it is seeded by the registration transaction.
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

// CreateTx seeds a profile row inside the registration transaction.
func (r *ProfileRepo) CreateTx(ctx context.Context, tx *sql.Tx, userID, fullName string) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO profiles (user_id, full_name) VALUES (?,?)",
		userID, fullName)
	return err
}

// GetByUserID fetches the profile of a user.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (model.Profile, error) {
	var p model.Profile
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id,full_name,phone,avatar_url,created_at,updated_at FROM profiles WHERE user_id=? LIMIT 1",
		userID).Scan(&p.UserID, &p.FullName, &p.Phone, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Update rewrites the mutable profile fields.
func (r *ProfileRepo) Update(ctx context.Context, userID, fullName, phone, avatarURL string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE profiles SET full_name=?, phone=?, avatar_url=? WHERE user_id=?",
		fullName, phone, avatarURL, userID)
	return err
}
