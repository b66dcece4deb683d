package model

import "time"

// DefaultDisplayName is used when a registration carries no display name.
const DefaultDisplayName = "New User"

// Profile holds per-user display data as stored in the `profiles` table.
// Exactly one profile exists per user; it is created together with the
// account inside the registration transaction.  The primary key is the
// owning user's ID.
//
// Fields:
//  UserID    – owning user's UUID (primary key and FK to users).
//  FullName  – display name shown to other users.
//  Phone     – contact phone number (may be empty).
//  AvatarURL – reference to a profile image (may be empty).
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Profile struct {
	UserID    string    // profiles.user_id
	FullName  string    // profiles.full_name
	Phone     string    // profiles.phone
	AvatarURL string    // profiles.avatar_url
	CreatedAt time.Time // profiles.created_at
	UpdatedAt time.Time // profiles.updated_at
}
