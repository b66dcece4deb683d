package model

import "time"

// Role names a capability grant held by a user.  A user may hold several
// roles at once; the user_roles table enforces uniqueness per (user, role)
// pair.  Every user receives RoleCustomer at registration; RoleOwner is
// granted when the account is registered as a restaurant owner.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleOwner    Role = "RESTAURANT_OWNER"
)

// Valid reports whether the role is one of the two known values.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleOwner
}

// User represents an application account as stored in the `users` table.
// The password is never stored in plain form; only its bcrypt hash.
//
// Fields:
//  ID           – UUID primary key.
//  Email        – unique email address (stored lower-cased).
//  PasswordHash – bcrypt hashed password.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           string    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// UserRole is a row in the `user_roles` table: one held role per row.
type UserRole struct {
	ID        string    // user_roles.id
	UserID    string    // user_roles.user_id
	Role      Role      // user_roles.role
	CreatedAt time.Time // user_roles.created_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  The raw
// token is returned to the client once; only its SHA-256 hash is stored.
//
// Fields:
//  ID        – UUID primary key.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null while active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        string     // refresh_tokens.id
	UserID    string     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
