package model

import "time"

// User represents a row in the `users` table.  The password digest and the
// stored refresh-token hash never leave the server, so both are excluded
// from JSON rendering.
//
// Fields:
//
//	ID        – primary key identifier of the user.
//	Name      – display name.
//	Email     – unique email address.
//	Password  – bcrypt digest of the password.
//	TokenHash – SHA-256 hex digest of the active refresh token (nil when logged out).
//	RoleID    – foreign key into the roles catalogue (2 = worker by default).
//	CreatedAt – timestamp of creation.
//	UpdatedAt – timestamp of last update.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	TokenHash *string   `json:"-"`
	RoleID    uint8     `json:"role_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
