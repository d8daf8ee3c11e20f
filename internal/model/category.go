package model

import "time"

// Category is a per-user grouping for stock items.  Each row belongs to
// exactly one user; a fresh account starts with a clone of the
// category_default template table.
type Category struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
