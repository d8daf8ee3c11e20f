package model

import "time"

// Contact is a person who may be linked from a supplier.  Email is unique
// across the whole table; only first_name is mandatory.
type Contact struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	FirstName   string    `json:"first_name"`
	LastName    *string   `json:"last_name"`
	Role        *string   `json:"role"`
	MobilePhone *string   `json:"mobile_phone"`
	Email       *string   `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
