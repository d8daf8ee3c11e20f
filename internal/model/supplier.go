package model

import "time"

// Supplier is a vendor owned by one user.  Name is unique per user and the
// contact link is a weak reference: deleting the contact nulls it out.
// Country is an ISO-2 code defaulting to "PL".
type Supplier struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name"`
	ContactID  *int64    `json:"contact_id"`
	Street     *string   `json:"street"`
	PostalCode *string   `json:"postal_code"`
	City       *string   `json:"city"`
	Country    string    `json:"country"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Populated by search queries that join the linked contact.
	ContactName *string `json:"contact_name,omitempty"`
}
