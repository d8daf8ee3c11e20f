package model

import "time"

// Item is a stock line owned by one user.  The tuple
// (user_id, supplier_id, name) is the natural key: inserting the same tuple
// again merges quantities instead of creating a duplicate row.
type Item struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	CategoryID  *int64    `json:"category_id"`
	SupplierID  int64     `json:"supplier_id"`
	Name        string    `json:"name"`
	Quantity    float64   `json:"quantity"`
	MinQuantity float64   `json:"min_quantity"`
	Price       float64   `json:"price"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Display names resolved by joined reads.
	SupplierName string  `json:"supplier_name,omitempty"`
	CategoryName *string `json:"category_name,omitempty"`
}
