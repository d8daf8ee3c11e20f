package repository

import (
	"context"
	"database/sql"

	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/model"
)

// ItemRepo persists stock items.  Creation goes through Upsert, which
// merges quantities when the natural key (user_id, supplier_id, name)
// already exists.
type ItemRepo struct{ db DBTX }

func NewItemRepo(db DBTX) *ItemRepo { return &ItemRepo{db: db} }

const itemJoinedSelect = `SELECT i.id, i.user_id, i.category_id, i.supplier_id, i.name, i.quantity, i.min_quantity, i.price, i.description, i.created_at, i.updated_at,
	s.name AS supplier_name, c.name AS category_name
FROM items i
JOIN suppliers s ON s.id = i.supplier_id
LEFT JOIN categories c ON c.id = i.category_id`

func scanItem(row *sql.Row) (model.Item, error) {
	var it model.Item
	err := row.Scan(&it.ID, &it.UserID, &it.CategoryID, &it.SupplierID, &it.Name,
		&it.Quantity, &it.MinQuantity, &it.Price, &it.Description,
		&it.CreatedAt, &it.UpdatedAt, &it.SupplierName, &it.CategoryName)
	return it, translate(err)
}

// ItemRecord carries the writable item columns.
type ItemRecord struct {
	UserID      int64
	CategoryID  *int64
	SupplierID  int64
	Name        string
	Quantity    float64
	MinQuantity float64
	Price       float64
	Description *string
}

// Upsert inserts the item or, when a row with the same natural key already
// exists, atomically adds the incoming quantity to it, leaving every other
// column untouched.  The conflict handling lives entirely in the store's
// conditional write: two concurrent calls for the same key cannot both
// insert.  The returned flag reports whether a new row was created; MySQL
// signals an insert with one affected row and a merge with two (or zero
// when adding a zero quantity changed nothing).  Any other constraint
// failure maps to ErrDuplicate or ErrMissingReference.
func (r *ItemRepo) Upsert(ctx context.Context, rec ItemRecord) (model.Item, bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO items (user_id, category_id, supplier_id, name, quantity, min_quantity, price, description)
VALUES (?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)`,
		rec.UserID, rec.CategoryID, rec.SupplierID, rec.Name,
		rec.Quantity, rec.MinQuantity, rec.Price, rec.Description)
	if err != nil {
		return model.Item{}, false, translate(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Item{}, false, err
	}
	created := affected == 1

	item, err := r.GetByNaturalKey(ctx, rec.UserID, rec.SupplierID, rec.Name)
	return item, created, err
}

// GetByNaturalKey re-reads an item by its merge key, joined with the
// supplier and category display names.
func (r *ItemRepo) GetByNaturalKey(ctx context.Context, userID, supplierID int64, name string) (model.Item, error) {
	return scanItem(r.db.QueryRowContext(ctx,
		itemJoinedSelect+" WHERE i.user_id=? AND i.supplier_id=? AND i.name=? LIMIT 1",
		userID, supplierID, name))
}

// GetByID fetches one item joined with its display names.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (model.Item, error) {
	return scanItem(r.db.QueryRowContext(ctx,
		itemJoinedSelect+" WHERE i.id=? LIMIT 1", id))
}

// ListByUser returns the user's items, newest first.
func (r *ItemRepo) ListByUser(ctx context.Context, userID int64) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		itemJoinedSelect+" WHERE i.user_id=? ORDER BY i.created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

// Update overwrites an item's writable columns.  Quantity is replaced, not
// merged: merging is exclusively the Upsert path's behavior.
func (r *ItemRepo) Update(ctx context.Context, id int64, rec ItemRecord) (model.Item, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.Item{}, err
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE items SET category_id=?, supplier_id=?, name=?, quantity=?, min_quantity=?, price=?, description=? WHERE id=?",
		rec.CategoryID, rec.SupplierID, rec.Name, rec.Quantity, rec.MinQuantity,
		rec.Price, rec.Description, id)
	if err != nil {
		return model.Item{}, translate(err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes an item.
func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM items WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func collectItems(rows *sql.Rows) ([]model.Item, error) {
	out := []model.Item{}
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.UserID, &it.CategoryID, &it.SupplierID, &it.Name,
			&it.Quantity, &it.MinQuantity, &it.Price, &it.Description,
			&it.CreatedAt, &it.UpdatedAt, &it.SupplierName, &it.CategoryName); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
