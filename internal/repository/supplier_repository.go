package repository

import (
	"context"
	"database/sql"

	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/model"
)

// SupplierRepo persists suppliers.  Supplier names are unique per user;
// the contact link is weak and survives contact deletion as NULL.
type SupplierRepo struct{ db DBTX }

func NewSupplierRepo(db DBTX) *SupplierRepo { return &SupplierRepo{db: db} }

const supplierColumns = "id, user_id, name, contact_id, street, postal_code, city, country, created_at, updated_at"

func scanSupplier(row *sql.Row) (model.Supplier, error) {
	var s model.Supplier
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.ContactID, &s.Street,
		&s.PostalCode, &s.City, &s.Country, &s.CreatedAt, &s.UpdatedAt)
	return s, translate(err)
}

// ListByUser returns the user's suppliers ordered by name.
func (r *SupplierRepo) ListByUser(ctx context.Context, userID int64) ([]model.Supplier, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+supplierColumns+" FROM suppliers WHERE user_id=? ORDER BY name", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Supplier{}
	for rows.Next() {
		var s model.Supplier
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.ContactID, &s.Street,
			&s.PostalCode, &s.City, &s.Country, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID fetches one supplier.
func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (model.Supplier, error) {
	return scanSupplier(r.db.QueryRowContext(ctx,
		"SELECT "+supplierColumns+" FROM suppliers WHERE id=? LIMIT 1", id))
}

// SupplierRecord carries the writable supplier columns.
type SupplierRecord struct {
	UserID     int64
	Name       string
	ContactID  *int64
	Street     *string
	PostalCode *string
	City       *string
	Country    string
}

// Create inserts a supplier.  A duplicate (user, name) pair surfaces as
// ErrDuplicate, a dangling contact_id as ErrMissingReference.
func (r *SupplierRepo) Create(ctx context.Context, rec SupplierRecord) (model.Supplier, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO suppliers (user_id, name, contact_id, street, postal_code, city, country) VALUES (?,?,?,?,?,?,?)",
		rec.UserID, rec.Name, rec.ContactID, rec.Street, rec.PostalCode, rec.City, rec.Country)
	if err != nil {
		return model.Supplier{}, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Supplier{}, err
	}
	return r.GetByID(ctx, id)
}

// Update overwrites a supplier's writable columns.
func (r *SupplierRepo) Update(ctx context.Context, id int64, rec SupplierRecord) (model.Supplier, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.Supplier{}, err
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE suppliers SET name=?, contact_id=?, street=?, postal_code=?, city=?, country=? WHERE id=?",
		rec.Name, rec.ContactID, rec.Street, rec.PostalCode, rec.City, rec.Country, id)
	if err != nil {
		return model.Supplier{}, translate(err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a supplier and returns the deleted row.
func (r *SupplierRepo) Delete(ctx context.Context, id int64) (model.Supplier, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Supplier{}, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM suppliers WHERE id=?", id); err != nil {
		return model.Supplier{}, translate(err)
	}
	return s, nil
}
