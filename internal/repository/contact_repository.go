package repository

import (
	"context"
	"database/sql"

	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/model"
)

// ContactRepo persists contacts: the people suppliers may link to.
type ContactRepo struct{ db DBTX }

func NewContactRepo(db DBTX) *ContactRepo { return &ContactRepo{db: db} }

const contactColumns = "id, user_id, first_name, last_name, role, mobile_phone, email, created_at, updated_at"

func scanContact(row *sql.Row) (model.Contact, error) {
	var c model.Contact
	err := row.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Role,
		&c.MobilePhone, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	return c, translate(err)
}

// ListByUser returns the user's contacts ordered by first name.
func (r *ContactRepo) ListByUser(ctx context.Context, userID int64) ([]model.Contact, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+contactColumns+" FROM contacts WHERE user_id=? ORDER BY first_name, last_name", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Contact{}
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Role,
			&c.MobilePhone, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID fetches one contact.
func (r *ContactRepo) GetByID(ctx context.Context, id int64) (model.Contact, error) {
	return scanContact(r.db.QueryRowContext(ctx,
		"SELECT "+contactColumns+" FROM contacts WHERE id=? LIMIT 1", id))
}

// ContactRecord carries the writable contact columns.
type ContactRecord struct {
	UserID      int64
	FirstName   string
	LastName    *string
	Role        *string
	MobilePhone *string
	Email       *string
}

// Create inserts a contact.  A duplicate email surfaces as ErrDuplicate.
func (r *ContactRepo) Create(ctx context.Context, rec ContactRecord) (model.Contact, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO contacts (user_id, first_name, last_name, role, mobile_phone, email) VALUES (?,?,?,?,?,?)",
		rec.UserID, rec.FirstName, rec.LastName, rec.Role, rec.MobilePhone, rec.Email)
	if err != nil {
		return model.Contact{}, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Contact{}, err
	}
	return r.GetByID(ctx, id)
}

// Update overwrites a contact's writable columns.
func (r *ContactRepo) Update(ctx context.Context, id int64, rec ContactRecord) (model.Contact, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.Contact{}, err
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE contacts SET first_name=?, last_name=?, role=?, mobile_phone=?, email=? WHERE id=?",
		rec.FirstName, rec.LastName, rec.Role, rec.MobilePhone, rec.Email, id)
	if err != nil {
		return model.Contact{}, translate(err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a contact and returns the deleted row.  Suppliers linking
// to it keep working: the store nulls their contact_id.
func (r *ContactRepo) Delete(ctx context.Context, id int64) (model.Contact, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Contact{}, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM contacts WHERE id=?", id); err != nil {
		return model.Contact{}, err
	}
	return c, nil
}
