package repository

import (
	"context"

	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/model"
)

// CategoryRepo persists per-user item categories.
type CategoryRepo struct{ db DBTX }

func NewCategoryRepo(db DBTX) *CategoryRepo { return &CategoryRepo{db: db} }

// ListByUser returns the user's categories ordered by id, matching the
// order they were cloned from the template at registration.
func (r *CategoryRepo) ListByUser(ctx context.Context, userID int64) ([]model.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, name, created_at FROM categories WHERE user_id=? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID fetches one category.
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, created_at FROM categories WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt)
	return c, translate(err)
}

// Create inserts a category for the user.
func (r *CategoryRepo) Create(ctx context.Context, userID int64, name string) (model.Category, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO categories (user_id, name) VALUES (?,?)", userID, name)
	if err != nil {
		return model.Category{}, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Category{}, err
	}
	return r.GetByID(ctx, id)
}

// Rename changes a category's name.
func (r *CategoryRepo) Rename(ctx context.Context, id int64, name string) (model.Category, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.Category{}, err
	}
	if _, err := r.db.ExecContext(ctx,
		"UPDATE categories SET name=? WHERE id=?", name, id); err != nil {
		return model.Category{}, translate(err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a category and returns the deleted row for the response
// envelope.  Items referencing it fall back to NULL in the store.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) (model.Category, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Category{}, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id=?", id); err != nil {
		return model.Category{}, err
	}
	return c, nil
}
