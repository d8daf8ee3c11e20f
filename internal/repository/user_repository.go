package repository

import (
	"context"
	"database/sql"

	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/model"
)

// UserRepo persists users and their single active refresh-token hash.
// It holds the full *sql.DB rather than DBTX because registration opens
// its own transaction.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, name, email, password, token, role_id, created_at, updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.TokenHash,
		&u.RoleID, &u.CreatedAt, &u.UpdatedAt)
	return u, translate(err)
}

// Register creates a user and clones the category_default template into the
// new account, inside one transaction: either the user row and its default
// categories both commit, or neither does.
func (r *UserRepo) Register(ctx context.Context, name, email, passwordHash string) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (name, email, password, role_id) VALUES (?,?,?,?)",
		name, email, passwordHash, 2)
	if err != nil {
		return 0, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO categories (user_id, name) SELECT ?, name FROM category_default ORDER BY id",
		id)
	if err != nil {
		return 0, translate(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// GetByEmail fetches a user by exact email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// List returns every user.  Password digests stay in the struct but are
// excluded from JSON rendering.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.TokenHash,
			&u.RoleID, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update overwrites a user's profile fields and password digest.
func (r *UserRepo) Update(ctx context.Context, id int64, name, email, passwordHash string) (model.User, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, email=?, password=? WHERE id=?",
		name, email, passwordHash, id)
	if err != nil {
		return model.User{}, translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Affected can legitimately be 0 when nothing changed, so confirm
		// the row exists before reporting not found.
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.User{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user; dependent rows cascade in the store.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByRefreshHash locates the user whose stored refresh-token hash
// matches.  ErrNotFound means the presented token has been revoked or never
// existed; callers must not distinguish the two.
func (r *UserRepo) FindByRefreshHash(ctx context.Context, hash string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE token=? LIMIT 1", hash))
}

// StoreRefreshHash overwrites the user's refresh-token hash, implicitly
// revoking any previous session.
func (r *UserRepo) StoreRefreshHash(ctx context.Context, userID int64, hash string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET token=? WHERE id=?", hash, userID)
	return err
}

// ClearRefreshHash revokes the user's active refresh token.
func (r *UserRepo) ClearRefreshHash(ctx context.Context, userID int64) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET token=NULL WHERE id=?", userID)
	return err
}
