// Package repository implements store access on top of database/sql.  The
// sentinel errors below let handlers translate constraint violations into
// client errors without inspecting driver details themselves.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when an id-addressed row does not exist.
// Handlers translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert or update trips a unique
// constraint (duplicate email, duplicate supplier name per user).  The
// item natural key never surfaces this on the upsert path, which merges
// instead.  Handlers translate it into HTTP 409 with a field-specific
// message.
var ErrDuplicate = errors.New("duplicate entry")

// ErrMissingReference is returned when a foreign key points at a row that
// does not exist (dangling supplier/category/contact id).  Handlers
// translate it into HTTP 400 naming the reference.
var ErrMissingReference = errors.New("referenced row does not exist")

// ErrInUse is returned when a delete would orphan child rows, such as
// removing a supplier that still has items.  Handlers translate it into
// HTTP 409.
var ErrInUse = errors.New("row is referenced by other rows")

// MySQL error numbers for constraint violations.
const (
	mysqlErrDupEntry   = 1062
	mysqlErrNoRefRow   = 1452
	mysqlErrNoRefRowUp = 1216
	mysqlErrRowIsRef   = 1451
)

// translate maps driver errors onto the package sentinels, passing
// everything else through untouched.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlErrDupEntry:
			return ErrDuplicate
		case mysqlErrNoRefRow, mysqlErrNoRefRowUp:
			return ErrMissingReference
		case mysqlErrRowIsRef:
			return ErrInUse
		}
	}
	return err
}

// DBTX is the narrow store surface every repository depends on.  Both
// *sql.DB and *sql.Tx satisfy it, so the same query code runs inside and
// outside transactions.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
