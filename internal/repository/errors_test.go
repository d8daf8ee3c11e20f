package repository

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(sql.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, translate(&mysql.MySQLError{Number: 1062}), ErrDuplicate)
	assert.ErrorIs(t, translate(&mysql.MySQLError{Number: 1452}), ErrMissingReference)
	assert.ErrorIs(t, translate(&mysql.MySQLError{Number: 1216}), ErrMissingReference)
	assert.ErrorIs(t, translate(&mysql.MySQLError{Number: 1451}), ErrInUse)

	// Unrecognized errors pass through untouched.
	boom := errors.New("boom")
	assert.Equal(t, boom, translate(boom))
	other := &mysql.MySQLError{Number: 1045}
	assert.Equal(t, error(other), translate(other))
}
