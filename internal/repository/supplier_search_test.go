package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func supplierSearchRows(id int64, name string, contactName *string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "name", "contact_id", "street", "postal_code",
		"city", "country", "created_at", "updated_at", "contact_name",
	}).AddRow(id, 1, name, nil, nil, nil, "Warsaw", "PL", now, now, contactName)
}

func TestSupplierSearchFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSupplierRepo(db)

	hasContact := true
	mock.ExpectQuery(`(?s)SELECT COUNT\(\*\).+FROM suppliers s\s+LEFT JOIN contacts ct ON ct\.id = s\.contact_id WHERE s\.user_id = \? AND LOWER\(s\.city\) = \? AND UPPER\(s\.country\) = \? AND s\.contact_id IS NOT NULL`).
		WithArgs(int64(1), "warsaw", "PL").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	name := "Jan Kowalski"
	mock.ExpectQuery(`(?s)SELECT .+ contact_name.+FROM suppliers s.+ORDER BY s\.name ASC LIMIT \? OFFSET \?`).
		WithArgs(int64(1), "warsaw", "PL", 20, 0).
		WillReturnRows(supplierSearchRows(5, "Bolts & Co", &name))

	out, total, err := repo.Search(context.Background(), SupplierFilter{
		UserID:     1,
		City:       "Warsaw",
		Country:    "pl",
		HasContact: &hasContact,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].ContactName)
	assert.Equal(t, "Jan Kowalski", *out[0].ContactName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupplierSearchDropsBlankContactName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSupplierRepo(db)

	mock.ExpectQuery(`(?s)SELECT COUNT\(\*\)`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	blank := ""
	mock.ExpectQuery(`(?s)SELECT .+ FROM suppliers s`).
		WithArgs(int64(1), 20, 0).
		WillReturnRows(supplierSearchRows(5, "Bolts & Co", &blank))

	out, _, err := repo.Search(context.Background(), SupplierFilter{UserID: 1})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Nil(t, out[0].ContactName)
}
