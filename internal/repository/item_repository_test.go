package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemRows(id int64, name string, quantity float64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "category_id", "supplier_id", "name", "quantity",
		"min_quantity", "price", "description", "created_at", "updated_at",
		"supplier_name", "category_name",
	}).AddRow(id, 1, nil, 2, name, quantity, 5.0, 9.99, nil, now, now, "Bolts & Co", nil)
}

func baseRecord() ItemRecord {
	return ItemRecord{
		UserID:      1,
		SupplierID:  2,
		Name:        "Hex Bolt",
		Quantity:    10,
		MinQuantity: 5,
		Price:       9.99,
	}
}

func TestUpsertInsertsFreshRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItemRepo(db)

	// One affected row means MySQL inserted rather than merged.
	mock.ExpectExec(`(?s)INSERT INTO items .+ ON DUPLICATE KEY UPDATE quantity = quantity \+ VALUES\(quantity\)`).
		WithArgs(int64(1), nil, int64(2), "Hex Bolt", 10.0, 5.0, 9.99, nil).
		WillReturnResult(sqlmock.NewResult(33, 1))
	mock.ExpectQuery(`(?s)SELECT .+ FROM items i .+ WHERE i\.user_id=\? AND i\.supplier_id=\? AND i\.name=\?`).
		WithArgs(int64(1), int64(2), "Hex Bolt").
		WillReturnRows(itemRows(33, "Hex Bolt", 10))

	item, created, err := repo.Upsert(context.Background(), baseRecord())
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(33), item.ID)
	assert.Equal(t, 10.0, item.Quantity)
	assert.Equal(t, "Bolts & Co", item.SupplierName)
}

func TestUpsertMergesOnNaturalKeyHit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItemRepo(db)

	// Two affected rows is MySQL's signal for an ON DUPLICATE KEY update.
	mock.ExpectExec(`(?s)INSERT INTO items`).
		WithArgs(int64(1), nil, int64(2), "Hex Bolt", 10.0, 5.0, 9.99, nil).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`(?s)SELECT .+ FROM items i`).
		WithArgs(int64(1), int64(2), "Hex Bolt").
		WillReturnRows(itemRows(33, "Hex Bolt", 25))

	item, created, err := repo.Upsert(context.Background(), baseRecord())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 25.0, item.Quantity)
}

func TestUpsertZeroQuantityMergeCountsAsMerge(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItemRepo(db)

	// Adding zero changes nothing, so MySQL reports zero affected rows.
	// That is still a merge, not a create.
	rec := baseRecord()
	rec.Quantity = 0

	mock.ExpectExec(`(?s)INSERT INTO items`).
		WithArgs(int64(1), nil, int64(2), "Hex Bolt", 0.0, 5.0, 9.99, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`(?s)SELECT .+ FROM items i`).
		WithArgs(int64(1), int64(2), "Hex Bolt").
		WillReturnRows(itemRows(33, "Hex Bolt", 25))

	_, created, err := repo.Upsert(context.Background(), rec)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestUpsertDanglingSupplier(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItemRepo(db)

	mock.ExpectExec(`(?s)INSERT INTO items`).
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "FK fails"})

	_, _, err := repo.Upsert(context.Background(), baseRecord())
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestUpdateReplacesQuantity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItemRepo(db)

	mock.ExpectQuery(`(?s)SELECT .+ FROM items i .+ WHERE i\.id=\?`).
		WithArgs(int64(33)).
		WillReturnRows(itemRows(33, "Hex Bolt", 25))
	mock.ExpectExec(`UPDATE items SET category_id=\?, supplier_id=\?, name=\?, quantity=\?`).
		WithArgs(nil, int64(2), "Hex Bolt", 3.0, 5.0, 9.99, nil, int64(33)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`(?s)SELECT .+ FROM items i .+ WHERE i\.id=\?`).
		WithArgs(int64(33)).
		WillReturnRows(itemRows(33, "Hex Bolt", 3))

	rec := baseRecord()
	rec.Quantity = 3
	item, err := repo.Update(context.Background(), 33, rec)
	require.NoError(t, err)
	assert.Equal(t, 3.0, item.Quantity)
}

func TestItemSearchSharesArgsBetweenCountAndData(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItemRepo(db)

	mock.ExpectQuery(`(?s)SELECT COUNT\(\*\) .+ WHERE i\.user_id = \? AND LOWER\(CONCAT_WS\(' ', i\.name, i\.description\)\) LIKE \? AND i\.quantity > 0 AND i\.quantity <= i\.min_quantity`).
		WithArgs(int64(1), "%bolt%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`(?s)SELECT .+ FROM items i .+ ORDER BY i\.quantity ASC LIMIT \? OFFSET \?`).
		WithArgs(int64(1), "%bolt%", 20, 0).
		WillReturnRows(itemRows(33, "Hex Bolt", 4))

	items, total, err := repo.Search(context.Background(), ItemFilter{
		UserID: 1,
		Q:      "Bolt",
		Stock:  "low",
		Sort:   "quantity",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Hex Bolt", items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemSearchIgnoresUnknownStockValue(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItemRepo(db)

	mock.ExpectQuery(`(?s)SELECT COUNT\(\*\)`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`(?s)SELECT .+ FROM items i .+ WHERE i\.user_id = \? ORDER BY i\.name ASC`).
		WithArgs(int64(1), 20, 0).
		WillReturnRows(itemRows(33, "Hex Bolt", 4))

	_, _, err := repo.Search(context.Background(), ItemFilter{
		UserID: 1,
		Stock:  "everything; DROP TABLE items",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
