package repository

import (
	"context"
	"strings"

	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/model"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/query"
)

// ItemFilter defines the advanced item search: free text over name and
// description, a derived stock-status filter and exact category/supplier
// narrowing.
type ItemFilter struct {
	UserID     int64
	Q          string
	Stock      string // "", "out", "low" or "ok"
	CategoryID *int64
	SupplierID *int64
	Sort       string
	Dir        string
	Page       int
	Limit      int
}

// itemSortColumns is the ORDER BY allow-list for item searches.
var itemSortColumns = map[string]string{
	"name":         "i.name",
	"quantity":     "i.quantity",
	"min_quantity": "i.min_quantity",
	"price":        "i.price",
	"supplier":     "s.name",
	"category":     "c.name",
	"created_at":   "i.created_at",
}

// stockPredicates is the tri-state stock filter.  The predicates are fixed
// SQL fragments selected by allow-list membership, never built from user
// input: out = nothing left, low = at or under the reorder threshold,
// ok = above it.
var stockPredicates = map[string]string{
	"out": "i.quantity = 0",
	"low": "i.quantity > 0 AND i.quantity <= i.min_quantity",
	"ok":  "i.quantity > i.min_quantity",
}

const itemSearchCount = `SELECT COUNT(*)
FROM items i
JOIN suppliers s ON s.id = i.supplier_id
LEFT JOIN categories c ON c.id = i.category_id`

// Search runs the filtered, sorted, paginated item query together with its
// matching count.  Both statements share one WHERE clause and one argument
// list, so total always covers at least the returned page.
func (r *ItemRepo) Search(ctx context.Context, f ItemFilter) ([]model.Item, int64, error) {
	qb := query.New().
		Where("i.user_id = ?", f.UserID).
		Search(f.Q, "i.name", "i.description").
		OrderBy(f.Sort, f.Dir, itemSortColumns, "i.name").
		Paginate(f.Page, f.Limit)

	if pred, ok := stockPredicates[strings.ToLower(strings.TrimSpace(f.Stock))]; ok {
		qb.Where(pred)
	}
	if f.CategoryID != nil {
		qb.Where("i.category_id = ?", *f.CategoryID)
	}
	if f.SupplierID != nil {
		qb.Where("i.supplier_id = ?", *f.SupplierID)
	}

	countSQL, countArgs := qb.Count(itemSearchCount)
	var total int64
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL, dataArgs := qb.Data(itemJoinedSelect)
	rows, err := r.db.QueryContext(ctx, dataSQL, dataArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items, err := collectItems(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
