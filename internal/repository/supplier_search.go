package repository

import (
	"context"
	"strings"

	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/model"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/query"
)

// SupplierFilter defines the advanced supplier search.  Free text covers
// the supplier's own fields and the linked contact's name, email and
// phone; city and country narrow by exact match.
type SupplierFilter struct {
	UserID     int64
	Q          string
	City       string
	Country    string
	HasContact *bool
	Sort       string
	Dir        string
	Page       int
	Limit      int
}

// supplierSortColumns is the ORDER BY allow-list for supplier searches.
var supplierSortColumns = map[string]string{
	"name":        "s.name",
	"city":        "s.city",
	"country":     "s.country",
	"postal_code": "s.postal_code",
	"contact":     "ct.first_name",
	"created_at":  "s.created_at",
}

const supplierSearchSelect = `SELECT s.id, s.user_id, s.name, s.contact_id, s.street, s.postal_code, s.city, s.country, s.created_at, s.updated_at,
	TRIM(CONCAT(COALESCE(ct.first_name, ''), ' ', COALESCE(ct.last_name, ''))) AS contact_name
FROM suppliers s
LEFT JOIN contacts ct ON ct.id = s.contact_id`

const supplierSearchCount = `SELECT COUNT(*)
FROM suppliers s
LEFT JOIN contacts ct ON ct.id = s.contact_id`

// Search runs the filtered, sorted, paginated supplier query together with
// its matching count.  Both statements share one WHERE clause and one
// argument list.
func (r *SupplierRepo) Search(ctx context.Context, f SupplierFilter) ([]model.Supplier, int64, error) {
	qb := query.New().
		Where("s.user_id = ?", f.UserID).
		Search(f.Q,
			"s.name", "s.street", "s.postal_code", "s.city", "s.country",
			"ct.first_name", "ct.last_name", "ct.email", "ct.mobile_phone").
		OrderBy(f.Sort, f.Dir, supplierSortColumns, "s.name").
		Paginate(f.Page, f.Limit)

	if f.City != "" {
		qb.Where("LOWER(s.city) = ?", strings.ToLower(f.City))
	}
	if f.Country != "" {
		qb.Where("UPPER(s.country) = ?", strings.ToUpper(f.Country))
	}
	if f.HasContact != nil {
		if *f.HasContact {
			qb.Where("s.contact_id IS NOT NULL")
		} else {
			qb.Where("s.contact_id IS NULL")
		}
	}

	countSQL, countArgs := qb.Count(supplierSearchCount)
	var total int64
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL, dataArgs := qb.Data(supplierSearchSelect)
	rows, err := r.db.QueryContext(ctx, dataSQL, dataArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Supplier, 0, qb.Limit())
	for rows.Next() {
		var s model.Supplier
		var contactName *string
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.ContactID, &s.Street,
			&s.PostalCode, &s.City, &s.Country, &s.CreatedAt, &s.UpdatedAt,
			&contactName); err != nil {
			return nil, 0, err
		}
		if contactName != nil && *contactName != "" {
			s.ContactName = contactName
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}
