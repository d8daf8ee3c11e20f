package repository

import (
	"context"

	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/model"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/query"
)

// ContactFilter defines the advanced contact search: free text over the
// person's fields plus presence filters for phone and email.
type ContactFilter struct {
	UserID   int64
	Q        string
	HasPhone *bool
	HasEmail *bool
	Sort     string
	Dir      string
	Page     int
	Limit    int
}

// contactSortColumns is the ORDER BY allow-list for contact searches.
var contactSortColumns = map[string]string{
	"first_name": "c.first_name",
	"last_name":  "c.last_name",
	"email":      "c.email",
	"role":       "c.role",
	"created_at": "c.created_at",
}

const contactSearchSelect = `SELECT c.id, c.user_id, c.first_name, c.last_name, c.role, c.mobile_phone, c.email, c.created_at, c.updated_at
FROM contacts c`

// Search runs the filtered, sorted, paginated contact query together with
// its matching count.
func (r *ContactRepo) Search(ctx context.Context, f ContactFilter) ([]model.Contact, int64, error) {
	qb := query.New().
		Where("c.user_id = ?", f.UserID).
		Search(f.Q, "c.first_name", "c.last_name", "c.email", "c.role", "c.mobile_phone").
		OrderBy(f.Sort, f.Dir, contactSortColumns, "c.first_name").
		Paginate(f.Page, f.Limit)

	if f.HasPhone != nil {
		if *f.HasPhone {
			qb.Where("c.mobile_phone IS NOT NULL AND c.mobile_phone <> ''")
		} else {
			qb.Where("(c.mobile_phone IS NULL OR c.mobile_phone = '')")
		}
	}
	if f.HasEmail != nil {
		if *f.HasEmail {
			qb.Where("c.email IS NOT NULL AND c.email <> ''")
		} else {
			qb.Where("(c.email IS NULL OR c.email = '')")
		}
	}

	countSQL, countArgs := qb.Count("SELECT COUNT(*) FROM contacts c")
	var total int64
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL, dataArgs := qb.Data(contactSearchSelect)
	rows, err := r.db.QueryContext(ctx, dataSQL, dataArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Contact, 0, qb.Limit())
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Role,
			&c.MobilePhone, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}
