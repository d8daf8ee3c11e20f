// Package query assembles dynamic, parameterized SELECT statements for the
// advanced search endpoints.  A Builder collects predicate+argument pairs
// and renders the data and count statements from the same WHERE clause and
// the same bound values, so the page of rows and the reported total can
// never drift apart.  User input reaches the SQL text only through bound
// placeholders; identifiers are spliced exclusively from compile-time
// allow-lists.
package query

import "strings"

const (
	// DefaultLimit is the page size applied when the caller sends none.
	DefaultLimit = 20
	// MaxLimit caps the page size a caller may request.
	MaxLimit = 100
)

// Builder accumulates WHERE predicates, an ORDER BY column and pagination
// bounds for one search query.
type Builder struct {
	conds []string
	args  []any
	order string
	desc  bool
	page  int
	limit int
}

// New returns a Builder with default pagination and no predicates.
func New() *Builder {
	return &Builder{page: 1, limit: DefaultLimit}
}

// Where appends a predicate whose placeholders are bound to args.  The
// predicate text must come from the caller's own SQL, never from user
// input.
func (b *Builder) Where(cond string, args ...any) *Builder {
	b.conds = append(b.conds, cond)
	b.args = append(b.args, args...)
	return b
}

// Search appends a case-insensitive substring match of q over the given
// columns.  The columns are concatenated server-side so the whole match
// binds exactly one parameter regardless of how many columns participate.
// A blank q adds nothing.
func (b *Builder) Search(q string, cols ...string) *Builder {
	q = strings.TrimSpace(q)
	if q == "" || len(cols) == 0 {
		return b
	}
	expr := cols[0]
	if len(cols) > 1 {
		expr = "CONCAT_WS(' ', " + strings.Join(cols, ", ") + ")"
	}
	return b.Where("LOWER("+expr+") LIKE ?", "%"+strings.ToLower(q)+"%")
}

// OrderBy picks the sort column by membership in the allowed map (request
// key -> qualified column).  Unknown or empty keys fall back to the given
// default column instead of failing or leaking the raw value into SQL.
// dir is "desc" for descending, anything else sorts ascending.
func (b *Builder) OrderBy(requested, dir string, allowed map[string]string, fallback string) *Builder {
	col, ok := allowed[strings.ToLower(strings.TrimSpace(requested))]
	if !ok {
		col = fallback
	}
	b.order = col
	b.desc = strings.EqualFold(strings.TrimSpace(dir), "desc")
	return b
}

// Paginate sets the page and limit, clamping page to >= 1 and limit to
// (0, MaxLimit], with DefaultLimit replacing non-positive limits.
func (b *Builder) Paginate(page, limit int) *Builder {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	b.page = page
	b.limit = limit
	return b
}

// Page returns the effective page number.
func (b *Builder) Page() int { return b.page }

// Limit returns the effective page size.
func (b *Builder) Limit() int { return b.limit }

func (b *Builder) whereClause() string {
	if len(b.conds) == 0 {
		return "1=1"
	}
	return strings.Join(b.conds, " AND ")
}

// Data renders the row query: selectFrom + WHERE + ORDER BY + LIMIT/OFFSET.
// selectFrom carries the SELECT list, FROM and any JOINs.  The returned
// args are the bound predicate values followed by limit and offset.
func (b *Builder) Data(selectFrom string) (string, []any) {
	var sb strings.Builder
	sb.WriteString(selectFrom)
	sb.WriteString(" WHERE ")
	sb.WriteString(b.whereClause())
	if b.order != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.order)
		if b.desc {
			sb.WriteString(" DESC")
		} else {
			sb.WriteString(" ASC")
		}
	}
	sb.WriteString(" LIMIT ? OFFSET ?")
	args := append(append([]any{}, b.args...), b.limit, (b.page-1)*b.limit)
	return sb.String(), args
}

// Count renders the companion count query over the identical WHERE clause
// and bound values, in the same order, minus pagination.
func (b *Builder) Count(countFrom string) (string, []any) {
	return countFrom + " WHERE " + b.whereClause(), append([]any{}, b.args...)
}
