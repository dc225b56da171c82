package database

import (
	"context"
	"strings"
)

// GridFilter is one equality-style condition on an admin grid. Clause holds a
// single placeholder, e.g. "featured = ?" or "id IN (SELECT ...  = ?)".
type GridFilter struct {
	Clause string
	Value  any
}

// GridQuery narrows and orders the rows of an admin grid. Search matches any of
// SearchColumns as a case-insensitive substring; filters are combined with AND.
type GridQuery struct {
	Search        string
	SearchColumns []string
	Filters       []GridFilter
	Order         string
}

// FindGrid returns the rows matching q. An empty Order falls back to the
// repository's default order.
func (r *Repo[T]) FindGrid(ctx context.Context, q GridQuery) ([]T, error) {
	var items []T
	tx := r.query(ctx)

	if search := strings.TrimSpace(q.Search); search != "" && len(q.SearchColumns) > 0 {
		pattern := containsPattern(search)
		conds := make([]string, 0, len(q.SearchColumns))
		args := make([]any, 0, len(q.SearchColumns))
		for _, col := range q.SearchColumns {
			conds = append(conds, "LOWER("+col+") LIKE ?"+likeEscape)
			args = append(args, pattern)
		}
		tx = tx.Where("("+strings.Join(conds, " OR ")+")", args...)
	}

	for _, f := range q.Filters {
		tx = tx.Where(f.Clause, f.Value)
	}

	order := q.Order
	if order == "" {
		order = r.order
	}
	if order != "" {
		tx = tx.Order(order)
	}

	err := tx.Find(&items).Error
	return items, err
}
