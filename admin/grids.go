package admin

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/folio-backend/database"
	"github.com/rpupo63/folio-backend/errs"
)

// SearchParam is the query parameter holding the grid search text.
const SearchParam = "search"

type FilterKind int

const (
	// FilterBool takes true/false, 1/0 and the like
	FilterBool FilterKind = iota
	// FilterText compares the raw value
	FilterText
	// FilterID takes a UUID
	FilterID
	// FilterSince takes one of the date windows below and compares with >=
	FilterSince
)

// Date windows accepted by FilterSince filters.
const (
	SinceToday     = "today"
	SincePast7Days = "past_7_days"
	SinceThisMonth = "this_month"
	SinceThisYear  = "this_year"
)

type GridFilter struct {
	Param  string     `json:"param"`
	Kind   FilterKind `json:"-"`
	Clause string     `json:"-"`
}

// Grid describes how the list view of a resource is searched, filtered and
// ordered.
type Grid struct {
	Search  []string     `json:"search,omitempty"`
	Filters []GridFilter `json:"filters,omitempty"`
	Order   string       `json:"-"`
}

const technologyClause = "id IN (SELECT project_id FROM project_technologies WHERE skill_id = ?)"

// Grids holds the list view of every resource. Resources missing here list
// everything in the repository's default order.
var Grids = map[string]Grid{
	"skills": {
		Search:  []string{"name"},
		Filters: []GridFilter{{Param: "category", Kind: FilterText, Clause: "category = ?"}},
		Order:   "category ASC, name ASC",
	},
	"projects": {
		Search: []string{"title", "description"},
		Filters: []GridFilter{
			{Param: "featured", Kind: FilterBool, Clause: "featured = ?"},
			{Param: "created", Kind: FilterSince, Clause: "created_at >= ?"},
			{Param: "technology", Kind: FilterID, Clause: technologyClause},
		},
		Order: "created_at DESC",
	},
	"experiences": {
		Search: []string{"position", "company", "description"},
		Filters: []GridFilter{
			{Param: "current", Kind: FilterBool, Clause: `"current" = ?`},
			{Param: "started", Kind: FilterSince, Clause: "start_date >= ?"},
		},
		Order: "start_date DESC",
	},
	"education": {
		Search: []string{"degree", "institution", "field"},
		Filters: []GridFilter{
			{Param: "current", Kind: FilterBool, Clause: `"current" = ?`},
			{Param: "started", Kind: FilterSince, Clause: "start_date >= ?"},
		},
		Order: "start_date DESC",
	},
	"categories": {Search: []string{"name"}},
	"tags":       {Search: []string{"name"}},
	"blog-posts": {
		Search: []string{"title", "content", "excerpt"},
		Filters: []GridFilter{
			{Param: "status", Kind: FilterText, Clause: "status = ?"},
			{Param: "featured", Kind: FilterBool, Clause: "featured = ?"},
			{Param: "category", Kind: FilterID, Clause: "category_id = ?"},
			{Param: "created", Kind: FilterSince, Clause: "created_at >= ?"},
			{Param: "author", Kind: FilterID, Clause: "author_id = ?"},
		},
		Order: "created_at DESC",
	},
	"comments": {
		Search: []string{"name", "email", "content"},
		Filters: []GridFilter{
			{Param: "active", Kind: FilterBool, Clause: "active = ?"},
			{Param: "created", Kind: FilterSince, Clause: "created_at >= ?"},
			{Param: "post", Kind: FilterID, Clause: "post_id = ?"},
		},
		Order: "created_at DESC",
	},
	"contact-messages": {
		Search: []string{"name", "email", "subject", "message"},
		Filters: []GridFilter{
			{Param: "read", Kind: FilterBool, Clause: "read = ?"},
			{Param: "created", Kind: FilterSince, Clause: "created_at >= ?"},
		},
		Order: "created_at DESC",
	},
}

// Query turns the query string of a list request into a grid query. Parameters
// the grid does not know are ignored; known ones with a bad value are rejected.
func (g Grid) Query(values url.Values, now time.Time) (database.GridQuery, error) {
	q := database.GridQuery{
		Search:        values.Get(SearchParam),
		SearchColumns: g.Search,
		Order:         g.Order,
	}

	for _, f := range g.Filters {
		raw := strings.TrimSpace(values.Get(f.Param))
		if raw == "" {
			continue
		}
		value, err := f.parse(raw, now)
		if err != nil {
			return database.GridQuery{}, err
		}
		q.Filters = append(q.Filters, database.GridFilter{Clause: f.Clause, Value: value})
	}
	return q, nil
}

func (f GridFilter) parse(raw string, now time.Time) (any, error) {
	switch f.Kind {
	case FilterBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errs.NewInvalidFieldError(f.Param, "must be true or false")
		}
		return b, nil
	case FilterID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errs.NewInvalidFieldError(f.Param, "must be a UUID")
		}
		return id, nil
	case FilterSince:
		since, ok := windowStart(raw, now)
		if !ok {
			return nil, errs.NewInvalidFieldError(f.Param, "must be one of today, past_7_days, this_month, this_year")
		}
		return since, nil
	default:
		return raw, nil
	}
}

func windowStart(window string, now time.Time) (time.Time, bool) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch window {
	case SinceToday:
		return today, true
	case SincePast7Days:
		return today.AddDate(0, 0, -7), true
	case SinceThisMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location()), true
	case SinceThisYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, now.Location()), true
	}
	return time.Time{}, false
}
