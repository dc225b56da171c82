package admin

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/rpupo63/folio-backend/database"
	"github.com/rpupo63/folio-backend/models"
)

// ActionFunc applies one batch update to the selected rows and reports how
// many were changed.
type ActionFunc func(ctx context.Context, db database.Database, ids []uuid.UUID) (int64, error)

type Action struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Apply       ActionFunc `json:"-"`
}

// Actions lists the bulk actions available on each admin resource.
var Actions = map[string][]Action{
	"blog-posts": {
		{Name: "make_published", Description: "Mark as published", Apply: MakePublished},
		{Name: "make_draft", Description: "Mark as draft", Apply: MakeDraft},
	},
	"comments": {
		{Name: "make_active", Description: "Activate comments", Apply: MakeActive},
		{Name: "make_inactive", Description: "Deactivate comments", Apply: MakeInactive},
	},
	"contact-messages": {
		{Name: "mark_as_read", Description: "Mark as read", Apply: MarkAsRead},
		{Name: "mark_as_unread", Description: "Mark as unread", Apply: MarkAsUnread},
	},
}

// FindAction looks up a bulk action of a resource by name
func FindAction(resource, name string) (Action, bool) {
	for _, a := range Actions[resource] {
		if a.Name == name {
			return a, true
		}
	}
	return Action{}, false
}

// ActionResources lists the resources that have bulk actions, sorted.
func ActionResources() []string {
	out := make([]string, 0, len(Actions))
	for r := range Actions {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// MakePublished only flips the status. Posts published this way keep an empty
// published_at because bulk updates skip the save hook.
func MakePublished(ctx context.Context, db database.Database, ids []uuid.UUID) (int64, error) {
	return db.BlogPostRepo().SetStatus(ctx, ids, models.StatusPublished)
}

func MakeDraft(ctx context.Context, db database.Database, ids []uuid.UUID) (int64, error) {
	return db.BlogPostRepo().SetStatus(ctx, ids, models.StatusDraft)
}

func MakeActive(ctx context.Context, db database.Database, ids []uuid.UUID) (int64, error) {
	return db.CommentRepo().SetActive(ctx, ids, true)
}

func MakeInactive(ctx context.Context, db database.Database, ids []uuid.UUID) (int64, error) {
	return db.CommentRepo().SetActive(ctx, ids, false)
}

func MarkAsRead(ctx context.Context, db database.Database, ids []uuid.UUID) (int64, error) {
	return db.ContactMessageRepo().SetRead(ctx, ids, true)
}

func MarkAsUnread(ctx context.Context, db database.Database, ids []uuid.UUID) (int64, error) {
	return db.ContactMessageRepo().SetRead(ctx, ids, false)
}
