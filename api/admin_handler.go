package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/folio-backend/admin"
	"github.com/rpupo63/folio-backend/database"
	"github.com/rpupo63/folio-backend/errs"
	"github.com/rpupo63/folio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxAdminBody = 1 << 20

// store is the part of an entity repository the admin screens use. Every repo
// gets it from the embedded database.Repo, overriding what it needs to.
type store[T any] interface {
	FindGrid(ctx context.Context, q database.GridQuery) ([]T, error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Add(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type entity[T any] interface {
	*T
	GetID() uuid.UUID
	SetID(id uuid.UUID)
}

// adminResource serves the grid and edit form of one entity
type adminResource interface {
	name() string
	list() http.HandlerFunc
	get() http.HandlerFunc
	create() http.HandlerFunc
	update() http.HandlerFunc
	remove() http.HandlerFunc
}

type resource[T any, PT entity[T]] struct {
	responder Responder
	logger    zerolog.Logger
	resName   string
	entity    string
	store     store[T]
	// blank returns the value a new form starts from
	blank   func() *T
	prepare func(r *http.Request, item *T) error
	row     func(ctx context.Context, item T) (any, error)
}

func newResource[T any, PT entity[T]](name, entityName string, s store[T]) *resource[T, PT] {
	logger := log.With().Str("handlerName", "adminHandler").Str("resource", name).Logger()
	return &resource[T, PT]{
		responder: NewResponder(logger),
		logger:    logger,
		resName:   name,
		entity:    entityName,
		store:     s,
		blank:     func() *T { return new(T) },
		prepare:   func(*http.Request, *T) error { return nil },
		row:       func(_ context.Context, item T) (any, error) { return item, nil },
	}
}

func (res *resource[T, PT]) withBlank(f func() *T) *resource[T, PT] {
	res.blank = f
	return res
}

func (res *resource[T, PT]) withPrepare(f func(r *http.Request, item *T) error) *resource[T, PT] {
	res.prepare = f
	return res
}

func (res *resource[T, PT]) withRow(f func(ctx context.Context, item T) (any, error)) *resource[T, PT] {
	res.row = f
	return res
}

func (res *resource[T, PT]) name() string {
	return res.resName
}

func (res *resource[T, PT]) decode(w http.ResponseWriter, r *http.Request, item *T) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxAdminBody)
	if err := json.NewDecoder(r.Body).Decode(item); err != nil {
		return errs.NewMalformedPayloadError(res.entity, err)
	}
	return nil
}

func (res *resource[T, PT]) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q, err := admin.Grids[res.resName].Query(r.URL.Query(), time.Now())
		if err != nil {
			res.responder.WriteError(w, err)
			return
		}

		items, err := res.store.FindGrid(ctx, q)
		if err != nil {
			res.responder.WriteError(w, wrapDatabaseError("list", res.entity, err))
			return
		}

		rows := make([]any, 0, len(items))
		for _, item := range items {
			row, err := res.row(ctx, item)
			if err != nil {
				res.responder.WriteError(w, wrapDatabaseError("list", res.entity, err))
				return
			}
			rows = append(rows, row)
		}
		res.responder.WriteJSON(w, rows)
	}
}

func (res *resource[T, PT]) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			res.responder.WriteError(w, errs.NewNotFound(res.entity))
			return
		}

		item, err := res.store.FindByID(r.Context(), id)
		if err != nil {
			res.responder.WriteError(w, wrapDatabaseError("find", res.entity, err))
			return
		}
		res.responder.WriteJSON(w, item)
	}
}

func (res *resource[T, PT]) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		item := res.blank()
		if err := res.decode(w, r, item); err != nil {
			res.responder.WriteError(w, err)
			return
		}
		PT(item).SetID(uuid.Nil)

		if err := res.prepare(r, item); err != nil {
			res.responder.WriteError(w, err)
			return
		}

		if err := res.store.Add(ctx, item); err != nil {
			res.responder.WriteError(w, wrapDatabaseError("create", res.entity, err))
			return
		}

		res.writeFresh(w, r, item, http.StatusCreated)
	}
}

func (res *resource[T, PT]) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			res.responder.WriteError(w, errs.NewNotFound(res.entity))
			return
		}

		// Fields missing from the body keep their stored values.
		item, err := res.store.FindByID(ctx, id)
		if err != nil {
			res.responder.WriteError(w, wrapDatabaseError("find", res.entity, err))
			return
		}
		if err := res.decode(w, r, item); err != nil {
			res.responder.WriteError(w, err)
			return
		}
		PT(item).SetID(id)

		if err := res.prepare(r, item); err != nil {
			res.responder.WriteError(w, err)
			return
		}

		if err := res.store.Update(ctx, item); err != nil {
			res.responder.WriteError(w, wrapDatabaseError("update", res.entity, err))
			return
		}

		res.writeFresh(w, r, item, http.StatusOK)
	}
}

// writeFresh reloads a saved row so the response carries its relations
func (res *resource[T, PT]) writeFresh(w http.ResponseWriter, r *http.Request, saved *T, status int) {
	fresh, err := res.store.FindByID(r.Context(), PT(saved).GetID())
	if err != nil {
		res.logger.Warn().Err(err).Msg("could not reload saved row")
		fresh = saved
	}
	res.responder.WriteJSONStatus(w, status, fresh)
}

func (res *resource[T, PT]) remove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			res.responder.WriteError(w, errs.NewNotFound(res.entity))
			return
		}

		if err := res.store.Delete(r.Context(), id); err != nil {
			res.responder.WriteError(w, wrapDatabaseError("delete", res.entity, err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	database  database.Database
	site      admin.Site
	resources []adminResource
}

func newAdminHandler(db database.Database, site admin.Site) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		database:  db,
		site:      site,
		resources: adminResources(db),
	}
}

// adminResources lists the editable entities in the order the index shows them
func adminResources(db database.Database) []adminResource {
	return []adminResource{
		newResource[models.Profile]("profiles", "profile", db.ProfileRepo()).
			withPrepare(func(_ *http.Request, p *models.Profile) error { return admin.PrepareProfile(p) }),

		newResource[models.Skill]("skills", "skill", db.SkillRepo()).
			withPrepare(func(_ *http.Request, s *models.Skill) error { return admin.PrepareSkill(s) }).
			withRow(func(_ context.Context, s models.Skill) (any, error) { return admin.NewSkillRow(s), nil }),

		newResource[models.Project]("projects", "project", db.ProjectRepo()).
			withPrepare(func(_ *http.Request, p *models.Project) error { return admin.PrepareProject(p) }).
			withRow(func(ctx context.Context, p models.Project) (any, error) {
				n, err := db.ProjectRepo().TechnologyCount(ctx, p.ID)
				if err != nil {
					return nil, err
				}
				return admin.NewProjectRow(p, n), nil
			}),

		newResource[models.Experience]("experiences", "experience", db.ExperienceRepo()).
			withPrepare(func(_ *http.Request, e *models.Experience) error { return admin.PrepareExperience(e) }),

		newResource[models.Education]("education", "education", db.EducationRepo()).
			withPrepare(func(_ *http.Request, e *models.Education) error { return admin.PrepareEducation(e) }),

		newResource[models.Category]("categories", "category", db.CategoryRepo()).
			withPrepare(func(_ *http.Request, c *models.Category) error { return admin.PrepareCategory(c) }).
			withRow(func(ctx context.Context, c models.Category) (any, error) {
				n, err := db.CategoryRepo().PostCount(ctx, c.ID)
				if err != nil {
					return nil, err
				}
				return admin.NewCategoryRow(c, n), nil
			}),

		newResource[models.Tag]("tags", "tag", db.TagRepo()).
			withPrepare(func(_ *http.Request, t *models.Tag) error { return admin.PrepareTag(t) }).
			withRow(func(ctx context.Context, t models.Tag) (any, error) {
				n, err := db.TagRepo().PostCount(ctx, t.ID)
				if err != nil {
					return nil, err
				}
				return admin.NewTagRow(t, n), nil
			}),

		newResource[models.BlogPost]("blog-posts", "blog post", db.BlogPostRepo()).
			withPrepare(func(r *http.Request, p *models.BlogPost) error {
				userID, _ := ctxGetUserID(r.Context())
				return admin.PrepareBlogPost(p, userID)
			}).
			withRow(func(_ context.Context, p models.BlogPost) (any, error) { return admin.NewBlogPostRow(p), nil }),

		newResource[models.Comment]("comments", "comment", db.CommentRepo()).
			withBlank(func() *models.Comment { return &models.Comment{Active: true} }).
			withPrepare(func(_ *http.Request, c *models.Comment) error { return admin.PrepareComment(c) }).
			withRow(func(_ context.Context, c models.Comment) (any, error) { return admin.NewCommentRow(c), nil }),

		newResource[models.ContactMessage]("contact-messages", "contact message", db.ContactMessageRepo()).
			withPrepare(func(_ *http.Request, m *models.ContactMessage) error { return admin.PrepareContactMessage(m) }).
			withRow(func(_ context.Context, m models.ContactMessage) (any, error) {
				return admin.NewContactMessageRow(m), nil
			}),
	}
}

// index returns the admin landing page
// @Summary Admin index
// @Description Site header, dashboard statistics and the available resources and bulk actions
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AdminIndexResponse
// @Router /admin/ [get]
func (h adminHandler) index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := admin.Dashboard(r.Context(), h.database, time.Now())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("collect", "dashboard stats", err))
			return
		}

		names := make([]string, 0, len(h.resources))
		for _, res := range h.resources {
			names = append(names, res.name())
		}

		actions := make(map[string][]string, len(admin.Actions))
		for _, resName := range admin.ActionResources() {
			for _, a := range admin.Actions[resName] {
				actions[resName] = append(actions[resName], a.Name)
			}
		}

		h.responder.WriteJSON(w, AdminIndexResponse{
			Site:      h.site,
			Stats:     stats,
			Resources: names,
			Actions:   actions,
			Grids:     admin.Grids,
		})
	}
}

// applyAction runs a bulk action on the selected rows of a resource
// @Summary Admin bulk action
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Resource name, e.g. blog-posts"
// @Param action path string true "Action name, e.g. make_published"
// @Param selection body ActionRequest true "Selected row IDs"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Unknown action or invalid IDs"
// @Router /admin/{resource}/actions/{action} [post]
func (h adminHandler) applyAction(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "action")
		action, ok := admin.FindAction(resource, name)
		if !ok {
			h.responder.WriteError(w, errs.NewUnknownActionError(resource, name))
			return
		}

		var req ActionRequest
		r.Body = http.MaxBytesReader(w, r.Body, maxAdminBody)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("action", err))
			return
		}
		if len(req.IDs) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("ids"))
			return
		}

		ids := make([]uuid.UUID, 0, len(req.IDs))
		for _, raw := range req.IDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("ids", "must be UUIDs"))
				return
			}
			ids = append(ids, id)
		}

		updated, err := action.Apply(r.Context(), h.database, ids)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError(name, resource, err))
			return
		}

		h.logger.Info().Str("resource", resource).Str("action", name).Int64("updated", updated).Msg("applied bulk action")
		h.responder.WriteJSON(w, ActionResponse{Action: name, Updated: updated})
	}
}
