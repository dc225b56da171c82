package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/folio-backend/database"
	"github.com/rpupo63/folio-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	homeFeaturedProjects = 3
	homeLatestPosts      = 3
	relatedProjects      = 3
)

type siteHandler struct {
	responder   Responder
	logger      zerolog.Logger
	database    database.Database
	startupTime time.Time
}

func newSiteHandler(database database.Database, startupTime time.Time) siteHandler {
	logger := log.With().Str("handlerName", "siteHandler").Logger()

	return siteHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		database:    database,
		startupTime: startupTime,
	}
}

// home returns the landing page summary
// @Summary Home page
// @Description Profile, up to 3 featured projects, all skills and the 3 latest posts
// @Tags Site
// @Produce json
// @Success 200 {object} HomeContext
// @Router / [get]
func (h siteHandler) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		profile, err := h.database.ProfileRepo().First(ctx)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}

		featured, err := h.database.ProjectRepo().FindFeatured(ctx, homeFeaturedProjects)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find featured", "projects", err))
			return
		}

		skills, err := h.database.SkillRepo().FindAllByCategory(ctx)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skills", err))
			return
		}

		latest, err := h.database.BlogPostRepo().Latest(ctx, homeLatestPosts)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find latest", "blog posts", err))
			return
		}

		h.responder.WriteJSON(w, HomeContext{
			Profile:          profile,
			FeaturedProjects: featured,
			Skills:           skills,
			LatestPosts:      latest,
		})
	}
}

// about returns the about page
// @Summary About page
// @Description Profile, experience and education timelines, and skills
// @Tags Site
// @Produce json
// @Success 200 {object} AboutContext
// @Router /about/ [get]
func (h siteHandler) about() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		profile, err := h.database.ProfileRepo().First(ctx)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}

		experiences, err := h.database.ExperienceRepo().FindAll(ctx)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "experiences", err))
			return
		}

		education, err := h.database.EducationRepo().FindAll(ctx)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "education", err))
			return
		}

		skills, err := h.database.SkillRepo().FindAllByCategory(ctx)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skills", err))
			return
		}

		h.responder.WriteJSON(w, AboutContext{
			Profile:     profile,
			Experiences: experiences,
			Education:   education,
			Skills:      skills,
		})
	}
}

// portfolio lists projects, optionally narrowed to a technology
// @Summary Portfolio page
// @Description All projects; tech keeps those with a technology whose name contains it, ignoring case
// @Tags Site
// @Produce json
// @Param tech query string false "Technology name substring"
// @Success 200 {object} PortfolioContext
// @Router /portfolio/ [get]
func (h siteHandler) portfolio() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tech := r.URL.Query().Get("tech")

		projects, err := h.database.ProjectRepo().FindFiltered(ctx, tech)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		skills, err := h.database.SkillRepo().FindAllByName(ctx)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skills", err))
			return
		}

		h.responder.WriteJSON(w, PortfolioContext{
			Projects:    projects,
			Skills:      skills,
			CurrentTech: tech,
		})
	}
}

// projectDetail returns one project and a few others
// @Summary Project detail
// @Tags Site
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} ProjectDetailContext
// @Failure 404 {object} ErrorResponse "Not Found - Unknown or malformed project id"
// @Router /project/{projectID}/ [get]
func (h siteHandler) projectDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		// A malformed id cannot name a project, so it is a 404 like an unknown one.
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		project, err := h.database.ProjectRepo().FindByID(ctx, projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		related, err := h.database.ProjectRepo().FindRelated(ctx, projectID, relatedProjects)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find related", "projects", err))
			return
		}

		h.responder.WriteJSON(w, ProjectDetailContext{
			Project:         project,
			RelatedProjects: related,
		})
	}
}

// healthz reports liveness
func (h siteHandler) healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]any{
			"status":      "ok",
			"startupTime": h.startupTime.UTC().Format(time.RFC3339),
			"uptime":      time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}
