package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/folio-backend/database"
	"github.com/rpupo63/folio-backend/models"
	"github.com/rpupo63/folio-backend/pagination"
	"github.com/rpupo63/folio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	sidebarPosts = 5
	relatedPosts = 3
)

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	database  database.Database
}

func newBlogHandler(database database.Database) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		database:  database,
	}
}

func (h blogHandler) publishedPage(r *http.Request, f database.PostFilter) (pagination.Page[models.BlogPost], error) {
	ctx := r.Context()
	return pagination.Query[models.BlogPost](ctx,
		h.database.BlogPostRepo().PublishedQuery(ctx, f),
		pagination.DefaultPageSize,
		r.URL.Query().Get("page"),
		database.PostRelations,
	)
}

// listPosts returns one page of published posts with the sidebars
// @Summary Blog listing
// @Description Published posts, 6 per page. category, tag and search all narrow the listing when present.
// @Tags Blog
// @Produce json
// @Param category query string false "Category slug"
// @Param tag query string false "Tag slug"
// @Param search query string false "Substring of title, content or excerpt"
// @Param page query int false "Page number"
// @Success 200 {object} BlogListContext
// @Router /blog/ [get]
func (h blogHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		query := r.URL.Query()
		filter := database.PostFilter{
			CategorySlug: query.Get("category"),
			TagSlug:      query.Get("tag"),
			Search:       query.Get("search"),
		}

		page, err := h.publishedPage(r, filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "blog posts", err))
			return
		}

		categories, err := h.database.CategoryRepo().FindAll(ctx)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "categories", err))
			return
		}

		tags, err := h.database.TagRepo().FindAll(ctx)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tags", err))
			return
		}

		popular, err := h.database.BlogPostRepo().Popular(ctx, sidebarPosts)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find popular", "blog posts", err))
			return
		}

		recent, err := h.database.BlogPostRepo().Latest(ctx, sidebarPosts)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find recent", "blog posts", err))
			return
		}

		h.responder.WriteJSON(w, BlogListContext{
			Page:            page,
			Categories:      categories,
			Tags:            tags,
			PopularPosts:    popular,
			RecentPosts:     recent,
			CurrentCategory: filter.CategorySlug,
			CurrentTag:      filter.TagSlug,
			SearchQuery:     filter.Search,
		})
	}
}

// getPost returns a published post and counts the view
// @Summary Blog post detail
// @Description Every request increments the view counter. Drafts are not found.
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} BlogDetailContext
// @Failure 404 {object} ErrorResponse "Not Found - Unknown slug or draft"
// @Router /blog/{slug}/ [get]
func (h blogHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		repo := h.database.BlogPostRepo()

		post, err := repo.FindPublishedBySlug(ctx, chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}

		if err := repo.IncrementViews(ctx, post.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count view of", "blog post", err))
			return
		}
		post.Views++

		comments, err := h.database.CommentRepo().FindActiveTopLevel(ctx, post.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comments", err))
			return
		}

		related, err := repo.Related(ctx, post, relatedPosts)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find related", "blog posts", err))
			return
		}

		h.responder.WriteJSON(w, BlogDetailContext{
			Post:         post,
			ContentHTML:  services.RenderMarkdown(post.Content),
			Comments:     comments,
			RelatedPosts: related,
		})
	}
}

// listByCategory returns one page of the published posts of a category
// @Summary Blog posts by category
// @Tags Blog
// @Produce json
// @Param slug path string true "Category slug"
// @Param page query int false "Page number"
// @Success 200 {object} BlogCategoryContext
// @Failure 404 {object} ErrorResponse "Not Found - Unknown category"
// @Router /blog/category/{slug}/ [get]
func (h blogHandler) listByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := h.database.CategoryRepo().FindBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "category", err))
			return
		}

		page, err := h.publishedPage(r, database.PostFilter{CategorySlug: category.Slug})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "blog posts", err))
			return
		}

		h.responder.WriteJSON(w, BlogCategoryContext{Category: category, Page: page})
	}
}

// listByTag returns one page of the published posts carrying a tag
// @Summary Blog posts by tag
// @Tags Blog
// @Produce json
// @Param slug path string true "Tag slug"
// @Param page query int false "Page number"
// @Success 200 {object} BlogTagContext
// @Failure 404 {object} ErrorResponse "Not Found - Unknown tag"
// @Router /blog/tag/{slug}/ [get]
func (h blogHandler) listByTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag, err := h.database.TagRepo().FindBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tag", err))
			return
		}

		page, err := h.publishedPage(r, database.PostFilter{TagSlug: tag.Slug})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "blog posts", err))
			return
		}

		h.responder.WriteJSON(w, BlogTagContext{Tag: tag, Page: page})
	}
}
