package api

import (
	"github.com/rpupo63/folio-backend/admin"
	"github.com/rpupo63/folio-backend/models"
	"github.com/rpupo63/folio-backend/pagination"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	siteHandler    siteHandler
	blogHandler    blogHandler
	contactHandler contactHandler
	authHandler    authHandler
	adminHandler   adminHandler
	mediaHandler   mediaHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// Page contexts. Each is what the matching page template would receive.

type HomeContext struct {
	Profile          *models.Profile   `json:"profile"`
	FeaturedProjects []models.Project  `json:"featuredProjects"`
	Skills           []models.Skill    `json:"skills"`
	LatestPosts      []models.BlogPost `json:"latestPosts"`
}

type AboutContext struct {
	Profile     *models.Profile     `json:"profile"`
	Experiences []models.Experience `json:"experiences"`
	Education   []models.Education  `json:"education"`
	Skills      []models.Skill      `json:"skills"`
}

type PortfolioContext struct {
	Projects    []models.Project `json:"projects"`
	Skills      []models.Skill   `json:"skills"`
	CurrentTech string           `json:"currentTech,omitempty"`
}

type ProjectDetailContext struct {
	Project         *models.Project  `json:"project"`
	RelatedProjects []models.Project `json:"relatedProjects"`
}

type BlogListContext struct {
	Page            pagination.Page[models.BlogPost] `json:"page"`
	Categories      []models.Category                `json:"categories"`
	Tags            []models.Tag                     `json:"tags"`
	PopularPosts    []models.BlogPost                `json:"popularPosts"`
	RecentPosts     []models.BlogPost                `json:"recentPosts"`
	CurrentCategory string                           `json:"currentCategory,omitempty"`
	CurrentTag      string                           `json:"currentTag,omitempty"`
	SearchQuery     string                           `json:"searchQuery,omitempty"`
}

type BlogDetailContext struct {
	Post         *models.BlogPost  `json:"post"`
	ContentHTML  string            `json:"contentHtml"`
	Comments     []models.Comment  `json:"comments"`
	RelatedPosts []models.BlogPost `json:"relatedPosts"`
}

type BlogCategoryContext struct {
	Category *models.Category                 `json:"category"`
	Page     pagination.Page[models.BlogPost] `json:"page"`
}

type BlogTagContext struct {
	Tag  *models.Tag                      `json:"tag"`
	Page pagination.Page[models.BlogPost] `json:"page"`
}

type ContactContext struct {
	Messages []Flash `json:"messages"`
}

// LoginRequest is the admin login payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// ActionRequest selects the rows a bulk action applies to
type ActionRequest struct {
	IDs []string `json:"ids"`
}

type ActionResponse struct {
	Action  string `json:"action"`
	Updated int64  `json:"updated"`
}

type AdminIndexResponse struct {
	Site      admin.Site            `json:"site"`
	Stats     admin.Stats           `json:"stats"`
	Resources []string              `json:"resources"`
	Actions   map[string][]string   `json:"actions"`
	Grids     map[string]admin.Grid `json:"grids"`
}

type MediaResponse struct {
	URL string `json:"url"`
}
