// Package admin holds what the admin backend shows and does on top of the
// entities: site settings, computed grid columns, form rules, bulk actions and
// the dashboard.
package admin

import "github.com/rpupo63/folio-backend/config"

const (
	DefaultSiteHeader = "Portfolio Administration"
	DefaultSiteTitle  = "Portfolio Admin"
	DefaultIndexTitle = "Dashboard"
)

// Site is the admin branding. It is built once at startup and passed to the
// router.
type Site struct {
	Header     string `json:"siteHeader"`
	Title      string `json:"siteTitle"`
	IndexTitle string `json:"indexTitle"`
}

func NewSite(c config.Config) Site {
	return Site{
		Header:     config.GetString(c, "ADMIN_SITE_HEADER", DefaultSiteHeader),
		Title:      config.GetString(c, "ADMIN_SITE_TITLE", DefaultSiteTitle),
		IndexTitle: config.GetString(c, "ADMIN_INDEX_TITLE", DefaultIndexTitle),
	}
}
