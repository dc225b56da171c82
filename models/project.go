package models

import "time"

// Project represents a portfolio entry. Technologies are shared with the skills list.
type Project struct {
	Base
	Title            string    `json:"title" db:"title" gorm:"type:text;not null"`
	Description      string    `json:"description" db:"description" gorm:"type:text;not null"`
	ShortDescription string    `json:"shortDescription" db:"short_description" gorm:"type:text;not null"`
	ImageURL         string    `json:"imageUrl" db:"image_url" gorm:"type:text"`
	GithubURL        string    `json:"githubUrl" db:"github_url" gorm:"type:text"`
	LiveURL          string    `json:"liveUrl" db:"live_url" gorm:"type:text"`
	Technologies     []Skill   `json:"technologies" gorm:"many2many:project_technologies;constraint:OnDelete:CASCADE"`
	Featured         bool      `json:"featured" db:"featured" gorm:"not null;default:false"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	SortOrder        int       `json:"order" db:"sort_order" gorm:"type:integer;not null;default:0"`
}

// ProjectOrder is the default listing order for projects.
const ProjectOrder = "projects.sort_order ASC, projects.created_at DESC"
