package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

func (s PostStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

const MaxExcerptLength = 500

// BlogPost represents a blog article. PublishedAt is set the first time the post
// is saved as published and never moves afterwards.
type BlogPost struct {
	Base
	Title            string     `json:"title" db:"title" gorm:"type:text;not null"`
	Slug             string     `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	AuthorID         *uuid.UUID `json:"authorId,omitempty" db:"author_id" gorm:"type:uuid;index"`
	Author           *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Content          string     `json:"content" db:"content" gorm:"type:text;not null"`
	Excerpt          string     `json:"excerpt" db:"excerpt" gorm:"type:varchar(500)"`
	FeaturedImageURL string     `json:"featuredImageUrl" db:"featured_image_url" gorm:"type:text"`
	CategoryID       *uuid.UUID `json:"categoryId,omitempty" db:"category_id" gorm:"type:uuid;index"`
	Category         *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL"`
	Tags             []Tag      `json:"tags" gorm:"many2many:blog_post_tags;constraint:OnDelete:CASCADE"`
	Status           PostStatus `json:"status" db:"status" gorm:"type:varchar(10);not null;default:'draft';index"`
	Featured         bool       `json:"featured" db:"featured" gorm:"not null;default:false"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
	PublishedAt      *time.Time `json:"publishedAt,omitempty" db:"published_at" gorm:"index"`
	Views            int        `json:"views" db:"views" gorm:"type:integer;not null;default:0"`
	Comments         []Comment  `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}

// BlogPostOrder is the default listing order: newest publication first, posts
// that never got a publication date last.
const BlogPostOrder = "blog_posts.published_at IS NULL, blog_posts.published_at DESC, blog_posts.created_at DESC"

func (p *BlogPost) BeforeSave(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if p.Status == StatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}
	return nil
}
