package admin

import "github.com/rpupo63/folio-backend/models"

// Grid rows: the entity plus the computed columns listed next to it.

type SkillRow struct {
	models.Skill
	ColoredLevel Badge `json:"coloredLevel"`
}

func NewSkillRow(s models.Skill) SkillRow {
	return SkillRow{Skill: s, ColoredLevel: SkillLevelBadge(s)}
}

type ProjectRow struct {
	models.Project
	TechCount    int64  `json:"techCount"`
	ImagePreview string `json:"imagePreview"`
}

func NewProjectRow(p models.Project, techCount int64) ProjectRow {
	return ProjectRow{Project: p, TechCount: techCount, ImagePreview: ImagePreview(p.ImageURL)}
}

type CategoryRow struct {
	models.Category
	ColoredName Badge `json:"coloredName"`
	PostCount   int64 `json:"postCount"`
}

func NewCategoryRow(c models.Category, postCount int64) CategoryRow {
	return CategoryRow{Category: c, ColoredName: CategoryBadge(c), PostCount: postCount}
}

type TagRow struct {
	models.Tag
	PostCount int64 `json:"postCount"`
}

func NewTagRow(t models.Tag, postCount int64) TagRow {
	return TagRow{Tag: t, PostCount: postCount}
}

type BlogPostRow struct {
	models.BlogPost
	ImagePreview string `json:"imagePreview"`
}

func NewBlogPostRow(p models.BlogPost) BlogPostRow {
	return BlogPostRow{BlogPost: p, ImagePreview: ImagePreview(p.FeaturedImageURL)}
}

type CommentRow struct {
	models.Comment
	IsReply bool `json:"isReply"`
}

func NewCommentRow(c models.Comment) CommentRow {
	return CommentRow{Comment: c, IsReply: IsReply(c)}
}

type ContactMessageRow struct {
	models.ContactMessage
	MessagePreview string `json:"messagePreview"`
}

func NewContactMessageRow(m models.ContactMessage) ContactMessageRow {
	return ContactMessageRow{ContactMessage: m, MessagePreview: MessagePreview(m.Message)}
}
