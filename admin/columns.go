package admin

import (
	"fmt"
	"html"

	"github.com/rpupo63/folio-backend/models"
)

// Skill level palette
const (
	LevelHighColor   = "#22C55E"
	LevelMediumColor = "#F59E0B"
	LevelLowColor    = "#EF4444"
)

const (
	messagePreviewLength = 50
	noImage              = "No image"
)

// Badge is a small colored label. HTML is ready to embed; Label and Color let
// a client draw its own.
type Badge struct {
	Label string `json:"label"`
	Color string `json:"color"`
	HTML  string `json:"html"`
}

// SkillLevelColor maps a level to its band: 80 and up, 60 and up, the rest.
func SkillLevelColor(level int) string {
	switch {
	case level >= 80:
		return LevelHighColor
	case level >= 60:
		return LevelMediumColor
	default:
		return LevelLowColor
	}
}

func SkillLevelBadge(skill models.Skill) Badge {
	color := SkillLevelColor(skill.Level)
	label := fmt.Sprintf("%d%%", skill.Level)
	return Badge{
		Label: label,
		Color: color,
		HTML: fmt.Sprintf(
			`<div style="background-color: %s; color: white; padding: 2px 8px; border-radius: 4px; text-align: center; font-weight: bold;">%s</div>`,
			color, html.EscapeString(label)),
	}
}

// CategoryBadge shows the category name on its own stored color
func CategoryBadge(category models.Category) Badge {
	return Badge{
		Label: category.Name,
		Color: category.Color,
		HTML: fmt.Sprintf(
			`<div style="background-color: %s; color: white; padding: 2px 8px; border-radius: 4px; display: inline-block;">%s</div>`,
			html.EscapeString(category.Color), html.EscapeString(category.Name)),
	}
}

// ImagePreview renders a thumbnail for an image URL
func ImagePreview(url string) string {
	if url == "" {
		return noImage
	}
	return fmt.Sprintf(`<img src="%s" width="50" height="50" style="border-radius: 4px;" />`, html.EscapeString(url))
}

// MessagePreview keeps the first 50 characters of a message
func MessagePreview(message string) string {
	runes := []rune(message)
	if len(runes) <= messagePreviewLength {
		return message
	}
	return string(runes[:messagePreviewLength]) + "..."
}

func IsReply(comment models.Comment) bool {
	return comment.ParentID != nil
}
