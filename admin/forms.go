package admin

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rpupo63/folio-backend/errs"
	"github.com/rpupo63/folio-backend/models"
	"gorm.io/datatypes"
)

// Form rules applied before an admin write. Each Prepare function fills the
// fields the form would prepopulate and rejects what the form would reject.

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewMissingRequiredFieldError(field)
	}
	return nil
}

func firstError(checks ...error) error {
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

func dateSet(d datatypes.Date) bool {
	return !time.Time(d).IsZero()
}

func PrepareProfile(p *models.Profile) error {
	if p.UserID == uuid.Nil {
		return errs.NewMissingRequiredFieldError("userId")
	}
	return required("bio", p.Bio)
}

func PrepareSkill(s *models.Skill) error {
	if err := required("name", s.Name); err != nil {
		return err
	}
	if s.Level < 0 || s.Level > 100 {
		return errs.NewInvalidFieldError("level", "must be between 0 and 100")
	}
	if !s.Category.Valid() {
		return errs.NewInvalidFieldError("category", "must be one of frontend, backend, tools, design")
	}
	return nil
}

func PrepareProject(p *models.Project) error {
	return firstError(
		required("title", p.Title),
		required("description", p.Description),
		required("shortDescription", p.ShortDescription),
	)
}

func PrepareExperience(e *models.Experience) error {
	if err := firstError(
		required("company", e.Company),
		required("position", e.Position),
		required("description", e.Description),
	); err != nil {
		return err
	}
	if !dateSet(e.StartDate) {
		return errs.NewMissingRequiredFieldError("startDate")
	}
	return nil
}

func PrepareEducation(e *models.Education) error {
	if err := firstError(
		required("institution", e.Institution),
		required("degree", e.Degree),
		required("field", e.Field),
	); err != nil {
		return err
	}
	if !dateSet(e.StartDate) {
		return errs.NewMissingRequiredFieldError("startDate")
	}
	return nil
}

// PrepareCategory derives the slug from the name and applies the default color
func PrepareCategory(c *models.Category) error {
	if err := required("name", c.Name); err != nil {
		return err
	}
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	}
	if c.Color == "" {
		c.Color = models.DefaultCategoryColor
	}
	if !hexColor.MatchString(c.Color) {
		return errs.NewInvalidFieldError("color", "must be a hex color like #3B82F6")
	}
	return validSlug(c.Slug)
}

func PrepareTag(t *models.Tag) error {
	if err := required("name", t.Name); err != nil {
		return err
	}
	if t.Slug == "" {
		t.Slug = slug.Make(t.Name)
	}
	return validSlug(t.Slug)
}

// PrepareBlogPost derives the slug from the title and makes the saving admin
// the author of a post that has none.
func PrepareBlogPost(p *models.BlogPost, currentUserID uuid.UUID) error {
	if err := firstError(
		required("title", p.Title),
		required("content", p.Content),
	); err != nil {
		return err
	}
	if p.Slug == "" {
		p.Slug = slug.Make(p.Title)
	}
	if err := validSlug(p.Slug); err != nil {
		return err
	}
	if p.Status == "" {
		p.Status = models.StatusDraft
	}
	if !p.Status.Valid() {
		return errs.NewInvalidFieldError("status", "must be draft or published")
	}
	if utf8.RuneCountInString(p.Excerpt) > models.MaxExcerptLength {
		return errs.NewInvalidFieldError("excerpt", "must be at most 500 characters")
	}
	if p.Views < 0 {
		return errs.NewInvalidFieldError("views", "must not be negative")
	}
	if p.AuthorID == nil && currentUserID != uuid.Nil {
		id := currentUserID
		p.AuthorID = &id
	}
	return nil
}

func PrepareComment(c *models.Comment) error {
	if c.PostID == uuid.Nil {
		return errs.NewMissingRequiredFieldError("postId")
	}
	return firstError(
		required("name", c.Name),
		required("email", c.Email),
		required("content", c.Content),
	)
}

func PrepareContactMessage(m *models.ContactMessage) error {
	return firstError(
		required("name", m.Name),
		required("email", m.Email),
		required("subject", m.Subject),
		required("message", m.Message),
	)
}

func validSlug(s string) error {
	if s == "" || !slug.IsSlug(s) {
		return errs.NewInvalidFieldError("slug", "must contain only lowercase letters, digits and hyphens")
	}
	return nil
}
