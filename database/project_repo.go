package database

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/folio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo struct {
	*Repo[models.Project]
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{newRepo[models.Project](db, "project", models.ProjectOrder, "Technologies")}
}

// FindFiltered returns all projects in the default order. A non-empty tech keeps
// only projects with a technology whose name contains it, ignoring case.
func (r *ProjectRepo) FindFiltered(ctx context.Context, tech string) ([]models.Project, error) {
	q := r.query(ctx).Order(models.ProjectOrder)
	if tech = strings.TrimSpace(tech); tech != "" {
		sub := r.db.WithContext(ctx).Table("project_technologies").
			Select("project_technologies.project_id").
			Joins("JOIN skills ON skills.id = project_technologies.skill_id").
			Where("LOWER(skills.name) LIKE ?"+likeEscape, containsPattern(tech))
		q = q.Where("projects.id IN (?)", sub)
	}

	var projects []models.Project
	err := q.Find(&projects).Error
	return projects, err
}

// FindFeatured returns up to limit featured projects
func (r *ProjectRepo) FindFeatured(ctx context.Context, limit int) ([]models.Project, error) {
	var projects []models.Project
	err := r.query(ctx).Where("featured = ?", true).Order(models.ProjectOrder).Limit(limit).Find(&projects).Error
	return projects, err
}

// FindRelated returns up to limit other projects. Relatedness is not computed:
// any project but the given one qualifies.
func (r *ProjectRepo) FindRelated(ctx context.Context, id uuid.UUID, limit int) ([]models.Project, error) {
	var projects []models.Project
	err := r.query(ctx).Where("projects.id <> ?", id).Order(models.ProjectOrder).Limit(limit).Find(&projects).Error
	return projects, err
}

// TechnologyCount counts the skills linked to a project
func (r *ProjectRepo) TechnologyCount(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("project_technologies").Where("project_id = ?", id).Count(&n).Error
	return n, err
}

// Add inserts a project and links its technologies
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		techIDs := idsOf(project.Technologies)
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}
		return replaceAssociation[models.Skill](tx, project, "Technologies", techIDs)
	})
}

// Update saves a project and replaces its technologies
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		techIDs := idsOf(project.Technologies)
		if err := tx.Omit(clause.Associations).Save(project).Error; err != nil {
			return err
		}
		return replaceAssociation[models.Skill](tx, project, "Technologies", techIDs)
	})
}

// Delete removes a project and its technology links
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM project_technologies WHERE project_id = ?", id).Error; err != nil {
			return err
		}
		return newRepo[models.Project](tx, r.entity, "").Delete(ctx, id)
	})
}
