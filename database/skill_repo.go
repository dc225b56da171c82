package database

import (
	"context"

	"github.com/rpupo63/folio-backend/models"
	"gorm.io/gorm"
)

type SkillRepo struct {
	*Repo[models.Skill]
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{newRepo[models.Skill](db, "skill", "category ASC, name ASC")}
}

// FindAllByCategory groups skills by category, strongest first
func (r *SkillRepo) FindAllByCategory(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.WithContext(ctx).Order("category ASC, level DESC").Find(&skills).Error
	return skills, err
}

// FindAllByName lists skills alphabetically, as offered in the technology filter
func (r *SkillRepo) FindAllByName(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.WithContext(ctx).Order("name ASC").Find(&skills).Error
	return skills, err
}
