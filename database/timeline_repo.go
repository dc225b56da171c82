package database

import (
	"github.com/rpupo63/folio-backend/models"
	"gorm.io/gorm"
)

type ExperienceRepo struct {
	*Repo[models.Experience]
}

func NewExperienceRepo(db *gorm.DB) *ExperienceRepo {
	return &ExperienceRepo{newRepo[models.Experience](db, "experience", models.TimelineOrder)}
}

type EducationRepo struct {
	*Repo[models.Education]
}

func NewEducationRepo(db *gorm.DB) *EducationRepo {
	return &EducationRepo{newRepo[models.Education](db, "education", models.TimelineOrder)}
}
