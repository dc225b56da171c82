package database

import (
	"context"
	"errors"

	"github.com/rpupo63/folio-backend/models"
	"gorm.io/gorm"
)

type ProfileRepo struct {
	*Repo[models.Profile]
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{newRepo[models.Profile](db, "profile", "created_at ASC", "User")}
}

// First returns the site owner's profile, or nil when none was created yet.
func (r *ProfileRepo) First(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	err := r.query(ctx).Order("created_at ASC").First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
