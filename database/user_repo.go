package database

import (
	"context"
	"fmt"

	"github.com/rpupo63/folio-backend/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type UserRepo struct {
	*Repo[models.User]
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{newRepo[models.User](db, "user", "username ASC")}
}

// FindByUsername returns the account with the given username
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err, r.entity)
	}
	return &user, nil
}

// EnsureAdmin creates the admin account when no user exists yet. It is a no-op
// once any account is present so a rotated password is never overwritten.
func (r *UserRepo) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	count, err := r.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	user := models.User{Username: username}
	if err := user.SetPassword(password); err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if err := r.Add(ctx, &user); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	log.Info().Str("username", username).Msg("Created admin user")
	return nil
}
