package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/folio-backend/models"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	*Repo[models.Category]
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{newRepo[models.Category](db, "category", "name ASC")}
}

// FindBySlug returns the category with the given slug
func (r *CategoryRepo) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, notFound(err, r.entity)
	}
	return &category, nil
}

// PostCount counts the posts of any status filed under the category
func (r *CategoryRepo) PostCount(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("category_id = ?", id).Count(&n).Error
	return n, err
}

// Delete removes a category. Its posts are kept and become uncategorized.
func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.BlogPost{}).Where("category_id = ?", id).UpdateColumn("category_id", nil).Error; err != nil {
			return err
		}
		return newRepo[models.Category](tx, r.entity, "").Delete(ctx, id)
	})
}

type TagRepo struct {
	*Repo[models.Tag]
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{newRepo[models.Tag](db, "tag", "name ASC")}
}

// FindBySlug returns the tag with the given slug
func (r *TagRepo) FindBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tag).Error; err != nil {
		return nil, notFound(err, r.entity)
	}
	return &tag, nil
}

// PostCount counts the posts of any status carrying the tag
func (r *TagRepo) PostCount(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("blog_post_tags").Where("tag_id = ?", id).Count(&n).Error
	return n, err
}

// Delete removes a tag and unlinks it from its posts
func (r *TagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM blog_post_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return newRepo[models.Tag](tx, r.entity, "").Delete(ctx, id)
	})
}
