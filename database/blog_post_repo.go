package database

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/folio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter narrows the public post listing. Empty fields do not filter and
// all set fields must match.
type PostFilter struct {
	CategorySlug string
	TagSlug      string
	Search       string
}

type BlogPostRepo struct {
	*Repo[models.BlogPost]
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{newRepo[models.BlogPost](db, "blog post", models.BlogPostOrder, "Author", "Category", "Tags")}
}

// PostRelations preloads what a post listing displays
func PostRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Category").Preload("Tags")
}

// PublishedQuery builds the ordered query of published posts matching f. It
// carries no preloads so it can be counted; apply PostRelations when fetching.
func (r *BlogPostRepo) PublishedQuery(ctx context.Context, f PostFilter) *gorm.DB {
	db := r.db.WithContext(ctx)
	q := db.Model(&models.BlogPost{}).
		Where("blog_posts.status = ?", models.StatusPublished).
		Order(models.BlogPostOrder)

	if f.CategorySlug != "" {
		q = q.Where("blog_posts.category_id IN (?)",
			db.Model(&models.Category{}).Select("id").Where("slug = ?", f.CategorySlug))
	}

	if f.TagSlug != "" {
		q = q.Where("blog_posts.id IN (?)",
			db.Table("blog_post_tags").
				Select("blog_post_tags.blog_post_id").
				Joins("JOIN tags ON tags.id = blog_post_tags.tag_id").
				Where("tags.slug = ?", f.TagSlug))
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := containsPattern(search)
		q = q.Where(
			"(LOWER(blog_posts.title) LIKE ?"+likeEscape+
				" OR LOWER(blog_posts.content) LIKE ?"+likeEscape+
				" OR LOWER(blog_posts.excerpt) LIKE ?"+likeEscape+")",
			pattern, pattern, pattern)
	}
	return q
}

// FindPublished returns every published post matching f
func (r *BlogPostRepo) FindPublished(ctx context.Context, f PostFilter) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.PublishedQuery(ctx, f).Scopes(PostRelations).Find(&posts).Error
	return posts, err
}

// FindPublishedBySlug returns a published post. Drafts are reported as not found.
func (r *BlogPostRepo) FindPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.query(ctx).
		Where("slug = ? AND status = ?", slug, models.StatusPublished).
		First(&post).Error
	if err != nil {
		return nil, notFound(err, r.entity)
	}
	return &post, nil
}

// Latest returns the newest published posts
func (r *BlogPostRepo) Latest(ctx context.Context, limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.PublishedQuery(ctx, PostFilter{}).Scopes(PostRelations).Limit(limit).Find(&posts).Error
	return posts, err
}

// Popular returns the most viewed published posts
func (r *BlogPostRepo) Popular(ctx context.Context, limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.db.WithContext(ctx).Scopes(PostRelations).
		Where("status = ?", models.StatusPublished).
		Order("views DESC").Order(models.BlogPostOrder).
		Limit(limit).Find(&posts).Error
	return posts, err
}

// Related returns other published posts sharing the category of post.
// Uncategorized posts are related to the other uncategorized posts.
func (r *BlogPostRepo) Related(ctx context.Context, post *models.BlogPost, limit int) ([]models.BlogPost, error) {
	q := r.PublishedQuery(ctx, PostFilter{}).Scopes(PostRelations).Where("blog_posts.id <> ?", post.ID)
	if post.CategoryID == nil {
		q = q.Where("blog_posts.category_id IS NULL")
	} else {
		q = q.Where("blog_posts.category_id = ?", *post.CategoryID)
	}

	var posts []models.BlogPost
	err := q.Limit(limit).Find(&posts).Error
	return posts, err
}

// IncrementViews adds one to the view counter in a single statement. It does
// not touch updated_at and runs no hooks.
func (r *BlogPostRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&models.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, r.entity)
	}
	return nil
}

// SetStatus changes the status of many posts in one statement. Like any bulk
// update it bypasses BeforeSave, so publishing this way leaves published_at
// untouched.
func (r *BlogPostRepo) SetStatus(ctx context.Context, ids []uuid.UUID, status models.PostStatus) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.BlogPost{}).
		Where("id IN ?", ids).
		UpdateColumn("status", status)
	return res.RowsAffected, res.Error
}

// CountPublished counts published posts
func (r *BlogPostRepo) CountPublished(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("status = ?", models.StatusPublished).Count(&n).Error
	return n, err
}

// CountCreatedSince counts posts of any status created at or after t
func (r *BlogPostRepo) CountCreatedSince(ctx context.Context, t time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("created_at >= ?", t).Count(&n).Error
	return n, err
}

// Add inserts a post and links its tags
func (r *BlogPostRepo) Add(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tagIDs := idsOf(post.Tags)
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		return replaceAssociation[models.Tag](tx, post, "Tags", tagIDs)
	})
}

// Update saves a post and replaces its tags
func (r *BlogPostRepo) Update(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tagIDs := idsOf(post.Tags)
		if err := tx.Omit(clause.Associations).Save(post).Error; err != nil {
			return err
		}
		return replaceAssociation[models.Tag](tx, post, "Tags", tagIDs)
	})
}

// Delete removes a post together with its comments and tag links
func (r *BlogPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM blog_post_tags WHERE blog_post_id = ?", id).Error; err != nil {
			return err
		}
		return newRepo[models.BlogPost](tx, r.entity, "").Delete(ctx, id)
	})
}
