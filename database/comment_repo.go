package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/folio-backend/errs"
	"github.com/rpupo63/folio-backend/models"
	"gorm.io/gorm"
)

type CommentRepo struct {
	*Repo[models.Comment]
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{newRepo[models.Comment](db, "comment", models.CommentOrder)}
}

// FindActiveTopLevel lists the visible comments of a post that are not replies
func (r *CommentRepo) FindActiveTopLevel(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND active = ? AND parent_id IS NULL", postID, true).
		Order(models.CommentOrder).
		Find(&comments).Error
	return comments, err
}

// SetActive shows or hides many comments in one statement
func (r *CommentRepo) SetActive(ctx context.Context, ids []uuid.UUID, active bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id IN ?", ids).UpdateColumn("active", active)
	return res.RowsAffected, res.Error
}

// CountActive counts visible comments
func (r *CommentRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("active = ?", true).Count(&n).Error
	return n, err
}

// CountCreatedSince counts comments created at or after t
func (r *CommentRepo) CountCreatedSince(ctx context.Context, t time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("created_at >= ?", t).Count(&n).Error
	return n, err
}

// Add inserts a comment after checking its parent
func (r *CommentRepo) Add(ctx context.Context, comment *models.Comment) error {
	if err := r.checkParent(ctx, comment); err != nil {
		return err
	}
	return r.Repo.Add(ctx, comment)
}

// Update saves a comment after checking its parent
func (r *CommentRepo) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.checkParent(ctx, comment); err != nil {
		return err
	}
	return r.Repo.Update(ctx, comment)
}

// Delete removes a comment and its replies
func (r *CommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return newRepo[models.Comment](tx, r.entity, "").Delete(ctx, id)
	})
}

// checkParent rejects a reply whose parent is itself or sits on another post.
func (r *CommentRepo) checkParent(ctx context.Context, comment *models.Comment) error {
	if comment.ParentID == nil {
		return nil
	}
	if *comment.ParentID == comment.ID {
		return errs.NewInvalidFieldError("parentId", "a comment cannot reply to itself")
	}

	parent, err := r.FindByID(ctx, *comment.ParentID)
	if err != nil {
		if errs.IsNotFound(err) {
			return errs.NewInvalidFieldError("parentId", "parent comment does not exist")
		}
		return err
	}
	if parent.PostID != comment.PostID {
		return errs.NewInvalidFieldError("parentId", "parent comment belongs to another post")
	}
	return nil
}
