package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/folio-backend/errs"
	"github.com/rpupo63/folio-backend/models"
	"gorm.io/gorm"
)

type ContactMessageRepo struct {
	*Repo[models.ContactMessage]
}

func NewContactMessageRepo(db *gorm.DB) *ContactMessageRepo {
	return &ContactMessageRepo{newRepo[models.ContactMessage](db, "contact message", models.ContactMessageOrder)}
}

// SetRead marks many messages read or unread in one statement
func (r *ContactMessageRepo) SetRead(ctx context.Context, ids []uuid.UUID, read bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("id IN ?", ids).UpdateColumn("read", read)
	return res.RowsAffected, res.Error
}

// CountUnread counts messages nobody opened yet
func (r *ContactMessageRepo) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("read = ?", false).Count(&n).Error
	return n, err
}

// Update saves a message edited by an admin. What the sender wrote is read-only,
// so the only column written is read: opening a message to edit it marks it read.
func (r *ContactMessageRepo) Update(ctx context.Context, message *models.ContactMessage) error {
	message.Read = true
	res := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("id = ?", message.ID).UpdateColumn("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound(r.entity)
	}
	return nil
}
