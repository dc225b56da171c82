package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reader comment on a blog post. Replies point at their parent
// through ParentID; the table stays flat and only top-level comments are listed
// publicly.
type Comment struct {
	Base
	PostID    uuid.UUID  `json:"postId" db:"post_id" gorm:"type:uuid;not null;index"`
	Name      string     `json:"name" db:"name" gorm:"type:text;not null"`
	Email     string     `json:"email" db:"email" gorm:"type:text;not null"`
	Content   string     `json:"content" db:"content" gorm:"type:text;not null"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	Active    bool       `json:"active" db:"active" gorm:"not null"`
	ParentID  *uuid.UUID `json:"parentId,omitempty" db:"parent_id" gorm:"type:uuid;index"`
}

const CommentOrder = "created_at DESC"
