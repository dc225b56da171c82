package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the UUID primary key shared by every entity. The key is assigned
// in Go so the schema works the same on postgres and sqlite.
type Base struct {
	ID uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// GetID exposes the key to generic code that only knows the entity type.
func (b Base) GetID() uuid.UUID {
	return b.ID
}

// SetID is used when an update payload is addressed by URL rather than body.
func (b *Base) SetID(id uuid.UUID) {
	b.ID = id
}
