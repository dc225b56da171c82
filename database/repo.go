package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/folio-backend/errs"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repo implements the CRUD operations every entity repository shares. Entity
// repositories embed it and override what needs more than a single statement.
type Repo[T any] struct {
	db       *gorm.DB
	entity   string
	order    string
	preloads []string
}

func newRepo[T any](db *gorm.DB, entity, order string, preloads ...string) *Repo[T] {
	return &Repo[T]{db: db, entity: entity, order: order, preloads: preloads}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *Repo[T]) GetDB() *gorm.DB {
	return r.db
}

// Entity is the name used in error messages
func (r *Repo[T]) Entity() string {
	return r.entity
}

func (r *Repo[T]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	return q
}

// FindAll returns every row in the default order
func (r *Repo[T]) FindAll(ctx context.Context) ([]T, error) {
	var items []T
	q := r.query(ctx)
	if r.order != "" {
		q = q.Order(r.order)
	}
	err := q.Find(&items).Error
	return items, err
}

// FindByID returns a row by its ID
func (r *Repo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var item T
	if err := r.query(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, notFound(err, r.entity)
	}
	return &item, nil
}

// Add inserts a new row
func (r *Repo[T]) Add(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update saves every column of an existing row
func (r *Repo[T]) Update(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error
}

// Delete removes a row by id
func (r *Repo[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var item T
	res := r.db.WithContext(ctx).Delete(&item, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound(r.entity)
	}
	return nil
}

// Count returns the number of rows
func (r *Repo[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	var item T
	err := r.db.WithContext(ctx).Model(&item).Count(&n).Error
	return n, err
}

func notFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFound(entity)
	}
	return err
}
