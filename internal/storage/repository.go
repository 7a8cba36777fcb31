// Package storage provides a single generic GORM-backed repository that the
// domain services receive through the Repository interface, plus the S3
// object store used for file uploads.
package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by FindOne when no row matches.
var ErrNotFound = errors.New("record not found")

// Conditions maps column names to required values, combined with AND.
type Conditions map[string]any

// Repository is the persistence contract for one entity type. Uniqueness of
// indexed columns is enforced by the database, not by callers; Create
// surfaces constraint violations as ordinary errors.
type Repository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindOne(ctx context.Context, where Conditions) (*T, error)
	FindAll(ctx context.Context) ([]T, error)
	FindPage(ctx context.Context, offset, limit int) ([]T, int64, error)
	Updates(ctx context.Context, where Conditions, values map[string]any) error
	Delete(ctx context.Context, where Conditions) error
	DeleteByIDs(ctx context.Context, ids []string) error
}

type gormRepository[T any] struct {
	db *gorm.DB
}

func NewGormRepository[T any](db *gorm.DB) Repository[T] {
	return &gormRepository[T]{db: db}
}

func (r *gormRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *gormRepository[T]) FindOne(ctx context.Context, where Conditions) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).Where(map[string]any(where)).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *gormRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *gormRepository[T]) FindPage(ctx context.Context, offset, limit int) ([]T, int64, error) {
	var entities []T
	var model T
	var total int64
	if err := r.db.WithContext(ctx).Model(&model).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Find(&entities).Error
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *gormRepository[T]) Updates(ctx context.Context, where Conditions, values map[string]any) error {
	var model T
	return r.db.WithContext(ctx).Model(&model).Where(map[string]any(where)).Updates(values).Error
}

func (r *gormRepository[T]) Delete(ctx context.Context, where Conditions) error {
	var model T
	return r.db.WithContext(ctx).Where(map[string]any(where)).Delete(&model).Error
}

func (r *gormRepository[T]) DeleteByIDs(ctx context.Context, ids []string) error {
	var model T
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model).Error
}
