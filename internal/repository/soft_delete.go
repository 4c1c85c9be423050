package repository

import (
	"context"
	"errors"

	"github.com/lshigami/Edutrack/internal/pagination"
	"github.com/lshigami/Edutrack/internal/policy"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned by every Find* method when the row does not exist
// in the requested view.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert hits a unique constraint. It needs
// gorm's TranslateError option.
var ErrDuplicate = errors.New("duplicate record")

// SoftDeleteStore exposes the two disjoint views of a soft-deletable model
// and the bulk delete/restore updates over it. T must embed model.Base.
type SoftDeleteStore[T any] struct {
	db *gorm.DB
}

func NewSoftDeleteStore[T any](db *gorm.DB) SoftDeleteStore[T] {
	return SoftDeleteStore[T]{db: db}
}

// Active returns a query over rows with a null deleted_at.
func (s SoftDeleteStore[T]) Active(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(new(T))
}

// Deleted returns a query over soft-deleted rows only.
func (s SoftDeleteStore[T]) Deleted(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Unscoped().Model(new(T)).
		Where(clause.Neq{Column: clause.Column{Table: clause.CurrentTable, Name: "deleted_at"}, Value: nil})
}

func (s SoftDeleteStore[T]) View(ctx context.Context, view policy.View) *gorm.DB {
	if view == policy.ViewDeleted {
		return s.Deleted(ctx)
	}
	return s.Active(ctx)
}

// First loads one row by primary key from the given view.
func (s SoftDeleteStore[T]) First(ctx context.Context, view policy.View, id uint, scopes ...func(*gorm.DB) *gorm.DB) (*T, error) {
	var row T
	err := s.View(ctx, view).Scopes(scopes...).
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}, Value: id}).
		First(&row).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &row, nil
}

func (s SoftDeleteStore[T]) Page(ctx context.Context, view policy.View, order string, params pagination.Params, scopes ...func(*gorm.DB) *gorm.DB) (pagination.Page[T], error) {
	return pagination.Paginate[T](ctx, s.View(ctx, view).Order(order), params, scopes...)
}

// SoftDelete stamps deleted_at on the active rows among ids in one UPDATE and
// returns how many rows moved to the deleted view. Already deleted or missing
// ids are not counted, so repeating the call returns zero.
func (s SoftDeleteStore[T]) SoftDelete(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Where("id IN ?", ids).Delete(new(T))
	return res.RowsAffected, res.Error
}

// Restore clears deleted_at on the soft-deleted rows among ids.
func (s SoftDeleteStore[T]) Restore(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.Deleted(ctx).Where("id IN ?", ids).Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// preload returns a scope preloading the given associations.
func preload(associations ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, a := range associations {
			db = db.Preload(a)
		}
		return db
	}
}
