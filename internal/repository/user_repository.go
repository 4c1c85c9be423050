package repository

import (
	"context"
	"errors"

	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/pagination"
	"github.com/lshigami/Edutrack/internal/policy"
	"gorm.io/gorm"
)

type UserRepository interface {
	// Create inserts the user together with its Student or Teacher profile
	// when one is set.
	Create(ctx context.Context, user *model.User) error
	EmailTaken(ctx context.Context, email string) (bool, error)
	FindByID(ctx context.Context, view policy.View, id uint) (*model.User, error)
	List(ctx context.Context, view policy.View, params pagination.Params) (pagination.Page[model.User], error)
	// SetActive flips is_active only when it differs from active and the user
	// is not soft-deleted. It reports the number of rows changed.
	SetActive(ctx context.Context, id uint, active bool) (int64, error)
	SoftDelete(ctx context.Context, ids []uint) (int64, error)
	Restore(ctx context.Context, ids []uint) (int64, error)
}

type userRepository struct {
	db    *gorm.DB
	store SoftDeleteStore[model.User]
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, store: NewSoftDeleteStore[model.User](db)}
}

func withProfiles(db *gorm.DB) *gorm.DB {
	return db.Preload("Student").
		Preload("Teacher").
		Preload("Teacher.Subscription").
		Preload("Teacher.Status")
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (r *userRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	// Soft-deleted accounts keep their address.
	err := r.db.WithContext(ctx).Unscoped().Model(&model.User{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) FindByID(ctx context.Context, view policy.View, id uint) (*model.User, error) {
	return r.store.First(ctx, view, id, withProfiles)
}

func (r *userRepository) List(ctx context.Context, view policy.View, params pagination.Params) (pagination.Page[model.User], error) {
	return r.store.Page(ctx, view, "id ASC", params, withProfiles)
}

func (r *userRepository) SetActive(ctx context.Context, id uint, active bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND is_active = ?", id, !active).
		Update("is_active", active)
	return res.RowsAffected, res.Error
}

func (r *userRepository) SoftDelete(ctx context.Context, ids []uint) (int64, error) {
	return r.store.SoftDelete(ctx, ids)
}

func (r *userRepository) Restore(ctx context.Context, ids []uint) (int64, error) {
	return r.store.Restore(ctx, ids)
}
