package repository

import (
	"context"

	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/policy"
	"gorm.io/gorm"
)

type TeacherRepository interface {
	// FindByID only returns teachers whose user is not soft-deleted.
	FindByID(ctx context.Context, id uint) (*model.Teacher, error)
	UpdateSubscription(ctx context.Context, teacher *model.Teacher) error
	FindSubscription(ctx context.Context, id uint) (*model.Subscription, error)
}

type teacherRepository struct {
	db            *gorm.DB
	subscriptions SoftDeleteStore[model.Subscription]
}

func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db, subscriptions: NewSoftDeleteStore[model.Subscription](db)}
}

func (r *teacherRepository) FindByID(ctx context.Context, id uint) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		InnerJoins("User").
		Preload("Subscription").
		Preload("Status").
		Where("teachers.id = ?", id).
		First(&teacher).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &teacher, nil
}

func (r *teacherRepository) UpdateSubscription(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Model(teacher).
		Select("SubscriptionID", "StatusID", "SubscribedAt").
		Updates(teacher).Error
}

func (r *teacherRepository) FindSubscription(ctx context.Context, id uint) (*model.Subscription, error) {
	return r.subscriptions.First(ctx, policy.ViewActive, id)
}
