package repository

import (
	"context"

	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/pagination"
	"github.com/lshigami/Edutrack/internal/policy"
	"gorm.io/gorm"
)

type QuizTypeRepository interface {
	FindByID(ctx context.Context, view policy.View, id uint) (*model.QuizType, error)
	List(ctx context.Context, view policy.View, params pagination.Params) (pagination.Page[model.QuizType], error)
}

type quizTypeRepository struct {
	store SoftDeleteStore[model.QuizType]
}

func NewQuizTypeRepository(db *gorm.DB) QuizTypeRepository {
	return &quizTypeRepository{store: NewSoftDeleteStore[model.QuizType](db)}
}

func (r *quizTypeRepository) FindByID(ctx context.Context, view policy.View, id uint) (*model.QuizType, error) {
	return r.store.First(ctx, view, id)
}

func (r *quizTypeRepository) List(ctx context.Context, view policy.View, params pagination.Params) (pagination.Page[model.QuizType], error) {
	return r.store.Page(ctx, view, "name ASC, id ASC", params)
}
