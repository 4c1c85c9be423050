package repository

import (
	"context"

	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/policy"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Question, error)
}

type questionRepository struct {
	store SoftDeleteStore[model.Question]
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{store: NewSoftDeleteStore[model.Question](db)}
}

func (r *questionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	return r.store.First(ctx, policy.ViewActive, id)
}
