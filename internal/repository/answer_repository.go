package repository

import (
	"context"

	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/policy"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Answer, error)
}

type answerRepository struct {
	store SoftDeleteStore[model.Answer]
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{store: NewSoftDeleteStore[model.Answer](db)}
}

func (r *answerRepository) FindByID(ctx context.Context, id uint) (*model.Answer, error) {
	return r.store.First(ctx, policy.ViewActive, id)
}
