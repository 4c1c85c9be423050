package repository

import (
	"context"
	"errors"

	"github.com/lshigami/Edutrack/internal/model"
	"gorm.io/gorm"
)

type QuizAnswerRepository interface {
	Create(ctx context.Context, qa *model.QuizQuestionAnswer) error
	Exists(ctx context.Context, quizID, questionID uint) (bool, error)
	// CountCorrect counts the quiz's rows whose chosen answer is correct.
	CountCorrect(ctx context.Context, quizID uint) (int64, error)
	SumPoints(ctx context.Context, quizID uint) (int64, error)
}

type quizAnswerRepository struct {
	db *gorm.DB
}

func NewQuizAnswerRepository(db *gorm.DB) QuizAnswerRepository {
	return &quizAnswerRepository{db: db}
}

func (r *quizAnswerRepository) Create(ctx context.Context, qa *model.QuizQuestionAnswer) error {
	err := r.db.WithContext(ctx).Omit("Question", "Answer").Create(qa).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (r *quizAnswerRepository) Exists(ctx context.Context, quizID, questionID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.QuizQuestionAnswer{}).
		Where("quiz_id = ? AND question_id = ?", quizID, questionID).
		Count(&count).Error
	return count > 0, err
}

func (r *quizAnswerRepository) CountCorrect(ctx context.Context, quizID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.QuizQuestionAnswer{}).
		Joins("JOIN answers ON answers.id = quiz_question_answers.answer_id").
		Where("quiz_question_answers.quiz_id = ? AND answers.is_correct", quizID).
		Count(&count).Error
	return count, err
}

func (r *quizAnswerRepository) SumPoints(ctx context.Context, quizID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.QuizQuestionAnswer{}).
		Where("quiz_id = ?", quizID).
		Select("COALESCE(SUM(answer_point), 0)").
		Scan(&total).Error
	return total, err
}
