package repository

import (
	"context"

	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/pagination"
	"github.com/lshigami/Edutrack/internal/policy"
	"gorm.io/gorm"
)

// QuizSummary is a quiz row plus its totals, computed by the query that
// loads it.
type QuizSummary struct {
	model.Quiz
	QuizTypeName     string
	CorrectQuestions int64
	TotalPoints      int64
}

type QuizRepository interface {
	Create(ctx context.Context, quiz *model.Quiz) error
	FindByID(ctx context.Context, view policy.View, id uint) (*model.Quiz, error)
	// FindByIDWithAnswers loads the quiz with its question-answer rows. The
	// referenced questions and answers are loaded even if deleted since.
	FindByIDWithAnswers(ctx context.Context, view policy.View, id uint) (*model.Quiz, error)
	ListByStudent(ctx context.Context, view policy.View, studentID uint, params pagination.Params) (pagination.Page[QuizSummary], error)
}

type quizRepository struct {
	store SoftDeleteStore[model.Quiz]
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{store: NewSoftDeleteStore[model.Quiz](db)}
}

const (
	correctQuestionsSelect = `(SELECT COUNT(*) FROM quiz_question_answers qqa
		JOIN answers a ON a.id = qqa.answer_id
		WHERE qqa.quiz_id = quizzes.id AND a.is_correct) AS correct_questions`
	totalPointsSelect = `(SELECT COALESCE(SUM(qqa.answer_point), 0) FROM quiz_question_answers qqa
		WHERE qqa.quiz_id = quizzes.id) AS total_points`
	quizTypeNameSelect = `(SELECT qt.name FROM quiz_types qt WHERE qt.id = quizzes.quiz_type_id) AS quiz_type_name`
)

func withSummaryColumns(db *gorm.DB) *gorm.DB {
	return db.Select("quizzes.*", quizTypeNameSelect, correctQuestionsSelect, totalPointsSelect)
}

func (r *quizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	return r.store.db.WithContext(ctx).Create(quiz).Error
}

func (r *quizRepository) FindByID(ctx context.Context, view policy.View, id uint) (*model.Quiz, error) {
	return r.store.First(ctx, view, id, preload("QuizType"))
}

func (r *quizRepository) FindByIDWithAnswers(ctx context.Context, view policy.View, id uint) (*model.Quiz, error) {
	return r.store.First(ctx, view, id, func(db *gorm.DB) *gorm.DB {
		return db.Preload("QuizType", unscoped).
			Preload("QuizQuestions", func(db *gorm.DB) *gorm.DB {
				return db.Order("quiz_question_answers.id ASC")
			}).
			Preload("QuizQuestions.Question", unscoped).
			Preload("QuizQuestions.Answer", unscoped)
	})
}

func (r *quizRepository) ListByStudent(ctx context.Context, view policy.View, studentID uint, params pagination.Params) (pagination.Page[QuizSummary], error) {
	query := r.store.View(ctx, view).
		Where("quizzes.student_id = ?", studentID).
		Order("quizzes.created_at DESC, quizzes.id DESC")
	return pagination.Paginate[QuizSummary](ctx, query, params, withSummaryColumns)
}

func unscoped(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}
