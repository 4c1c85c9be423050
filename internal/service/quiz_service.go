package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/Edutrack/internal/dto"
	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/pagination"
	"github.com/lshigami/Edutrack/internal/policy"
	"github.com/lshigami/Edutrack/internal/repository"
	"github.com/rs/zerolog/log"
)

type QuizService interface {
	ListQuizTypes(ctx context.Context, actor policy.Actor, showDeleted bool, params pagination.Params) (pagination.Page[dto.QuizTypeResponse], error)
	// CreateQuiz starts an empty quiz for the calling student.
	CreateQuiz(ctx context.Context, actor policy.Actor, req dto.CreateQuizRequest) (*dto.QuizSummaryResponse, error)
	ListQuizzes(ctx context.Context, actor policy.Actor, params pagination.Params) (pagination.Page[dto.QuizSummaryResponse], error)
	GetQuiz(ctx context.Context, actor policy.Actor, id uint) (*dto.QuizDetailResponse, error)
	AnswerQuestion(ctx context.Context, actor policy.Actor, quizID uint, req dto.AnswerQuestionRequest) (*dto.QuizDetailResponse, error)
}

type quizService struct {
	quizRepo     repository.QuizRepository
	quizTypeRepo repository.QuizTypeRepository
	answersRepo  repository.QuizAnswerRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
}

func NewQuizService(
	quizRepo repository.QuizRepository,
	quizTypeRepo repository.QuizTypeRepository,
	answersRepo repository.QuizAnswerRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
) QuizService {
	return &quizService{
		quizRepo:     quizRepo,
		quizTypeRepo: quizTypeRepo,
		answersRepo:  answersRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
	}
}

func ownsQuiz(actor policy.Actor, quiz *model.Quiz) bool {
	return actor.StudentID != nil && *actor.StudentID == quiz.StudentID
}

func (s *quizService) ListQuizTypes(ctx context.Context, actor policy.Actor, showDeleted bool, params pagination.Params) (pagination.Page[dto.QuizTypeResponse], error) {
	return listView(actor, showDeleted, "quiz type", func(v policy.View) (pagination.Page[model.QuizType], error) {
		return s.quizTypeRepo.List(ctx, v, params)
	}, toQuizType)
}

func (s *quizService) CreateQuiz(ctx context.Context, actor policy.Actor, req dto.CreateQuizRequest) (*dto.QuizSummaryResponse, error) {
	if !actor.IsStudent() {
		return nil, ErrForbidden
	}

	quizType, err := s.quizTypeRepo.FindByID(ctx, policy.ViewActive, req.QuizTypeID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newValidationError("quiz_type_id", fmt.Sprintf("quiz type with ID %d not found or deleted", req.QuizTypeID))
	}
	if err != nil {
		return nil, fmt.Errorf("error loading quiz type: %w", err)
	}

	quiz := &model.Quiz{
		Name:       strings.TrimSpace(req.Name),
		StudentID:  *actor.StudentID,
		QuizTypeID: quizType.ID,
	}
	if quiz.Name == "" {
		quiz.Name = quizType.Name
	}
	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		log.Error().Err(err).Uint("studentID", *actor.StudentID).Msg("Failed to create quiz")
		return nil, fmt.Errorf("error creating quiz: %w", err)
	}
	log.Info().Uint("quizID", quiz.ID).Uint("studentID", quiz.StudentID).Uint("quizTypeID", quiz.QuizTypeID).Msg("Quiz created")

	resp := toQuizSummary(repository.QuizSummary{Quiz: *quiz, QuizTypeName: quizType.Name})
	resp.QuizType = toQuizType(*quizType)
	return &resp, nil
}

// ListQuizzes lists the caller's own quizzes, newest first. Callers without
// a student profile have none.
func (s *quizService) ListQuizzes(ctx context.Context, actor policy.Actor, params pagination.Params) (pagination.Page[dto.QuizSummaryResponse], error) {
	if !actor.IsStudent() {
		return pagination.NewPage[dto.QuizSummaryResponse](0, params, nil), nil
	}
	quizzes, err := s.quizRepo.ListByStudent(ctx, policy.ViewActive, *actor.StudentID, params)
	if err != nil {
		if !errors.Is(err, pagination.ErrPageOutOfRange) {
			log.Error().Err(err).Uint("studentID", *actor.StudentID).Msg("Failed to list quizzes")
		}
		return pagination.Page[dto.QuizSummaryResponse]{}, translate(err, "quiz", 0)
	}
	return pagination.Map(quizzes, toQuizSummary), nil
}

func (s *quizService) GetQuiz(ctx context.Context, actor policy.Actor, id uint) (*dto.QuizDetailResponse, error) {
	quiz, err := s.quizRepo.FindByIDWithAnswers(ctx, policy.ViewActive, id)
	if err != nil {
		return nil, translate(err, "quiz", id)
	}
	if err := policy.RequireOwner(actor, ownsQuiz(actor, quiz)); err != nil {
		return nil, err
	}
	return s.detail(ctx, quiz)
}

func (s *quizService) AnswerQuestion(ctx context.Context, actor policy.Actor, quizID uint, req dto.AnswerQuestionRequest) (*dto.QuizDetailResponse, error) {
	quiz, err := s.quizRepo.FindByID(ctx, policy.ViewActive, quizID)
	if err != nil {
		return nil, translate(err, "quiz", quizID)
	}
	// Only the student who owns the quiz records answers in it.
	if !ownsQuiz(actor, quiz) {
		return nil, ErrForbidden
	}
	if req.AnswerPoint < 0 {
		return nil, newValidationError("answer_point", "answer_point must not be negative")
	}

	question, err := s.questionRepo.FindByID(ctx, req.QuestionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newValidationError("question_id", fmt.Sprintf("question with ID %d not found or deleted", req.QuestionID))
	}
	if err != nil {
		return nil, fmt.Errorf("error loading question: %w", err)
	}
	answer, err := s.answerRepo.FindByID(ctx, req.AnswerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newValidationError("answer_id", fmt.Sprintf("answer with ID %d not found or deleted", req.AnswerID))
	}
	if err != nil {
		return nil, fmt.Errorf("error loading answer: %w", err)
	}
	if answer.QuestionID != question.ID {
		return nil, &ConflictError{Message: fmt.Sprintf("answer %d does not belong to question %d", answer.ID, question.ID)}
	}

	answered, err := s.answersRepo.Exists(ctx, quiz.ID, question.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking quiz answers: %w", err)
	}
	if answered {
		return nil, &ConflictError{Message: fmt.Sprintf("question %d is already answered in quiz %d", question.ID, quiz.ID)}
	}

	qa := &model.QuizQuestionAnswer{
		QuizID:      quiz.ID,
		QuestionID:  question.ID,
		AnswerID:    answer.ID,
		AnswerPoint: req.AnswerPoint,
	}
	if err := s.answersRepo.Create(ctx, qa); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &ConflictError{Message: fmt.Sprintf("question %d is already answered in quiz %d", question.ID, quiz.ID)}
		}
		log.Error().Err(err).Uint("quizID", quiz.ID).Uint("questionID", question.ID).Msg("Failed to record quiz answer")
		return nil, fmt.Errorf("error recording answer: %w", err)
	}
	log.Info().Uint("quizID", quiz.ID).Uint("questionID", question.ID).Bool("correct", answer.IsCorrect).Msg("Quiz answer recorded")

	full, err := s.quizRepo.FindByIDWithAnswers(ctx, policy.ViewActive, quiz.ID)
	if err != nil {
		return nil, translate(err, "quiz", quiz.ID)
	}
	return s.detail(ctx, full)
}

// detail builds the quiz response with totals counted at read time.
func (s *quizService) detail(ctx context.Context, quiz *model.Quiz) (*dto.QuizDetailResponse, error) {
	correct, err := s.answersRepo.CountCorrect(ctx, quiz.ID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("Failed to count correct answers")
		return nil, fmt.Errorf("error counting correct answers: %w", err)
	}
	points, err := s.answersRepo.SumPoints(ctx, quiz.ID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("Failed to sum quiz points")
		return nil, fmt.Errorf("error summing points: %w", err)
	}

	resp := dto.QuizDetailResponse{
		QuizSummaryResponse: toQuizSummary(repository.QuizSummary{
			Quiz:             *quiz,
			QuizTypeName:     quiz.QuizType.Name,
			CorrectQuestions: correct,
			TotalPoints:      points,
		}),
		QuizQuestions: make([]dto.QuizQuestionAnswerResponse, 0, len(quiz.QuizQuestions)),
	}
	resp.QuizType = toQuizType(quiz.QuizType)
	for _, qa := range quiz.QuizQuestions {
		item, err := toQuizQuestionAnswer(qa)
		if err != nil {
			return nil, err
		}
		resp.QuizQuestions = append(resp.QuizQuestions, item)
	}
	return &resp, nil
}
