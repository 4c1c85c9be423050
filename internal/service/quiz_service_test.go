package service

import (
	"context"
	"testing"
	"time"

	"github.com/lshigami/Edutrack/internal/dto"
	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/pagination"
	"github.com/lshigami/Edutrack/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = policy.Actor{UserID: 20, IsActive: true, StudentID: uintPtr(1)}
	bob   = policy.Actor{UserID: 21, IsActive: true, StudentID: uintPtr(2)}
)

// seedQuizStore builds four questions with one correct (id q*10+1) and one
// wrong (id q*10+2) answer each.
func seedQuizStore() *fakeQuizStore {
	s := newFakeQuizStore()
	s.types[1] = &model.QuizType{Base: model.Base{ID: 1}, Name: "Algebra"}
	s.types[2] = &model.QuizType{Base: model.Base{ID: 2, DeletedAt: deletedAt(time.Now())}, Name: "Retired"}
	for q := uint(1); q <= 4; q++ {
		s.questions[q] = &model.Question{Base: model.Base{ID: q}, Name: "question"}
		s.answers[q*10+1] = &model.Answer{Base: model.Base{ID: q*10 + 1}, QuestionID: q, IsCorrect: true}
		s.answers[q*10+2] = &model.Answer{Base: model.Base{ID: q*10 + 2}, QuestionID: q, IsCorrect: false}
	}
	return s
}

func createQuiz(t *testing.T, svc QuizService, actor policy.Actor) uint {
	t.Helper()
	quiz, err := svc.CreateQuiz(context.Background(), actor, dto.CreateQuizRequest{QuizTypeID: 1})
	require.NoError(t, err)
	return quiz.ID
}

func TestCreateQuiz(t *testing.T) {
	ctx := context.Background()
	svc := newFakeQuizService(seedQuizStore())

	_, err := svc.CreateQuiz(ctx, plainUser, dto.CreateQuizRequest{QuizTypeID: 1})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateQuiz(ctx, alice, dto.CreateQuizRequest{QuizTypeID: 2})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "quiz_type_id")

	quiz, err := svc.CreateQuiz(ctx, alice, dto.CreateQuizRequest{QuizTypeID: 1})
	require.NoError(t, err)
	assert.Equal(t, uint(1), quiz.StudentID)
	assert.Equal(t, "Algebra", quiz.Name)
	assert.Equal(t, "Algebra", quiz.QuizType.Name)
	assert.Zero(t, quiz.CorrectQuestions)
}

func TestCorrectQuestionsIsCountedOnRead(t *testing.T) {
	ctx := context.Background()
	svc := newFakeQuizService(seedQuizStore())
	quizID := createQuiz(t, svc, alice)

	for _, a := range []dto.AnswerQuestionRequest{
		{QuestionID: 1, AnswerID: 11, AnswerPoint: 2},
		{QuestionID: 2, AnswerID: 22, AnswerPoint: 0},
		{QuestionID: 3, AnswerID: 31, AnswerPoint: 3},
	} {
		_, err := svc.AnswerQuestion(ctx, alice, quizID, a)
		require.NoError(t, err)
	}

	quiz, err := svc.GetQuiz(ctx, alice, quizID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), quiz.CorrectQuestions)
	assert.Equal(t, int64(5), quiz.TotalPoints)
	assert.Len(t, quiz.QuizQuestions, 3)

	_, err = svc.AnswerQuestion(ctx, alice, quizID, dto.AnswerQuestionRequest{QuestionID: 4, AnswerID: 41, AnswerPoint: 1})
	require.NoError(t, err)

	quiz, err = svc.GetQuiz(ctx, alice, quizID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), quiz.CorrectQuestions)

	list, err := svc.ListQuizzes(ctx, alice, pagination.Params{Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, list.Results, 1)
	assert.Equal(t, int64(3), list.Results[0].CorrectQuestions)
}

func TestAnswerQuestionRejections(t *testing.T) {
	ctx := context.Background()
	svc := newFakeQuizService(seedQuizStore())
	quizID := createQuiz(t, svc, alice)

	_, err := svc.AnswerQuestion(ctx, alice, quizID, dto.AnswerQuestionRequest{QuestionID: 1, AnswerID: 21})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict, "answer of another question")

	_, err = svc.AnswerQuestion(ctx, alice, quizID, dto.AnswerQuestionRequest{QuestionID: 1, AnswerID: 11, AnswerPoint: -1})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "answer_point")

	_, err = svc.AnswerQuestion(ctx, bob, quizID, dto.AnswerQuestionRequest{QuestionID: 1, AnswerID: 11})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.AnswerQuestion(ctx, bob, quizID, dto.AnswerQuestionRequest{QuestionID: 1, AnswerID: 11, AnswerPoint: -1})
	assert.ErrorIs(t, err, ErrForbidden, "ownership is checked before the payload")

	_, err = svc.AnswerQuestion(ctx, alice, 999, dto.AnswerQuestionRequest{QuestionID: 1, AnswerID: 11, AnswerPoint: -1})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AnswerQuestion(ctx, admin, quizID, dto.AnswerQuestionRequest{QuestionID: 1, AnswerID: 11})
	assert.ErrorIs(t, err, ErrForbidden, "only the owner records answers")

	_, err = svc.AnswerQuestion(ctx, alice, quizID, dto.AnswerQuestionRequest{QuestionID: 1, AnswerID: 11})
	require.NoError(t, err)

	_, err = svc.AnswerQuestion(ctx, alice, quizID, dto.AnswerQuestionRequest{QuestionID: 1, AnswerID: 12})
	require.ErrorAs(t, err, &conflict, "second answer to the same question")

	_, err = svc.AnswerQuestion(ctx, alice, 999, dto.AnswerQuestionRequest{QuestionID: 1, AnswerID: 11})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AnswerQuestion(ctx, alice, quizID, dto.AnswerQuestionRequest{QuestionID: 99, AnswerID: 11})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "question_id")
}

func TestQuizOwnership(t *testing.T) {
	ctx := context.Background()
	svc := newFakeQuizService(seedQuizStore())
	quizID := createQuiz(t, svc, alice)

	_, err := svc.GetQuiz(ctx, bob, quizID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetQuiz(ctx, plainUser, quizID)
	assert.ErrorIs(t, err, ErrForbidden)

	quiz, err := svc.GetQuiz(ctx, staff, quizID)
	require.NoError(t, err)
	assert.Equal(t, quizID, quiz.ID)

	bobs, err := svc.ListQuizzes(ctx, bob, pagination.Params{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, bobs.Results)
}

func TestListQuizTypesVisibility(t *testing.T) {
	ctx := context.Background()
	svc := newFakeQuizService(seedQuizStore())
	params := pagination.Params{Page: 1, Size: 10}

	_, err := svc.ListQuizTypes(ctx, alice, true, params)
	assert.ErrorIs(t, err, ErrForbidden)

	active, err := svc.ListQuizTypes(ctx, alice, false, params)
	require.NoError(t, err)
	require.Len(t, active.Results, 1)
	assert.Equal(t, "Algebra", active.Results[0].Name)

	deleted, err := svc.ListQuizTypes(ctx, admin, true, params)
	require.NoError(t, err)
	require.Len(t, deleted.Results, 1)
	assert.True(t, deleted.Results[0].IsDeleted)
}
