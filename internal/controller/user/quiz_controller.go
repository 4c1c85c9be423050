package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Edutrack/internal/controller"
	"github.com/lshigami/Edutrack/internal/dto"
	"github.com/lshigami/Edutrack/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	quizService service.QuizService
}

func NewQuizController(quizService service.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

func (c *QuizController) RegisterRoutes(api *gin.RouterGroup) {
	quizzes := api.Group("/quizzes")
	quizzes.GET("/types", c.ListQuizTypes)
	quizzes.GET("", c.ListQuizzes)
	quizzes.POST("", c.CreateQuiz)
	quizzes.GET("/:id", c.GetQuiz)
	quizzes.POST("/:id/answers", c.AnswerQuestion)
}

// ListQuizTypes godoc
// @Summary List quiz types
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Param is_deleted query bool false "List soft-deleted quiz types (admins only)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} pagination.Page[dto.QuizTypeResponse]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Invalid page"
// @Router /quizzes/types [get]
func (c *QuizController) ListQuizTypes(ctx *gin.Context) {
	list(ctx, c.quizService.ListQuizTypes)
}

// ListQuizzes godoc
// @Summary List the caller's quizzes
// @Description Each quiz carries its live correct-answer count and total points. Non-students get an empty page.
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} pagination.Page[dto.QuizSummaryResponse]
// @Failure 404 {object} dto.ErrorResponse "Invalid page"
// @Router /quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}

	page, err := c.quizService.ListQuizzes(ctx.Request.Context(), actor, controller.PageParams(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

// CreateQuiz godoc
// @Summary Start a quiz
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateQuizRequest true "Quiz type and optional name"
// @Success 201 {object} dto.QuizSummaryResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown quiz type"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Router /quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	var req dto.CreateQuizRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}

	quiz, err := c.quizService.CreateQuiz(ctx.Request.Context(), actor, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, quiz)
}

// GetQuiz godoc
// @Summary Get a quiz with its answered questions
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.QuizDetailResponse
// @Failure 403 {object} dto.ErrorResponse "Quiz belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}

	quiz, err := c.quizService.GetQuiz(ctx.Request.Context(), actor, id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// AnswerQuestion godoc
// @Summary Answer one question of a quiz
// @Description Each question can be answered once per quiz. The response carries the recomputed score.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Param request body dto.AnswerQuestionRequest true "Chosen answer"
// @Success 201 {object} dto.QuizDetailResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown question or answer, mismatched pair, or already answered"
// @Failure 403 {object} dto.ErrorResponse "Quiz belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{id}/answers [post]
func (c *QuizController) AnswerQuestion(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.AnswerQuestionRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}

	quiz, err := c.quizService.AnswerQuestion(ctx.Request.Context(), actor, id, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	log.Ctx(ctx.Request.Context()).Info().
		Uint("quiz_id", id).
		Uint("question_id", req.QuestionID).
		Int64("correct_questions", quiz.CorrectQuestions).
		Msg("Quiz answer recorded")
	ctx.JSON(http.StatusCreated, quiz)
}
