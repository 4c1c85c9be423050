package dto

import "time"

type QuizTypeResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
}

// QuizSummaryResponse is used for quiz listings and as the create response.
type QuizSummaryResponse struct {
	ID               uint             `json:"id"`
	Name             string           `json:"name"`
	StudentID        uint             `json:"student_id"`
	QuizType         QuizTypeResponse `json:"quiz_type"`
	CorrectQuestions int64            `json:"correct_questions"`
	TotalPoints      int64            `json:"total_points"`
	CreatedAt        time.Time        `json:"created_at"`
}

type QuizQuestionResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	IsDeleted bool   `json:"is_deleted"`
}

type QuizAnswerResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	IsCorrect  bool   `json:"is_correct"`
	QuestionID uint   `json:"question_id"`
	IsDeleted  bool   `json:"is_deleted"`
}

// QuizQuestionAnswerResponse is one answered question of a quiz.
type QuizQuestionAnswerResponse struct {
	ID          uint                 `json:"id"`
	QuizID      uint                 `json:"quiz_id"`
	Question    QuizQuestionResponse `json:"question"`
	UserAnswer  QuizAnswerResponse   `json:"user_answer"`
	AnswerPoint int                  `json:"answer_point"`
	CreatedAt   time.Time            `json:"created_at"`
}

type QuizDetailResponse struct {
	QuizSummaryResponse
	QuizQuestions []QuizQuestionAnswerResponse `json:"quiz_questions"`
}
