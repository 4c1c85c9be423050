package model

import "time"

// QuizQuestionAnswer is owned by its Quiz and is never soft-deleted on its own.
type QuizQuestionAnswer struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	QuizID      uint      `json:"quiz_id" gorm:"not null;uniqueIndex:idx_quiz_question"`
	QuestionID  uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_quiz_question"`
	Question    Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	AnswerID    uint      `json:"answer_id" gorm:"not null;index"`
	Answer      Answer    `json:"user_answer,omitempty" gorm:"foreignKey:AnswerID"`
	AnswerPoint int       `json:"answer_point" gorm:"not null;default:0;check:answer_point >= 0"`
	CreatedAt   time.Time `json:"created_at"`
}
