package model

type QuizType struct {
	Base
	Name string `json:"name" gorm:"not null;uniqueIndex;size:100"`
}

// Quiz carries no stored score: correct answers are counted from its
// QuizQuestionAnswer rows on every read.
type Quiz struct {
	Base
	Name          string               `json:"name"`
	StudentID     uint                 `json:"student_id" gorm:"not null;index"`
	QuizTypeID    uint                 `json:"quiz_type_id" gorm:"not null;index"`
	QuizType      QuizType             `json:"quiz_type,omitempty" gorm:"foreignKey:QuizTypeID"`
	QuizQuestions []QuizQuestionAnswer `json:"quiz_questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
