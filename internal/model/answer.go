package model

type Answer struct {
	Base
	Name       string `json:"name" gorm:"not null;size:250;uniqueIndex:idx_answer_name_question"`
	QuestionID uint   `json:"question_id" gorm:"not null;index;uniqueIndex:idx_answer_name_question"`
	IsCorrect  bool   `json:"is_correct" gorm:"not null;default:false"`
}
