package model

type Question struct {
	Base
	Name    string   `json:"name" gorm:"not null;uniqueIndex;size:240"`
	TopicID uint     `json:"topic_id" gorm:"not null;index"`
	Topic   Topic    `json:"topic,omitempty" gorm:"foreignKey:TopicID"`
	Answers []Answer `json:"answers,omitempty" gorm:"foreignKey:QuestionID"`
}
