package model

type PersonalChat struct {
	Base
	StudentID uint      `json:"student_id" gorm:"not null;index"`
	Student   Student   `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	TeacherID uint      `json:"teacher_id" gorm:"not null;index"`
	Teacher   Teacher   `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	Messages  []Message `json:"messages,omitempty" gorm:"foreignKey:ChatID"`
}

type Message struct {
	Base
	ChatID  uint   `json:"chat_id" gorm:"not null;index"`
	OwnerID uint   `json:"owner_id" gorm:"not null;index"`
	Owner   User   `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Content string `json:"content" gorm:"type:text;not null"`
}
