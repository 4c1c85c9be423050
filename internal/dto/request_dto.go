package dto

// RegisterUserRequest creates an account. Position only decides which
// profile is created alongside the user and is not stored. A superuser is
// always staff.
type RegisterUserRequest struct {
	Email       string `json:"email" binding:"required,email,max=254"`
	FirstName   string `json:"first_name" binding:"required,max=150"`
	LastName    string `json:"last_name" binding:"required,max=150"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	Position    string `json:"position" binding:"omitempty,oneof=student teacher"`
	IsSuperuser bool   `json:"is_superuser"`
}

// CreateChatRequest opens a chat between the calling student and a teacher.
type CreateChatRequest struct {
	TeacherID uint `json:"teacher_id" binding:"required"`
}

type CreateMessageRequest struct {
	Content string `json:"content" binding:"required,max=4000"`
}

type CreateQuizRequest struct {
	Name       string `json:"name" binding:"max=255"`
	QuizTypeID uint   `json:"quiz_type_id" binding:"required"`
}

// AnswerQuestionRequest records the chosen answer for one question of a quiz.
type AnswerQuestionRequest struct {
	QuestionID  uint `json:"question_id" binding:"required"`
	AnswerID    uint `json:"answer_id" binding:"required"`
	AnswerPoint int  `json:"answer_point"`
}
