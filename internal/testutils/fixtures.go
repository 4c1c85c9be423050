package testutils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Edutrack/internal/model"
	"gorm.io/gorm"
)

func unique(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString())
}

// CreateTestUser creates an active user with a unique email.
func CreateTestUser(db *gorm.DB, opts ...UserOption) *model.User {
	u := &model.User{
		Email:        unique("user") + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "not-a-real-hash",
		IsActive:     true,
	}
	for _, opt := range opts {
		opt(u)
	}
	if err := db.Create(u).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}
	return u
}

// UserOption configures test user
type UserOption func(*model.User)

func WithName(first, last string) UserOption {
	return func(u *model.User) {
		u.FirstName, u.LastName = first, last
	}
}

// WithAdmin makes the user staff.
func WithAdmin() UserOption {
	return func(u *model.User) {
		u.IsStaff = true
	}
}

// CreateTestStudent creates a user with a student profile.
func CreateTestStudent(db *gorm.DB, opts ...UserOption) *model.Student {
	u := CreateTestUser(db, opts...)
	s := &model.Student{UserID: u.ID}
	if err := db.Create(s).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test student: %v", err))
	}
	s.User = u
	return s
}

// CreateTestTeacher creates a user with a teacher profile.
func CreateTestTeacher(db *gorm.DB, opts ...UserOption) *model.Teacher {
	u := CreateTestUser(db, opts...)
	t := &model.Teacher{UserID: u.ID}
	if err := db.Create(t).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test teacher: %v", err))
	}
	t.User = u
	return t
}

func CreateTestSubscription(db *gorm.DB, months int) *model.Subscription {
	s := &model.Subscription{Name: unique("plan"), Duration: months, Price: 10}
	if err := db.Create(s).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test subscription: %v", err))
	}
	return s
}

func CreateTestQuizType(db *gorm.DB) *model.QuizType {
	qt := &model.QuizType{Name: unique("type")[:40]}
	if err := db.Create(qt).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test quiz type: %v", err))
	}
	return qt
}

// CreateTestClassSubject creates a general subject, a class and their pair.
func CreateTestClassSubject(db *gorm.DB) *model.ClassSubject {
	subject := &model.GeneralSubject{Name: unique("subject")}
	if err := db.Create(subject).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test subject: %v", err))
	}
	class := &model.Class{Number: int(uuid.New().ID() % 1_000_000)}
	if err := db.Create(class).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test class: %v", err))
	}
	cs := &model.ClassSubject{GeneralSubjectID: subject.ID, ClassID: class.ID}
	if err := db.Create(cs).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test class subject: %v", err))
	}
	cs.GeneralSubject, cs.Class = *subject, *class
	return cs
}

// CreateTestTopics adds n topics to a class subject with increasing
// creation times.
func CreateTestTopics(db *gorm.DB, classSubjectID uint, n int) []model.Topic {
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	topics := make([]model.Topic, 0, n)
	for i := 0; i < n; i++ {
		topic := model.Topic{Name: fmt.Sprintf("topic %d", i+1), ClassSubjectID: classSubjectID}
		topic.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := db.Create(&topic).Error; err != nil {
			panic(fmt.Sprintf("Failed to create test topic: %v", err))
		}
		topics = append(topics, topic)
	}
	return topics
}

// CreateTestQuestion creates a question under topicID with one correct and
// one wrong answer.
func CreateTestQuestion(db *gorm.DB, topicID uint) (question *model.Question, correct, wrong *model.Answer) {
	question = &model.Question{Name: unique("question"), TopicID: topicID}
	if err := db.Create(question).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test question: %v", err))
	}
	correct = &model.Answer{Name: "right", QuestionID: question.ID, IsCorrect: true}
	wrong = &model.Answer{Name: "wrong", QuestionID: question.ID}
	if err := db.Create(correct).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test answer: %v", err))
	}
	if err := db.Create(wrong).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test answer: %v", err))
	}
	return question, correct, wrong
}

// CreateTestSubjectClassTopic links a subject, a class and a topic.
func CreateTestSubjectClassTopic(db *gorm.DB, subjectID, classID, topicID uint) *model.SubjectClassTopic {
	link := &model.SubjectClassTopic{SubjectID: subjectID, ClassID: classID, TopicID: topicID}
	if err := db.Create(link).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test subject class topic: %v", err))
	}
	return link
}
