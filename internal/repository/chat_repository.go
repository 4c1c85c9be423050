package repository

import (
	"context"

	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/pagination"
	"github.com/lshigami/Edutrack/internal/policy"
	"gorm.io/gorm"
)

// ChatFilter restricts a chat listing to one participant. A nil field does
// not filter; when both are set a chat matches either.
type ChatFilter struct {
	StudentID *uint
	TeacherID *uint
}

type ChatRepository interface {
	Create(ctx context.Context, chat *model.PersonalChat) error
	FindByID(ctx context.Context, view policy.View, id uint) (*model.PersonalChat, error)
	FindByParticipants(ctx context.Context, studentID, teacherID uint) (*model.PersonalChat, error)
	List(ctx context.Context, view policy.View, filter ChatFilter, params pagination.Params) (pagination.Page[model.PersonalChat], error)
	Messages(ctx context.Context, chatID uint, order string, params pagination.Params) (pagination.Page[model.Message], error)
	CreateMessage(ctx context.Context, message *model.Message) error
}

type chatRepository struct {
	db       *gorm.DB
	chats    SoftDeleteStore[model.PersonalChat]
	messages SoftDeleteStore[model.Message]
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{
		db:       db,
		chats:    NewSoftDeleteStore[model.PersonalChat](db),
		messages: NewSoftDeleteStore[model.Message](db),
	}
}

var withParticipants = preload("Student.User", "Teacher.User")

func (r *chatRepository) Create(ctx context.Context, chat *model.PersonalChat) error {
	return r.db.WithContext(ctx).Create(chat).Error
}

func (r *chatRepository) FindByID(ctx context.Context, view policy.View, id uint) (*model.PersonalChat, error) {
	return r.chats.First(ctx, view, id, withParticipants)
}

func (r *chatRepository) FindByParticipants(ctx context.Context, studentID, teacherID uint) (*model.PersonalChat, error) {
	var chat model.PersonalChat
	err := r.chats.Active(ctx).
		Where("student_id = ? AND teacher_id = ?", studentID, teacherID).
		First(&chat).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &chat, nil
}

func (r *chatRepository) List(ctx context.Context, view policy.View, filter ChatFilter, params pagination.Params) (pagination.Page[model.PersonalChat], error) {
	query := r.chats.View(ctx, view)
	switch {
	case filter.StudentID != nil && filter.TeacherID != nil:
		query = query.Where("(student_id = ? OR teacher_id = ?)", *filter.StudentID, *filter.TeacherID)
	case filter.StudentID != nil:
		query = query.Where("student_id = ?", *filter.StudentID)
	case filter.TeacherID != nil:
		query = query.Where("teacher_id = ?", *filter.TeacherID)
	}
	return pagination.Paginate[model.PersonalChat](ctx, query.Order("created_at DESC, id DESC"), params, withParticipants)
}

func (r *chatRepository) Messages(ctx context.Context, chatID uint, order string, params pagination.Params) (pagination.Page[model.Message], error) {
	query := r.messages.Active(ctx).Where("chat_id = ?", chatID).Order(order)
	return pagination.Paginate[model.Message](ctx, query, params, preload("Owner"))
}

func (r *chatRepository) CreateMessage(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}
