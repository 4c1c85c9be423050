package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/Edutrack/internal/dto"
	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/pagination"
	"github.com/lshigami/Edutrack/internal/policy"
	"github.com/lshigami/Edutrack/internal/repository"
	"github.com/rs/zerolog/log"
)

type ChatService interface {
	ListChats(ctx context.Context, actor policy.Actor, showDeleted bool, params pagination.Params) (pagination.Page[dto.ChatResponse], error)
	GetChat(ctx context.Context, actor policy.Actor, id uint, page, size string) (*dto.ChatDetailResponse, error)
	OpenChat(ctx context.Context, actor policy.Actor, req dto.CreateChatRequest) (*dto.ChatResponse, error)
	PostMessage(ctx context.Context, actor policy.Actor, chatID uint, req dto.CreateMessageRequest) (*dto.ChatMessageResponse, error)
}

type chatService struct {
	chatRepo    repository.ChatRepository
	teacherRepo repository.TeacherRepository
}

func NewChatService(chatRepo repository.ChatRepository, teacherRepo repository.TeacherRepository) ChatService {
	return &chatService{chatRepo: chatRepo, teacherRepo: teacherRepo}
}

func isParticipant(actor policy.Actor, chat *model.PersonalChat) bool {
	return (actor.StudentID != nil && *actor.StudentID == chat.StudentID) ||
		(actor.TeacherID != nil && *actor.TeacherID == chat.TeacherID)
}

// ListChats only ever returns chats the actor takes part in, in either view.
func (s *chatService) ListChats(ctx context.Context, actor policy.Actor, showDeleted bool, params pagination.Params) (pagination.Page[dto.ChatResponse], error) {
	view, err := policy.ResolveView(actor, showDeleted)
	if err != nil {
		return pagination.Page[dto.ChatResponse]{}, err
	}
	if !actor.IsStudent() && !actor.IsTeacher() {
		return pagination.NewPage[dto.ChatResponse](0, params, nil), nil
	}

	chats, err := s.chatRepo.List(ctx, view, repository.ChatFilter{StudentID: actor.StudentID, TeacherID: actor.TeacherID}, params)
	if err != nil {
		if !errors.Is(err, pagination.ErrPageOutOfRange) {
			log.Error().Err(err).Uint("userID", actor.UserID).Msg("Failed to list chats")
		}
		return pagination.Page[dto.ChatResponse]{}, translate(err, "chat", 0)
	}
	return pagination.Map(chats, toChatResponse), nil
}

func (s *chatService) GetChat(ctx context.Context, actor policy.Actor, id uint, page, size string) (*dto.ChatDetailResponse, error) {
	chat, err := s.chatRepo.FindByID(ctx, policy.ViewActive, id)
	if err != nil {
		return nil, translate(err, "chat", id)
	}
	if err := policy.RequireOwner(actor, isParticipant(actor, chat)); err != nil {
		return nil, err
	}

	messages, err := AssembleChildren(ctx, chat.ID, MessagesRelation, page, size, s.chatRepo.Messages, toChatMessage)
	if err != nil {
		return nil, err
	}
	return &dto.ChatDetailResponse{ChatResponse: toChatResponse(*chat), Messages: messages}, nil
}

// OpenChat returns the existing active chat between the calling student and
// the teacher, or creates one.
func (s *chatService) OpenChat(ctx context.Context, actor policy.Actor, req dto.CreateChatRequest) (*dto.ChatResponse, error) {
	if !actor.IsStudent() {
		return nil, ErrForbidden
	}
	if _, err := s.teacherRepo.FindByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newValidationError("teacher_id", fmt.Sprintf("teacher with ID %d not found or deleted", req.TeacherID))
		}
		return nil, fmt.Errorf("error loading teacher: %w", err)
	}

	chat, err := s.chatRepo.FindByParticipants(ctx, *actor.StudentID, req.TeacherID)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		chat = &model.PersonalChat{StudentID: *actor.StudentID, TeacherID: req.TeacherID}
		if err := s.chatRepo.Create(ctx, chat); err != nil {
			log.Error().Err(err).Uint("studentID", *actor.StudentID).Uint("teacherID", req.TeacherID).Msg("Failed to create chat")
			return nil, fmt.Errorf("error creating chat: %w", err)
		}
	default:
		return nil, fmt.Errorf("error loading chat: %w", err)
	}

	chatID := chat.ID
	chat, err = s.chatRepo.FindByID(ctx, policy.ViewActive, chatID)
	if err != nil {
		return nil, translate(err, "chat", chatID)
	}
	resp := toChatResponse(*chat)
	return &resp, nil
}

func (s *chatService) PostMessage(ctx context.Context, actor policy.Actor, chatID uint, req dto.CreateMessageRequest) (*dto.ChatMessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, newValidationError("content", "content must not be blank")
	}

	chat, err := s.chatRepo.FindByID(ctx, policy.ViewActive, chatID)
	if err != nil {
		return nil, translate(err, "chat", chatID)
	}
	// Elevated actors may read any chat but only participants write to it.
	if !isParticipant(actor, chat) {
		return nil, ErrForbidden
	}

	message := &model.Message{ChatID: chat.ID, OwnerID: actor.UserID, Content: content}
	if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
		log.Error().Err(err).Uint("chatID", chatID).Msg("Failed to create message")
		return nil, fmt.Errorf("error creating message: %w", err)
	}

	resp := toChatMessage(*message)
	switch {
	case chat.Student.User != nil && chat.Student.User.ID == actor.UserID:
		resp.OwnerName = chat.Student.User.FullName()
	case chat.Teacher.User != nil && chat.Teacher.User.ID == actor.UserID:
		resp.OwnerName = chat.Teacher.User.FullName()
	}
	return &resp, nil
}
