package dto

import (
	"time"

	"github.com/lshigami/Edutrack/internal/pagination"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ParticipantResponse is the short user card shown inside chats.
type ParticipantResponse struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type ChatResponse struct {
	ID        uint                `json:"id"`
	IsDeleted bool                `json:"is_deleted"`
	CreatedAt time.Time           `json:"created_at"`
	Student   ParticipantResponse `json:"student"`
	Teacher   ParticipantResponse `json:"teacher"`
}

type ChatMessageResponse struct {
	ID        uint      `json:"id"`
	ChatID    uint      `json:"chat_id"`
	OwnerID   uint      `json:"owner_id"`
	OwnerName string    `json:"owner_name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatDetailResponse is a chat with one page of its messages, newest first.
type ChatDetailResponse struct {
	ChatResponse
	Messages pagination.Page[ChatMessageResponse] `json:"messages"`
}
