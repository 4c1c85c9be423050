package dto

import (
	"time"

	"github.com/lshigami/Edutrack/internal/pagination"
)

type GeneralSubjectResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
}

// GeneralSubjectDetailResponse adds the active classes the subject is taught in.
type GeneralSubjectDetailResponse struct {
	GeneralSubjectResponse
	Classes []ClassResponse `json:"classes"`
}

type TrackWayResponse struct {
	ID        uint                     `json:"id"`
	Name      string                   `json:"name"`
	Subjects  []GeneralSubjectResponse `json:"subjects"`
	IsDeleted bool                     `json:"is_deleted"`
	CreatedAt time.Time                `json:"created_at"`
}

type ClassResponse struct {
	ID        uint      `json:"id"`
	Number    int       `json:"number"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
}

type ClassSubjectResponse struct {
	ID             uint                   `json:"id"`
	GeneralSubject GeneralSubjectResponse `json:"general_subject"`
	Class          ClassResponse          `json:"class"`
	IsDeleted      bool                   `json:"is_deleted"`
	CreatedAt      time.Time              `json:"created_at"`
}

type TopicResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ClassSubjectDetailResponse carries one page of topics in creation order.
type ClassSubjectDetailResponse struct {
	ClassSubjectResponse
	Topics pagination.Page[TopicResponse] `json:"topics"`
}
