package service

import (
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Edutrack/internal/dto"
	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/repository"
	"github.com/rs/zerolog/log"
)

// copyInto wraps copier.Copy for the flat part of a response. Nested
// associations and computed fields are filled in by the callers.
func copyInto(to, from interface{}) error {
	if err := copier.Copy(to, from); err != nil {
		log.Error().Err(err).Str("from", fmt.Sprintf("%T", from)).Str("to", fmt.Sprintf("%T", to)).Msg("Failed to copy model into response")
		return fmt.Errorf("error preparing response: %w", err)
	}
	return nil
}

func toUserResponse(u model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		IsDeleted:   u.IsDeleted(),
		CreatedAt:   u.CreatedAt,
	}
}

func toUserDetail(u model.User, now time.Time) (dto.UserDetailResponse, error) {
	resp := dto.UserDetailResponse{UserResponse: toUserResponse(u)}
	if u.Student != nil {
		resp.Student = &dto.StudentProfileResponse{ID: u.Student.ID, CreatedAt: u.Student.CreatedAt}
	}
	if u.Teacher != nil {
		teacher, err := toTeacherProfile(*u.Teacher, now)
		if err != nil {
			return resp, err
		}
		resp.Teacher = &teacher
	}
	return resp, nil
}

func toTeacherProfile(t model.Teacher, now time.Time) (dto.TeacherProfileResponse, error) {
	resp := dto.TeacherProfileResponse{
		ID:                    t.ID,
		SubscribedAt:          t.SubscribedAt,
		IsExpiredSubscription: subscriptionExpired(t, now),
	}
	if t.Subscription != nil {
		var sub dto.SubscriptionResponse
		if err := copyInto(&sub, t.Subscription); err != nil {
			return resp, err
		}
		resp.Subscription = &sub
	}
	if t.Status != nil {
		name := t.Status.Name
		resp.Status = &name
	}
	return resp, nil
}

// subscriptionExpired reports whether subscribed_at plus the subscription's
// duration in months lies before now. Teachers without a subscription are
// not expired.
func subscriptionExpired(t model.Teacher, now time.Time) bool {
	if t.Subscription == nil || t.SubscribedAt == nil {
		return false
	}
	return t.SubscribedAt.AddDate(0, t.Subscription.Duration, 0).Before(now)
}

func toParticipant(id uint, u *model.User) dto.ParticipantResponse {
	p := dto.ParticipantResponse{ID: id}
	if u != nil {
		p.UserID = u.ID
		p.FirstName = u.FirstName
		p.LastName = u.LastName
		p.Email = u.Email
	}
	return p
}

func toChatResponse(c model.PersonalChat) dto.ChatResponse {
	return dto.ChatResponse{
		ID:        c.ID,
		IsDeleted: c.IsDeleted(),
		CreatedAt: c.CreatedAt,
		Student:   toParticipant(c.StudentID, c.Student.User),
		Teacher:   toParticipant(c.TeacherID, c.Teacher.User),
	}
}

func toChatMessage(m model.Message) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		ID:        m.ID,
		ChatID:    m.ChatID,
		OwnerID:   m.OwnerID,
		OwnerName: m.Owner.FullName(),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func toGeneralSubject(s model.GeneralSubject) dto.GeneralSubjectResponse {
	return dto.GeneralSubjectResponse{ID: s.ID, Name: s.Name, IsDeleted: s.IsDeleted(), CreatedAt: s.CreatedAt}
}

func toTrackWay(t model.TrackWay) dto.TrackWayResponse {
	subjects := make([]dto.GeneralSubjectResponse, 0, len(t.Subjects))
	for _, s := range t.Subjects {
		subjects = append(subjects, toGeneralSubject(s))
	}
	return dto.TrackWayResponse{ID: t.ID, Name: t.Name, Subjects: subjects, IsDeleted: t.IsDeleted(), CreatedAt: t.CreatedAt}
}

func toClass(c model.Class) dto.ClassResponse {
	return dto.ClassResponse{ID: c.ID, Number: c.Number, IsDeleted: c.IsDeleted(), CreatedAt: c.CreatedAt}
}

func toClassSubject(cs model.ClassSubject) dto.ClassSubjectResponse {
	return dto.ClassSubjectResponse{
		ID:             cs.ID,
		GeneralSubject: toGeneralSubject(cs.GeneralSubject),
		Class:          toClass(cs.Class),
		IsDeleted:      cs.IsDeleted(),
		CreatedAt:      cs.CreatedAt,
	}
}

func toTopic(t model.Topic) dto.TopicResponse {
	return dto.TopicResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}
}

func toQuizType(qt model.QuizType) dto.QuizTypeResponse {
	return dto.QuizTypeResponse{ID: qt.ID, Name: qt.Name, IsDeleted: qt.IsDeleted(), CreatedAt: qt.CreatedAt}
}

func toQuizSummary(s repository.QuizSummary) dto.QuizSummaryResponse {
	return dto.QuizSummaryResponse{
		ID:        s.ID,
		Name:      s.Name,
		StudentID: s.StudentID,
		QuizType: dto.QuizTypeResponse{
			ID:   s.QuizTypeID,
			Name: s.QuizTypeName,
		},
		CorrectQuestions: s.CorrectQuestions,
		TotalPoints:      s.TotalPoints,
		CreatedAt:        s.CreatedAt,
	}
}

func toQuizQuestionAnswer(qa model.QuizQuestionAnswer) (dto.QuizQuestionAnswerResponse, error) {
	resp := dto.QuizQuestionAnswerResponse{
		ID:          qa.ID,
		QuizID:      qa.QuizID,
		AnswerPoint: qa.AnswerPoint,
		CreatedAt:   qa.CreatedAt,
	}
	if err := copyInto(&resp.Question, &qa.Question); err != nil {
		return resp, err
	}
	if err := copyInto(&resp.UserAnswer, &qa.Answer); err != nil {
		return resp, err
	}
	resp.Question.IsDeleted = qa.Question.IsDeleted()
	resp.UserAnswer.IsDeleted = qa.Answer.IsDeleted()
	return resp, nil
}
