package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/Edutrack/internal/dto"
	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/policy"
	"github.com/lshigami/Edutrack/internal/repository"
	"github.com/rs/zerolog/log"
)

type TeacherService interface {
	UpdateSubscription(ctx context.Context, actor policy.Actor, teacherID uint, req dto.UpdateSubscriptionRequest) (*dto.TeacherProfileResponse, error)
}

type teacherService struct {
	teacherRepo repository.TeacherRepository
	notifier    SubscriptionNotifier
	now         func() time.Time
}

func NewTeacherService(teacherRepo repository.TeacherRepository, notifier SubscriptionNotifier) TeacherService {
	return &teacherService{teacherRepo: teacherRepo, notifier: notifier, now: time.Now}
}

func (s *teacherService) UpdateSubscription(ctx context.Context, actor policy.Actor, teacherID uint, req dto.UpdateSubscriptionRequest) (*dto.TeacherProfileResponse, error) {
	if err := policy.RequireElevated(actor); err != nil {
		return nil, err
	}

	teacher, err := s.teacherRepo.FindByID(ctx, teacherID)
	if err != nil {
		return nil, translate(err, "teacher", teacherID)
	}
	previous := teacher.SubscriptionID

	var subscription *model.Subscription
	if req.SubscriptionID != nil {
		subscription, err = s.teacherRepo.FindSubscription(ctx, *req.SubscriptionID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newValidationError("subscription_id", fmt.Sprintf("subscription with ID %d not found or deleted", *req.SubscriptionID))
		}
		if err != nil {
			return nil, fmt.Errorf("error loading subscription: %w", err)
		}
	}

	if sameSubscription(previous, req.SubscriptionID) {
		resp, err := toTeacherProfile(*teacher, s.now())
		return &resp, err
	}

	now := s.now()
	teacher.SubscriptionID = req.SubscriptionID
	teacher.Subscription = subscription
	if req.SubscriptionID != nil {
		teacher.SubscribedAt = &now
		if teacher.StatusID == nil {
			status := model.DefaultSubscriptionStatusID
			teacher.StatusID = &status
		}
	} else {
		teacher.SubscribedAt = nil
	}

	if err := s.teacherRepo.UpdateSubscription(ctx, teacher); err != nil {
		log.Error().Err(err).Uint("teacherID", teacherID).Msg("Failed to update teacher subscription")
		return nil, fmt.Errorf("error updating subscription: %w", err)
	}

	change := SubscriptionChange{
		TeacherID: teacher.ID,
		UserID:    teacher.UserID,
		Previous:  previous,
		Current:   teacher.SubscriptionID,
		ChangedAt: now,
	}
	if err := s.notifier.SubscriptionChanged(ctx, change); err != nil {
		log.Warn().Err(err).Uint("teacherID", teacherID).Msg("Subscription change notification failed")
	}

	// Reload so the status association matches the stored id.
	updated, err := s.teacherRepo.FindByID(ctx, teacherID)
	if err != nil {
		return nil, translate(err, "teacher", teacherID)
	}
	resp, err := toTeacherProfile(*updated, now)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func sameSubscription(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
