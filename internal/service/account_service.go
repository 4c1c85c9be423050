package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lshigami/Edutrack/internal/dto"
	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/pagination"
	"github.com/lshigami/Edutrack/internal/policy"
	"github.com/lshigami/Edutrack/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	PositionStudent = "student"
	PositionTeacher = "teacher"
)

type AccountService interface {
	// Register creates a user and, when a position is given, its profile.
	// actor is nil for anonymous callers.
	Register(ctx context.Context, actor *policy.Actor, req dto.RegisterUserRequest) (*dto.UserDetailResponse, error)
	ListUsers(ctx context.Context, actor policy.Actor, showDeleted bool, params pagination.Params) (pagination.Page[dto.UserResponse], error)
	GetUser(ctx context.Context, actor policy.Actor, id uint, showDeleted bool) (*dto.UserDetailResponse, error)
	Block(ctx context.Context, actor policy.Actor, id uint) (string, error)
	Unblock(ctx context.Context, actor policy.Actor, id uint) (string, error)
	DeleteUsers(ctx context.Context, actor policy.Actor, ids []uint) (string, error)
	RestoreUsers(ctx context.Context, actor policy.Actor, ids []uint) (string, error)
}

type accountService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewAccountService(userRepo repository.UserRepository) AccountService {
	return &accountService{userRepo: userRepo, now: time.Now}
}

func (s *accountService) Register(ctx context.Context, actor *policy.Actor, req dto.RegisterUserRequest) (*dto.UserDetailResponse, error) {
	if req.IsSuperuser && (actor == nil || !actor.IsSuperuser) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, newValidationError("password", "password is required")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := s.userRepo.EmailTaken(ctx, email)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("Failed to check email uniqueness")
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if taken {
		return nil, newValidationError("email", "user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &model.User{
		Email:        email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: string(hash),
		IsActive:     true,
		IsSuperuser:  req.IsSuperuser,
		IsStaff:      req.IsSuperuser,
	}
	switch req.Position {
	case PositionStudent:
		user.Student = &model.Student{}
	case PositionTeacher:
		user.Teacher = &model.Teacher{}
	case "":
	default:
		return nil, newValidationError("position", "position must be one of: student teacher")
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newValidationError("email", "user with this email already exists")
		}
		log.Error().Err(err).Str("email", email).Msg("Failed to create user")
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	log.Info().Uint("userID", user.ID).Str("position", req.Position).Bool("superuser", user.IsSuperuser).Msg("User registered")

	resp, err := toUserDetail(*user, s.now())
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *accountService) ListUsers(ctx context.Context, actor policy.Actor, showDeleted bool, params pagination.Params) (pagination.Page[dto.UserResponse], error) {
	if err := policy.RequireElevated(actor); err != nil {
		return pagination.Page[dto.UserResponse]{}, err
	}
	view, err := policy.ResolveView(actor, showDeleted)
	if err != nil {
		return pagination.Page[dto.UserResponse]{}, err
	}

	users, err := s.userRepo.List(ctx, view, params)
	if err != nil {
		if !errors.Is(err, pagination.ErrPageOutOfRange) {
			log.Error().Err(err).Str("view", view.String()).Msg("Failed to list users")
		}
		return pagination.Page[dto.UserResponse]{}, translate(err, "user", 0)
	}
	return pagination.Map(users, toUserResponse), nil
}

func (s *accountService) GetUser(ctx context.Context, actor policy.Actor, id uint, showDeleted bool) (*dto.UserDetailResponse, error) {
	if err := policy.RequireElevated(actor); err != nil {
		return nil, err
	}
	view, err := policy.ResolveView(actor, showDeleted)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, view, id)
	if err != nil {
		return nil, translate(err, "user", id)
	}
	resp, err := toUserDetail(*user, s.now())
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *accountService) Block(ctx context.Context, actor policy.Actor, id uint) (string, error) {
	return s.setActive(ctx, actor, id, false)
}

func (s *accountService) Unblock(ctx context.Context, actor policy.Actor, id uint) (string, error) {
	return s.setActive(ctx, actor, id, true)
}

// setActive relies on a conditional update so that concurrent toggles cannot
// both succeed. A zero row count is resolved into not-found or conflict
// afterwards.
func (s *accountService) setActive(ctx context.Context, actor policy.Actor, id uint, active bool) (string, error) {
	if err := policy.RequireElevated(actor); err != nil {
		return "", err
	}

	changed, err := s.userRepo.SetActive(ctx, id, active)
	if err != nil {
		log.Error().Err(err).Uint("userID", id).Bool("active", active).Msg("Failed to update user activity")
		return "", fmt.Errorf("error updating user: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, policy.ViewActive, id)
	if err != nil {
		return "", translate(err, "user", id)
	}

	if changed == 0 {
		if active {
			return "", &ConflictError{Message: fmt.Sprintf("user %s is not blocked", user.Email)}
		}
		return "", &ConflictError{Message: fmt.Sprintf("user %s is already blocked", user.Email)}
	}

	if active {
		log.Info().Uint("userID", id).Uint("by", actor.UserID).Msg("User unblocked")
		return fmt.Sprintf("user %s unblocked successfully", user.Email), nil
	}
	log.Info().Uint("userID", id).Uint("by", actor.UserID).Msg("User blocked")
	return fmt.Sprintf("user %s blocked successfully", user.Email), nil
}

func (s *accountService) DeleteUsers(ctx context.Context, actor policy.Actor, ids []uint) (string, error) {
	if err := policy.RequireElevated(actor); err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", newValidationError("user_ids", "user_ids must contain at least one id")
	}

	deleted, err := s.userRepo.SoftDelete(ctx, ids)
	if err != nil {
		log.Error().Err(err).Interface("userIDs", ids).Msg("Failed to soft delete users")
		return "", fmt.Errorf("error deleting users: %w", err)
	}
	log.Info().Int64("deleted", deleted).Int("requested", len(ids)).Uint("by", actor.UserID).Msg("Users soft deleted")

	if deleted == 0 {
		return "no users were deleted", nil
	}
	return fmt.Sprintf("%d users deleted", deleted), nil
}

func (s *accountService) RestoreUsers(ctx context.Context, actor policy.Actor, ids []uint) (string, error) {
	if err := policy.RequireElevated(actor); err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", newValidationError("user_ids", "user_ids must contain at least one id")
	}

	restored, err := s.userRepo.Restore(ctx, ids)
	if err != nil {
		log.Error().Err(err).Interface("userIDs", ids).Msg("Failed to restore users")
		return "", fmt.Errorf("error restoring users: %w", err)
	}
	log.Info().Int64("restored", restored).Uint("by", actor.UserID).Msg("Users restored")

	if restored == 0 {
		return "no users were restored", nil
	}
	return fmt.Sprintf("%d users restored", restored), nil
}
