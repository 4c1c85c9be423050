package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/Edutrack/internal/dto"
	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/pagination"
	"github.com/lshigami/Edutrack/internal/policy"
	"github.com/lshigami/Edutrack/internal/repository"
	"github.com/rs/zerolog/log"
)

type SubjectService interface {
	ListGeneralSubjects(ctx context.Context, actor policy.Actor, showDeleted bool, params pagination.Params) (pagination.Page[dto.GeneralSubjectResponse], error)
	// GetGeneralSubject returns the subject with the classes it is taught in.
	GetGeneralSubject(ctx context.Context, actor policy.Actor, id uint, showDeleted bool) (*dto.GeneralSubjectDetailResponse, error)
	ListTrackWays(ctx context.Context, actor policy.Actor, showDeleted bool, params pagination.Params) (pagination.Page[dto.TrackWayResponse], error)
	GetTrackWay(ctx context.Context, actor policy.Actor, id uint, showDeleted bool) (*dto.TrackWayResponse, error)
	ListClasses(ctx context.Context, actor policy.Actor, showDeleted bool, params pagination.Params) (pagination.Page[dto.ClassResponse], error)
	GetClass(ctx context.Context, actor policy.Actor, id uint, showDeleted bool) (*dto.ClassResponse, error)
	ListClassSubjects(ctx context.Context, actor policy.Actor, showDeleted bool, filter repository.ClassSubjectFilter, params pagination.Params) (pagination.Page[dto.ClassSubjectResponse], error)
	// GetClassSubject returns the class subject with one page of its topics.
	GetClassSubject(ctx context.Context, actor policy.Actor, id uint, showDeleted bool, page, size string) (*dto.ClassSubjectDetailResponse, error)
}

type subjectService struct {
	subjectRepo repository.SubjectRepository
}

func NewSubjectService(subjectRepo repository.SubjectRepository) SubjectService {
	return &subjectService{subjectRepo: subjectRepo}
}

// listView resolves the view and logs unexpected listing failures. The same
// shape serves every subject collection.
func listView[M, R any](actor policy.Actor, showDeleted bool, what string, list func(policy.View) (pagination.Page[M], error), convert func(M) R) (pagination.Page[R], error) {
	view, err := policy.ResolveView(actor, showDeleted)
	if err != nil {
		return pagination.Page[R]{}, err
	}
	items, err := list(view)
	if err != nil {
		if !errors.Is(err, pagination.ErrPageOutOfRange) {
			log.Error().Err(err).Str("collection", what).Str("view", view.String()).Msg("Failed to list collection")
		}
		return pagination.Page[R]{}, translate(err, what, 0)
	}
	return pagination.Map(items, convert), nil
}

func detailView[M, R any](actor policy.Actor, showDeleted bool, what string, id uint, find func(policy.View) (*M, error), convert func(M) R) (*R, error) {
	view, err := policy.ResolveView(actor, showDeleted)
	if err != nil {
		return nil, err
	}
	item, err := find(view)
	if err != nil {
		return nil, translate(err, what, id)
	}
	resp := convert(*item)
	return &resp, nil
}

func (s *subjectService) ListGeneralSubjects(ctx context.Context, actor policy.Actor, showDeleted bool, params pagination.Params) (pagination.Page[dto.GeneralSubjectResponse], error) {
	return listView(actor, showDeleted, "general subject", func(v policy.View) (pagination.Page[model.GeneralSubject], error) {
		return s.subjectRepo.ListGeneralSubjects(ctx, v, params)
	}, toGeneralSubject)
}

func (s *subjectService) GetGeneralSubject(ctx context.Context, actor policy.Actor, id uint, showDeleted bool) (*dto.GeneralSubjectDetailResponse, error) {
	subject, err := detailView(actor, showDeleted, "general subject", id, func(v policy.View) (*model.GeneralSubject, error) {
		return s.subjectRepo.FindGeneralSubject(ctx, v, id)
	}, toGeneralSubject)
	if err != nil {
		return nil, err
	}

	classes, err := s.subjectRepo.SubjectClasses(ctx, id)
	if err != nil {
		log.Error().Err(err).Uint("subjectID", id).Msg("Failed to load subject classes")
		return nil, fmt.Errorf("error loading subject classes: %w", err)
	}
	resp := &dto.GeneralSubjectDetailResponse{GeneralSubjectResponse: *subject, Classes: make([]dto.ClassResponse, 0, len(classes))}
	for _, c := range classes {
		resp.Classes = append(resp.Classes, toClass(c))
	}
	return resp, nil
}

func (s *subjectService) ListTrackWays(ctx context.Context, actor policy.Actor, showDeleted bool, params pagination.Params) (pagination.Page[dto.TrackWayResponse], error) {
	return listView(actor, showDeleted, "trackway", func(v policy.View) (pagination.Page[model.TrackWay], error) {
		return s.subjectRepo.ListTrackWays(ctx, v, params)
	}, toTrackWay)
}

func (s *subjectService) GetTrackWay(ctx context.Context, actor policy.Actor, id uint, showDeleted bool) (*dto.TrackWayResponse, error) {
	return detailView(actor, showDeleted, "trackway", id, func(v policy.View) (*model.TrackWay, error) {
		return s.subjectRepo.FindTrackWay(ctx, v, id)
	}, toTrackWay)
}

func (s *subjectService) ListClasses(ctx context.Context, actor policy.Actor, showDeleted bool, params pagination.Params) (pagination.Page[dto.ClassResponse], error) {
	return listView(actor, showDeleted, "class", func(v policy.View) (pagination.Page[model.Class], error) {
		return s.subjectRepo.ListClasses(ctx, v, params)
	}, toClass)
}

func (s *subjectService) GetClass(ctx context.Context, actor policy.Actor, id uint, showDeleted bool) (*dto.ClassResponse, error) {
	return detailView(actor, showDeleted, "class", id, func(v policy.View) (*model.Class, error) {
		return s.subjectRepo.FindClass(ctx, v, id)
	}, toClass)
}

func (s *subjectService) ListClassSubjects(ctx context.Context, actor policy.Actor, showDeleted bool, filter repository.ClassSubjectFilter, params pagination.Params) (pagination.Page[dto.ClassSubjectResponse], error) {
	return listView(actor, showDeleted, "class subject", func(v policy.View) (pagination.Page[model.ClassSubject], error) {
		return s.subjectRepo.ListClassSubjects(ctx, v, filter, params)
	}, toClassSubject)
}

func (s *subjectService) GetClassSubject(ctx context.Context, actor policy.Actor, id uint, showDeleted bool, page, size string) (*dto.ClassSubjectDetailResponse, error) {
	classSubject, err := detailView(actor, showDeleted, "class subject", id, func(v policy.View) (*model.ClassSubject, error) {
		return s.subjectRepo.FindClassSubject(ctx, v, id)
	}, toClassSubject)
	if err != nil {
		return nil, err
	}

	topics, err := AssembleChildren(ctx, id, TopicsRelation, page, size, s.subjectRepo.Topics, toTopic)
	if err != nil {
		return nil, err
	}
	return &dto.ClassSubjectDetailResponse{ClassSubjectResponse: *classSubject, Topics: topics}, nil
}
