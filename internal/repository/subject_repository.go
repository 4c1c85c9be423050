package repository

import (
	"context"

	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/pagination"
	"github.com/lshigami/Edutrack/internal/policy"
	"gorm.io/gorm"
)

// ClassSubjectFilter narrows class-subject listings. Nil fields are ignored.
type ClassSubjectFilter struct {
	SubjectID *uint
	ClassID   *uint
}

type SubjectRepository interface {
	ListGeneralSubjects(ctx context.Context, view policy.View, params pagination.Params) (pagination.Page[model.GeneralSubject], error)
	FindGeneralSubject(ctx context.Context, view policy.View, id uint) (*model.GeneralSubject, error)
	// SubjectClasses returns the active classes linked to the subject through
	// subject_class_topics, each once, by class number.
	SubjectClasses(ctx context.Context, subjectID uint) ([]model.Class, error)

	ListTrackWays(ctx context.Context, view policy.View, params pagination.Params) (pagination.Page[model.TrackWay], error)
	FindTrackWay(ctx context.Context, view policy.View, id uint) (*model.TrackWay, error)

	ListClasses(ctx context.Context, view policy.View, params pagination.Params) (pagination.Page[model.Class], error)
	FindClass(ctx context.Context, view policy.View, id uint) (*model.Class, error)

	ListClassSubjects(ctx context.Context, view policy.View, filter ClassSubjectFilter, params pagination.Params) (pagination.Page[model.ClassSubject], error)
	FindClassSubject(ctx context.Context, view policy.View, id uint) (*model.ClassSubject, error)
	Topics(ctx context.Context, classSubjectID uint, order string, params pagination.Params) (pagination.Page[model.Topic], error)
}

type subjectRepository struct {
	subjects      SoftDeleteStore[model.GeneralSubject]
	trackWays     SoftDeleteStore[model.TrackWay]
	classes       SoftDeleteStore[model.Class]
	classSubjects SoftDeleteStore[model.ClassSubject]
	topics        SoftDeleteStore[model.Topic]
}

func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{
		subjects:      NewSoftDeleteStore[model.GeneralSubject](db),
		trackWays:     NewSoftDeleteStore[model.TrackWay](db),
		classes:       NewSoftDeleteStore[model.Class](db),
		classSubjects: NewSoftDeleteStore[model.ClassSubject](db),
		topics:        NewSoftDeleteStore[model.Topic](db),
	}
}

var withSubjectAndClass = preload("GeneralSubject", "Class")

func (r *subjectRepository) ListGeneralSubjects(ctx context.Context, view policy.View, params pagination.Params) (pagination.Page[model.GeneralSubject], error) {
	return r.subjects.Page(ctx, view, "name ASC, id ASC", params)
}

func (r *subjectRepository) FindGeneralSubject(ctx context.Context, view policy.View, id uint) (*model.GeneralSubject, error) {
	return r.subjects.First(ctx, view, id)
}

func (r *subjectRepository) SubjectClasses(ctx context.Context, subjectID uint) ([]model.Class, error) {
	linked := r.classes.db.WithContext(ctx).
		Model(&model.SubjectClassTopic{}).
		Select("class_id").
		Where("subject_id = ?", subjectID)

	var classes []model.Class
	err := r.classes.Active(ctx).
		Where("classes.id IN (?)", linked).
		Order("number ASC").
		Find(&classes).Error
	return classes, err
}

func (r *subjectRepository) ListTrackWays(ctx context.Context, view policy.View, params pagination.Params) (pagination.Page[model.TrackWay], error) {
	return r.trackWays.Page(ctx, view, "name ASC, id ASC", params, preload("Subjects"))
}

func (r *subjectRepository) FindTrackWay(ctx context.Context, view policy.View, id uint) (*model.TrackWay, error) {
	return r.trackWays.First(ctx, view, id, preload("Subjects"))
}

func (r *subjectRepository) ListClasses(ctx context.Context, view policy.View, params pagination.Params) (pagination.Page[model.Class], error) {
	return r.classes.Page(ctx, view, "number ASC", params)
}

func (r *subjectRepository) FindClass(ctx context.Context, view policy.View, id uint) (*model.Class, error) {
	return r.classes.First(ctx, view, id)
}

func (r *subjectRepository) ListClassSubjects(ctx context.Context, view policy.View, filter ClassSubjectFilter, params pagination.Params) (pagination.Page[model.ClassSubject], error) {
	query := r.classSubjects.View(ctx, view)
	if filter.SubjectID != nil {
		query = query.Where("general_subject_id = ?", *filter.SubjectID)
	}
	if filter.ClassID != nil {
		query = query.Where("class_id = ?", *filter.ClassID)
	}
	return pagination.Paginate[model.ClassSubject](ctx, query.Order("id ASC"), params, withSubjectAndClass)
}

func (r *subjectRepository) FindClassSubject(ctx context.Context, view policy.View, id uint) (*model.ClassSubject, error) {
	return r.classSubjects.First(ctx, view, id, withSubjectAndClass)
}

func (r *subjectRepository) Topics(ctx context.Context, classSubjectID uint, order string, params pagination.Params) (pagination.Page[model.Topic], error) {
	query := r.topics.Active(ctx).Where("class_subject_id = ?", classSubjectID).Order(order)
	return pagination.Paginate[model.Topic](ctx, query, params)
}
