package service

import (
	"context"
	"testing"
	"time"

	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/pagination"
	"github.com/lshigami/Edutrack/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubjectFixture() *fakeSubjectRepo {
	repo := &fakeSubjectRepo{
		classSubjects: map[uint]*model.ClassSubject{
			1: {Base: model.Base{ID: 1}, GeneralSubjectID: 1, ClassID: 5, GeneralSubject: model.GeneralSubject{Base: model.Base{ID: 1}, Name: "Math"}, Class: model.Class{Base: model.Base{ID: 5}, Number: 5}},
			2: {Base: model.Base{ID: 2}, GeneralSubjectID: 2, ClassID: 5},
			3: {Base: model.Base{ID: 3}, GeneralSubjectID: 1, ClassID: 6},
			4: {Base: model.Base{ID: 4, DeletedAt: deletedAt(time.Now())}, GeneralSubjectID: 1, ClassID: 7},
		},
	}
	for i := uint(1); i <= 20; i++ {
		repo.topics = append(repo.topics, model.Topic{Base: model.Base{ID: i}, ClassSubjectID: 1, Name: "topic"})
	}
	return repo
}

func TestClassSubjectFilters(t *testing.T) {
	ctx := context.Background()
	svc := NewSubjectService(newSubjectFixture())
	params := pagination.Params{Page: 1, Size: 10}

	all, err := svc.ListClassSubjects(ctx, alice, false, repository.ClassSubjectFilter{}, params)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Count)

	bySubject, err := svc.ListClassSubjects(ctx, alice, false, repository.ClassSubjectFilter{SubjectID: uintPtr(1)}, params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), bySubject.Count)

	both, err := svc.ListClassSubjects(ctx, alice, false, repository.ClassSubjectFilter{SubjectID: uintPtr(1), ClassID: uintPtr(5)}, params)
	require.NoError(t, err)
	require.Len(t, both.Results, 1)
	assert.Equal(t, "Math", both.Results[0].GeneralSubject.Name)

	deleted, err := svc.ListClassSubjects(ctx, admin, true, repository.ClassSubjectFilter{}, params)
	require.NoError(t, err)
	require.Len(t, deleted.Results, 1)
	assert.Equal(t, uint(4), deleted.Results[0].ID)
}

func TestGetClassSubjectNestsTopics(t *testing.T) {
	ctx := context.Background()
	repo := newSubjectFixture()
	svc := NewSubjectService(repo)

	cs, err := svc.GetClassSubject(ctx, alice, 1, false, "", "")
	require.NoError(t, err)
	assert.Equal(t, TopicsRelation.Order, repo.lastOrder)
	assert.Equal(t, 15, repo.lastParams.Size)
	assert.Len(t, cs.Topics.Results, 15)
	require.NotNil(t, cs.Topics.Next)
	assert.Equal(t, uint(1), cs.Topics.Results[0].ID, "creation order")

	custom, err := svc.GetClassSubject(ctx, alice, 1, false, "2", "5")
	require.NoError(t, err)
	assert.Len(t, custom.Topics.Results, 5)
	assert.Equal(t, uint(6), custom.Topics.Results[0].ID)

	empty, err := svc.GetClassSubject(ctx, alice, 2, false, "", "")
	require.NoError(t, err)
	assert.Empty(t, empty.Topics.Results)

	_, err = svc.GetClassSubject(ctx, alice, 4, false, "", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetClassSubject(ctx, alice, 4, true, "", "")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetClassSubject(ctx, alice, 1, false, "99", "")
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "not found: invalid topics page")

	_, err = svc.GetClassSubject(ctx, alice, 1, false, "1000000000000000000", "")
	assert.ErrorIs(t, err, ErrNotFound, "a huge page is past the end, not page 1")
}

func TestGetGeneralSubjectListsClasses(t *testing.T) {
	ctx := context.Background()
	repo := newSubjectFixture()
	repo.subjects = map[uint]*model.GeneralSubject{
		1: {Base: model.Base{ID: 1}, Name: "Math"},
		2: {Base: model.Base{ID: 2}, Name: "History"},
		3: {Base: model.Base{ID: 3, DeletedAt: deletedAt(time.Now())}, Name: "Latin"},
	}
	repo.subjectClasses = map[uint][]model.Class{
		1: {
			{Base: model.Base{ID: 5}, Number: 5},
			{Base: model.Base{ID: 6}, Number: 6},
			{Base: model.Base{ID: 7, DeletedAt: deletedAt(time.Now())}, Number: 7},
		},
		3: {{Base: model.Base{ID: 5}, Number: 5}},
	}
	svc := NewSubjectService(repo)

	math, err := svc.GetGeneralSubject(ctx, alice, 1, false)
	require.NoError(t, err)
	assert.Equal(t, "Math", math.Name)
	require.Len(t, math.Classes, 2)
	assert.Equal(t, 5, math.Classes[0].Number)
	assert.Equal(t, 6, math.Classes[1].Number)

	history, err := svc.GetGeneralSubject(ctx, alice, 2, false)
	require.NoError(t, err)
	assert.NotNil(t, history.Classes)
	assert.Empty(t, history.Classes)

	_, err = svc.GetGeneralSubject(ctx, alice, 3, false)
	assert.ErrorIs(t, err, ErrNotFound)

	latin, err := svc.GetGeneralSubject(ctx, admin, 3, true)
	require.NoError(t, err)
	assert.True(t, latin.IsDeleted)
	assert.Len(t, latin.Classes, 1)
}
