package service

import (
	"context"
	"sort"
	"time"

	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/pagination"
	"github.com/lshigami/Edutrack/internal/policy"
	"github.com/lshigami/Edutrack/internal/repository"
	"gorm.io/gorm"
)

// pageOf pages an in-memory slice the way pagination.Paginate pages a query.
func pageOf[T any](items []T, params pagination.Params) (pagination.Page[T], error) {
	count := int64(len(items))
	if params.Page > 1 && int64(params.Offset()) >= count {
		return pagination.Page[T]{}, pagination.ErrPageOutOfRange
	}
	end := params.Offset() + params.Limit()
	if end > len(items) {
		end = len(items)
	}
	var slice []T
	if params.Offset() < len(items) {
		slice = items[params.Offset():end]
	}
	return pagination.NewPage(count, params, slice), nil
}

func deletedAt(t time.Time) gorm.DeletedAt {
	return gorm.DeletedAt{Time: t, Valid: true}
}

func inView(b model.Base, view policy.View) bool {
	if view == policy.ViewDeleted {
		return b.DeletedAt.Valid
	}
	return !b.DeletedAt.Valid
}

func uintPtr(v uint) *uint { return &v }

// --- users ---

type fakeUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserRepo(users ...model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uint]*model.User{}, nextID: 1}
	for i := range users {
		u := users[i]
		r.users[u.ID] = &u
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	if user.Student != nil {
		user.Student.ID = user.ID
		user.Student.UserID = user.ID
	}
	if user.Teacher != nil {
		user.Teacher.ID = user.ID
		user.Teacher.UserID = user.ID
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) EmailTaken(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, view policy.View, id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok || !inView(u.Base, view) {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) List(_ context.Context, view policy.View, params pagination.Params) (pagination.Page[model.User], error) {
	var out []model.User
	for _, u := range r.users {
		if inView(u.Base, view) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return pageOf(out, params)
}

func (r *fakeUserRepo) SetActive(_ context.Context, id uint, active bool) (int64, error) {
	u, ok := r.users[id]
	if !ok || u.DeletedAt.Valid || u.IsActive == active {
		return 0, nil
	}
	u.IsActive = active
	return 1, nil
}

func (r *fakeUserRepo) SoftDelete(_ context.Context, ids []uint) (int64, error) {
	var n int64
	for _, id := range ids {
		if u, ok := r.users[id]; ok && !u.DeletedAt.Valid {
			u.DeletedAt = deletedAt(time.Now())
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) Restore(_ context.Context, ids []uint) (int64, error) {
	var n int64
	for _, id := range ids {
		if u, ok := r.users[id]; ok && u.DeletedAt.Valid {
			u.DeletedAt = gorm.DeletedAt{}
			n++
		}
	}
	return n, nil
}

// --- teachers ---

type fakeTeacherRepo struct {
	teachers      map[uint]*model.Teacher
	subscriptions map[uint]*model.Subscription
	statuses      map[uint]*model.SubscriptionStatus
	updates       int
}

func (r *fakeTeacherRepo) FindByID(_ context.Context, id uint) (*model.Teacher, error) {
	t, ok := r.teachers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	if cp.SubscriptionID != nil {
		cp.Subscription = r.subscriptions[*cp.SubscriptionID]
	}
	if cp.StatusID != nil {
		cp.Status = r.statuses[*cp.StatusID]
	}
	return &cp, nil
}

func (r *fakeTeacherRepo) UpdateSubscription(_ context.Context, teacher *model.Teacher) error {
	r.updates++
	stored := r.teachers[teacher.ID]
	stored.SubscriptionID = teacher.SubscriptionID
	stored.StatusID = teacher.StatusID
	stored.SubscribedAt = teacher.SubscribedAt
	return nil
}

func (r *fakeTeacherRepo) FindSubscription(_ context.Context, id uint) (*model.Subscription, error) {
	s, ok := r.subscriptions[id]
	if !ok || s.DeletedAt.Valid {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

type recordingNotifier struct {
	changes []SubscriptionChange
}

func (n *recordingNotifier) SubscriptionChanged(_ context.Context, change SubscriptionChange) error {
	n.changes = append(n.changes, change)
	return nil
}

// --- chats ---

type fakeChatRepo struct {
	chats    map[uint]*model.PersonalChat
	messages []model.Message
	nextID   uint

	lastOrder  string
	lastParams pagination.Params
}

func newFakeChatRepo(chats ...model.PersonalChat) *fakeChatRepo {
	r := &fakeChatRepo{chats: map[uint]*model.PersonalChat{}, nextID: 100}
	for i := range chats {
		c := chats[i]
		r.chats[c.ID] = &c
	}
	return r
}

func (r *fakeChatRepo) Create(_ context.Context, chat *model.PersonalChat) error {
	chat.ID = r.nextID
	r.nextID++
	cp := *chat
	r.chats[chat.ID] = &cp
	return nil
}

func (r *fakeChatRepo) FindByID(_ context.Context, view policy.View, id uint) (*model.PersonalChat, error) {
	c, ok := r.chats[id]
	if !ok || !inView(c.Base, view) {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeChatRepo) FindByParticipants(_ context.Context, studentID, teacherID uint) (*model.PersonalChat, error) {
	for _, c := range r.chats {
		if c.StudentID == studentID && c.TeacherID == teacherID && !c.DeletedAt.Valid {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeChatRepo) List(_ context.Context, view policy.View, filter repository.ChatFilter, params pagination.Params) (pagination.Page[model.PersonalChat], error) {
	var out []model.PersonalChat
	for _, c := range r.chats {
		if !inView(c.Base, view) {
			continue
		}
		if (filter.StudentID != nil && *filter.StudentID == c.StudentID) ||
			(filter.TeacherID != nil && *filter.TeacherID == c.TeacherID) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return pageOf(out, params)
}

func (r *fakeChatRepo) Messages(_ context.Context, chatID uint, order string, params pagination.Params) (pagination.Page[model.Message], error) {
	r.lastOrder = order
	r.lastParams = params
	var out []model.Message
	for i := len(r.messages) - 1; i >= 0; i-- {
		if r.messages[i].ChatID == chatID {
			out = append(out, r.messages[i])
		}
	}
	return pageOf(out, params)
}

func (r *fakeChatRepo) CreateMessage(_ context.Context, message *model.Message) error {
	message.ID = uint(len(r.messages) + 1)
	message.CreatedAt = time.Now()
	r.messages = append(r.messages, *message)
	return nil
}

// --- quizzes ---

type fakeQuizStore struct {
	quizzes   map[uint]*model.Quiz
	types     map[uint]*model.QuizType
	questions map[uint]*model.Question
	answers   map[uint]*model.Answer
	rows      []model.QuizQuestionAnswer
	nextID    uint
}

func newFakeQuizStore() *fakeQuizStore {
	return &fakeQuizStore{
		quizzes:   map[uint]*model.Quiz{},
		types:     map[uint]*model.QuizType{},
		questions: map[uint]*model.Question{},
		answers:   map[uint]*model.Answer{},
		nextID:    1,
	}
}

// fakeQuizRepo and friends share one store so counts stay consistent.
type fakeQuizRepo struct{ s *fakeQuizStore }
type fakeQuizTypeRepo struct{ s *fakeQuizStore }
type fakeQuizAnswerRepo struct{ s *fakeQuizStore }
type fakeQuestionRepo struct{ s *fakeQuizStore }
type fakeAnswerRepo struct{ s *fakeQuizStore }

func (r fakeQuizRepo) Create(_ context.Context, quiz *model.Quiz) error {
	quiz.ID = r.s.nextID
	r.s.nextID++
	quiz.CreatedAt = time.Now()
	cp := *quiz
	r.s.quizzes[quiz.ID] = &cp
	return nil
}

func (r fakeQuizRepo) FindByID(_ context.Context, view policy.View, id uint) (*model.Quiz, error) {
	q, ok := r.s.quizzes[id]
	if !ok || !inView(q.Base, view) {
		return nil, repository.ErrNotFound
	}
	cp := *q
	if qt, ok := r.s.types[cp.QuizTypeID]; ok {
		cp.QuizType = *qt
	}
	return &cp, nil
}

func (r fakeQuizRepo) FindByIDWithAnswers(ctx context.Context, view policy.View, id uint) (*model.Quiz, error) {
	q, err := r.FindByID(ctx, view, id)
	if err != nil {
		return nil, err
	}
	q.QuizQuestions = nil
	for _, row := range r.s.rows {
		if row.QuizID == id {
			row.Question = *r.s.questions[row.QuestionID]
			row.Answer = *r.s.answers[row.AnswerID]
			q.QuizQuestions = append(q.QuizQuestions, row)
		}
	}
	return q, nil
}

func (r fakeQuizRepo) ListByStudent(ctx context.Context, view policy.View, studentID uint, params pagination.Params) (pagination.Page[repository.QuizSummary], error) {
	var out []repository.QuizSummary
	for _, q := range r.s.quizzes {
		if q.StudentID != studentID || !inView(q.Base, view) {
			continue
		}
		correct, _ := fakeQuizAnswerRepo(r).CountCorrect(ctx, q.ID)
		points, _ := fakeQuizAnswerRepo(r).SumPoints(ctx, q.ID)
		out = append(out, repository.QuizSummary{
			Quiz:             *q,
			QuizTypeName:     r.s.types[q.QuizTypeID].Name,
			CorrectQuestions: correct,
			TotalPoints:      points,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return pageOf(out, params)
}

func (r fakeQuizTypeRepo) FindByID(_ context.Context, view policy.View, id uint) (*model.QuizType, error) {
	qt, ok := r.s.types[id]
	if !ok || !inView(qt.Base, view) {
		return nil, repository.ErrNotFound
	}
	return qt, nil
}

func (r fakeQuizTypeRepo) List(_ context.Context, view policy.View, params pagination.Params) (pagination.Page[model.QuizType], error) {
	var out []model.QuizType
	for _, qt := range r.s.types {
		if inView(qt.Base, view) {
			out = append(out, *qt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return pageOf(out, params)
}

func (r fakeQuizAnswerRepo) Create(_ context.Context, qa *model.QuizQuestionAnswer) error {
	for _, row := range r.s.rows {
		if row.QuizID == qa.QuizID && row.QuestionID == qa.QuestionID {
			return repository.ErrDuplicate
		}
	}
	qa.ID = uint(len(r.s.rows) + 1)
	qa.CreatedAt = time.Now()
	r.s.rows = append(r.s.rows, *qa)
	return nil
}

func (r fakeQuizAnswerRepo) Exists(_ context.Context, quizID, questionID uint) (bool, error) {
	for _, row := range r.s.rows {
		if row.QuizID == quizID && row.QuestionID == questionID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeQuizAnswerRepo) CountCorrect(_ context.Context, quizID uint) (int64, error) {
	var n int64
	for _, row := range r.s.rows {
		if row.QuizID == quizID && r.s.answers[row.AnswerID].IsCorrect {
			n++
		}
	}
	return n, nil
}

func (r fakeQuizAnswerRepo) SumPoints(_ context.Context, quizID uint) (int64, error) {
	var n int64
	for _, row := range r.s.rows {
		if row.QuizID == quizID {
			n += int64(row.AnswerPoint)
		}
	}
	return n, nil
}

func (r fakeQuestionRepo) FindByID(_ context.Context, id uint) (*model.Question, error) {
	q, ok := r.s.questions[id]
	if !ok || q.DeletedAt.Valid {
		return nil, repository.ErrNotFound
	}
	return q, nil
}

func (r fakeAnswerRepo) FindByID(_ context.Context, id uint) (*model.Answer, error) {
	a, ok := r.s.answers[id]
	if !ok || a.DeletedAt.Valid {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func newFakeQuizService(s *fakeQuizStore) QuizService {
	return NewQuizService(fakeQuizRepo{s}, fakeQuizTypeRepo{s}, fakeQuizAnswerRepo{s}, fakeQuestionRepo{s}, fakeAnswerRepo{s})
}

// --- subjects ---

type fakeSubjectRepo struct {
	subjects       map[uint]*model.GeneralSubject
	subjectClasses map[uint][]model.Class
	classSubjects  map[uint]*model.ClassSubject
	topics         []model.Topic

	lastOrder  string
	lastParams pagination.Params
}

func (r *fakeSubjectRepo) ListGeneralSubjects(context.Context, policy.View, pagination.Params) (pagination.Page[model.GeneralSubject], error) {
	return pagination.Page[model.GeneralSubject]{}, nil
}

func (r *fakeSubjectRepo) FindGeneralSubject(_ context.Context, view policy.View, id uint) (*model.GeneralSubject, error) {
	s, ok := r.subjects[id]
	if !ok || !inView(s.Base, view) {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (r *fakeSubjectRepo) SubjectClasses(_ context.Context, subjectID uint) ([]model.Class, error) {
	var out []model.Class
	for _, c := range r.subjectClasses[subjectID] {
		if !c.IsDeleted() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeSubjectRepo) ListTrackWays(context.Context, policy.View, pagination.Params) (pagination.Page[model.TrackWay], error) {
	return pagination.Page[model.TrackWay]{}, nil
}

func (r *fakeSubjectRepo) FindTrackWay(context.Context, policy.View, uint) (*model.TrackWay, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeSubjectRepo) ListClasses(context.Context, policy.View, pagination.Params) (pagination.Page[model.Class], error) {
	return pagination.Page[model.Class]{}, nil
}

func (r *fakeSubjectRepo) FindClass(context.Context, policy.View, uint) (*model.Class, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeSubjectRepo) ListClassSubjects(_ context.Context, view policy.View, filter repository.ClassSubjectFilter, params pagination.Params) (pagination.Page[model.ClassSubject], error) {
	var out []model.ClassSubject
	for _, cs := range r.classSubjects {
		if !inView(cs.Base, view) {
			continue
		}
		if filter.SubjectID != nil && cs.GeneralSubjectID != *filter.SubjectID {
			continue
		}
		if filter.ClassID != nil && cs.ClassID != *filter.ClassID {
			continue
		}
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return pageOf(out, params)
}

func (r *fakeSubjectRepo) FindClassSubject(_ context.Context, view policy.View, id uint) (*model.ClassSubject, error) {
	cs, ok := r.classSubjects[id]
	if !ok || !inView(cs.Base, view) {
		return nil, repository.ErrNotFound
	}
	return cs, nil
}

func (r *fakeSubjectRepo) Topics(_ context.Context, classSubjectID uint, order string, params pagination.Params) (pagination.Page[model.Topic], error) {
	r.lastOrder = order
	r.lastParams = params
	var out []model.Topic
	for _, t := range r.topics {
		if t.ClassSubjectID == classSubjectID {
			out = append(out, t)
		}
	}
	return pageOf(out, params)
}
