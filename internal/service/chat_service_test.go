package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lshigami/Edutrack/internal/dto"
	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/pagination"
	"github.com/lshigami/Edutrack/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var teacherActor = policy.Actor{UserID: 50, IsActive: true, TeacherID: uintPtr(5)}

func newChatFixture() (*fakeChatRepo, ChatService) {
	chats := newFakeChatRepo(
		model.PersonalChat{
			Base:      model.Base{ID: 1},
			StudentID: 1, Student: model.Student{ID: 1, User: &model.User{Base: model.Base{ID: 20}, FirstName: "Alice"}},
			TeacherID: 5, Teacher: model.Teacher{ID: 5, User: &model.User{Base: model.Base{ID: 50}, FirstName: "Tom"}},
		},
		model.PersonalChat{Base: model.Base{ID: 2}, StudentID: 2, TeacherID: 5},
		model.PersonalChat{Base: model.Base{ID: 3, DeletedAt: deletedAt(time.Now())}, StudentID: 1, TeacherID: 6},
	)
	teachers := &fakeTeacherRepo{teachers: map[uint]*model.Teacher{5: {ID: 5, UserID: 50}, 6: {ID: 6, UserID: 60}}}
	return chats, NewChatService(chats, teachers)
}

func TestListChatsIsParticipantScoped(t *testing.T) {
	ctx := context.Background()
	_, svc := newChatFixture()
	params := pagination.Params{Page: 1, Size: 10}

	mine, err := svc.ListChats(ctx, alice, false, params)
	require.NoError(t, err)
	require.Len(t, mine.Results, 1)
	assert.Equal(t, uint(1), mine.Results[0].ID)

	teacherChats, err := svc.ListChats(ctx, teacherActor, false, params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), teacherChats.Count)

	_, err = svc.ListChats(ctx, alice, true, params)
	assert.ErrorIs(t, err, ErrForbidden)

	none, err := svc.ListChats(ctx, staff, false, params)
	require.NoError(t, err)
	assert.Empty(t, none.Results)
}

func TestGetChatNestsMessages(t *testing.T) {
	ctx := context.Background()
	repo, svc := newChatFixture()
	for i := 0; i < 65; i++ {
		_, err := svc.PostMessage(ctx, alice, 1, dto.CreateMessageRequest{Content: fmt.Sprintf("message %d", i)})
		require.NoError(t, err)
	}

	chat, err := svc.GetChat(ctx, alice, 1, "", "")
	require.NoError(t, err)
	assert.Equal(t, MessagesRelation.Order, repo.lastOrder)
	assert.Equal(t, 30, repo.lastParams.Size)
	assert.Equal(t, int64(65), chat.Messages.Count)
	assert.Len(t, chat.Messages.Results, 30)
	assert.Equal(t, "message 64", chat.Messages.Results[0].Content, "newest first")

	last, err := svc.GetChat(ctx, teacherActor, 1, "3", "30")
	require.NoError(t, err)
	assert.Len(t, last.Messages.Results, 5)
	assert.Nil(t, last.Messages.Next)

	_, err = svc.GetChat(ctx, alice, 1, "4", "30")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetChat(ctx, bob, 1, "", "")
	assert.ErrorIs(t, err, ErrForbidden)

	empty, err := svc.GetChat(ctx, bob, 2, "", "")
	require.NoError(t, err)
	assert.Empty(t, empty.Messages.Results)
	assert.Equal(t, int64(0), empty.Messages.Count)

	_, err = svc.GetChat(ctx, alice, 3, "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostMessage(t *testing.T) {
	ctx := context.Background()
	_, svc := newChatFixture()

	msg, err := svc.PostMessage(ctx, teacherActor, 1, dto.CreateMessageRequest{Content: "  hello  "})
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Content)
	assert.Equal(t, "Tom", msg.OwnerName)

	_, err = svc.PostMessage(ctx, bob, 1, dto.CreateMessageRequest{Content: "hi"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.PostMessage(ctx, admin, 1, dto.CreateMessageRequest{Content: "hi"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.PostMessage(ctx, alice, 1, dto.CreateMessageRequest{Content: "   "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestOpenChat(t *testing.T) {
	ctx := context.Background()
	repo, svc := newChatFixture()

	existing, err := svc.OpenChat(ctx, alice, dto.CreateChatRequest{TeacherID: 5})
	require.NoError(t, err)
	assert.Equal(t, uint(1), existing.ID)

	created, err := svc.OpenChat(ctx, alice, dto.CreateChatRequest{TeacherID: 6})
	require.NoError(t, err)
	assert.NotEqual(t, uint(3), created.ID, "deleted chat is not reused")
	assert.Len(t, repo.chats, 4)

	_, err = svc.OpenChat(ctx, teacherActor, dto.CreateChatRequest{TeacherID: 6})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.OpenChat(ctx, alice, dto.CreateChatRequest{TeacherID: 404})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
