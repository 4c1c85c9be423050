package admin

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Edutrack/internal/dto"
	"github.com/lshigami/Edutrack/internal/middleware"
	"github.com/lshigami/Edutrack/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTeachers struct {
	got *dto.UpdateSubscriptionRequest
}

func (s *stubTeachers) UpdateSubscription(_ context.Context, actor policy.Actor, teacherID uint, req dto.UpdateSubscriptionRequest) (*dto.TeacherProfileResponse, error) {
	if err := policy.RequireElevated(actor); err != nil {
		return nil, err
	}
	s.got = &req
	resp := &dto.TeacherProfileResponse{ID: teacherID}
	if req.SubscriptionID != nil {
		resp.Subscription = &dto.SubscriptionResponse{ID: *req.SubscriptionID, Name: "Monthly", Duration: 1}
	}
	return resp, nil
}

func TestUpdateSubscriptionRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubTeachers{}
	newTeacherRouter := func(actor policy.Actor) *gin.Engine {
		r := gin.New()
		api := r.Group("/api/v1", func(c *gin.Context) {
			middleware.SetActor(c, actor)
			c.Next()
		})
		NewTeacherController(svc).RegisterRoutes(api)
		return r
	}

	w := do(newTeacherRouter(adminActor), http.MethodPut, "/api/v1/teachers/5/subscription", `{"subscription_id":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, uint(1), *svc.got.SubscriptionID)
	assert.Contains(t, w.Body.String(), `"name":"Monthly"`)

	w = do(newTeacherRouter(adminActor), http.MethodPut, "/api/v1/teachers/5/subscription", `{"subscription_id":null}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.got.SubscriptionID)

	w = do(newTeacherRouter(studentActor), http.MethodPut, "/api/v1/teachers/5/subscription", `{"subscription_id":1}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
