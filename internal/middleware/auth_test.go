package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lshigami/Edutrack/config"
	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/policy"
	"github.com/lshigami/Edutrack/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testIssuer = "edutrack-test"
)

type stubUsers struct {
	repository.UserRepository
	users map[uint]*model.User
}

func (s *stubUsers) FindByID(_ context.Context, view policy.View, id uint) (*model.User, error) {
	u, ok := s.users[id]
	if !ok || view != policy.ViewActive || u.DeletedAt.Valid {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func signToken(t *testing.T, method jwt.SigningMethod, userID uint, issuer string, ttl time.Duration) string {
	t.Helper()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	raw, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return raw
}

func newAuthRouter(optional bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWT: config.JWT{Secret: testSecret, Issuer: testIssuer}}
	users := &stubUsers{users: map[uint]*model.User{
		1: {Base: model.Base{ID: 1}, IsActive: true, IsStaff: true},
		2: {Base: model.Base{ID: 2}, IsActive: false},
		3: {Base: model.Base{ID: 3}, IsActive: true, Student: &model.Student{ID: 30, UserID: 3}},
	}}
	auth := NewAuth(cfg, users)

	r := gin.New()
	handler := auth.Required()
	if optional {
		handler = auth.Optional()
	}
	r.GET("/me", handler, func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "user_id": actor.UserID, "elevated": actor.Elevated(), "student": actor.IsStudent()})
	})
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequiredAuth(t *testing.T) {
	r := newAuthRouter(false)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"garbage token", "not-a-jwt", http.StatusUnauthorized},
		{"valid staff token", signToken(t, jwt.SigningMethodHS256, 1, testIssuer, time.Hour), http.StatusOK},
		{"blocked user", signToken(t, jwt.SigningMethodHS256, 2, testIssuer, time.Hour), http.StatusUnauthorized},
		{"unknown user", signToken(t, jwt.SigningMethodHS256, 99, testIssuer, time.Hour), http.StatusUnauthorized},
		{"expired token", signToken(t, jwt.SigningMethodHS256, 1, testIssuer, -time.Minute), http.StatusUnauthorized},
		{"wrong issuer", signToken(t, jwt.SigningMethodHS256, 1, "someone-else", time.Hour), http.StatusUnauthorized},
		{"unexpected algorithm", signToken(t, jwt.SigningMethodHS512, 1, testIssuer, time.Hour), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.token)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"authenticated":true,"user_id":1,"elevated":true,"student":false}`, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	r := newAuthRouter(true)

	w := get(r, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false,"user_id":0,"elevated":false,"student":false}`, w.Body.String())

	w = get(r, signToken(t, jwt.SigningMethodHS256, 3, testIssuer, time.Hour))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":true,"user_id":3,"elevated":false,"student":true}`, w.Body.String())

	w = get(r, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestActorFromUser(t *testing.T) {
	actor := ActorFromUser(&model.User{
		Base:        model.Base{ID: 7},
		IsActive:    true,
		IsSuperuser: true,
		Teacher:     &model.Teacher{ID: 70},
	})
	assert.True(t, actor.Elevated())
	assert.False(t, actor.IsStudent())
	require.True(t, actor.IsTeacher())
	assert.Equal(t, uint(70), *actor.TeacherID)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
