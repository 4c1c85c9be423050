package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Edutrack/internal/dto"
	"github.com/lshigami/Edutrack/internal/middleware"
	"github.com/lshigami/Edutrack/internal/policy"
	"github.com/lshigami/Edutrack/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, method, target, body string, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Handle(method, "/items/:id", handler)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", &service.ValidationError{Fields: map[string]string{"answer_point": "must not be negative"}}, http.StatusBadRequest, "must not be negative"},
		{"conflict", &service.ConflictError{Message: "user 3 already blocked"}, http.StatusBadRequest, "already blocked"},
		{"forbidden", fmt.Errorf("wrapped: %w", service.ErrForbidden), http.StatusForbidden, "permission"},
		{"policy forbidden", policy.ErrForbidden, http.StatusForbidden, "permission"},
		{"not found", fmt.Errorf("%w: quiz with ID 9 not found or deleted", service.ErrNotFound), http.StatusNotFound, "quiz with ID 9"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, http.MethodGet, "/items/1", "", func(c *gin.Context) { RespondError(c, tt.err) })
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
			assert.NotContains(t, w.Body.String(), "connection reset")
		})
	}
}

func TestShowDeleted(t *testing.T) {
	tests := []struct {
		query  string
		want   bool
		status int
	}{
		{"", false, http.StatusOK},
		{"?is_deleted=true", true, http.StatusOK},
		{"?is_deleted=1", true, http.StatusOK},
		{"?is_deleted=false", false, http.StatusOK},
		{"?is_deleted=maybe", false, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got bool
			w := serve(t, http.MethodGet, "/items/1"+tt.query, "", func(c *gin.Context) {
				v, ok := ShowDeleted(c)
				if !ok {
					return
				}
				got = v
				c.Status(http.StatusOK)
			})
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseID(t *testing.T) {
	for target, status := range map[string]int{
		"/items/12":  http.StatusOK,
		"/items/0":   http.StatusBadRequest,
		"/items/-1":  http.StatusBadRequest,
		"/items/abc": http.StatusBadRequest,
	} {
		w := serve(t, http.MethodGet, target, "", func(c *gin.Context) {
			if _, ok := ParseID(c, "id"); ok {
				c.Status(http.StatusOK)
			}
		})
		assert.Equal(t, status, w.Code, target)
	}
}

func TestPageParams(t *testing.T) {
	var got []int
	serve(t, http.MethodGet, "/items/1?page=3&size=500", "", func(c *gin.Context) {
		p := PageParams(c)
		got = []int{p.Page, p.Size}
	})
	assert.Equal(t, []int{3, 100}, got)
}

func TestBindJSONReportsJSONFieldNames(t *testing.T) {
	w := serve(t, http.MethodPost, "/items/1", `{"email":"not-an-email","password":"short"}`, func(c *gin.Context) {
		var req dto.RegisterUserRequest
		if BindJSON(c, &req) {
			c.Status(http.StatusOK)
		}
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"email":"Invalid email format"`)
	assert.Contains(t, body, `"first_name":"first_name is required"`)
	assert.Contains(t, body, `"password":"password must be at least 8"`)

	w = serve(t, http.MethodPost, "/items/1", `{not json`, func(c *gin.Context) {
		var req dto.RegisterUserRequest
		BindJSON(c, &req)
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"body"`)
}

func TestActorRequiresAuthentication(t *testing.T) {
	w := serve(t, http.MethodGet, "/items/1", "", func(c *gin.Context) {
		if _, ok := Actor(c); ok {
			c.Status(http.StatusOK)
		}
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(t, http.MethodGet, "/items/1", "", func(c *gin.Context) {
		middleware.SetActor(c, policy.Actor{UserID: 1, IsActive: true})
		if actor, ok := Actor(c); ok && actor.UserID == 1 {
			c.Status(http.StatusOK)
		}
	})
	assert.Equal(t, http.StatusOK, w.Code)
}
