package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"todo_backend/internal/domain"
	"todo_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

var errDown = errors.New("connection refused")

// failingTasks fails every call with err.
type failingTasks struct{ err error }

func (f failingTasks) ListTasks(context.Context, domain.SortKey) ([]*domain.Task, error) {
	return nil, f.err
}
func (f failingTasks) CreateTask(context.Context, service.TaskInput) (*domain.Task, error) {
	return nil, f.err
}
func (f failingTasks) SetCompletion(context.Context, string, bool) (*domain.Task, error) {
	return nil, f.err
}
func (f failingTasks) UpdateTask(context.Context, string, service.TaskInput) (*domain.Task, error) {
	return nil, f.err
}
func (f failingTasks) DeleteTask(context.Context, string) (*domain.Task, error) {
	return nil, f.err
}

type pingerFunc func(context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func taskRouter(tasks TaskService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(tasks)
	r := gin.New()
	r.GET("/tasks", h.ListTasks)
	r.POST("/tasks/todo", h.CreateTask)
	r.PATCH("/tasks/complete/:id", h.CompleteTask)
	r.PUT("/tasks/update/:id", h.UpdateTask)
	r.DELETE("/tasks/delete/:id", h.DeleteTask)
	return r
}

func TestHandlers_StoreFailure_500WithMessage(t *testing.T) {
	r := taskRouter(failingTasks{err: fmt.Errorf("%w: %w", service.ErrStoreUnavailable, errDown)})
	valid := `{"title":"a","description":"b","dueDate":"2025-01-01"}`

	cases := []struct {
		method, path, body, msg string
	}{
		{http.MethodGet, "/tasks", "", "Failed to fetch tasks"},
		{http.MethodPost, "/tasks/todo", valid, "Failed to create task"},
		{http.MethodPatch, "/tasks/complete/1", `{"completed":true}`, "Failed to update task"},
		{http.MethodPut, "/tasks/update/1", valid, "Failed to update task"},
		{http.MethodDelete, "/tasks/delete/1", "", "Failed to delete task"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"message":%q}`, tc.msg), rr.Body.String())
			assert.NotContains(t, rr.Body.String(), "connection refused")
		})
	}
}

func TestHandlers_NotFound(t *testing.T) {
	r := taskRouter(failingTasks{err: service.ErrNotFound})

	req := httptest.NewRequest(http.MethodDelete, "/tasks/delete/abc", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"Task not found"}`, rr.Body.String())
}

func TestHealth_StoreDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler(pingerFunc(func(context.Context) error { return errDown }), "v1")
	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)

	for path, want := range map[string]int{
		"/health":  http.StatusServiceUnavailable,
		"/healthz": http.StatusOK,
		"/readyz":  http.StatusServiceUnavailable,
	} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rr.Code, path)
	}
}
