package handlers

import (
	"context"
	"errors"
	"net/http"

	"todo_backend/internal/domain"
	"todo_backend/internal/logger"
	"todo_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TaskService is the part of service.TaskService the HTTP layer needs.
type TaskService interface {
	ListTasks(ctx context.Context, sort domain.SortKey) ([]*domain.Task, error)
	CreateTask(ctx context.Context, in service.TaskInput) (*domain.Task, error)
	SetCompletion(ctx context.Context, id string, completed bool) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, in service.TaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) (*domain.Task, error)
}

type Handler struct {
	Tasks TaskService
}

func NewHandler(tasks TaskService) *Handler {
	return &Handler{Tasks: tasks}
}

// respondError writes 404 for unknown tasks and 500 for everything else.
func respondError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	default:
		logger.WithContext(c.Request.Context()).Error(msg, "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"message": msg})
	}
}
