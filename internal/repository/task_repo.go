package repository

import (
	"context"
	"errors"

	"todo_backend/internal/domain"
)

// ErrNotFound is returned when no task matches the given id, including ids
// the backend cannot parse.
var ErrNotFound = errors.New("task not found")

// TaskRepository is the persistent store for tasks. Implementations assign ids on
// Create and never modify ID or DateCreated afterwards.
type TaskRepository interface {
	List(ctx context.Context, sort domain.SortKey) ([]*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	SetCompleted(ctx context.Context, id string, completed bool) (*domain.Task, error)
	Update(ctx context.Context, id string, fields domain.TaskFields) (*domain.Task, error)
	Delete(ctx context.Context, id string) (*domain.Task, error)
	Ping(ctx context.Context) error
}
