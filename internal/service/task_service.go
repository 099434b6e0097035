package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"todo_backend/internal/domain"
	"todo_backend/internal/logger"
	"todo_backend/internal/repository"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("task not found")
	ErrStoreUnavailable = errors.New("task store unavailable")
)

// TaskInput carries the user-supplied fields of a create or update request.
type TaskInput struct {
	Title       string
	Description string
	DueDate     string
}

// TaskService applies task operations directly against the repository. It holds no state
// of its own besides the repository handle.
type TaskService struct {
	repo repository.TaskRepository
	now  func() time.Time
}

// NewTaskService creates a task service on top of repo
func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo, now: time.Now}
}

// ListTasks returns every task, ascending by sort, or in store order for SortNone.
func (s *TaskService) ListTasks(ctx context.Context, sort domain.SortKey) ([]*domain.Task, error) {
	tasks, err := s.repo.List(ctx, sort)
	if err != nil {
		return nil, storeErr(err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// CreateTask stores a new, not yet completed task created now.
func (s *TaskService) CreateTask(ctx context.Context, in TaskInput) (*domain.Task, error) {
	fields, err := validate(in)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:       fields.Title,
		Description: fields.Description,
		DueDate:     fields.DueDate,
		DateCreated: domain.Normalize(s.now()),
		Completed:   false,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, storeErr(err)
	}

	logger.WithContext(ctx).Info("task created", "task_id", task.ID)
	return task, nil
}

// SetCompletion sets the completed flag and returns the task after the update.
func (s *TaskService) SetCompletion(ctx context.Context, id string, completed bool) (*domain.Task, error) {
	task, err := s.repo.SetCompleted(ctx, id, completed)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	logger.WithContext(ctx).Info("task completion changed", "task_id", id, "completed", completed)
	return task, nil
}

// UpdateTask replaces title, description and due date. ID, DateCreated and Completed are kept.
func (s *TaskService) UpdateTask(ctx context.Context, id string, in TaskInput) (*domain.Task, error) {
	fields, err := validate(in)
	if err != nil {
		return nil, err
	}

	task, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	logger.WithContext(ctx).Info("task updated", "task_id", id)
	return task, nil
}

// DeleteTask removes the task and returns its last state.
func (s *TaskService) DeleteTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	logger.WithContext(ctx).Info("task deleted", "task_id", id)
	return task, nil
}

// Ping reports whether the underlying store is reachable.
func (s *TaskService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func validate(in TaskInput) (domain.TaskFields, error) {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(in.DueDate) == "" {
		missing = append(missing, "dueDate")
	}
	if len(missing) > 0 {
		return domain.TaskFields{}, fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}

	due, err := domain.ParseDueDate(in.DueDate)
	if err != nil {
		return domain.TaskFields{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return domain.TaskFields{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     due,
	}, nil
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return storeErr(err)
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
