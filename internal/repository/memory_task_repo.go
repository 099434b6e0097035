package repository

import (
	"context"
	"sort"
	"sync"

	"todo_backend/internal/domain"

	"github.com/google/uuid"
)

// MemoryTaskRepository keeps tasks in process memory. Used for local runs and tests.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	order []string
	tasks map[string]domain.Task
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{
		tasks: make(map[string]domain.Task),
	}
}

func (r *MemoryTaskRepository) List(_ context.Context, key domain.SortKey) ([]*domain.Task, error) {
	r.mu.RLock()
	res := make([]*domain.Task, 0, len(r.order))
	for _, id := range r.order {
		t := r.tasks[id]
		res = append(res, &t)
	}
	r.mu.RUnlock()

	// stable sort keeps insertion order for equal keys
	switch key {
	case domain.SortDueDate:
		sort.SliceStable(res, func(i, j int) bool { return res[i].DueDate.Before(res[j].DueDate) })
	case domain.SortDateCreated:
		sort.SliceStable(res, func(i, j int) bool { return res[i].DateCreated.Before(res[j].DateCreated) })
	}
	return res, nil
}

func (r *MemoryTaskRepository) Create(_ context.Context, t *domain.Task) error {
	t.ID = uuid.NewString()

	r.mu.Lock()
	r.tasks[t.ID] = *t
	r.order = append(r.order, t.ID)
	r.mu.Unlock()

	return nil
}

func (r *MemoryTaskRepository) SetCompleted(_ context.Context, id string, completed bool) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	t.Completed = completed
	r.tasks[id] = t
	return &t, nil
}

func (r *MemoryTaskRepository) Update(_ context.Context, id string, fields domain.TaskFields) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	t.Title = fields.Title
	t.Description = fields.Description
	t.DueDate = fields.DueDate
	r.tasks[id] = t
	return &t, nil
}

func (r *MemoryTaskRepository) Delete(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.tasks, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return &t, nil
}

func (r *MemoryTaskRepository) Ping(context.Context) error {
	return nil
}
