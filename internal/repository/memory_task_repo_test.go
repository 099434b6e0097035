package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"todo_backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTask(title string, due, created time.Time) *domain.Task {
	return &domain.Task{
		Title:       title,
		Description: title + " description",
		DueDate:     due,
		DateCreated: created,
	}
}

func TestMemoryTaskRepository_CreateAssignsUniqueIDs(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()
	now := time.Now()

	a := newTask("a", now, now)
	b := newTask("b", now, now)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestMemoryTaskRepository_ListOrdering(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// insertion order: late, early, middle by due date; created ascending
	require.NoError(t, repo.Create(ctx, newTask("late", base.Add(72*time.Hour), base)))
	require.NoError(t, repo.Create(ctx, newTask("early", base.Add(24*time.Hour), base.Add(time.Minute))))
	require.NoError(t, repo.Create(ctx, newTask("middle", base.Add(48*time.Hour), base.Add(2*time.Minute))))

	natural, err := repo.List(ctx, domain.SortNone)
	require.NoError(t, err)
	assert.Equal(t, []string{"late", "early", "middle"}, titles(natural))

	byDue, err := repo.List(ctx, domain.SortDueDate)
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "middle", "late"}, titles(byDue))

	byCreated, err := repo.List(ctx, domain.SortDateCreated)
	require.NoError(t, err)
	assert.Equal(t, []string{"late", "early", "middle"}, titles(byCreated))
}

func TestMemoryTaskRepository_ListTiesKeepInsertionOrder(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()
	same := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, title := range []string{"c1", "c2", "c3"} {
		require.NoError(t, repo.Create(ctx, newTask(title, same, same)))
	}

	got, err := repo.List(ctx, domain.SortDateCreated)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2", "c3"}, titles(got))
}

func TestMemoryTaskRepository_ListEmpty(t *testing.T) {
	got, err := NewMemoryTaskRepository().List(context.Background(), domain.SortDueDate)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMemoryTaskRepository_SetCompleted(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()
	task := newTask("t", time.Now(), time.Now())
	require.NoError(t, repo.Create(ctx, task))

	updated, err := repo.SetCompleted(ctx, task.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	_, err = repo.SetCompleted(ctx, "missing", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryTaskRepository_UpdateKeepsIdentity(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	task := newTask("t", created, created)
	task.Completed = true
	require.NoError(t, repo.Create(ctx, task))

	due := created.Add(24 * time.Hour)
	updated, err := repo.Update(ctx, task.ID, domain.TaskFields{Title: "new", Description: "desc", DueDate: due})
	require.NoError(t, err)

	assert.Equal(t, task.ID, updated.ID)
	assert.Equal(t, created, updated.DateCreated)
	assert.True(t, updated.Completed)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, due, updated.DueDate)
}

func TestMemoryTaskRepository_Delete(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()
	task := newTask("t", time.Now(), time.Now())
	require.NoError(t, repo.Create(ctx, task))

	deleted, err := repo.Delete(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, deleted.ID)

	_, err = repo.Delete(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.SetCompleted(ctx, task.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Update(ctx, task.ID, domain.TaskFields{Title: "x", Description: "y", DueDate: time.Now()})
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := repo.List(ctx, domain.SortNone)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryTaskRepository_ConcurrentCreate(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()

	const n = 200
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = repo.Create(ctx, newTask("x", time.Now(), time.Now()))
		}()
	}
	wg.Wait()

	list, err := repo.List(ctx, domain.SortNone)
	require.NoError(t, err)
	assert.Len(t, list, n)
}

func titles(tasks []*domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}
