package repository

import (
	"context"
	"errors"
	"fmt"

	"todo_backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id::text, title, description, due_date, date_created, completed`

// PostgresTaskRepository stores tasks in the tasks table (see internal/migrations).
type PostgresTaskRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTaskRepository(db *pgxpool.Pool) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

func (r *PostgresTaskRepository) List(ctx context.Context, sort domain.SortKey) ([]*domain.Task, error) {
	// seq keeps insertion order for the natural listing and for ties.
	order := `seq`
	switch sort {
	case domain.SortDueDate:
		order = `due_date, seq`
	case domain.SortDateCreated:
		order = `date_created, seq`
	}

	rows, err := r.db.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY `+order)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	res := make([]*domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return res, nil
}

func (r *PostgresTaskRepository) Create(ctx context.Context, t *domain.Task) error {
	id := uuid.NewString()
	err := r.db.QueryRow(ctx,
		`INSERT INTO tasks (id, title, description, due_date, date_created, completed)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id::text`,
		id, t.Title, t.Description, t.DueDate, t.DateCreated, t.Completed,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *PostgresTaskRepository) SetCompleted(ctx context.Context, id string, completed bool) (*domain.Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	row := r.db.QueryRow(ctx,
		`UPDATE tasks SET completed = $1 WHERE id = $2 RETURNING `+taskColumns,
		completed, id,
	)
	return scanOne(row)
}

func (r *PostgresTaskRepository) Update(ctx context.Context, id string, fields domain.TaskFields) (*domain.Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	row := r.db.QueryRow(ctx,
		`UPDATE tasks SET title = $1, description = $2, due_date = $3
		 WHERE id = $4
		 RETURNING `+taskColumns,
		fields.Title, fields.Description, fields.DueDate, id,
	)
	return scanOne(row)
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, id string) (*domain.Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `DELETE FROM tasks WHERE id = $1 RETURNING `+taskColumns, id)
	return scanOne(row)
}

func (r *PostgresTaskRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func scanOne(row pgx.Row) (*domain.Task, error) {
	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.DateCreated, &t.Completed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	t.DueDate = domain.Normalize(t.DueDate)
	t.DateCreated = domain.Normalize(t.DateCreated)
	return &t, nil
}
